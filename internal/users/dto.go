package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/malonic/quotehub-backend/pkg/db/models"
	"github.com/malonic/quotehub-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID          uuid.UUID      `json:"id"`
	Email       string         `json:"email"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	Phone       *string        `json:"phone,omitempty"`
	Role        enums.UserRole `json:"role"`
	IsActive    bool           `json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        *string
	Role         enums.UserRole
	IsActive     *bool
}

// CreateUserRequest captures the payload accepted by the create endpoint.
type CreateUserRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password,omitempty" validate:"omitempty,min=8,max=128"`
	FirstName string  `json:"first_name" validate:"required,max=80"`
	LastName  string  `json:"last_name" validate:"required,max=80"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=40"`
	Role      string  `json:"role,omitempty" validate:"omitempty,oneof=admin sales"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// CreatedUserDTO is the create response. TempPassword is set only when the
// request omitted a password; it is shown once and never stored in clear.
type CreatedUserDTO struct {
	UserDTO
	TempPassword string `json:"temp_password,omitempty"`
}

// UpdateUserRequest carries partial user mutations. Nil fields stay untouched.
type UpdateUserRequest struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=80"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,min=1,max=80"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=40"`
	Role      *string `json:"role,omitempty" validate:"omitempty,oneof=admin sales"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// ListUsersQuery narrows and pages the user listing.
type ListUsersQuery struct {
	Search string
	Limit  int
	Offset int
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Phone:       u.Phone,
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	isActive := true
	if c.IsActive != nil {
		isActive = *c.IsActive
	}

	role := c.Role
	if !role.IsValid() {
		role = enums.UserRoleSales
	}

	return &models.User{
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Phone:        c.Phone,
		Role:         role,
		IsActive:     isActive,
	}
}
