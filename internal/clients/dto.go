package clients

import (
	"time"

	"github.com/google/uuid"

	"github.com/malonic/quotehub-backend/pkg/db/models"
)

// ClientDTO is the transport shape for a quotation client.
type ClientDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	TaxID     *string   `json:"tax_id,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateClientRequest captures the payload accepted by the create endpoint.
type CreateClientRequest struct {
	Name    string  `json:"name" validate:"required,max=160"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=40"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=400"`
	TaxID   *string `json:"tax_id,omitempty" validate:"omitempty,max=40"`
	Notes   *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// UpdateClientRequest carries partial client mutations. Nil fields stay untouched.
type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=160"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=40"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=400"`
	TaxID   *string `json:"tax_id,omitempty" validate:"omitempty,max=40"`
	Notes   *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// ListClientsQuery narrows and pages the client listing.
type ListClientsQuery struct {
	Search string
	Limit  int
	Offset int
}

func (r CreateClientRequest) ToModel() *models.Client {
	return &models.Client{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
		TaxID:   r.TaxID,
		Notes:   r.Notes,
	}
}

func FromModel(c *models.Client) *ClientDTO {
	if c == nil {
		return nil
	}
	return &ClientDTO{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		TaxID:     c.TaxID,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
