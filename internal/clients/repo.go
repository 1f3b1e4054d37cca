package clients

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/malonic/quotehub-backend/pkg/db/models"
)

const defaultListLimit = 50

// Repository handles client persistence. Deleted clients keep their row so
// existing quotations can still resolve them.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to client operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new client row.
func (r *Repository) Create(ctx context.Context, client *models.Client) error {
	if client == nil {
		return fmt.Errorf("client is required")
	}
	return r.db.WithContext(ctx).Create(client).Error
}

// FindByID loads a non-deleted client by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// List returns non-deleted clients, newest first, optionally filtered by a
// case-insensitive name or email match.
func (r *Repository) List(ctx context.Context, q ListClientsQuery) ([]models.Client, int64, error) {
	limit := q.Limit
	if limit <= 0 || limit > 200 {
		limit = defaultListLimit
	}

	base := r.db.WithContext(ctx).Model(&models.Client{}).Where("deleted_at IS NULL")
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		base = base.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Client
	if err := base.
		Order("created_at DESC").
		Limit(limit).
		Offset(q.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update saves the provided client.
func (r *Repository) Update(ctx context.Context, client *models.Client) error {
	if client == nil {
		return fmt.Errorf("client is required")
	}
	return r.db.WithContext(ctx).Save(client).Error
}

// SoftDelete marks the client deleted without removing the row.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ? AND deleted_at IS NULL", id).
		UpdateColumn("deleted_at", at)
	return res.RowsAffected, res.Error
}
