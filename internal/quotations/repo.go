package quotations

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/malonic/quotehub-backend/pkg/db/models"
)

const defaultListLimit = 50

// Repository handles quotation persistence. Item replacement happens inside
// one transaction so a quotation is never observable with half its rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to quotation operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// NextNumber reserves the next sequential quotation number for the year,
// formatted Q-YYYY-NNNN. The suffix follows the highest issued number so
// deleted quotations never free a number for reuse.
func (r *Repository) NextNumber(ctx context.Context, at time.Time) (string, error) {
	prefix := fmt.Sprintf("Q-%d-", at.Year())

	var latest *string
	if err := r.db.WithContext(ctx).
		Model(&models.Quotation{}).
		Where("number LIKE ?", prefix+"%").
		Select("MAX(number)").
		Scan(&latest).Error; err != nil {
		return "", err
	}

	next := 1
	if latest != nil {
		suffix, err := strconv.Atoi(strings.TrimPrefix(*latest, prefix))
		if err != nil {
			return "", fmt.Errorf("malformed quotation number %q: %w", *latest, err)
		}
		next = suffix + 1
	}
	return fmt.Sprintf("%s%04d", prefix, next), nil
}

// Create persists the quotation together with its items.
func (r *Repository) Create(ctx context.Context, quotation *models.Quotation) error {
	if quotation == nil {
		return fmt.Errorf("quotation is required")
	}
	return r.db.WithContext(ctx).Create(quotation).Error
}

// FindByID loads a quotation with its items and client.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Quotation, error) {
	var quotation models.Quotation
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Client").
		First(&quotation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &quotation, nil
}

// List returns quotations newest first, client preloaded, optionally
// filtered by status and client.
func (r *Repository) List(ctx context.Context, q ListQuotationsQuery) ([]models.Quotation, int64, error) {
	limit := q.Limit
	if limit <= 0 || limit > 200 {
		limit = defaultListLimit
	}

	base := r.db.WithContext(ctx).Model(&models.Quotation{})
	if q.Status != nil {
		base = base.Where("status = ?", *q.Status)
	}
	if q.ClientID != nil {
		base = base.Where("client_id = ?", *q.ClientID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Quotation
	if err := base.
		Preload("Client").
		Order("created_at DESC").
		Limit(limit).
		Offset(q.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ReplaceItems swaps the quotation's items and saves the header in one
// transaction.
func (r *Repository) ReplaceItems(ctx context.Context, quotation *models.Quotation, items []models.QuotationItem) error {
	if quotation == nil {
		return fmt.Errorf("quotation is required")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quotation_id = ?", quotation.ID).
			Delete(&models.QuotationItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = uuid.New()
			items[i].QuotationID = quotation.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		quotation.Items = items
		return tx.Omit("Items", "Client").Save(quotation).Error
	})
}

// UpdateHeader saves the quotation row without touching items.
func (r *Repository) UpdateHeader(ctx context.Context, quotation *models.Quotation) error {
	if quotation == nil {
		return fmt.Errorf("quotation is required")
	}
	return r.db.WithContext(ctx).Omit("Items", "Client").Save(quotation).Error
}

// Delete removes the quotation; items cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Quotation{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
