package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/malonic/quotehub-backend/internal/sketch"
)

// QuotationItem is one priced line inside a quotation. Items without a
// sketch carry a directly entered unit price; items with both a sketch and a
// rate derive the price from the sketch area.
type QuotationItem struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuotationID uuid.UUID             `gorm:"column:quotation_id;type:uuid;not null;index"`
	Position    int                   `gorm:"column:position;not null"`
	Name        string                `gorm:"column:name;type:text;not null"`
	Description *string               `gorm:"column:description;type:text"`
	Sketch      *sketch.Configuration `gorm:"column:sketch;type:jsonb;serializer:json"`
	Rate        *decimal.Decimal      `gorm:"column:rate;type:numeric(12,2)"`
	Quantity    int                   `gorm:"column:quantity;not null;default:1"`
	AreaSqm     decimal.Decimal       `gorm:"column:area_sqm;type:numeric(10,4);not null"`
	UnitPrice   decimal.Decimal       `gorm:"column:unit_price;type:numeric(12,2);not null"`
	LineTotal   decimal.Decimal       `gorm:"column:line_total;type:numeric(12,2);not null"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
