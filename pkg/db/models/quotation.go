package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/malonic/quotehub-backend/pkg/enums"
)

// Quotation aggregates line items priced for a single client.
type Quotation struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Number      string                `gorm:"column:number;type:text;not null;uniqueIndex"`
	ClientID    uuid.UUID             `gorm:"column:client_id;type:uuid;not null;index"`
	Client      *Client               `gorm:"foreignKey:ClientID"`
	Status      enums.QuotationStatus `gorm:"column:status;type:text;not null;default:'draft'"`
	Currency    string                `gorm:"column:currency;type:text;not null;default:'EUR'"`
	DiscountPct decimal.Decimal       `gorm:"column:discount_pct;type:numeric(5,2);not null;default:0"`
	TaxRatePct  decimal.Decimal       `gorm:"column:tax_rate_pct;type:numeric(5,2);not null;default:21"`
	Subtotal    decimal.Decimal       `gorm:"column:subtotal;type:numeric(12,2);not null;default:0"`
	TaxAmount   decimal.Decimal       `gorm:"column:tax_amount;type:numeric(12,2);not null;default:0"`
	Total       decimal.Decimal       `gorm:"column:total;type:numeric(12,2);not null;default:0"`
	Notes       *string               `gorm:"column:notes;type:text"`
	ValidUntil  *time.Time            `gorm:"column:valid_until"`
	CreatedBy   uuid.UUID             `gorm:"column:created_by;type:uuid;not null"`
	Items       []QuotationItem       `gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
