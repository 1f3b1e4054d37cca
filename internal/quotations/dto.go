package quotations

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/malonic/quotehub-backend/internal/sketch"
	"github.com/malonic/quotehub-backend/pkg/db/models"
	"github.com/malonic/quotehub-backend/pkg/enums"
)

// ItemRequest is one line item as submitted by the client. Money fields
// sent by the caller are treated as inputs to the pricing rules, never as
// authoritative totals.
type ItemRequest struct {
	Name        string                `json:"name" validate:"required,max=200"`
	Description *string               `json:"description,omitempty" validate:"omitempty,max=2000"`
	Quantity    int                   `json:"quantity" validate:"required,min=1"`
	UnitPrice   *decimal.Decimal      `json:"unit_price,omitempty"`
	Rate        *decimal.Decimal      `json:"rate,omitempty"`
	Sketch      *sketch.Configuration `json:"sketch,omitempty"`
}

// CreateQuotationRequest is the payload accepted by the create endpoint.
type CreateQuotationRequest struct {
	ClientID    uuid.UUID        `json:"client_id" validate:"required"`
	Currency    string           `json:"currency,omitempty" validate:"omitempty,len=3"`
	DiscountPct *decimal.Decimal `json:"discount_pct,omitempty"`
	TaxRatePct  *decimal.Decimal `json:"tax_rate_pct,omitempty"`
	Notes       *string          `json:"notes,omitempty" validate:"omitempty,max=4000"`
	Items       []ItemRequest    `json:"items" validate:"required,min=1,dive"`
}

// UpdateQuotationRequest carries a full replacement of the mutable fields.
// Items are replaced wholesale; the server recomputes every derived amount.
type UpdateQuotationRequest struct {
	ClientID    *uuid.UUID       `json:"client_id,omitempty"`
	Currency    *string          `json:"currency,omitempty" validate:"omitempty,len=3"`
	DiscountPct *decimal.Decimal `json:"discount_pct,omitempty"`
	TaxRatePct  *decimal.Decimal `json:"tax_rate_pct,omitempty"`
	Notes       *string          `json:"notes,omitempty" validate:"omitempty,max=4000"`
	Items       []ItemRequest    `json:"items,omitempty" validate:"omitempty,min=1,dive"`
}

// ChangeStatusRequest moves a quotation through its lifecycle.
type ChangeStatusRequest struct {
	Status enums.QuotationStatus `json:"status" validate:"required"`
}

// ListQuotationsQuery narrows and pages the quotation listing.
type ListQuotationsQuery struct {
	Status   *enums.QuotationStatus
	ClientID *uuid.UUID
	Limit    int
	Offset   int
}

// ItemDTO is the transport shape of a persisted line item.
type ItemDTO struct {
	ID          uuid.UUID             `json:"id"`
	Position    int                   `json:"position"`
	Name        string                `json:"name"`
	Description *string               `json:"description,omitempty"`
	Quantity    int                   `json:"quantity"`
	Rate        *decimal.Decimal      `json:"rate,omitempty"`
	Sketch      *sketch.Configuration `json:"sketch,omitempty"`
	AreaSqm     decimal.Decimal       `json:"area_sqm"`
	UnitPrice   decimal.Decimal       `json:"unit_price"`
	LineTotal   decimal.Decimal       `json:"line_total"`
}

// ClientSummary is the joined client shown in quotation listings.
type ClientSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email *string   `json:"email,omitempty"`
}

// QuotationDTO is the transport shape for a quotation aggregate.
type QuotationDTO struct {
	ID          uuid.UUID             `json:"id"`
	Number      string                `json:"number"`
	ClientID    uuid.UUID             `json:"client_id"`
	Client      *ClientSummary        `json:"client,omitempty"`
	Status      enums.QuotationStatus `json:"status"`
	Currency    string                `json:"currency"`
	DiscountPct decimal.Decimal       `json:"discount_pct"`
	TaxRatePct  decimal.Decimal       `json:"tax_rate_pct"`
	Subtotal    decimal.Decimal       `json:"subtotal"`
	TaxAmount   decimal.Decimal       `json:"tax_amount"`
	Total       decimal.Decimal       `json:"total"`
	Notes       *string               `json:"notes,omitempty"`
	ValidUntil  *time.Time            `json:"valid_until,omitempty"`
	Items       []ItemDTO             `json:"items,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

func itemFromModel(item *models.QuotationItem) ItemDTO {
	return ItemDTO{
		ID:          item.ID,
		Position:    item.Position,
		Name:        item.Name,
		Description: item.Description,
		Quantity:    item.Quantity,
		Rate:        item.Rate,
		Sketch:      item.Sketch,
		AreaSqm:     item.AreaSqm,
		UnitPrice:   item.UnitPrice,
		LineTotal:   item.LineTotal,
	}
}

// FromModel converts a quotation row and its preloaded associations.
func FromModel(q *models.Quotation) *QuotationDTO {
	if q == nil {
		return nil
	}

	dto := &QuotationDTO{
		ID:          q.ID,
		Number:      q.Number,
		ClientID:    q.ClientID,
		Status:      q.Status,
		Currency:    q.Currency,
		DiscountPct: q.DiscountPct,
		TaxRatePct:  q.TaxRatePct,
		Subtotal:    q.Subtotal,
		TaxAmount:   q.TaxAmount,
		Total:       q.Total,
		Notes:       q.Notes,
		ValidUntil:  q.ValidUntil,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
	if q.Client != nil {
		dto.Client = &ClientSummary{ID: q.Client.ID, Name: q.Client.Name, Email: q.Client.Email}
	}
	if len(q.Items) > 0 {
		dto.Items = make([]ItemDTO, 0, len(q.Items))
		for i := range q.Items {
			dto.Items = append(dto.Items, itemFromModel(&q.Items[i]))
		}
	}
	return dto
}
