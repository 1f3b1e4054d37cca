package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/malonic/quotehub-backend/internal/sketch"
)

// LineItem owns the mutation rules for one priced quotation row. When
// a rate and a sketch are both present the unit price is derived from
// the sketch area; otherwise the directly entered price applies. The
// total is recomputed on every mutation.
type LineItem struct {
	Name        string
	Description string
	Quantity    int
	Rate        *decimal.Decimal
	Sketch      *sketch.Configuration

	directPrice decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

// NewLineItem starts an empty row with quantity 1.
func NewLineItem(name string) *LineItem {
	item := &LineItem{Name: name, Quantity: 1}
	item.Recompute()
	return item
}

// SetQuantity updates the quantity and recomputes the total.
func (li *LineItem) SetQuantity(quantity int) {
	li.Quantity = quantity
	li.Recompute()
}

// SetDirectPrice stores a manually entered unit price. It only takes
// effect while no rate-derived pricing is active, but is remembered so
// detaching the sketch can fall back to it.
func (li *LineItem) SetDirectPrice(price decimal.Decimal) {
	li.directPrice = price
	li.Recompute()
}

// SetRate switches to area-derived pricing. A nil rate returns to
// direct entry.
func (li *LineItem) SetRate(rate *decimal.Decimal) {
	li.Rate = rate
	li.Recompute()
}

// AttachSketch replaces the item's sketch by value.
func (li *LineItem) AttachSketch(cfg *sketch.Configuration) {
	if cfg != nil {
		cfg = cfg.Clone()
	}
	li.Sketch = cfg
	li.Recompute()
}

// DetachSketch removes the sketch and clears rate-derived pricing,
// reverting to the last directly entered price.
func (li *LineItem) DetachSketch() {
	li.Sketch = nil
	li.Rate = nil
	li.Recompute()
}

// Recompute re-derives the unit price and total from current state.
// Rate without a sketch has no effect: there are no dimensions to
// price against.
func (li *LineItem) Recompute() {
	if li.Rate != nil && li.Sketch != nil {
		li.UnitPrice = DeriveUnitPrice(li.Sketch, *li.Rate)
	} else {
		li.UnitPrice = li.directPrice
	}
	li.Total = LineTotal(li.Quantity, li.UnitPrice)
}
