package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/malonic/quotehub-backend/internal/sketch"
	"github.com/malonic/quotehub-backend/pkg/enums"
)

func TestDeriveUnitPriceFromMillimeters(t *testing.T) {
	cfg := sketch.NewConfiguration()
	cfg.Width = 2000
	cfg.Height = 1500
	cfg.Unit = enums.MeasureUnitMillimeter

	price := DeriveUnitPrice(cfg, decimal.NewFromInt(50))
	if !price.Equal(decimal.NewFromFloat(150.00)) {
		t.Fatalf("expected 150.00, got %s", price)
	}
}

func TestDeriveUnitPriceNilSketchIsZero(t *testing.T) {
	if got := DeriveUnitPrice(nil, decimal.NewFromInt(50)); !got.IsZero() {
		t.Fatalf("expected zero price without a sketch, got %s", got)
	}
}

func TestLineTotalAndAggregate(t *testing.T) {
	unit := decimal.NewFromFloat(12.34)
	total := LineTotal(3, unit)
	if !total.Equal(decimal.NewFromFloat(37.02)) {
		t.Fatalf("expected 37.02, got %s", total)
	}

	agg := AggregateTotal([]decimal.Decimal{
		decimal.NewFromFloat(37.02),
		decimal.NewFromFloat(150.00),
	})
	if !agg.Equal(decimal.NewFromFloat(187.02)) {
		t.Fatalf("expected 187.02, got %s", agg)
	}
}

func TestRecomputeIsIdempotent(t *testing.T) {
	rate := decimal.NewFromFloat(33.33)
	item := NewLineItem("W-01")
	item.SetQuantity(7)
	cfg := sketch.NewConfiguration()
	cfg.Width = 1234
	cfg.Height = 987
	item.AttachSketch(cfg)
	item.SetRate(&rate)

	first := item.Total
	item.Recompute()
	item.Recompute()
	if !item.Total.Equal(first) {
		t.Fatalf("total drifted from %s to %s", first, item.Total)
	}
}

func TestDetachSketchRevertsToDirectPrice(t *testing.T) {
	rate := decimal.NewFromInt(25)
	item := NewLineItem("D-01")
	item.SetQuantity(3)

	cfg := sketch.NewConfiguration()
	cfg.Unit = enums.MeasureUnitMeter
	cfg.Width = 2
	cfg.Height = 1
	item.AttachSketch(cfg)
	item.SetRate(&rate)

	if !item.UnitPrice.Equal(decimal.NewFromFloat(50.00)) {
		t.Fatalf("expected derived price 50.00, got %s", item.UnitPrice)
	}
	if !item.Total.Equal(decimal.NewFromFloat(150.00)) {
		t.Fatalf("expected total 150.00, got %s", item.Total)
	}

	item.DetachSketch()
	if item.Rate != nil {
		t.Fatal("detaching the sketch must clear the rate")
	}
	if !item.UnitPrice.IsZero() {
		t.Fatalf("expected price to fall back to 0, got %s", item.UnitPrice)
	}
	if !item.Total.IsZero() {
		t.Fatalf("expected total 0 after detach, got %s", item.Total)
	}
}

func TestRateWithoutSketchHasNoEffect(t *testing.T) {
	rate := decimal.NewFromInt(25)
	item := NewLineItem("D-02")
	item.SetDirectPrice(decimal.NewFromFloat(80.00))
	item.SetRate(&rate)

	if !item.UnitPrice.Equal(decimal.NewFromFloat(80.00)) {
		t.Fatalf("rate without sketch must keep the direct price, got %s", item.UnitPrice)
	}
}

func TestAttachSketchCopiesByValue(t *testing.T) {
	item := NewLineItem("W-02")
	cfg := sketch.NewConfiguration()
	item.AttachSketch(cfg)
	cfg.Width = 555

	if item.Sketch.Width == 555 {
		t.Fatal("attached sketch must be an independent copy")
	}
}
