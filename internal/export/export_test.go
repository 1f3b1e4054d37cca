package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/malonic/quotehub-backend/internal/sketch"
	"github.com/malonic/quotehub-backend/pkg/config"
	"github.com/malonic/quotehub-backend/pkg/db/models"
	"github.com/malonic/quotehub-backend/pkg/enums"
	"github.com/malonic/quotehub-backend/pkg/metrics"
)

func testAdapter() *Adapter {
	return NewAdapter(config.RenderConfig{RasterWidth: 320, RasterHeight: 240}, nil, metrics.NewRenderMetrics(nil))
}

func TestSketchImageReturnsPNG(t *testing.T) {
	adapter := testAdapter()
	out := adapter.SketchImage(context.Background(), sketch.NewConfiguration())
	if len(out) == 0 {
		t.Fatal("expected raster bytes")
	}
	if !bytes.HasPrefix(out, []byte("\x89PNG")) {
		t.Fatal("expected png magic bytes")
	}
}

func TestSketchImageFailureIsNil(t *testing.T) {
	adapter := testAdapter()
	broken := sketch.NewConfiguration()
	broken.Width = -5
	if out := adapter.SketchImage(context.Background(), broken); out != nil {
		t.Fatal("expected nil raster for invalid sketch")
	}
	if out := adapter.SketchImage(context.Background(), nil); out != nil {
		t.Fatal("expected nil raster for nil sketch")
	}
}

func testQuotation() *models.Quotation {
	address := "12 Harbor Road"
	validUntil := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	cfg := sketch.NewConfiguration()

	return &models.Quotation{
		ID:     uuid.New(),
		Number: "Q-2026-0001",
		Client: &models.Client{
			Name:    "Harbor Construction",
			Address: &address,
		},
		Status:      enums.QuotationStatusDraft,
		Currency:    "EUR",
		DiscountPct: decimal.NewFromInt(0),
		TaxRatePct:  decimal.NewFromInt(21),
		Subtotal:    decimal.NewFromFloat(150.00),
		TaxAmount:   decimal.NewFromFloat(31.50),
		Total:       decimal.NewFromFloat(181.50),
		ValidUntil:  &validUntil,
		CreatedAt:   time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		Items: []models.QuotationItem{
			{
				Position:  1,
				Name:      "Living room window",
				Sketch:    cfg,
				Quantity:  3,
				AreaSqm:   decimal.NewFromInt(1),
				UnitPrice: decimal.NewFromFloat(50.00),
				LineTotal: decimal.NewFromFloat(150.00),
			},
		},
	}
}

func TestBuildProducesPDF(t *testing.T) {
	adapter := testAdapter()
	builder := NewDocumentBuilder(config.CompanyConfig{Name: "QuoteHub", Footer: "Thanks for your business"}, adapter)

	quotation := testQuotation()
	images := map[int][]byte{
		0: adapter.SketchImage(context.Background(), quotation.Items[0].Sketch),
	}

	out, err := builder.Build(quotation, images)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatal("expected a pdf document")
	}
	if len(out) < 1000 {
		t.Fatalf("document suspiciously small: %d bytes", len(out))
	}
}

func TestBuildWithoutImagesStillSucceeds(t *testing.T) {
	builder := NewDocumentBuilder(config.CompanyConfig{Name: "QuoteHub"}, testAdapter())
	out, err := builder.Build(testQuotation(), nil)
	if err != nil {
		t.Fatalf("build without images: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatal("expected a pdf document")
	}
}

func TestBuildRejectsNilQuotation(t *testing.T) {
	builder := NewDocumentBuilder(config.CompanyConfig{Name: "QuoteHub"}, testAdapter())
	if _, err := builder.Build(nil, nil); err == nil {
		t.Fatal("expected error for nil quotation")
	}
}
