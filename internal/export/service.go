package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/malonic/quotehub-backend/pkg/db/models"
	pkgerrors "github.com/malonic/quotehub-backend/pkg/errors"
)

type quotationLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Quotation, error)
}

// Service assembles a full quotation document: it loads the aggregate,
// rasters every sketch, and hands the result to the builder.
type Service struct {
	loader  quotationLoader
	adapter *Adapter
	builder *DocumentBuilder
}

// NewService wires the export pipeline together.
func NewService(loader quotationLoader, adapter *Adapter, builder *DocumentBuilder) (*Service, error) {
	if loader == nil {
		return nil, fmt.Errorf("quotation loader required")
	}
	if adapter == nil {
		return nil, fmt.Errorf("render adapter required")
	}
	if builder == nil {
		return nil, fmt.Errorf("document builder required")
	}
	return &Service{loader: loader, adapter: adapter, builder: builder}, nil
}

// QuotationPDF renders the quotation identified by id and returns the
// document bytes together with the quotation number.
func (s *Service) QuotationPDF(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	quotation, err := s.loader.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", pkgerrors.New(pkgerrors.CodeNotFound, "quotation not found")
		}
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quotation")
	}

	images := make(map[int][]byte, len(quotation.Items))
	for i := range quotation.Items {
		item := &quotation.Items[i]
		if item.Sketch == nil {
			continue
		}
		if png := s.adapter.SketchImage(ctx, item.Sketch); png != nil {
			images[i] = png
		}
	}

	out, err := s.builder.Build(quotation, images)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeRender, err, "build quotation pdf")
	}
	return out, quotation.Number, nil
}
