package quotations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/malonic/quotehub-backend/internal/pricing"
	"github.com/malonic/quotehub-backend/pkg/db/models"
	"github.com/malonic/quotehub-backend/pkg/enums"
	pkgerrors "github.com/malonic/quotehub-backend/pkg/errors"
)

var oneHundred = decimal.NewFromInt(100)

type quotationRepository interface {
	NextNumber(ctx context.Context, at time.Time) (string, error)
	Create(ctx context.Context, quotation *models.Quotation) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Quotation, error)
	List(ctx context.Context, q ListQuotationsQuery) ([]models.Quotation, int64, error)
	ReplaceItems(ctx context.Context, quotation *models.Quotation, items []models.QuotationItem) error
	UpdateHeader(ctx context.Context, quotation *models.Quotation) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type clientResolver interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
}

// Service exposes quotation operations to the controllers.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateQuotationRequest) (*QuotationDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*QuotationDTO, error)
	List(ctx context.Context, q ListQuotationsQuery) ([]QuotationDTO, int64, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateQuotationRequest) (*QuotationDTO, error)
	ChangeStatus(ctx context.Context, id uuid.UUID, req ChangeStatusRequest) (*QuotationDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ServiceParams bundles the dependencies required to build a quotation
// service.
type ServiceParams struct {
	Repo         quotationRepository
	Clients      clientResolver
	ValidityDays int
}

type service struct {
	repo         quotationRepository
	clients      clientResolver
	validityDays int
}

// NewService builds a quotation service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("quotation repository required")
	}
	if params.Clients == nil {
		return nil, fmt.Errorf("client resolver required")
	}
	validity := params.ValidityDays
	if validity <= 0 {
		validity = 15
	}
	return &service{
		repo:         params.Repo,
		clients:      params.Clients,
		validityDays: validity,
	}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateQuotationRequest) (*QuotationDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "creator is required")
	}
	if _, err := s.resolveClient(ctx, req.ClientID); err != nil {
		return nil, err
	}

	items, err := buildItems(req.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	number, err := s.repo.NextNumber(ctx, now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reserve quotation number")
	}

	validUntil := now.AddDate(0, 0, s.validityDays)
	quotation := &models.Quotation{
		Number:      number,
		ClientID:    req.ClientID,
		Status:      enums.QuotationStatusDraft,
		Currency:    normalizeCurrency(req.Currency),
		DiscountPct: percentOrZero(req.DiscountPct),
		TaxRatePct:  percentOrDefault(req.TaxRatePct),
		Notes:       req.Notes,
		ValidUntil:  &validUntil,
		CreatedBy:   userID,
		Items:       items,
	}
	if err := validatePercent(quotation.DiscountPct, "discount_pct"); err != nil {
		return nil, err
	}
	if err := validatePercent(quotation.TaxRatePct, "tax_rate_pct"); err != nil {
		return nil, err
	}
	applyTotals(quotation)

	if err := s.repo.Create(ctx, quotation); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create quotation")
	}
	return FromModel(quotation), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*QuotationDTO, error) {
	quotation, err := s.findQuotation(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(quotation), nil
}

func (s *service) List(ctx context.Context, q ListQuotationsQuery) ([]QuotationDTO, int64, error) {
	rows, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list quotations")
	}

	out := make([]QuotationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, total, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateQuotationRequest) (*QuotationDTO, error) {
	quotation, err := s.findQuotation(ctx, id)
	if err != nil {
		return nil, err
	}
	if !quotation.Status.IsDraft() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("quotation %s is %s and can no longer be edited", quotation.Number, quotation.Status))
	}

	if req.ClientID != nil {
		if _, err := s.resolveClient(ctx, *req.ClientID); err != nil {
			return nil, err
		}
		quotation.ClientID = *req.ClientID
		quotation.Client = nil
	}
	if req.Currency != nil {
		quotation.Currency = normalizeCurrency(*req.Currency)
	}
	if req.DiscountPct != nil {
		if err := validatePercent(*req.DiscountPct, "discount_pct"); err != nil {
			return nil, err
		}
		quotation.DiscountPct = *req.DiscountPct
	}
	if req.TaxRatePct != nil {
		if err := validatePercent(*req.TaxRatePct, "tax_rate_pct"); err != nil {
			return nil, err
		}
		quotation.TaxRatePct = *req.TaxRatePct
	}
	if req.Notes != nil {
		quotation.Notes = req.Notes
	}

	if req.Items != nil {
		items, err := buildItems(req.Items)
		if err != nil {
			return nil, err
		}
		quotation.Items = items
		applyTotals(quotation)
		if err := s.repo.ReplaceItems(ctx, quotation, items); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace quotation items")
		}
	} else {
		applyTotals(quotation)
		if err := s.repo.UpdateHeader(ctx, quotation); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update quotation")
		}
	}

	return s.GetByID(ctx, id)
}

func (s *service) ChangeStatus(ctx context.Context, id uuid.UUID, req ChangeStatusRequest) (*QuotationDTO, error) {
	if !req.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown status %q", req.Status))
	}

	quotation, err := s.findQuotation(ctx, id)
	if err != nil {
		return nil, err
	}
	if !quotation.Status.CanTransitionTo(req.Status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move quotation %s from %s to %s", quotation.Number, quotation.Status, req.Status))
	}

	quotation.Status = req.Status
	if err := s.repo.UpdateHeader(ctx, quotation); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update quotation status")
	}
	return FromModel(quotation), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	quotation, err := s.findQuotation(ctx, id)
	if err != nil {
		return err
	}
	if !quotation.Status.IsDraft() {
		return pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("quotation %s is %s and cannot be deleted", quotation.Number, quotation.Status))
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete quotation")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "quotation not found")
	}
	return nil
}

func (s *service) findQuotation(ctx context.Context, id uuid.UUID) (*models.Quotation, error) {
	quotation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quotation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quotation")
	}
	return quotation, nil
}

func (s *service) resolveClient(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "client does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load client")
	}
	return client, nil
}

// buildItems runs every submitted row through the pricing rules and
// produces persistable items. Caller-sent totals are ignored.
func buildItems(reqs []ItemRequest) ([]models.QuotationItem, error) {
	if len(reqs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item is required")
	}

	items := make([]models.QuotationItem, 0, len(reqs))
	for i, req := range reqs {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: name is required", i+1))
		}
		if req.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: quantity must be at least 1", i+1))
		}
		if req.Sketch != nil {
			if err := req.Sketch.Validate(); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("item %d: invalid sketch", i+1))
			}
		}
		if req.Rate != nil && req.Rate.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: rate cannot be negative", i+1))
		}
		if req.UnitPrice != nil && req.UnitPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: unit price cannot be negative", i+1))
		}

		line := pricing.NewLineItem(name)
		line.SetQuantity(req.Quantity)
		if req.UnitPrice != nil {
			line.SetDirectPrice(*req.UnitPrice)
		}
		line.AttachSketch(req.Sketch)
		line.SetRate(req.Rate)

		area := decimal.Zero
		if line.Sketch != nil {
			area = decimal.NewFromFloat(line.Sketch.AreaSquareMeters()).Round(4)
		}

		items = append(items, models.QuotationItem{
			Position:    i + 1,
			Name:        name,
			Description: req.Description,
			Sketch:      line.Sketch,
			Rate:        req.Rate,
			Quantity:    req.Quantity,
			AreaSqm:     area,
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.Total,
		})
	}
	return items, nil
}

// applyTotals re-derives every money field on the header from the items.
func applyTotals(q *models.Quotation) {
	lineTotals := make([]decimal.Decimal, 0, len(q.Items))
	for i := range q.Items {
		lineTotals = append(lineTotals, q.Items[i].LineTotal)
	}
	subtotal := pricing.AggregateTotal(lineTotals)

	discount := subtotal.Mul(q.DiscountPct).Div(oneHundred).Round(2)
	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(q.TaxRatePct).Div(oneHundred).Round(2)

	q.Subtotal = subtotal
	q.TaxAmount = tax
	q.Total = taxable.Add(tax)
}

func validatePercent(v decimal.Decimal, field string) error {
	if v.IsNegative() || v.GreaterThan(oneHundred) {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s must be between 0 and 100", field))
	}
	return nil
}

func normalizeCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "EUR"
	}
	return code
}

func percentOrZero(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}

func percentOrDefault(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.NewFromInt(21)
	}
	return *v
}
