package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/malonic/quotehub-backend/api/middleware"
	"github.com/malonic/quotehub-backend/internal/quotations"
	"github.com/malonic/quotehub-backend/pkg/enums"
	pkgerrors "github.com/malonic/quotehub-backend/pkg/errors"
)

type stubQuotationService struct {
	dto  *quotations.QuotationDTO
	list []quotations.QuotationDTO
	err  error
}

func (s stubQuotationService) Create(ctx context.Context, userID uuid.UUID, req quotations.CreateQuotationRequest) (*quotations.QuotationDTO, error) {
	return s.dto, s.err
}

func (s stubQuotationService) GetByID(ctx context.Context, id uuid.UUID) (*quotations.QuotationDTO, error) {
	return s.dto, s.err
}

func (s stubQuotationService) List(ctx context.Context, q quotations.ListQuotationsQuery) ([]quotations.QuotationDTO, int64, error) {
	return s.list, int64(len(s.list)), s.err
}

func (s stubQuotationService) Update(ctx context.Context, id uuid.UUID, req quotations.UpdateQuotationRequest) (*quotations.QuotationDTO, error) {
	return s.dto, s.err
}

func (s stubQuotationService) ChangeStatus(ctx context.Context, id uuid.UUID, req quotations.ChangeStatusRequest) (*quotations.QuotationDTO, error) {
	return s.dto, s.err
}

func (s stubQuotationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.err
}

type stubExporter struct {
	out    []byte
	number string
	err    error
}

func (s stubExporter) QuotationPDF(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	return s.out, s.number, s.err
}

func quotationRouter(svc quotations.Service, exporter QuotationExporter) http.Handler {
	r := chi.NewRouter()
	r.Get("/quotations", QuotationsList(svc, nil))
	r.Post("/quotations", QuotationsCreate(svc, nil))
	r.Post("/quotations/{id}/status", QuotationsChangeStatus(svc, nil))
	r.Get("/quotations/{id}/pdf", QuotationsDownloadPDF(exporter, nil))
	return r
}

func TestQuotationsCreateRequiresUserContext(t *testing.T) {
	router := quotationRouter(stubQuotationService{}, stubExporter{})

	body := bytes.NewBufferString(`{"client_id":"` + uuid.NewString() + `","items":[{"name":"Window","quantity":1}]}`)
	req := httptest.NewRequest(http.MethodPost, "/quotations", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user context, got %d", rec.Code)
	}
}

func TestQuotationsCreateWithUserContext(t *testing.T) {
	dto := &quotations.QuotationDTO{ID: uuid.New(), Number: "Q-2026-0001", Status: enums.QuotationStatusDraft}
	router := quotationRouter(stubQuotationService{dto: dto}, stubExporter{})

	body := bytes.NewBufferString(`{"client_id":"` + uuid.NewString() + `","items":[{"name":"Window","quantity":1}]}`)
	req := httptest.NewRequest(http.MethodPost, "/quotations", body)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestQuotationsListRejectsUnknownStatus(t *testing.T) {
	router := quotationRouter(stubQuotationService{}, stubExporter{})

	req := httptest.NewRequest(http.MethodGet, "/quotations?status=bogus", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestQuotationsChangeStatusMapsStateConflict(t *testing.T) {
	router := quotationRouter(stubQuotationService{
		err: pkgerrors.New(pkgerrors.CodeStateConflict, "cannot move quotation"),
	}, stubExporter{})

	body := bytes.NewBufferString(`{"status":"draft"}`)
	req := httptest.NewRequest(http.MethodPost, "/quotations/"+uuid.NewString()+"/status", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestQuotationsDownloadPDF(t *testing.T) {
	router := quotationRouter(stubQuotationService{}, stubExporter{
		out:    []byte("%PDF-1.4 test"),
		number: "Q-2026-0001",
	})

	req := httptest.NewRequest(http.MethodGet, "/quotations/"+uuid.NewString()+"/pdf", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %s", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="Q-2026-0001.pdf"` {
		t.Fatalf("unexpected disposition %s", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected pdf bytes")
	}
}
