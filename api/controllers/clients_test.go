package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/malonic/quotehub-backend/internal/clients"
	pkgerrors "github.com/malonic/quotehub-backend/pkg/errors"
)

type stubClientService struct {
	dto  *clients.ClientDTO
	list []clients.ClientDTO
	err  error
}

func (s stubClientService) Create(ctx context.Context, req clients.CreateClientRequest) (*clients.ClientDTO, error) {
	return s.dto, s.err
}

func (s stubClientService) GetByID(ctx context.Context, id uuid.UUID) (*clients.ClientDTO, error) {
	return s.dto, s.err
}

func (s stubClientService) List(ctx context.Context, q clients.ListClientsQuery) ([]clients.ClientDTO, int64, error) {
	return s.list, int64(len(s.list)), s.err
}

func (s stubClientService) Update(ctx context.Context, id uuid.UUID, req clients.UpdateClientRequest) (*clients.ClientDTO, error) {
	return s.dto, s.err
}

func (s stubClientService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.err
}

func clientRouter(svc clients.Service) http.Handler {
	r := chi.NewRouter()
	r.Get("/clients", ClientsList(svc, nil))
	r.Post("/clients", ClientsCreate(svc, nil))
	r.Get("/clients/{id}", ClientsGet(svc, nil))
	r.Patch("/clients/{id}", ClientsUpdate(svc, nil))
	r.Delete("/clients/{id}", ClientsDelete(svc, nil))
	return r
}

func TestClientsCreateReturns201(t *testing.T) {
	dto := &clients.ClientDTO{ID: uuid.New(), Name: "Harbor Construction"}
	router := clientRouter(stubClientService{dto: dto})

	body := bytes.NewBufferString(`{"name":"Harbor Construction"}`)
	req := httptest.NewRequest(http.MethodPost, "/clients", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestClientsCreateValidatesEmail(t *testing.T) {
	router := clientRouter(stubClientService{})

	body := bytes.NewBufferString(`{"name":"X","email":"nope"}`)
	req := httptest.NewRequest(http.MethodPost, "/clients", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestClientsGetRejectsBadID(t *testing.T) {
	router := clientRouter(stubClientService{})

	req := httptest.NewRequest(http.MethodGet, "/clients/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestClientsGetMapsNotFound(t *testing.T) {
	router := clientRouter(stubClientService{err: pkgerrors.New(pkgerrors.CodeNotFound, "client not found")})

	req := httptest.NewRequest(http.MethodGet, "/clients/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestClientsListEnvelope(t *testing.T) {
	router := clientRouter(stubClientService{list: []clients.ClientDTO{
		{ID: uuid.New(), Name: "One"},
		{ID: uuid.New(), Name: "Two"},
	}})

	req := httptest.NewRequest(http.MethodGet, "/clients?limit=10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var envelope struct {
		Data clientListResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Total != 2 || len(envelope.Data.Clients) != 2 {
		t.Fatalf("unexpected list payload %+v", envelope.Data)
	}
}
