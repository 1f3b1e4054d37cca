package clients

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/malonic/quotehub-backend/pkg/db/models"
	pkgerrors "github.com/malonic/quotehub-backend/pkg/errors"
)

func TestServiceCreateTrimsName(t *testing.T) {
	repo := newStubClientRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	dto, err := svc.Create(context.Background(), CreateClientRequest{Name: "  Harbor Construction  "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Name != "Harbor Construction" {
		t.Fatalf("expected trimmed name, got %q", dto.Name)
	}
	if len(repo.rows) != 1 {
		t.Fatalf("expected 1 persisted client, got %d", len(repo.rows))
	}
}

func TestServiceCreateRejectsBlankName(t *testing.T) {
	svc, _ := NewService(newStubClientRepo())

	_, err := svc.Create(context.Background(), CreateClientRequest{Name: "   "})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceUpdateAppliesPartialFields(t *testing.T) {
	repo := newStubClientRepo()
	email := "old@example.com"
	existing := &models.Client{ID: uuid.New(), Name: "Old Name", Email: &email}
	repo.rows[existing.ID] = existing

	svc, _ := NewService(repo)

	newEmail := "new@example.com"
	dto, err := svc.Update(context.Background(), existing.ID, UpdateClientRequest{Email: &newEmail})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.Name != "Old Name" {
		t.Fatalf("name should be untouched, got %q", dto.Name)
	}
	if dto.Email == nil || *dto.Email != newEmail {
		t.Fatalf("expected email to change, got %v", dto.Email)
	}
}

func TestServiceUpdateUnknownClient(t *testing.T) {
	svc, _ := NewService(newStubClientRepo())

	name := "Whoever"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateClientRequest{Name: &name})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceDelete(t *testing.T) {
	repo := newStubClientRepo()
	existing := &models.Client{ID: uuid.New(), Name: "Target"}
	repo.rows[existing.ID] = existing

	svc, _ := NewService(repo)

	if err := svc.Delete(context.Background(), existing.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if existing.DeletedAt == nil {
		t.Fatalf("expected soft-delete timestamp")
	}

	err := svc.Delete(context.Background(), existing.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

type stubClientRepo struct {
	rows map[uuid.UUID]*models.Client
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{rows: make(map[uuid.UUID]*models.Client)}
}

func (s *stubClientRepo) Create(ctx context.Context, client *models.Client) error {
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	s.rows[client.ID] = client
	return nil
}

func (s *stubClientRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	client, ok := s.rows[id]
	if !ok || client.DeletedAt != nil {
		return nil, gorm.ErrRecordNotFound
	}
	return client, nil
}

func (s *stubClientRepo) List(ctx context.Context, q ListClientsQuery) ([]models.Client, int64, error) {
	out := make([]models.Client, 0, len(s.rows))
	for _, c := range s.rows {
		if c.DeletedAt == nil {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (s *stubClientRepo) Update(ctx context.Context, client *models.Client) error {
	s.rows[client.ID] = client
	return nil
}

func (s *stubClientRepo) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) (int64, error) {
	client, ok := s.rows[id]
	if !ok || client.DeletedAt != nil {
		return 0, nil
	}
	client.DeletedAt = &at
	return 1, nil
}
