package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/malonic/quotehub-backend/pkg/db/models"
	pkgerrors "github.com/malonic/quotehub-backend/pkg/errors"
)

type clientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	List(ctx context.Context, q ListClientsQuery) ([]models.Client, int64, error)
	Update(ctx context.Context, client *models.Client) error
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) (int64, error)
}

// Service exposes client operations to the controllers.
type Service interface {
	Create(ctx context.Context, req CreateClientRequest) (*ClientDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ClientDTO, error)
	List(ctx context.Context, q ListClientsQuery) ([]ClientDTO, int64, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*ClientDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo clientRepository
}

// NewService builds a client service with the provided repository.
func NewService(repo clientRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("client repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, req CreateClientRequest) (*ClientDTO, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "client name is required")
	}

	client := req.ToModel()
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create client")
	}
	return FromModel(client), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*ClientDTO, error) {
	client, err := s.findClient(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(client), nil
}

func (s *service) List(ctx context.Context, q ListClientsQuery) ([]ClientDTO, int64, error) {
	rows, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list clients")
	}

	out := make([]ClientDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, total, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*ClientDTO, error) {
	client, err := s.findClient(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "client name cannot be empty")
		}
		client.Name = name
	}
	if req.Email != nil {
		client.Email = req.Email
	}
	if req.Phone != nil {
		client.Phone = req.Phone
	}
	if req.Address != nil {
		client.Address = req.Address
	}
	if req.TaxID != nil {
		client.TaxID = req.TaxID
	}
	if req.Notes != nil {
		client.Notes = req.Notes
	}

	if err := s.repo.Update(ctx, client); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update client")
	}
	return FromModel(client), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.SoftDelete(ctx, id, time.Now().UTC())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete client")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
	}
	return nil
}

func (s *service) findClient(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load client")
	}
	return client, nil
}
