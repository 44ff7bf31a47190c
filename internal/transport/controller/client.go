package controller

import (
	"context"
	"errors"
	"fmt"

	e "github.com/St4n1l/TransportCompany/internal/transport/errors"
	"github.com/St4n1l/TransportCompany/internal/transport/models"
	"github.com/St4n1l/TransportCompany/internal/transport/validation"
	"go.uber.org/zap"
)

// ClientRepository defines the storage operations used by ClientService.
type ClientRepository interface {
	CreateClient(ctx context.Context, client *models.Client) error
	GetClient(ctx context.Context, id uint) (*models.Client, error)
	ListClients(ctx context.Context) ([]models.Client, error)
	ListClientsByCompany(ctx context.Context, companyID uint) ([]models.Client, error)
	UpdateClient(ctx context.Context, client *models.Client) error
	DeleteClient(ctx context.Context, id uint) error
	ClientExists(ctx context.Context, id uint) (bool, error)
	GetCompany(ctx context.Context, id uint) (*models.Company, error)
}

// ClientService manages clients of a transport company.
type ClientService struct {
	repo   ClientRepository
	logger *zap.Logger
}

func NewClientService(repo ClientRepository, logger *zap.Logger) *ClientService {
	return &ClientService{
		repo:   repo,
		logger: logger.Named("client_service"),
	}
}

// CreateClient resolves the owning company, validates and persists.
func (s *ClientService) CreateClient(ctx context.Context, client *models.Client, companyID uint) (*models.Client, error) {
	if err := s.resolveCompany(ctx, companyID); err != nil {
		return nil, err
	}
	client.ID = 0
	client.CompanyID = companyID
	if violations := validation.ValidateClient(client); len(violations) > 0 {
		return nil, e.NewValidation(violations...)
	}
	if err := s.repo.CreateClient(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

func (s *ClientService) GetClientByID(ctx context.Context, id uint) (*models.Client, error) {
	client, err := s.repo.GetClient(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, fmt.Errorf("client with ID %d: %w", id, e.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

func (s *ClientService) GetAllClients(ctx context.Context) ([]models.Client, error) {
	return s.repo.ListClients(ctx)
}

func (s *ClientService) GetClientsByCompanyID(ctx context.Context, companyID uint) ([]models.Client, error) {
	return s.repo.ListClientsByCompany(ctx, companyID)
}

// UpdateClient requires an existing id, re-resolves the owning company
// and re-validates before persisting.
func (s *ClientService) UpdateClient(ctx context.Context, client *models.Client, companyID uint) (*models.Client, error) {
	if client.ID == 0 {
		return nil, e.NewValidation("Client ID is required for update")
	}
	exists, err := s.repo.ClientExists(ctx, client.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check client existence: %w", err)
	}
	if !exists {
		return nil, e.NewValidation(fmt.Sprintf("Client with ID %d does not exist", client.ID))
	}
	if err := s.resolveCompany(ctx, companyID); err != nil {
		return nil, err
	}
	client.CompanyID = companyID
	if violations := validation.ValidateClient(client); len(violations) > 0 {
		return nil, e.NewValidation(violations...)
	}
	if err := s.repo.UpdateClient(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

func (s *ClientService) DeleteClient(ctx context.Context, id uint) error {
	if err := s.repo.DeleteClient(ctx, id); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return fmt.Errorf("client with ID %d: %w", id, e.ErrNotFound)
		}
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}

func (s *ClientService) resolveCompany(ctx context.Context, companyID uint) error {
	if _, err := s.repo.GetCompany(ctx, companyID); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return e.NewValidation(fmt.Sprintf("Company with ID %d does not exist", companyID))
		}
		return fmt.Errorf("failed to resolve company: %w", err)
	}
	return nil
}
