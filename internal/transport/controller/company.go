package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/St4n1l/TransportCompany/internal/transport/db"
	e "github.com/St4n1l/TransportCompany/internal/transport/errors"
	"github.com/St4n1l/TransportCompany/internal/transport/events"
	"github.com/St4n1l/TransportCompany/internal/transport/models"
	"github.com/St4n1l/TransportCompany/internal/transport/validation"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CompanyRepository defines the storage operations used by CompanyService.
type CompanyRepository interface {
	CreateCompany(ctx context.Context, company *models.Company) error
	GetCompany(ctx context.Context, id uint) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]models.Company, error)
	ListCompaniesByName(ctx context.Context) ([]models.Company, error)
	ListCompaniesByRevenue(ctx context.Context) ([]models.Company, error)
	UpdateCompany(ctx context.Context, company *models.Company) error
	WithTransaction(ctx context.Context, fn func(repo *db.Repository) error) error
}

// CompanyService manages the Company lifecycle. Deleting a company
// cascades over everything it owns.
type CompanyService struct {
	repo     CompanyRepository
	producer EventProducer
	logger   *zap.Logger
}

func NewCompanyService(repo CompanyRepository, producer EventProducer, logger *zap.Logger) *CompanyService {
	return &CompanyService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("company_service"),
	}
}

func (s *CompanyService) publish(eventType events.EventType, id uint) {
	if s.producer != nil {
		s.producer.Produce(eventType, "company", id)
	}
}

// CreateCompany validates and persists a new company. The id comes from
// storage and revenue always starts at zero regardless of input.
func (s *CompanyService) CreateCompany(ctx context.Context, company *models.Company) (*models.Company, error) {
	company.ID = 0
	company.Revenue = decimal.Zero
	if violations := validation.ValidateCompany(company); len(violations) > 0 {
		return nil, e.NewValidation(violations...)
	}
	if err := s.repo.CreateCompany(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	s.publish(events.CompanyCreated, company.ID)
	return company, nil
}

// GetCompanyByID retrieves a company, returning ErrNotFound if absent.
func (s *CompanyService) GetCompanyByID(ctx context.Context, id uint) (*models.Company, error) {
	company, err := s.repo.GetCompany(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, fmt.Errorf("company with ID %d: %w", id, e.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

func (s *CompanyService) GetAllCompanies(ctx context.Context) ([]models.Company, error) {
	return s.repo.ListCompanies(ctx)
}

func (s *CompanyService) GetAllCompaniesSortedByName(ctx context.Context) ([]models.Company, error) {
	return s.repo.ListCompaniesByName(ctx)
}

func (s *CompanyService) GetAllCompaniesSortedByRevenue(ctx context.Context) ([]models.Company, error) {
	return s.repo.ListCompaniesByRevenue(ctx)
}

// UpdateCompany re-validates and persists an existing company. The
// stored revenue is carried forward; callers cannot set it.
func (s *CompanyService) UpdateCompany(ctx context.Context, company *models.Company) (*models.Company, error) {
	if company.ID == 0 {
		return nil, e.NewValidation("Company ID is required for update")
	}
	existing, err := s.repo.GetCompany(ctx, company.ID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.NewValidation(fmt.Sprintf("Company with ID %d does not exist", company.ID))
		}
		return nil, fmt.Errorf("failed to get company for update: %w", err)
	}
	company.Revenue = existing.Revenue
	if violations := validation.ValidateCompany(company); len(violations) > 0 {
		return nil, e.NewValidation(violations...)
	}
	if err := s.repo.UpdateCompany(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	s.publish(events.CompanyUpdated, company.ID)
	return company, nil
}

// DeleteCompany removes the company and everything it owns: clients,
// vehicles, employees and transports, in one transaction.
func (s *CompanyService) DeleteCompany(ctx context.Context, id uint) error {
	if _, err := s.repo.GetCompany(ctx, id); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return fmt.Errorf("company with ID %d: %w", id, e.ErrNotFound)
		}
		return fmt.Errorf("failed to get company for deletion: %w", err)
	}
	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		if err := tx.DeleteTransportsByCompany(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteEmployeesByCompany(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteVehiclesByCompany(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteClientsByCompany(ctx, id); err != nil {
			return err
		}
		return tx.DeleteCompany(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	s.publish(events.CompanyDeleted, id)
	return nil
}
