package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/St4n1l/TransportCompany/internal/transport/db"
	e "github.com/St4n1l/TransportCompany/internal/transport/errors"
	"github.com/St4n1l/TransportCompany/internal/transport/events"
	"github.com/St4n1l/TransportCompany/internal/transport/fileio"
	"github.com/St4n1l/TransportCompany/internal/transport/models"
	"github.com/St4n1l/TransportCompany/internal/transport/validation"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransportRepository defines the storage operations used by
// TransportService. Mutations run against a transaction-scoped
// repository obtained through WithTransaction, so the transport write
// and the revenue recompute always commit or roll back together.
type TransportRepository interface {
	GetTransport(ctx context.Context, id uint) (*models.Transport, error)
	ListTransports(ctx context.Context) ([]models.Transport, error)
	ListTransportsByCompany(ctx context.Context, companyID uint) ([]models.Transport, error)
	ListTransportsByDriver(ctx context.Context, driverID uint) ([]models.Transport, error)
	ListTransportsByDestination(ctx context.Context, destination string) ([]models.Transport, error)
	ListTransportsOrderedByDestination(ctx context.Context) ([]models.Transport, error)
	ListTransportsByCompanyAndRange(ctx context.Context, companyID uint, from, to time.Time) ([]models.Transport, error)
	UpdateTransport(ctx context.Context, transport *models.Transport) error
	WithTransaction(ctx context.Context, fn func(repo *db.Repository) error) error
}

// TransportService manages transport jobs and maintains the owning
// company's derived revenue across every mutation.
type TransportService struct {
	repo     TransportRepository
	producer EventProducer
	logger   *zap.Logger
}

func NewTransportService(repo TransportRepository, producer EventProducer, logger *zap.Logger) *TransportService {
	return &TransportService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("transport_service"),
	}
}

func (s *TransportService) publish(eventType events.EventType, id uint) {
	if s.producer != nil {
		s.producer.Produce(eventType, "transport", id)
	}
}

// CreateTransport resolves the required company and client references,
// leniently drops unresolvable optional vehicle/driver references,
// validates, persists and recomputes the company's revenue — all in
// one transaction.
func (s *TransportService) CreateTransport(ctx context.Context, transport *models.Transport, companyID, clientID uint, vehicleID, driverID *uint) (*models.Transport, error) {
	transport.ID = 0
	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		if err := s.attachReferences(ctx, tx, transport, companyID, clientID, vehicleID, driverID); err != nil {
			return err
		}
		if violations := validation.ValidateTransport(transport); len(violations) > 0 {
			return e.NewValidation(violations...)
		}
		if err := tx.CreateTransport(ctx, transport); err != nil {
			return fmt.Errorf("failed to create transport: %w", err)
		}
		return recomputeRevenue(ctx, tx, companyID)
	})
	if err != nil {
		return nil, err
	}
	s.publish(events.TransportCreated, transport.ID)
	return transport, nil
}

func (s *TransportService) GetTransportByID(ctx context.Context, id uint) (*models.Transport, error) {
	transport, err := s.repo.GetTransport(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, fmt.Errorf("transport with ID %d: %w", id, e.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get transport: %w", err)
	}
	return transport, nil
}

func (s *TransportService) GetAllTransports(ctx context.Context) ([]models.Transport, error) {
	return s.repo.ListTransports(ctx)
}

func (s *TransportService) GetTransportsByCompanyID(ctx context.Context, companyID uint) ([]models.Transport, error) {
	return s.repo.ListTransportsByCompany(ctx, companyID)
}

func (s *TransportService) GetTransportsByDriverID(ctx context.Context, driverID uint) ([]models.Transport, error) {
	return s.repo.ListTransportsByDriver(ctx, driverID)
}

// GetTransportsByDestination matches the end location by
// case-insensitive substring, newest start date first.
func (s *TransportService) GetTransportsByDestination(ctx context.Context, destination string) ([]models.Transport, error) {
	return s.repo.ListTransportsByDestination(ctx, destination)
}

func (s *TransportService) GetAllTransportsSortedByDestination(ctx context.Context) ([]models.Transport, error) {
	return s.repo.ListTransportsOrderedByDestination(ctx)
}

// GetTransportsByDateRange returns a company's transports whose start
// date falls within [from, to], both bounds inclusive.
func (s *TransportService) GetTransportsByDateRange(ctx context.Context, companyID uint, from, to time.Time) ([]models.Transport, error) {
	return s.repo.ListTransportsByCompanyAndRange(ctx, companyID, from, to)
}

// UpdateTransport requires an existing id, re-resolves all references,
// re-validates and persists. Revenue is recomputed for the owning
// company, and for the previous owner too when the transport moved.
func (s *TransportService) UpdateTransport(ctx context.Context, transport *models.Transport, companyID, clientID uint, vehicleID, driverID *uint) (*models.Transport, error) {
	if transport.ID == 0 {
		return nil, e.NewValidation("Transport ID is required for update")
	}
	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		existing, err := tx.GetTransport(ctx, transport.ID)
		if err != nil {
			if errors.Is(err, e.ErrNotFound) {
				return e.NewValidation(fmt.Sprintf("Transport with ID %d does not exist", transport.ID))
			}
			return fmt.Errorf("failed to get transport for update: %w", err)
		}
		if err := s.attachReferences(ctx, tx, transport, companyID, clientID, vehicleID, driverID); err != nil {
			return err
		}
		if violations := validation.ValidateTransport(transport); len(violations) > 0 {
			return e.NewValidation(violations...)
		}
		if err := tx.UpdateTransport(ctx, transport); err != nil {
			return fmt.Errorf("failed to update transport: %w", err)
		}
		if err := recomputeRevenue(ctx, tx, companyID); err != nil {
			return err
		}
		if existing.CompanyID != companyID {
			return recomputeRevenue(ctx, tx, existing.CompanyID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(events.TransportUpdated, transport.ID)
	return transport, nil
}

// DeleteTransport removes the transport and recomputes the owning
// company's revenue in the same transaction. Deleting an unknown id is
// a no-op.
func (s *TransportService) DeleteTransport(ctx context.Context, id uint) error {
	transport, err := s.repo.GetTransport(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get transport for deletion: %w", err)
	}
	companyID := transport.CompanyID
	err = s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		if err := tx.DeleteTransport(ctx, id); err != nil {
			return fmt.Errorf("failed to delete transport: %w", err)
		}
		return recomputeRevenue(ctx, tx, companyID)
	})
	if err != nil {
		return err
	}
	s.publish(events.TransportDeleted, id)
	return nil
}

// MarkAsPaid sets isPaid unconditionally and persists; applying it to
// an already paid transport changes nothing and does not error.
func (s *TransportService) MarkAsPaid(ctx context.Context, id uint) (*models.Transport, error) {
	transport, err := s.GetTransportByID(ctx, id)
	if err != nil {
		return nil, err
	}
	transport.IsPaid = true
	if err := s.repo.UpdateTransport(ctx, transport); err != nil {
		return nil, fmt.Errorf("failed to mark transport as paid: %w", err)
	}
	s.publish(events.TransportPaid, transport.ID)
	return transport, nil
}

// ImportRows feeds decoded file rows through the create path one by
// one and returns how many imported. Rows that fail to resolve or
// validate are logged and skipped; a bad row never aborts the batch.
func (s *TransportService) ImportRows(ctx context.Context, rows []fileio.Row) int {
	imported := 0
	for i, row := range rows {
		transport, companyID, clientID, err := transportFromRow(row)
		if err != nil {
			s.logger.Warn("skipping transport row",
				zap.Int("row", i+1),
				zap.Error(err),
			)
			continue
		}
		if _, err := s.CreateTransport(ctx, transport, companyID, clientID, row.VehicleID, row.DriverID); err != nil {
			s.logger.Warn("skipping transport row",
				zap.Int("row", i+1),
				zap.Error(err),
			)
			continue
		}
		imported++
	}
	return imported
}

// attachReferences resolves the required company and client (failing
// validation when either is missing) and the optional vehicle and
// driver (treating an unresolvable id as absent), then stores the
// resulting ids on the transport.
func (s *TransportService) attachReferences(ctx context.Context, tx *db.Repository, transport *models.Transport, companyID, clientID uint, vehicleID, driverID *uint) error {
	if _, err := tx.GetCompany(ctx, companyID); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return e.NewValidation(fmt.Sprintf("Company with ID %d does not exist", companyID))
		}
		return fmt.Errorf("failed to resolve company: %w", err)
	}
	if _, err := tx.GetClient(ctx, clientID); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return e.NewValidation(fmt.Sprintf("Client with ID %d does not exist", clientID))
		}
		return fmt.Errorf("failed to resolve client: %w", err)
	}
	transport.CompanyID = companyID
	transport.ClientID = clientID

	transport.VehicleID = nil
	if vehicleID != nil {
		vehicle, err := tx.GetVehicle(ctx, *vehicleID)
		if err != nil && !errors.Is(err, e.ErrNotFound) {
			return fmt.Errorf("failed to resolve vehicle: %w", err)
		}
		if vehicle != nil {
			transport.VehicleID = &vehicle.ID
		}
	}
	transport.DriverID = nil
	if driverID != nil {
		driver, err := tx.GetEmployee(ctx, *driverID)
		if err != nil && !errors.Is(err, e.ErrNotFound) {
			return fmt.Errorf("failed to resolve driver: %w", err)
		}
		if driver != nil {
			transport.DriverID = &driver.ID
		}
	}
	return nil
}

func transportFromRow(row fileio.Row) (*models.Transport, uint, uint, error) {
	if row.CompanyID == nil {
		return nil, 0, 0, errors.New("company id is missing")
	}
	if row.ClientID == nil {
		return nil, 0, 0, errors.New("client id is missing")
	}
	if row.Price == nil {
		return nil, 0, 0, errors.New("price is missing")
	}
	transport := &models.Transport{
		StartLocation:    row.StartLocation,
		EndLocation:      row.EndLocation,
		EndDate:          row.EndDate,
		TransportType:    row.TransportType,
		CargoDescription: row.CargoDescription,
		PassengerCount:   row.PassengerCount,
		Price:            *row.Price,
	}
	if row.StartDate != nil {
		transport.StartDate = *row.StartDate
	}
	if row.CargoWeight != nil {
		transport.CargoWeight = decimal.NullDecimal{Decimal: *row.CargoWeight, Valid: true}
	}
	if row.IsPaid != nil {
		transport.IsPaid = *row.IsPaid
	}
	return transport, *row.CompanyID, *row.ClientID, nil
}
