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

// VehicleRepository defines the storage operations used by VehicleService.
type VehicleRepository interface {
	CreateVehicle(ctx context.Context, vehicle *models.Vehicle) error
	GetVehicle(ctx context.Context, id uint) (*models.Vehicle, error)
	ListVehicles(ctx context.Context) ([]models.Vehicle, error)
	ListVehiclesByCompany(ctx context.Context, companyID uint) ([]models.Vehicle, error)
	UpdateVehicle(ctx context.Context, vehicle *models.Vehicle) error
	DeleteVehicle(ctx context.Context, id uint) error
	VehicleExists(ctx context.Context, id uint) (bool, error)
	LicensePlateTaken(ctx context.Context, plate string, excludeID uint) (bool, error)
	GetCompany(ctx context.Context, id uint) (*models.Company, error)
}

// VehicleService manages the vehicle fleet. License plates are unique
// across all companies.
type VehicleService struct {
	repo   VehicleRepository
	logger *zap.Logger
}

func NewVehicleService(repo VehicleRepository, logger *zap.Logger) *VehicleService {
	return &VehicleService{
		repo:   repo,
		logger: logger.Named("vehicle_service"),
	}
}

func (s *VehicleService) CreateVehicle(ctx context.Context, vehicle *models.Vehicle, companyID uint) (*models.Vehicle, error) {
	if err := s.resolveCompany(ctx, companyID); err != nil {
		return nil, err
	}
	vehicle.ID = 0
	vehicle.CompanyID = companyID
	if violations := validation.ValidateVehicle(vehicle); len(violations) > 0 {
		return nil, e.NewValidation(violations...)
	}
	taken, err := s.repo.LicensePlateTaken(ctx, vehicle.LicensePlate, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check license plate: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("%w: %s", e.ErrDuplicatePlate, vehicle.LicensePlate)
	}
	if err := s.repo.CreateVehicle(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}
	return vehicle, nil
}

func (s *VehicleService) GetVehicleByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	vehicle, err := s.repo.GetVehicle(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, fmt.Errorf("vehicle with ID %d: %w", id, e.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return vehicle, nil
}

func (s *VehicleService) GetAllVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return s.repo.ListVehicles(ctx)
}

func (s *VehicleService) GetVehiclesByCompanyID(ctx context.Context, companyID uint) ([]models.Vehicle, error) {
	return s.repo.ListVehiclesByCompany(ctx, companyID)
}

func (s *VehicleService) UpdateVehicle(ctx context.Context, vehicle *models.Vehicle, companyID uint) (*models.Vehicle, error) {
	if vehicle.ID == 0 {
		return nil, e.NewValidation("Vehicle ID is required for update")
	}
	exists, err := s.repo.VehicleExists(ctx, vehicle.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check vehicle existence: %w", err)
	}
	if !exists {
		return nil, e.NewValidation(fmt.Sprintf("Vehicle with ID %d does not exist", vehicle.ID))
	}
	if err := s.resolveCompany(ctx, companyID); err != nil {
		return nil, err
	}
	vehicle.CompanyID = companyID
	if violations := validation.ValidateVehicle(vehicle); len(violations) > 0 {
		return nil, e.NewValidation(violations...)
	}
	taken, err := s.repo.LicensePlateTaken(ctx, vehicle.LicensePlate, vehicle.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check license plate: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("%w: %s", e.ErrDuplicatePlate, vehicle.LicensePlate)
	}
	if err := s.repo.UpdateVehicle(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}
	return vehicle, nil
}

func (s *VehicleService) DeleteVehicle(ctx context.Context, id uint) error {
	if err := s.repo.DeleteVehicle(ctx, id); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return fmt.Errorf("vehicle with ID %d: %w", id, e.ErrNotFound)
		}
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	return nil
}

func (s *VehicleService) resolveCompany(ctx context.Context, companyID uint) error {
	if _, err := s.repo.GetCompany(ctx, companyID); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return e.NewValidation(fmt.Sprintf("Company with ID %d does not exist", companyID))
		}
		return fmt.Errorf("failed to resolve company: %w", err)
	}
	return nil
}
