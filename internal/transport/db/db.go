// Package db implements the storage layer for all transport-company
// entities on top of GORM. Lookup misses are translated to the domain
// ErrNotFound here; services never see gorm errors directly.
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	e "github.com/St4n1l/TransportCompany/internal/transport/errors"
	"github.com/St4n1l/TransportCompany/internal/transport/models"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func NewRepository(cfg *Config) (*Repository, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Company{},
		&models.Client{},
		&models.Vehicle{},
		&models.Employee{},
		&models.Transport{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{db: db}, nil
}

// NewRepositoryWithDB wraps an already opened gorm connection. Callers
// own migration and lifecycle of the connection.
func NewRepositoryWithDB(gdb *gorm.DB) *Repository {
	return &Repository{db: gdb}
}

// WithTransaction runs fn against a transaction-scoped repository.
// The transaction commits when fn returns nil and rolls back otherwise.
func (r *Repository) WithTransaction(ctx context.Context, fn func(repo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

// --- Company ---

func (r *Repository) CreateCompany(ctx context.Context, company *models.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *Repository) GetCompany(ctx context.Context, id uint) (*models.Company, error) {
	var company models.Company
	result := r.db.WithContext(ctx).First(&company, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &company, nil
}

func (r *Repository) ListCompanies(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	return companies, r.db.WithContext(ctx).Find(&companies).Error
}

func (r *Repository) ListCompaniesByName(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	return companies, r.db.WithContext(ctx).Order("name").Find(&companies).Error
}

func (r *Repository) ListCompaniesByRevenue(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	return companies, r.db.WithContext(ctx).Order("revenue DESC").Find(&companies).Error
}

func (r *Repository) UpdateCompany(ctx context.Context, company *models.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

// UpdateCompanyRevenue writes the derived revenue value. This is the
// only path that touches the revenue column.
func (r *Repository) UpdateCompanyRevenue(ctx context.Context, id uint, revenue decimal.Decimal) error {
	result := r.db.WithContext(ctx).Model(&models.Company{}).
		Where("id = ?", id).
		Update("revenue", revenue)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteCompany(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Company{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func (r *Repository) CompanyExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Company{}).
		Where("id = ?", id).
		Count(&count)
	return count > 0, result.Error
}

// --- Client ---

func (r *Repository) CreateClient(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *Repository) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	result := r.db.WithContext(ctx).First(&client, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &client, nil
}

func (r *Repository) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	return clients, r.db.WithContext(ctx).Find(&clients).Error
}

func (r *Repository) ListClientsByCompany(ctx context.Context, companyID uint) ([]models.Client, error) {
	var clients []models.Client
	return clients, r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("name").
		Find(&clients).Error
}

func (r *Repository) UpdateClient(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

func (r *Repository) DeleteClient(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Client{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func (r *Repository) ClientExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Client{}).
		Where("id = ?", id).
		Count(&count)
	return count > 0, result.Error
}

func (r *Repository) DeleteClientsByCompany(ctx context.Context, companyID uint) error {
	return r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Delete(&models.Client{}).Error
}

// --- Vehicle ---

func (r *Repository) CreateVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *Repository) GetVehicle(ctx context.Context, id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	result := r.db.WithContext(ctx).First(&vehicle, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &vehicle, nil
}

func (r *Repository) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	return vehicles, r.db.WithContext(ctx).Find(&vehicles).Error
}

func (r *Repository) ListVehiclesByCompany(ctx context.Context, companyID uint) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	return vehicles, r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("license_plate").
		Find(&vehicles).Error
}

func (r *Repository) UpdateVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	return r.db.WithContext(ctx).Save(vehicle).Error
}

func (r *Repository) DeleteVehicle(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Vehicle{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func (r *Repository) VehicleExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Vehicle{}).
		Where("id = ?", id).
		Count(&count)
	return count > 0, result.Error
}

// LicensePlateTaken reports whether any other vehicle already carries
// the plate. Uniqueness is global, not per company.
func (r *Repository) LicensePlateTaken(ctx context.Context, plate string, excludeID uint) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Vehicle{}).
		Where("license_plate = ? AND id <> ?", plate, excludeID).
		Count(&count)
	return count > 0, result.Error
}

func (r *Repository) DeleteVehiclesByCompany(ctx context.Context, companyID uint) error {
	return r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Delete(&models.Vehicle{}).Error
}

// --- Employee ---

func (r *Repository) CreateEmployee(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

func (r *Repository) GetEmployee(ctx context.Context, id uint) (*models.Employee, error) {
	var employee models.Employee
	result := r.db.WithContext(ctx).First(&employee, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &employee, nil
}

func (r *Repository) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	return employees, r.db.WithContext(ctx).Find(&employees).Error
}

func (r *Repository) ListEmployeesByCompany(ctx context.Context, companyID uint) ([]models.Employee, error) {
	var employees []models.Employee
	return employees, r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("last_name, first_name").
		Find(&employees).Error
}

// ListEmployeesByQualification sorts by qualification with NULLs last,
// ties broken by last name then first name.
func (r *Repository) ListEmployeesByQualification(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	return employees, r.db.WithContext(ctx).
		Order("qualification IS NULL, qualification, last_name, first_name").
		Find(&employees).Error
}

// ListEmployeesBySalary sorts by salary descending with NULLs last.
func (r *Repository) ListEmployeesBySalary(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	return employees, r.db.WithContext(ctx).
		Order("salary IS NULL, salary DESC").
		Find(&employees).Error
}

// SearchEmployeesByQualification matches the qualification tag by
// case-insensitive substring.
func (r *Repository) SearchEmployeesByQualification(ctx context.Context, qualification string) ([]models.Employee, error) {
	var employees []models.Employee
	pattern := "%" + strings.ToLower(qualification) + "%"
	return employees, r.db.WithContext(ctx).
		Where("LOWER(qualification) LIKE ?", pattern).
		Find(&employees).Error
}

func (r *Repository) UpdateEmployee(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

func (r *Repository) DeleteEmployee(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Employee{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func (r *Repository) EmployeeExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Employee{}).
		Where("id = ?", id).
		Count(&count)
	return count > 0, result.Error
}

func (r *Repository) DeleteEmployeesByCompany(ctx context.Context, companyID uint) error {
	return r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Delete(&models.Employee{}).Error
}

// --- Transport ---

func (r *Repository) CreateTransport(ctx context.Context, transport *models.Transport) error {
	return r.db.WithContext(ctx).Create(transport).Error
}

func (r *Repository) GetTransport(ctx context.Context, id uint) (*models.Transport, error) {
	var transport models.Transport
	result := r.db.WithContext(ctx).First(&transport, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &transport, nil
}

func (r *Repository) ListTransports(ctx context.Context) ([]models.Transport, error) {
	var transports []models.Transport
	return transports, r.db.WithContext(ctx).Find(&transports).Error
}

func (r *Repository) ListTransportsByCompany(ctx context.Context, companyID uint) ([]models.Transport, error) {
	var transports []models.Transport
	return transports, r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("start_date DESC").
		Find(&transports).Error
}

func (r *Repository) ListTransportsByDriver(ctx context.Context, driverID uint) ([]models.Transport, error) {
	var transports []models.Transport
	return transports, r.db.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Find(&transports).Error
}

// ListTransportsByDestination matches the end location by
// case-insensitive substring, newest start date first.
func (r *Repository) ListTransportsByDestination(ctx context.Context, destination string) ([]models.Transport, error) {
	var transports []models.Transport
	pattern := "%" + strings.ToLower(destination) + "%"
	return transports, r.db.WithContext(ctx).
		Where("LOWER(end_location) LIKE ?", pattern).
		Order("start_date DESC").
		Find(&transports).Error
}

func (r *Repository) ListTransportsOrderedByDestination(ctx context.Context) ([]models.Transport, error) {
	var transports []models.Transport
	return transports, r.db.WithContext(ctx).
		Order("end_location, start_date DESC").
		Find(&transports).Error
}

// ListTransportsByCompanyAndRange returns the company's transports whose
// start date falls within [from, to], both bounds inclusive.
func (r *Repository) ListTransportsByCompanyAndRange(ctx context.Context, companyID uint, from, to time.Time) ([]models.Transport, error) {
	var transports []models.Transport
	return transports, r.db.WithContext(ctx).
		Where("company_id = ? AND start_date >= ? AND start_date <= ?", companyID, from, to).
		Order("start_date").
		Find(&transports).Error
}

func (r *Repository) CountTransports(ctx context.Context) (int64, error) {
	var count int64
	return count, r.db.WithContext(ctx).Model(&models.Transport{}).Count(&count).Error
}

func (r *Repository) UpdateTransport(ctx context.Context, transport *models.Transport) error {
	return r.db.WithContext(ctx).Save(transport).Error
}

func (r *Repository) DeleteTransport(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Transport{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func (r *Repository) TransportExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Transport{}).
		Where("id = ?", id).
		Count(&count)
	return count > 0, result.Error
}

func (r *Repository) DeleteTransportsByCompany(ctx context.Context, companyID uint) error {
	return r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Delete(&models.Transport{}).Error
}
