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

// EmployeeRepository defines the storage operations used by EmployeeService.
type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, employee *models.Employee) error
	GetEmployee(ctx context.Context, id uint) (*models.Employee, error)
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	ListEmployeesByCompany(ctx context.Context, companyID uint) ([]models.Employee, error)
	ListEmployeesByQualification(ctx context.Context) ([]models.Employee, error)
	ListEmployeesBySalary(ctx context.Context) ([]models.Employee, error)
	SearchEmployeesByQualification(ctx context.Context, qualification string) ([]models.Employee, error)
	UpdateEmployee(ctx context.Context, employee *models.Employee) error
	DeleteEmployee(ctx context.Context, id uint) error
	EmployeeExists(ctx context.Context, id uint) (bool, error)
	GetCompany(ctx context.Context, id uint) (*models.Company, error)
}

// EmployeeService manages company staff, including the drivers that
// transports reference.
type EmployeeService struct {
	repo   EmployeeRepository
	logger *zap.Logger
}

func NewEmployeeService(repo EmployeeRepository, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{
		repo:   repo,
		logger: logger.Named("employee_service"),
	}
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, employee *models.Employee, companyID uint) (*models.Employee, error) {
	if err := s.resolveCompany(ctx, companyID); err != nil {
		return nil, err
	}
	employee.ID = 0
	employee.CompanyID = companyID
	if violations := validation.ValidateEmployee(employee); len(violations) > 0 {
		return nil, e.NewValidation(violations...)
	}
	if err := s.repo.CreateEmployee(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return employee, nil
}

func (s *EmployeeService) GetEmployeeByID(ctx context.Context, id uint) (*models.Employee, error) {
	employee, err := s.repo.GetEmployee(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, fmt.Errorf("employee with ID %d: %w", id, e.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return employee, nil
}

func (s *EmployeeService) GetAllEmployees(ctx context.Context) ([]models.Employee, error) {
	return s.repo.ListEmployees(ctx)
}

func (s *EmployeeService) GetEmployeesByCompanyID(ctx context.Context, companyID uint) ([]models.Employee, error) {
	return s.repo.ListEmployeesByCompany(ctx, companyID)
}

// GetAllEmployeesSortedByQualification orders by qualification with
// missing qualifications last, then by surname and first name.
func (s *EmployeeService) GetAllEmployeesSortedByQualification(ctx context.Context) ([]models.Employee, error) {
	return s.repo.ListEmployeesByQualification(ctx)
}

// GetAllEmployeesSortedBySalary orders by salary descending with
// missing salaries last.
func (s *EmployeeService) GetAllEmployeesSortedBySalary(ctx context.Context) ([]models.Employee, error) {
	return s.repo.ListEmployeesBySalary(ctx)
}

// GetEmployeesByQualification matches the qualification tag by
// case-insensitive substring.
func (s *EmployeeService) GetEmployeesByQualification(ctx context.Context, qualification string) ([]models.Employee, error) {
	return s.repo.SearchEmployeesByQualification(ctx, qualification)
}

func (s *EmployeeService) UpdateEmployee(ctx context.Context, employee *models.Employee, companyID uint) (*models.Employee, error) {
	if employee.ID == 0 {
		return nil, e.NewValidation("Employee ID is required for update")
	}
	exists, err := s.repo.EmployeeExists(ctx, employee.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check employee existence: %w", err)
	}
	if !exists {
		return nil, e.NewValidation(fmt.Sprintf("Employee with ID %d does not exist", employee.ID))
	}
	if err := s.resolveCompany(ctx, companyID); err != nil {
		return nil, err
	}
	employee.CompanyID = companyID
	if violations := validation.ValidateEmployee(employee); len(violations) > 0 {
		return nil, e.NewValidation(violations...)
	}
	if err := s.repo.UpdateEmployee(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return employee, nil
}

func (s *EmployeeService) DeleteEmployee(ctx context.Context, id uint) error {
	if err := s.repo.DeleteEmployee(ctx, id); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return fmt.Errorf("employee with ID %d: %w", id, e.ErrNotFound)
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return nil
}

func (s *EmployeeService) resolveCompany(ctx context.Context, companyID uint) error {
	if _, err := s.repo.GetCompany(ctx, companyID); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return e.NewValidation(fmt.Sprintf("Company with ID %d does not exist", companyID))
		}
		return fmt.Errorf("failed to resolve company: %w", err)
	}
	return nil
}
