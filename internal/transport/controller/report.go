package controller

import (
	"context"
	"time"

	"github.com/St4n1l/TransportCompany/internal/transport/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReportRepository defines the read-only storage operations used by
// ReportService.
type ReportRepository interface {
	CountTransports(ctx context.Context) (int64, error)
	ListTransports(ctx context.Context) ([]models.Transport, error)
	ListTransportsByCompany(ctx context.Context, companyID uint) ([]models.Transport, error)
	ListTransportsByDriver(ctx context.Context, driverID uint) ([]models.Transport, error)
	ListTransportsByCompanyAndRange(ctx context.Context, companyID uint, from, to time.Time) ([]models.Transport, error)
	ListEmployeesByCompany(ctx context.Context, companyID uint) ([]models.Employee, error)
}

// DriverTransportCount is one driver's transport count within a company.
type DriverTransportCount struct {
	Driver models.Employee
	Count  int
}

// DriverRevenue is one driver's summed transport revenue within a company.
type DriverRevenue struct {
	Driver  models.Employee
	Revenue decimal.Decimal
}

// ReportService aggregates transport data for reporting. All
// operations are read-only.
type ReportService struct {
	repo   ReportRepository
	logger *zap.Logger
}

func NewReportService(repo ReportRepository, logger *zap.Logger) *ReportService {
	return &ReportService{
		repo:   repo,
		logger: logger.Named("report_service"),
	}
}

func (s *ReportService) GetTotalTransportCount(ctx context.Context) (int64, error) {
	return s.repo.CountTransports(ctx)
}

func (s *ReportService) GetTotalTransportCountByCompany(ctx context.Context, companyID uint) (int, error) {
	transports, err := s.repo.ListTransportsByCompany(ctx, companyID)
	if err != nil {
		return 0, err
	}
	return len(transports), nil
}

// GetTotalRevenue sums the price of every transport; an empty set
// yields zero, not an error.
func (s *ReportService) GetTotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	transports, err := s.repo.ListTransports(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return sumPrices(transports), nil
}

func (s *ReportService) GetTotalRevenueByCompany(ctx context.Context, companyID uint) (decimal.Decimal, error) {
	transports, err := s.repo.ListTransportsByCompany(ctx, companyID)
	if err != nil {
		return decimal.Zero, err
	}
	return sumPrices(transports), nil
}

// GetDriverTransportCounts reports the transport count for each driver
// of the company. Drivers with no transports appear with count zero;
// employees who are not drivers are excluded entirely.
func (s *ReportService) GetDriverTransportCounts(ctx context.Context, companyID uint) ([]DriverTransportCount, error) {
	employees, err := s.repo.ListEmployeesByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	var counts []DriverTransportCount
	for _, employee := range employees {
		if !employee.IsDriver() {
			continue
		}
		transports, err := s.repo.ListTransportsByDriver(ctx, employee.ID)
		if err != nil {
			return nil, err
		}
		counts = append(counts, DriverTransportCount{Driver: employee, Count: len(transports)})
	}
	return counts, nil
}

// GetDriverRevenues reports the summed transport revenue for each
// driver of the company, zero included.
func (s *ReportService) GetDriverRevenues(ctx context.Context, companyID uint) ([]DriverRevenue, error) {
	employees, err := s.repo.ListEmployeesByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	var revenues []DriverRevenue
	for _, employee := range employees {
		if !employee.IsDriver() {
			continue
		}
		transports, err := s.repo.ListTransportsByDriver(ctx, employee.ID)
		if err != nil {
			return nil, err
		}
		revenues = append(revenues, DriverRevenue{Driver: employee, Revenue: sumPrices(transports)})
	}
	return revenues, nil
}

// GetCompanyRevenueForPeriod sums the prices of the company's
// transports whose start date falls within [from, to] inclusive.
func (s *ReportService) GetCompanyRevenueForPeriod(ctx context.Context, companyID uint, from, to time.Time) (decimal.Decimal, error) {
	transports, err := s.repo.ListTransportsByCompanyAndRange(ctx, companyID, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return sumPrices(transports), nil
}
