package controller

import (
	"context"
	"testing"
	"time"

	"github.com/St4n1l/TransportCompany/internal/transport/db"
	"github.com/St4n1l/TransportCompany/internal/transport/events"
	"github.com/St4n1l/TransportCompany/internal/transport/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// recordingProducer captures produced events instead of writing to Kafka.
type recordingProducer struct {
	produced []events.EventType
}

func (p *recordingProducer) Produce(eventType events.EventType, _ string, _ uint) {
	p.produced = append(p.produced, eventType)
}

type testEnv struct {
	repo       *db.Repository
	producer   *recordingProducer
	companies  *CompanyService
	clients    *ClientService
	vehicles   *VehicleService
	employees  *EmployeeService
	transports *TransportService
	reports    *ReportService
}

// newTestEnv wires every service against an in-memory SQLite database.
// The services under test exercise the real repository; only the event
// producer is a test double.
func newTestEnv(t *testing.T) *testEnv {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, gdb.AutoMigrate(
		&models.Company{},
		&models.Client{},
		&models.Vehicle{},
		&models.Employee{},
		&models.Transport{},
	), "failed to migrate test database")

	repo := db.NewRepositoryWithDB(gdb)
	logger := zaptest.NewLogger(t)
	producer := &recordingProducer{}
	return &testEnv{
		repo:       repo,
		producer:   producer,
		companies:  NewCompanyService(repo, producer, logger),
		clients:    NewClientService(repo, logger),
		vehicles:   NewVehicleService(repo, logger),
		employees:  NewEmployeeService(repo, logger),
		transports: NewTransportService(repo, producer, logger),
		reports:    NewReportService(repo, logger),
	}
}

func (env *testEnv) createCompany(t *testing.T, name string) *models.Company {
	company, err := env.companies.CreateCompany(context.Background(), &models.Company{Name: name})
	require.NoError(t, err)
	return company
}

func (env *testEnv) createClient(t *testing.T, companyID uint, name string) *models.Client {
	client, err := env.clients.CreateClient(context.Background(), &models.Client{Name: name}, companyID)
	require.NoError(t, err)
	return client
}

func (env *testEnv) createDriver(t *testing.T, companyID uint, first, last string) *models.Employee {
	employee, err := env.employees.CreateEmployee(context.Background(), &models.Employee{
		FirstName: first,
		LastName:  last,
		Position:  models.PositionDriver,
	}, companyID)
	require.NoError(t, err)
	return employee
}

func cargoTransport(price string) *models.Transport {
	return &models.Transport{
		StartLocation: "Sofia",
		EndLocation:   "Varna",
		StartDate:     time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		TransportType: models.TransportCargo,
		CargoWeight:   decimal.NullDecimal{Decimal: decimal.NewFromInt(10), Valid: true},
		Price:         decimal.RequireFromString(price),
	}
}

func (env *testEnv) createTransport(t *testing.T, companyID, clientID uint, price string) *models.Transport {
	transport, err := env.transports.CreateTransport(context.Background(), cargoTransport(price), companyID, clientID, nil, nil)
	require.NoError(t, err)
	return transport
}

func (env *testEnv) companyRevenue(t *testing.T, companyID uint) decimal.Decimal {
	company, err := env.companies.GetCompanyByID(context.Background(), companyID)
	require.NoError(t, err)
	return company.Revenue
}
