package controller

import (
	"context"
	"errors"
	"testing"

	e "github.com/St4n1l/TransportCompany/internal/transport/errors"
	"github.com/St4n1l/TransportCompany/internal/transport/events"
	"github.com/St4n1l/TransportCompany/internal/transport/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCompanyAggregatesViolations(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.companies.CreateCompany(context.Background(), &models.Company{
		Name:  "  ",
		Email: "broken",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrValidation)

	var vErr *e.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{"Company name is required", "Invalid email format"}, vErr.Violations)
	assert.Equal(t, "Company name is required; Invalid email format", vErr.Error())
}

func TestCreateCompanyIgnoresCallerRevenue(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	company, err := env.companies.CreateCompany(ctx, &models.Company{
		Name:    "Trans Ltd",
		Revenue: decimal.NewFromInt(99999),
	})
	require.NoError(t, err)

	stored, err := env.companies.GetCompanyByID(ctx, company.ID)
	require.NoError(t, err)
	assert.True(t, stored.Revenue.Equal(decimal.Zero), "revenue is derived, never caller input")
}

func TestGetCompanyByIDNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.companies.GetCompanyByID(context.Background(), 12345)
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestUpdateCompanyRequiresExistingID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.companies.UpdateCompany(ctx, &models.Company{Name: "No ID"})
	assert.ErrorIs(t, err, e.ErrValidation)

	_, err = env.companies.UpdateCompany(ctx, &models.Company{ID: 777, Name: "Ghost"})
	assert.ErrorIs(t, err, e.ErrValidation)
}

func TestUpdateCompanyCarriesRevenueForward(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	company := env.createCompany(t, "Trans Ltd")
	client := env.createClient(t, company.ID, "ACME")
	env.createTransport(t, company.ID, client.ID, "450.50")

	update := &models.Company{ID: company.ID, Name: "Trans EOOD", Revenue: decimal.Zero}
	_, err := env.companies.UpdateCompany(ctx, update)
	require.NoError(t, err)

	stored, err := env.companies.GetCompanyByID(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, "Trans EOOD", stored.Name)
	assert.True(t, stored.Revenue.Equal(decimal.RequireFromString("450.50")),
		"update must not clobber the derived revenue")
}

func TestDeleteCompanyCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	company := env.createCompany(t, "Trans Ltd")
	client := env.createClient(t, company.ID, "ACME")
	driver := env.createDriver(t, company.ID, "Ivan", "Petrov")
	vehicle, err := env.vehicles.CreateVehicle(ctx, &models.Vehicle{
		LicensePlate: "CA1234XX",
		VehicleType:  models.VehicleTruck,
	}, company.ID)
	require.NoError(t, err)
	env.createTransport(t, company.ID, client.ID, "100")

	require.NoError(t, env.companies.DeleteCompany(ctx, company.ID))

	clients, err := env.clients.GetClientsByCompanyID(ctx, company.ID)
	require.NoError(t, err)
	assert.Empty(t, clients)
	vehicles, err := env.vehicles.GetVehiclesByCompanyID(ctx, company.ID)
	require.NoError(t, err)
	assert.Empty(t, vehicles)
	employees, err := env.employees.GetEmployeesByCompanyID(ctx, company.ID)
	require.NoError(t, err)
	assert.Empty(t, employees)
	transports, err := env.transports.GetTransportsByCompanyID(ctx, company.ID)
	require.NoError(t, err)
	assert.Empty(t, transports)

	_, err = env.vehicles.GetVehicleByID(ctx, vehicle.ID)
	assert.ErrorIs(t, err, e.ErrNotFound)
	_, err = env.employees.GetEmployeeByID(ctx, driver.ID)
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestDeleteCompanyNotFound(t *testing.T) {
	env := newTestEnv(t)

	err := env.companies.DeleteCompany(context.Background(), 999)
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestCompanyLifecycleEvents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	company := env.createCompany(t, "Trans Ltd")
	_, err := env.companies.UpdateCompany(ctx, &models.Company{ID: company.ID, Name: "Renamed"})
	require.NoError(t, err)
	require.NoError(t, env.companies.DeleteCompany(ctx, company.ID))

	assert.Equal(t, []events.EventType{
		events.CompanyCreated,
		events.CompanyUpdated,
		events.CompanyDeleted,
	}, env.producer.produced)
}

func TestCompanySameIdentity(t *testing.T) {
	persisted := &models.Company{ID: 5, Name: "A"}
	sameRow := &models.Company{ID: 5, Name: "B"}
	unsaved := &models.Company{Name: "A"}

	assert.True(t, persisted.Same(sameRow), "equal non-zero ids are the same entity")
	assert.False(t, persisted.Same(unsaved))
	assert.False(t, unsaved.Same(&models.Company{Name: "A"}), "unsaved instances equal only themselves")
	assert.True(t, unsaved.Same(unsaved))
}
