package controller

import (
	"context"
	"testing"
	"time"

	e "github.com/St4n1l/TransportCompany/internal/transport/errors"
	"github.com/St4n1l/TransportCompany/internal/transport/events"
	"github.com/St4n1l/TransportCompany/internal/transport/fileio"
	"github.com/St4n1l/TransportCompany/internal/transport/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func TestCreateTransportMaintainsRevenue(t *testing.T) {
	env := newTestEnv(t)

	company := env.createCompany(t, "Trans Ltd")
	client := env.createClient(t, company.ID, "ACME")

	env.createTransport(t, company.ID, client.ID, "0.10")
	env.createTransport(t, company.ID, client.ID, "0.20")
	env.createTransport(t, company.ID, client.ID, "100.05")

	revenue := env.companyRevenue(t, company.ID)
	assert.True(t, revenue.Equal(decimal.RequireFromString("100.35")),
		"expected 100.35, got %s", revenue)
}

func TestCreateTransportMissingCompanyPersistsNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	company := env.createCompany(t, "Trans Ltd")
	client := env.createClient(t, company.ID, "ACME")

	_, err := env.transports.CreateTransport(ctx, cargoTransport("100"), 999, client.ID, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrValidation)
	assert.Contains(t, err.Error(), "Company with ID 999 does not exist")

	transports, err := env.transports.GetAllTransports(ctx)
	require.NoError(t, err)
	assert.Empty(t, transports)
	assert.Equal(t, []events.EventType{events.CompanyCreated}, env.producer.produced,
		"a failed create publishes nothing")
}

func TestCreateTransportMissingClient(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	company := env.createCompany(t, "Trans Ltd")

	_, err := env.transports.CreateTransport(ctx, cargoTransport("100"), company.ID, 404, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrValidation)
	assert.Contains(t, err.Error(), "Client with ID 404 does not exist")
}

func TestCreateTransportLenientOptionalReferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	company := env.createCompany(t, "Trans Ltd")
	client := env.createClient(t, company.ID, "ACME")

	transport, err := env.transports.CreateTransport(ctx, cargoTransport("50"), company.ID, client.ID, uintPtr(888), uintPtr(777))
	require.NoError(t, err, "unresolvable optional references must not fail the create")
	assert.Nil(t, transport.VehicleID)
	assert.Nil(t, transport.DriverID)

	driver := env.createDriver(t, company.ID, "Ivan", "Petrov")
	withDriver, err := env.transports.CreateTransport(ctx, cargoTransport("50"), company.ID, client.ID, nil, &driver.ID)
	require.NoError(t, err)
	require.NotNil(t, withDriver.DriverID)
	assert.Equal(t, driver.ID, *withDriver.DriverID)
}

func TestCreateTransportCrossFieldValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	company := env.createCompany(t, "Trans Ltd")
	client := env.createClient(t, company.ID, "ACME")

	cargo := cargoTransport("10")
	cargo.CargoWeight = decimal.NullDecimal{}
	_, err := env.transports.CreateTransport(ctx, cargo, company.ID, client.ID, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrValidation)
	assert.Contains(t, err.Error(), "Cargo weight is required for cargo transports")

	passenger := cargoTransport("10")
	passenger.TransportType = models.TransportPassenger
	passenger.CargoWeight = decimal.NullDecimal{}
	passenger.PassengerCount = nil
	_, err = env.transports.CreateTransport(ctx, passenger, company.ID, client.ID, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Passenger count is required for passenger transports")
}

func TestUpdateTransportRecomputesRevenue(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	company := env.createCompany(t, "Trans Ltd")
	client := env.createClient(t, company.ID, "ACME")
	transport := env.createTransport(t, company.ID, client.ID, "100")

	updated := cargoTransport("250.25")
	updated.ID = transport.ID
	_, err := env.transports.UpdateTransport(ctx, updated, company.ID, client.ID, nil, nil)
	require.NoError(t, err)

	revenue := env.companyRevenue(t, company.ID)
	assert.True(t, revenue.Equal(decimal.RequireFromString("250.25")))
}

func TestUpdateTransportMovingCompaniesFixesBothRevenues(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.createCompany(t, "First Ltd")
	second := env.createCompany(t, "Second Ltd")
	client := env.createClient(t, first.ID, "ACME")
	transport := env.createTransport(t, first.ID, client.ID, "300")

	moved := cargoTransport("300")
	moved.ID = transport.ID
	_, err := env.transports.UpdateTransport(ctx, moved, second.ID, client.ID, nil, nil)
	require.NoError(t, err)

	assert.True(t, env.companyRevenue(t, first.ID).Equal(decimal.Zero),
		"the previous owner must not keep the moved transport's price")
	assert.True(t, env.companyRevenue(t, second.ID).Equal(decimal.NewFromInt(300)))
}

func TestUpdateTransportRequiresExistingID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	company := env.createCompany(t, "Trans Ltd")
	client := env.createClient(t, company.ID, "ACME")

	_, err := env.transports.UpdateTransport(ctx, cargoTransport("10"), company.ID, client.ID, nil, nil)
	assert.ErrorIs(t, err, e.ErrValidation)

	ghost := cargoTransport("10")
	ghost.ID = 555
	_, err = env.transports.UpdateTransport(ctx, ghost, company.ID, client.ID, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrValidation)
	assert.Contains(t, err.Error(), "Transport with ID 555 does not exist")
}

func TestDeleteTransportRecomputesRevenue(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	company := env.createCompany(t, "Trans Ltd")
	client := env.createClient(t, company.ID, "ACME")
	keep := env.createTransport(t, company.ID, client.ID, "100.50")
	drop := env.createTransport(t, company.ID, client.ID, "49.50")

	require.NoError(t, env.transports.DeleteTransport(ctx, drop.ID))

	revenue := env.companyRevenue(t, company.ID)
	assert.True(t, revenue.Equal(decimal.RequireFromString("100.50")))

	_, err := env.transports.GetTransportByID(ctx, keep.ID)
	assert.NoError(t, err)
	_, err = env.transports.GetTransportByID(ctx, drop.ID)
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestDeleteUnknownTransportIsNoOp(t *testing.T) {
	env := newTestEnv(t)

	assert.NoError(t, env.transports.DeleteTransport(context.Background(), 31337))
	assert.Empty(t, env.producer.produced, "a no-op delete publishes nothing")
}

func TestMarkAsPaidIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	company := env.createCompany(t, "Trans Ltd")
	client := env.createClient(t, company.ID, "ACME")
	transport := env.createTransport(t, company.ID, client.ID, "75")
	require.False(t, transport.IsPaid)

	paid, err := env.transports.MarkAsPaid(ctx, transport.ID)
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)

	again, err := env.transports.MarkAsPaid(ctx, transport.ID)
	require.NoError(t, err)
	assert.True(t, again.IsPaid)

	_, err = env.transports.MarkAsPaid(ctx, 9999)
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestTransportLifecycleEvents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	company := env.createCompany(t, "Trans Ltd")
	client := env.createClient(t, company.ID, "ACME")
	transport := env.createTransport(t, company.ID, client.ID, "10")

	_, err := env.transports.MarkAsPaid(ctx, transport.ID)
	require.NoError(t, err)
	require.NoError(t, env.transports.DeleteTransport(ctx, transport.ID))

	assert.Equal(t, []events.EventType{
		events.CompanyCreated,
		events.TransportCreated,
		events.TransportPaid,
		events.TransportDeleted,
	}, env.producer.produced)
}

func TestImportRowsSkipsBadRows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	company := env.createCompany(t, "Trans Ltd")
	client := env.createClient(t, company.ID, "ACME")

	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	price := decimal.RequireFromString("120.40")
	weight := decimal.NewFromInt(8)
	count := 30

	rows := []fileio.Row{
		{
			CompanyID:     &company.ID,
			ClientID:      &client.ID,
			StartLocation: "Sofia",
			EndLocation:   "Varna",
			StartDate:     &start,
			TransportType: models.TransportCargo,
			CargoWeight:   &weight,
			Price:         &price,
		},
		// no company id
		{
			ClientID:      &client.ID,
			StartLocation: "Sofia",
			EndLocation:   "Varna",
			StartDate:     &start,
			TransportType: models.TransportCargo,
			CargoWeight:   &weight,
			Price:         &price,
		},
		// company does not exist
		{
			CompanyID:     uintPtr(9999),
			ClientID:      &client.ID,
			StartLocation: "Sofia",
			EndLocation:   "Varna",
			StartDate:     &start,
			TransportType: models.TransportCargo,
			CargoWeight:   &weight,
			Price:         &price,
		},
		{
			CompanyID:      &company.ID,
			ClientID:       &client.ID,
			StartLocation:  "Plovdiv",
			EndLocation:    "Burgas",
			StartDate:      &start,
			TransportType:  models.TransportPassenger,
			PassengerCount: &count,
			Price:          &price,
		},
	}

	imported := env.transports.ImportRows(ctx, rows)
	assert.Equal(t, 2, imported)

	transports, err := env.transports.GetAllTransports(ctx)
	require.NoError(t, err)
	assert.Len(t, transports, 2)
	assert.True(t, env.companyRevenue(t, company.ID).Equal(decimal.RequireFromString("240.80")))
}

func TestGetTransportsByDateRangeInclusive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	company := env.createCompany(t, "Trans Ltd")
	client := env.createClient(t, company.ID, "ACME")

	dates := []time.Time{
		time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		transport := cargoTransport("10")
		transport.StartDate = d
		_, err := env.transports.CreateTransport(ctx, transport, company.ID, client.ID, nil, nil)
		require.NoError(t, err)
	}

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)
	inRange, err := env.transports.GetTransportsByDateRange(ctx, company.ID, from, to)
	require.NoError(t, err)
	assert.Len(t, inRange, 3, "both bounds are inclusive")
}
