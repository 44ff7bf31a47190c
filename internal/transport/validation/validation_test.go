package validation

import (
	"testing"
	"time"

	"github.com/St4n1l/TransportCompany/internal/transport/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validTransport() *models.Transport {
	weight := decimal.NewFromFloat(12.5)
	return &models.Transport{
		CompanyID:     1,
		ClientID:      1,
		StartLocation: "Sofia",
		EndLocation:   "Varna",
		StartDate:     time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		TransportType: models.TransportCargo,
		CargoWeight:   decimal.NullDecimal{Decimal: weight, Valid: true},
		Price:         decimal.NewFromInt(500),
	}
}

func TestValidateCompany(t *testing.T) {
	tests := []struct {
		name       string
		company    models.Company
		violations []string
	}{
		{
			name:    "valid",
			company: models.Company{Name: "Trans Ltd", Email: "office@trans.bg"},
		},
		{
			name:    "empty email allowed",
			company: models.Company{Name: "Trans Ltd"},
		},
		{
			name:       "blank name",
			company:    models.Company{Name: "   "},
			violations: []string{"Company name is required"},
		},
		{
			name:       "bad email",
			company:    models.Company{Name: "Trans Ltd", Email: "not-an-email"},
			violations: []string{"Invalid email format"},
		},
		{
			name:       "all violations reported",
			company:    models.Company{Email: "broken"},
			violations: []string{"Company name is required", "Invalid email format"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.violations, ValidateCompany(&tt.company))
		})
	}
}

func TestValidateClient(t *testing.T) {
	client := &models.Client{CompanyID: 1, Name: "ACME"}
	assert.Empty(t, ValidateClient(client))

	client = &models.Client{Email: "nope"}
	assert.Equal(t,
		[]string{"Company ID is required", "Client name is required", "Invalid email format"},
		ValidateClient(client))
}

func TestValidateVehicle(t *testing.T) {
	vehicle := &models.Vehicle{CompanyID: 1, LicensePlate: "CA1234XX", VehicleType: models.VehicleTruck}
	assert.Empty(t, ValidateVehicle(vehicle))

	vehicle = &models.Vehicle{
		CompanyID: 1,
		Capacity:  decimal.NullDecimal{Decimal: decimal.NewFromInt(-1), Valid: true},
	}
	assert.Equal(t,
		[]string{"License plate is required", "Vehicle type is required", "Capacity must not be negative"},
		ValidateVehicle(vehicle))
}

func TestValidateEmployee(t *testing.T) {
	employee := &models.Employee{
		CompanyID: 1,
		FirstName: "Ivan",
		LastName:  "Petrov",
		Position:  models.PositionDriver,
	}
	assert.Empty(t, ValidateEmployee(employee))

	employee = &models.Employee{
		CompanyID: 1,
		Salary:    decimal.NullDecimal{Decimal: decimal.NewFromInt(-100), Valid: true},
	}
	assert.Equal(t,
		[]string{"First name is required", "Last name is required", "Position is required", "Salary must not be negative"},
		ValidateEmployee(employee))
}

func TestValidateTransport(t *testing.T) {
	t.Run("valid cargo", func(t *testing.T) {
		assert.Empty(t, ValidateTransport(validTransport()))
	})

	t.Run("cargo without weight", func(t *testing.T) {
		transport := validTransport()
		transport.CargoWeight = decimal.NullDecimal{}
		assert.Equal(t,
			[]string{"Cargo weight is required for cargo transports"},
			ValidateTransport(transport))
	})

	t.Run("passenger without count", func(t *testing.T) {
		transport := validTransport()
		transport.TransportType = models.TransportPassenger
		transport.CargoWeight = decimal.NullDecimal{}
		assert.Equal(t,
			[]string{"Passenger count is required for passenger transports"},
			ValidateTransport(transport))
	})

	t.Run("passenger with count", func(t *testing.T) {
		transport := validTransport()
		transport.TransportType = models.TransportPassenger
		count := 40
		transport.PassengerCount = &count
		assert.Empty(t, ValidateTransport(transport))
	})

	t.Run("cargo with both conditional fields", func(t *testing.T) {
		transport := validTransport()
		count := 3
		transport.PassengerCount = &count
		assert.Empty(t, ValidateTransport(transport))
	})

	t.Run("negative price", func(t *testing.T) {
		transport := validTransport()
		transport.Price = decimal.NewFromInt(-5)
		assert.Equal(t, []string{"Price must not be negative"}, ValidateTransport(transport))
	})

	t.Run("missing required fields aggregate", func(t *testing.T) {
		transport := &models.Transport{}
		assert.Equal(t, []string{
			"Company ID is required",
			"Client ID is required",
			"Start location is required",
			"End location is required",
			"Start date is required",
			"Transport type is required",
		}, ValidateTransport(transport))
	})
}
