// Package validation holds the pure field-level and cross-field business
// rules for each entity. Every function returns the complete list of
// violation messages instead of failing on the first one, so callers can
// report all problems at once.
package validation

import (
	"regexp"
	"strings"

	"github.com/St4n1l/TransportCompany/internal/transport/models"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validEmail(email string) bool {
	return email == "" || emailPattern.MatchString(email)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidateCompany checks a company's field constraints.
func ValidateCompany(c *models.Company) []string {
	var violations []string
	if blank(c.Name) {
		violations = append(violations, "Company name is required")
	}
	if !validEmail(c.Email) {
		violations = append(violations, "Invalid email format")
	}
	return violations
}

// ValidateClient checks a client's field constraints.
func ValidateClient(c *models.Client) []string {
	var violations []string
	if c.CompanyID == 0 {
		violations = append(violations, "Company ID is required")
	}
	if blank(c.Name) {
		violations = append(violations, "Client name is required")
	}
	if !validEmail(c.Email) {
		violations = append(violations, "Invalid email format")
	}
	return violations
}

// ValidateVehicle checks a vehicle's field constraints.
func ValidateVehicle(v *models.Vehicle) []string {
	var violations []string
	if v.CompanyID == 0 {
		violations = append(violations, "Company ID is required")
	}
	if blank(v.LicensePlate) {
		violations = append(violations, "License plate is required")
	}
	if blank(v.VehicleType) {
		violations = append(violations, "Vehicle type is required")
	}
	if v.Capacity.Valid && v.Capacity.Decimal.IsNegative() {
		violations = append(violations, "Capacity must not be negative")
	}
	return violations
}

// ValidateEmployee checks an employee's field constraints.
func ValidateEmployee(e *models.Employee) []string {
	var violations []string
	if e.CompanyID == 0 {
		violations = append(violations, "Company ID is required")
	}
	if blank(e.FirstName) {
		violations = append(violations, "First name is required")
	}
	if blank(e.LastName) {
		violations = append(violations, "Last name is required")
	}
	if !validEmail(e.Email) {
		violations = append(violations, "Invalid email format")
	}
	if blank(e.Position) {
		violations = append(violations, "Position is required")
	}
	if e.Salary.Valid && e.Salary.Decimal.IsNegative() {
		violations = append(violations, "Salary must not be negative")
	}
	return violations
}

// ValidateTransport checks a transport's field constraints plus the
// type-conditional rules: cargo transports need a cargo weight,
// passenger transports a passenger count. The conditional rules apply
// in addition to the field-level required checks, not instead of them.
func ValidateTransport(t *models.Transport) []string {
	var violations []string
	if t.CompanyID == 0 {
		violations = append(violations, "Company ID is required")
	}
	if t.ClientID == 0 {
		violations = append(violations, "Client ID is required")
	}
	if blank(t.StartLocation) {
		violations = append(violations, "Start location is required")
	}
	if blank(t.EndLocation) {
		violations = append(violations, "End location is required")
	}
	if t.StartDate.IsZero() {
		violations = append(violations, "Start date is required")
	}
	if blank(t.TransportType) {
		violations = append(violations, "Transport type is required")
	}
	if t.Price.IsNegative() {
		violations = append(violations, "Price must not be negative")
	}
	if t.TransportType == models.TransportCargo && !t.CargoWeight.Valid {
		violations = append(violations, "Cargo weight is required for cargo transports")
	}
	if t.TransportType == models.TransportPassenger && t.PassengerCount == nil {
		violations = append(violations, "Passenger count is required for passenger transports")
	}
	return violations
}
