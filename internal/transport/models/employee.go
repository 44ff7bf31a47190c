package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Position names the semantic values of the employee position column.
// The column itself stays free text and comparisons are case-insensitive.
type Position = string

const (
	PositionDriver     Position = "DRIVER"
	PositionManager    Position = "MANAGER"
	PositionDispatcher Position = "DISPATCHER"
	PositionMechanic   Position = "MECHANIC"
)

// Employee works for a company. Drivers are employees whose position
// equals DRIVER case-insensitively; they can be referenced from transports.
type Employee struct {
	ID        uint   `gorm:"primaryKey"`
	CompanyID uint   `gorm:"column:company_id;not null"`
	FirstName string `gorm:"column:first_name;not null;size:100"`
	LastName  string `gorm:"column:last_name;not null;size:100"`
	Phone     string `gorm:"size:50"`
	Email     string `gorm:"size:255"`
	Position  string `gorm:"not null;size:100"`
	// Qualification is a free-text tag, e.g. "flammable goods";
	// nil when the employee has none recorded.
	Qualification *string             `gorm:"size:500"`
	Salary        decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	HireDate      *time.Time          `gorm:"column:hire_date"`
	CreatedAt     time.Time           `gorm:"column:created_at"`
}

// TableName sets the storage table name for Employee.
func (Employee) TableName() string { return "employees" }

// FullName joins first and last name with a single space. A missing
// name part contributes an empty string.
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// IsDriver reports whether the employee's position is DRIVER,
// compared case-insensitively.
func (e *Employee) IsDriver() bool {
	return strings.EqualFold(e.Position, PositionDriver)
}

// Same reports identity-by-id equality, see Company.Same.
func (e *Employee) Same(o *Employee) bool {
	if e == o {
		return true
	}
	return e != nil && o != nil && e.ID != 0 && e.ID == o.ID
}
