// Package models defines the core domain entities for the transport
// operations system: Company, Client, Vehicle, Employee and Transport,
// together with their semantic enumerations.
//
// Identifiers are assigned by storage on creation; a zero ID marks an
// entity that has not been persisted yet. References between entities
// are plain foreign-key id fields, never navigable object graphs; the
// reverse direction is always an explicit repository query.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company is the owning side of every other entity in the system.
type Company struct {
	// ID is the storage-assigned identifier; zero means not persisted.
	ID uint `gorm:"primaryKey"`
	// Name is the company's name.
	Name string `gorm:"not null"`
	// Address is the company's postal address.
	Address string `gorm:"size:500"`
	// Phone is a contact phone number.
	Phone string `gorm:"size:50"`
	// Email is a contact email address.
	Email string `gorm:"size:255"`
	// Revenue is the persisted sum of the prices of the company's
	// transports. It is derived, never accepted from caller input.
	Revenue decimal.Decimal `gorm:"type:decimal(15,2)"`
	// CreatedAt records when the company row was created.
	CreatedAt time.Time `gorm:"column:created_at"`
}

// TableName sets the storage table name for Company.
func (Company) TableName() string { return "companies" }

// Same reports whether both instances refer to the same persisted row:
// equal non-zero ids, or the same in-memory instance.
func (c *Company) Same(o *Company) bool {
	if c == o {
		return true
	}
	return c != nil && o != nil && c.ID != 0 && c.ID == o.ID
}
