package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransportType names the semantic values of the transport type column.
type TransportType = string

const (
	TransportCargo     TransportType = "CARGO"
	TransportPassenger TransportType = "PASSENGER"
)

// Transport is a single job carried out for a client. Company and client
// references are required; vehicle and driver are optional and may stay
// unset. A CARGO transport must carry a cargo weight, a PASSENGER
// transport a passenger count.
type Transport struct {
	ID        uint `gorm:"primaryKey"`
	CompanyID uint `gorm:"column:company_id;not null"`
	ClientID  uint `gorm:"column:client_id;not null"`
	// VehicleID is the optional vehicle reference; nil when absent.
	VehicleID *uint `gorm:"column:vehicle_id"`
	// DriverID optionally references an Employee; nil when absent.
	DriverID         *uint      `gorm:"column:driver_id"`
	StartLocation    string     `gorm:"column:start_location;not null;size:255"`
	EndLocation      string     `gorm:"column:end_location;not null;size:255"`
	StartDate        time.Time  `gorm:"column:start_date;not null"`
	EndDate          *time.Time `gorm:"column:end_date"`
	TransportType    string     `gorm:"column:transport_type;not null;size:50"`
	CargoDescription string     `gorm:"column:cargo_description;size:500"`
	// CargoWeight is set for cargo transports only.
	CargoWeight decimal.NullDecimal `gorm:"column:cargo_weight;type:decimal(10,2)"`
	// PassengerCount is set for passenger transports only.
	PassengerCount *int            `gorm:"column:passenger_count"`
	Price          decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	IsPaid         bool            `gorm:"column:is_paid"`
	CreatedAt      time.Time       `gorm:"column:created_at"`
}

// TableName sets the storage table name for Transport.
func (Transport) TableName() string { return "transports" }

// Same reports identity-by-id equality, see Company.Same.
func (t *Transport) Same(o *Transport) bool {
	if t == o {
		return true
	}
	return t != nil && o != nil && t.ID != 0 && t.ID == o.ID
}
