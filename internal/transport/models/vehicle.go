package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// VehicleType enumerates the known kinds of vehicle. The column stays
// free text; these constants name the semantic values.
type VehicleType = string

const (
	VehicleBus    VehicleType = "BUS"
	VehicleTruck  VehicleType = "TRUCK"
	VehicleTanker VehicleType = "TANKER"
	VehicleVan    VehicleType = "VAN"
	VehicleCar    VehicleType = "CAR"
)

// Vehicle belongs to a company. License plates are unique across all
// companies, not per company.
type Vehicle struct {
	ID           uint   `gorm:"primaryKey"`
	CompanyID    uint   `gorm:"column:company_id;not null"`
	LicensePlate string `gorm:"column:license_plate;not null;uniqueIndex;size:50"`
	VehicleType  string `gorm:"column:vehicle_type;not null;size:50"`
	Brand        string `gorm:"size:100"`
	Model        string `gorm:"size:100"`
	Year         *int
	// Capacity is load capacity in tons, or seat count for passenger
	// vehicles; absent when unknown.
	Capacity  decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	CreatedAt time.Time           `gorm:"column:created_at"`
}

// TableName sets the storage table name for Vehicle.
func (Vehicle) TableName() string { return "vehicles" }

// Same reports identity-by-id equality, see Company.Same.
func (v *Vehicle) Same(o *Vehicle) bool {
	if v == o {
		return true
	}
	return v != nil && o != nil && v.ID != 0 && v.ID == o.ID
}
