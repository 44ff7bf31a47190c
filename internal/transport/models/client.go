package models

import "time"

// Client is a customer of a transport company.
type Client struct {
	ID uint `gorm:"primaryKey"`
	// CompanyID references the owning Company and is required.
	CompanyID     uint   `gorm:"column:company_id;not null"`
	Name          string `gorm:"not null"`
	ContactPerson string `gorm:"column:contact_person;size:255"`
	Phone         string `gorm:"size:50"`
	Email         string `gorm:"size:255"`
	Address       string `gorm:"size:500"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

// TableName sets the storage table name for Client.
func (Client) TableName() string { return "clients" }

// Same reports identity-by-id equality, see Company.Same.
func (c *Client) Same(o *Client) bool {
	if c == o {
		return true
	}
	return c != nil && o != nil && c.ID != 0 && c.ID == o.ID
}
