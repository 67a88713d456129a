package client

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BusinessType string

const (
	BusinessIndividual  BusinessType = "individual"
	BusinessProprietor  BusinessType = "proprietorship"
	BusinessPartnership BusinessType = "partnership"
	BusinessLLP         BusinessType = "llp"
	BusinessCompany     BusinessType = "company"
	BusinessTrust       BusinessType = "trust"
)

func (b BusinessType) Valid() bool {
	switch b {
	case BusinessIndividual, BusinessProprietor, BusinessPartnership, BusinessLLP, BusinessCompany, BusinessTrust:
		return true
	}
	return false
}

// Client is a customer of the firm; invoices, GST filings and compliance
// records hang off it.
type Client struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID    uuid.UUID    `gorm:"type:uuid;not null;index"`
	Name         string       `gorm:"type:varchar(255);not null"`
	ContactName  string       `gorm:"type:varchar(255)"`
	Email        string       `gorm:"type:varchar(255)"`
	Phone        string       `gorm:"type:varchar(30)"`
	PAN          string       `gorm:"column:pan;type:varchar(10)"`
	GSTIN        string       `gorm:"column:gstin;type:varchar(15)"`
	BusinessType BusinessType `gorm:"type:varchar(30);not null;default:'individual'"`
	Address      string       `gorm:"type:text"`
	StateCode    string       `gorm:"type:varchar(2)"`
	IsActive     bool         `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Client) TableName() string {
	return "clients"
}
