package company

import (
	"time"

	"github.com/google/uuid"
)

type RegistrationType string

const (
	RegistrationTypeGSTIN RegistrationType = "GSTIN"
	RegistrationTypePAN   RegistrationType = "PAN"
	RegistrationTypeTAN   RegistrationType = "TAN"
	RegistrationTypeCIN   RegistrationType = "CIN"
)

func (t RegistrationType) Valid() bool {
	switch t {
	case RegistrationTypeGSTIN, RegistrationTypePAN, RegistrationTypeTAN, RegistrationTypeCIN:
		return true
	}
	return false
}

type CompanyRegistration struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uq_company_registration_type"`
	Type      RegistrationType `gorm:"type:varchar(10);not null;uniqueIndex:uq_company_registration_type"`
	Number    string           `gorm:"type:varchar(100);not null"`
	IssuedAt  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CompanyRegistration) TableName() string {
	return "company_registrations"
}
