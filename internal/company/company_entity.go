package company

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is the accounting firm that owns every other record (the tenant).
type Company struct {
	ID            uuid.UUID             `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string                `gorm:"type:varchar(150);not null"`
	Email         string                `gorm:"type:varchar(255);uniqueIndex"`
	Phone         string                `gorm:"type:varchar(30)"`
	Address       string                `gorm:"type:text"`
	IsActive      bool                  `gorm:"not null;default:true"`
	CreatedAt     time.Time             `gorm:"not null;default:now()"`
	UpdatedAt     time.Time             `gorm:"not null;default:now()"`
	DeletedAt     gorm.DeletedAt        `gorm:"index"`
	Registrations []CompanyRegistration `gorm:"foreignKey:CompanyID"`
}

func (Company) TableName() string {
	return "companies"
}
