package gstfiling

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TaxHeadColumns is embedded twice, once per prefix (output_, itc_).
type TaxHeadColumns struct {
	IGST decimal.Decimal `gorm:"column:igst;type:numeric;not null;default:0"`
	CGST decimal.Decimal `gorm:"column:cgst;type:numeric;not null;default:0"`
	SGST decimal.Decimal `gorm:"column:sgst;type:numeric;not null;default:0"`
	Cess decimal.Decimal `gorm:"column:cess;type:numeric;not null;default:0"`
}

type GSTFiling struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ClientID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	FilingType        string          `gorm:"type:varchar(10);not null"`
	TaxPeriod         string          `gorm:"type:char(7);not null"`
	DueDate           time.Time       `gorm:"type:date;not null"`
	FilingDate        *time.Time      `gorm:"type:date"`
	ARN               string          `gorm:"column:arn;type:varchar(30)"`
	OutputTax         TaxHeadColumns  `gorm:"embedded;embeddedPrefix:output_"`
	ITC               TaxHeadColumns  `gorm:"embedded;embeddedPrefix:itc_"`
	LateFee           decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	Penalty           decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	TotalTaxLiability decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	TotalITC          decimal.Decimal `gorm:"column:total_itc;type:numeric;not null;default:0"`
	NetTaxPayable     decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	Status            string          `gorm:"type:varchar(20);not null;default:'pending'"`
	Notes             string          `gorm:"type:text"`
	CreatedBy         uuid.UUID       `gorm:"type:uuid"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (GSTFiling) TableName() string {
	return "gst_filings"
}
