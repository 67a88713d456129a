package taxcompliance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TaxType string

const (
	TaxTypeIncomeTax       TaxType = "income_tax"
	TaxTypeAdvanceTax      TaxType = "advance_tax"
	TaxTypeTDS             TaxType = "tds"
	TaxTypeTCS             TaxType = "tcs"
	TaxTypeProfessionalTax TaxType = "professional_tax"
	TaxTypeROC             TaxType = "roc"
	TaxTypeOther           TaxType = "other"
)

func (t TaxType) Valid() bool {
	switch t {
	case TaxTypeIncomeTax, TaxTypeAdvanceTax, TaxTypeTDS, TaxTypeTCS, TaxTypeProfessionalTax, TaxTypeROC, TaxTypeOther:
		return true
	}
	return false
}

type TaxCompliance struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	ClientID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	TaxType              TaxType         `gorm:"type:varchar(30);not null"`
	AssessmentYear       string          `gorm:"type:varchar(7);not null"`
	DueDate              time.Time       `gorm:"type:date;not null"`
	FilingDate           *time.Time      `gorm:"type:date"`
	AcknowledgmentNumber string          `gorm:"type:varchar(50)"`
	TaxAmount            decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	Penalty              decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	Interest             decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	TotalPayable         decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	Status               string          `gorm:"type:varchar(20);not null;default:'pending'"`
	CancelledAt          *time.Time
	Notes                string          `gorm:"type:text"`
	CreatedBy            uuid.UUID       `gorm:"type:uuid"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            gorm.DeletedAt `gorm:"index"`
}

func (TaxCompliance) TableName() string {
	return "tax_compliances"
}
