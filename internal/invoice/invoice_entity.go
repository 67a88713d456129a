package invoice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Invoice struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:uq_invoices_company_number,priority:1"`
	ClientID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoiceNumber string          `gorm:"type:varchar(30);not null;uniqueIndex:uq_invoices_company_number,priority:2"`
	Date          time.Time       `gorm:"type:date;not null"`
	DueDate       time.Time       `gorm:"type:date;not null"`
	Subtotal      decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	TaxAmount     decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	Total         decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	Status        string          `gorm:"type:varchar(20);not null;default:'draft'"`
	Notes         string          `gorm:"type:text"`
	CreatedBy     uuid.UUID       `gorm:"type:uuid"`
	Items         []InvoiceItem   `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (Invoice) TableName() string {
	return "invoices"
}

type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	CompanyID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"not null"`
	Description string          `gorm:"type:varchar(500)"`
	HSNCode     string          `gorm:"column:hsn_code;type:varchar(10)"`
	Quantity    decimal.Decimal `gorm:"type:numeric;not null"`
	Rate        decimal.Decimal `gorm:"type:numeric;not null"`
	TaxRate     decimal.Decimal `gorm:"type:numeric;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric;not null"`
	TaxAmount   decimal.Decimal `gorm:"type:numeric;not null"`
}

func (InvoiceItem) TableName() string {
	return "invoice_items"
}
