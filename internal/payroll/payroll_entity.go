package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusDraft     = "DRAFT"
	StatusApproved  = "APPROVED"
	StatusPaid      = "PAID"
	StatusCancelled = "CANCELLED"
)

type Payroll struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"type:uuid;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_payrolls_employee_period"`
	Month      int       `gorm:"not null;uniqueIndex:uq_payrolls_employee_period"`
	Year       int       `gorm:"not null;uniqueIndex:uq_payrolls_employee_period"`

	EmployeeName   string `gorm:"->;-:migration"`
	EmployeeNumber string `gorm:"->;-:migration"`
	EmployeePAN    string `gorm:"->;-:migration"`

	BasicSalary     decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	HRA             decimal.Decimal `gorm:"column:hra;type:numeric;not null;default:0"`
	Allowances      decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	TDS             decimal.Decimal `gorm:"column:tds;type:numeric;not null;default:0"`
	PF              decimal.Decimal `gorm:"column:pf;type:numeric;not null;default:0"`
	ESI             decimal.Decimal `gorm:"column:esi;type:numeric;not null;default:0"`
	ProfessionalTax decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	OtherDeductions decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	GrossSalary     decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	TotalDeductions decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	NetSalary       decimal.Decimal `gorm:"type:numeric;not null;default:0"`

	Status             string `gorm:"size:20;not null;default:'DRAFT'"`
	Notes              string
	CreatedBy          uuid.UUID  `gorm:"type:uuid"`
	ApprovedBy         *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt         *time.Time
	PaidAt             *time.Time
	PayslipURL         *string
	PayslipGeneratedAt *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Payroll) TableName() string {
	return "payrolls"
}
