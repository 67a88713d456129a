package employeesalary

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeeSalary is the standing salary structure of an employee from
// EffectiveDate onwards. Payroll runs fall back to the structure effective at
// the end of the pay period when no components are supplied.
type EmployeeSalary struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID       uuid.UUID       `gorm:"type:uuid;index"`
	EmployeeID      uuid.UUID       `gorm:"type:uuid;uniqueIndex:uq_employee_salary_effective"`
	EmployeeName    string          `gorm:"->;-:migration"`
	EffectiveDate   time.Time       `gorm:"type:date;uniqueIndex:uq_employee_salary_effective"`
	BasicSalary     decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	HRA             decimal.Decimal `gorm:"column:hra;type:numeric;not null;default:0"`
	Allowances      decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	TDS             decimal.Decimal `gorm:"column:tds;type:numeric;not null;default:0"`
	PF              decimal.Decimal `gorm:"column:pf;type:numeric;not null;default:0"`
	ESI             decimal.Decimal `gorm:"column:esi;type:numeric;not null;default:0"`
	ProfessionalTax decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	OtherDeductions decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (EmployeeSalary) TableName() string {
	return "employee_salaries"
}
