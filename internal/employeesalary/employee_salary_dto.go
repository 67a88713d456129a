package employeesalary

import "github.com/shopspring/decimal"

type SalaryComponents struct {
	BasicSalary     decimal.Decimal `json:"basic_salary"`
	HRA             decimal.Decimal `json:"hra"`
	Allowances      decimal.Decimal `json:"allowances"`
	TDS             decimal.Decimal `json:"tds"`
	PF              decimal.Decimal `json:"pf"`
	ESI             decimal.Decimal `json:"esi"`
	ProfessionalTax decimal.Decimal `json:"professional_tax"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
}

type CreateEmployeeSalaryRequest struct {
	EmployeeID    string `json:"employee_id" binding:"required,uuid"`
	EffectiveDate string `json:"effective_date" binding:"required"`
	SalaryComponents
}

type UpdateEmployeeSalaryRequest struct {
	EffectiveDate string `json:"effective_date" binding:"required"`
	SalaryComponents
}

type EmployeeSalaryResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name,omitempty"`
	EffectiveDate string `json:"effective_date"`
	SalaryComponents
	GrossSalary     decimal.Decimal `json:"gross_salary"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`
}

// EffectiveSalaryResponse is the structure in force on AsOf with its computed totals.
type EffectiveSalaryResponse struct {
	EmployeeID string `json:"employee_id"`
	AsOf       string `json:"as_of"`
	SalaryComponents
	GrossSalary     decimal.Decimal `json:"gross_salary"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`
	NegativeNet     bool            `json:"negative_net,omitempty"`
}
