package payroll

import "github.com/shopspring/decimal"

type PayrollComponentsRequest struct {
	BasicSalary     decimal.Decimal `json:"basic_salary"`
	HRA             decimal.Decimal `json:"hra"`
	Allowances      decimal.Decimal `json:"allowances"`
	TDS             decimal.Decimal `json:"tds"`
	PF              decimal.Decimal `json:"pf"`
	ESI             decimal.Decimal `json:"esi"`
	ProfessionalTax decimal.Decimal `json:"professional_tax"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
}

// CreatePayrollRequest drafts a payroll for one employee and month. When
// Components is omitted the employee's salary structure in force at the end
// of the month is used.
type CreatePayrollRequest struct {
	EmployeeID string                    `json:"employee_id" binding:"required,uuid"`
	Month      int                       `json:"month" binding:"required,min=1,max=12"`
	Year       int                       `json:"year" binding:"required,min=2000,max=2100"`
	Components *PayrollComponentsRequest `json:"components"`
	Notes      string                    `json:"notes"`
}

// UpdatePayrollRequest edits a draft. Components replace all stored amounts
// when present; when omitted the amounts are kept and only Notes changes.
type UpdatePayrollRequest struct {
	Components *PayrollComponentsRequest `json:"components"`
	Notes      string                    `json:"notes"`
}

type GetPayrollsFilterRequest struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Month      int    `form:"month" binding:"omitempty,min=1,max=12"`
	Year       int    `form:"year" binding:"omitempty,min=2000,max=2100"`
	Status     string `form:"status"`
}

type EarningsResponse struct {
	BasicSalary decimal.Decimal `json:"basic_salary"`
	HRA         decimal.Decimal `json:"hra"`
	Allowances  decimal.Decimal `json:"allowances"`
}

type DeductionsResponse struct {
	TDS             decimal.Decimal `json:"tds"`
	PF              decimal.Decimal `json:"pf"`
	ESI             decimal.Decimal `json:"esi"`
	ProfessionalTax decimal.Decimal `json:"professional_tax"`
	Other           decimal.Decimal `json:"other"`
}

type PayrollResponse struct {
	ID                 string             `json:"id"`
	CompanyID          string             `json:"company_id"`
	EmployeeID         string             `json:"employee_id"`
	EmployeeName       string             `json:"employee_name,omitempty"`
	EmployeeNumber     string             `json:"employee_number,omitempty"`
	Month              int                `json:"month"`
	Year               int                `json:"year"`
	Period             string             `json:"period"`
	Earnings           EarningsResponse   `json:"earnings"`
	Deductions         DeductionsResponse `json:"deductions"`
	GrossSalary        decimal.Decimal    `json:"gross_salary"`
	TotalDeductions    decimal.Decimal    `json:"total_deductions"`
	NetSalary          decimal.Decimal    `json:"net_salary"`
	NegativeNet        bool               `json:"negative_net"`
	Status             string             `json:"status"`
	Notes              string             `json:"notes,omitempty"`
	CreatedBy          string             `json:"created_by"`
	ApprovedBy         *string            `json:"approved_by,omitempty"`
	ApprovedAt         *string            `json:"approved_at,omitempty"`
	PaidAt             *string            `json:"paid_at,omitempty"`
	PayslipURL         *string            `json:"payslip_url,omitempty"`
	PayslipGeneratedAt *string            `json:"payslip_generated_at,omitempty"`
}

type BreakdownLine struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type PayrollBreakdownResponse struct {
	PayrollID       string          `json:"payroll_id"`
	Period          string          `json:"period"`
	Earnings        []BreakdownLine `json:"earnings"`
	Deductions      []BreakdownLine `json:"deductions"`
	GrossSalary     decimal.Decimal `json:"gross_salary"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`
}
