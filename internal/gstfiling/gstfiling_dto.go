package gstfiling

import "github.com/shopspring/decimal"

type TaxHeadsRequest struct {
	IGST decimal.Decimal `json:"igst"`
	CGST decimal.Decimal `json:"cgst"`
	SGST decimal.Decimal `json:"sgst"`
	Cess decimal.Decimal `json:"cess"`
}

type CreateGSTFilingRequest struct {
	ClientID   string          `json:"client_id" binding:"required,uuid"`
	FilingType string          `json:"filing_type" binding:"required"`
	TaxPeriod  string          `json:"tax_period" binding:"required"`
	DueDate    string          `json:"due_date"`
	FilingDate string          `json:"filing_date"`
	ARN        string          `json:"arn" binding:"max=30"`
	OutputTax  TaxHeadsRequest `json:"output_tax"`
	ITC        TaxHeadsRequest `json:"itc"`
	LateFee    decimal.Decimal `json:"late_fee"`
	Penalty    decimal.Decimal `json:"penalty"`
	Notes      string          `json:"notes"`
}

// UpdateGSTFilingRequest replaces every editable field and triggers a full recompute.
type UpdateGSTFilingRequest struct {
	FilingType string          `json:"filing_type" binding:"required"`
	TaxPeriod  string          `json:"tax_period" binding:"required"`
	DueDate    string          `json:"due_date"`
	FilingDate string          `json:"filing_date"`
	ARN        string          `json:"arn" binding:"max=30"`
	OutputTax  TaxHeadsRequest `json:"output_tax"`
	ITC        TaxHeadsRequest `json:"itc"`
	LateFee    decimal.Decimal `json:"late_fee"`
	Penalty    decimal.Decimal `json:"penalty"`
	Notes      string          `json:"notes"`
}

type FileReturnRequest struct {
	FilingDate string `json:"filing_date" binding:"required"`
	ARN        string `json:"arn" binding:"max=30"`
}

type GSTFilingFilter struct {
	ClientID   string
	FilingType string
	TaxPeriod  string
	Page       int
	PageSize   int
}

type TaxHeadsResponse struct {
	IGST decimal.Decimal `json:"igst"`
	CGST decimal.Decimal `json:"cgst"`
	SGST decimal.Decimal `json:"sgst"`
	Cess decimal.Decimal `json:"cess"`
}

type GSTFilingResponse struct {
	ID                string           `json:"id"`
	ClientID          string           `json:"client_id"`
	FilingType        string           `json:"filing_type"`
	TaxPeriod         string           `json:"tax_period"`
	DueDate           string           `json:"due_date"`
	FilingDate        *string          `json:"filing_date"`
	ARN               string           `json:"arn,omitempty"`
	OutputTax         TaxHeadsResponse `json:"output_tax"`
	ITC               TaxHeadsResponse `json:"itc"`
	LateFee           decimal.Decimal  `json:"late_fee"`
	Penalty           decimal.Decimal  `json:"penalty"`
	TotalTaxLiability decimal.Decimal  `json:"total_tax_liability"`
	TotalITC          decimal.Decimal  `json:"total_itc"`
	NetTaxPayable     decimal.Decimal  `json:"net_tax_payable"`
	RefundDue         bool             `json:"refund_due"`
	Status            string           `json:"status"`
	Notes             string           `json:"notes,omitempty"`
	CreatedAt         string           `json:"created_at,omitempty"`
	UpdatedAt         string           `json:"updated_at,omitempty"`
}

// PeriodSummary totals every filing of one tax period.
type PeriodSummary struct {
	TaxPeriod         string          `json:"tax_period"`
	Filings           int64           `json:"filings"`
	TotalTaxLiability decimal.Decimal `json:"total_tax_liability"`
	TotalITC          decimal.Decimal `json:"total_itc"`
	NetTaxPayable     decimal.Decimal `json:"net_tax_payable"`
}
