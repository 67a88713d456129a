package taxcompliance

import "github.com/shopspring/decimal"

type CreateTaxComplianceRequest struct {
	ClientID             string          `json:"client_id" binding:"required,uuid"`
	TaxType              TaxType         `json:"tax_type" binding:"required"`
	AssessmentYear       string          `json:"assessment_year" binding:"required"`
	DueDate              string          `json:"due_date" binding:"required"`
	FilingDate           string          `json:"filing_date"`
	AcknowledgmentNumber string          `json:"acknowledgment_number" binding:"max=50"`
	TaxAmount            decimal.Decimal `json:"tax_amount"`
	Penalty              decimal.Decimal `json:"penalty"`
	Interest             decimal.Decimal `json:"interest"`
	Notes                string          `json:"notes"`
}

type UpdateTaxComplianceRequest struct {
	TaxType              TaxType         `json:"tax_type" binding:"required"`
	AssessmentYear       string          `json:"assessment_year" binding:"required"`
	DueDate              string          `json:"due_date" binding:"required"`
	FilingDate           string          `json:"filing_date"`
	AcknowledgmentNumber string          `json:"acknowledgment_number" binding:"max=50"`
	TaxAmount            decimal.Decimal `json:"tax_amount"`
	Penalty              decimal.Decimal `json:"penalty"`
	Interest             decimal.Decimal `json:"interest"`
	Notes                string          `json:"notes"`
}

type TaxComplianceFilter struct {
	ClientID       string
	TaxType        string
	AssessmentYear string
	Page           int
	PageSize       int
}

type TaxComplianceResponse struct {
	ID                   string          `json:"id"`
	ClientID             string          `json:"client_id"`
	TaxType              TaxType         `json:"tax_type"`
	AssessmentYear       string          `json:"assessment_year"`
	DueDate              string          `json:"due_date"`
	FilingDate           *string         `json:"filing_date"`
	AcknowledgmentNumber string          `json:"acknowledgment_number,omitempty"`
	TaxAmount            decimal.Decimal `json:"tax_amount"`
	Penalty              decimal.Decimal `json:"penalty"`
	Interest             decimal.Decimal `json:"interest"`
	TotalPayable         decimal.Decimal `json:"total_payable"`
	Status               string          `json:"status"`
	Notes                string          `json:"notes,omitempty"`
	CancelledAt          *string         `json:"cancelled_at,omitempty"`
	CreatedAt            string          `json:"created_at,omitempty"`
	UpdatedAt            string          `json:"updated_at,omitempty"`
}

type StatusAsOfRow struct {
	ID             string  `json:"id"`
	ClientID       string  `json:"client_id"`
	TaxType        TaxType `json:"tax_type"`
	AssessmentYear string  `json:"assessment_year"`
	DueDate        string  `json:"due_date"`
	Status         string  `json:"status"`
}

type StatusAsOfReport struct {
	AsOf    string          `json:"as_of"`
	Counts  map[string]int  `json:"counts"`
	Records []StatusAsOfRow `json:"records"`
}
