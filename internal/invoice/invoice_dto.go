package invoice

import "github.com/shopspring/decimal"

type InvoiceItemRequest struct {
	Description string           `json:"description" binding:"max=500"`
	HSNCode     string           `json:"hsn_code" binding:"max=10"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Rate        decimal.Decimal  `json:"rate"`
	TaxRate     *decimal.Decimal `json:"tax_rate"`
}

type CreateInvoiceRequest struct {
	ClientID string               `json:"client_id" binding:"required,uuid"`
	Date     string               `json:"date" binding:"required"`
	DueDate  string               `json:"due_date"`
	Status   string               `json:"status"`
	Notes    string               `json:"notes"`
	Items    []InvoiceItemRequest `json:"items" binding:"dive"`
}

// UpdateInvoiceRequest replaces the whole document; totals are recomputed.
type UpdateInvoiceRequest struct {
	ClientID string               `json:"client_id" binding:"required,uuid"`
	Date     string               `json:"date" binding:"required"`
	DueDate  string               `json:"due_date"`
	Notes    string               `json:"notes"`
	Items    []InvoiceItemRequest `json:"items" binding:"dive"`
}

type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type InvoiceFilter struct {
	Status   string
	ClientID string
	DateFrom string
	DateTo   string
	Page     int
	PageSize int
}

type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	Position    int             `json:"position"`
	Description string          `json:"description"`
	HSNCode     string          `json:"hsn_code,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Amount      decimal.Decimal `json:"amount"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
}

type InvoiceResponse struct {
	ID            string                `json:"id"`
	CompanyID     string                `json:"company_id"`
	ClientID      string                `json:"client_id"`
	InvoiceNumber string                `json:"invoice_number"`
	Date          string                `json:"date"`
	DueDate       string                `json:"due_date"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	TaxAmount     decimal.Decimal       `json:"tax_amount"`
	Total         decimal.Decimal       `json:"total"`
	Status        string                `json:"status"`
	Notes         string                `json:"notes,omitempty"`
	Items         []InvoiceItemResponse `json:"items,omitempty"`
	CreatedAt     string                `json:"created_at,omitempty"`
	UpdatedAt     string                `json:"updated_at,omitempty"`
}

// InvoiceSummary aggregates totals per displayed status.
type InvoiceSummary struct {
	Status string          `json:"status"`
	Count  int64           `json:"count"`
	Total  decimal.Decimal `json:"total"`
}
