package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const DefaultPaymentTermDays = 30

const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

type InvoiceLine struct {
	Description    string
	Quantity       decimal.Decimal
	Rate           decimal.Decimal
	TaxRatePercent *decimal.Decimal // nil means DefaultTaxRatePercent
	HSNCode        string
}

type InvoiceInput struct {
	Lines   []InvoiceLine
	Date    time.Time
	DueDate *time.Time // nil means Date + DefaultPaymentTermDays
}

type ComputedLine struct {
	Description    string
	Quantity       decimal.Decimal
	Rate           decimal.Decimal
	TaxRatePercent decimal.Decimal
	HSNCode        string
	Amount         decimal.Decimal
	TaxAmount      decimal.Decimal
}

type InvoiceTotals struct {
	Lines     []ComputedLine
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
	DueDate   time.Time
}

// ComputeInvoice derives per-line amounts and document totals. Lines keep their
// input order. Nothing is rounded; rounding for display is the caller's business.
func ComputeInvoice(in InvoiceInput) (InvoiceTotals, error) {
	if len(in.Lines) == 0 {
		return InvoiceTotals{}, invalid("items", "must contain at least one line")
	}
	if in.Date.IsZero() {
		return InvoiceTotals{}, invalid("date", "is required")
	}

	rates := make([]decimal.Decimal, len(in.Lines))
	for i, line := range in.Lines {
		rate, err := validateLine(i, line)
		if err != nil {
			return InvoiceTotals{}, err
		}
		rates[i] = rate
	}

	dueDate := in.Date.AddDate(0, 0, DefaultPaymentTermDays)
	if in.DueDate != nil && !in.DueDate.IsZero() {
		dueDate = *in.DueDate
	}

	out := InvoiceTotals{
		Lines:     make([]ComputedLine, len(in.Lines)),
		Subtotal:  decimal.Zero,
		TaxAmount: decimal.Zero,
		DueDate:   dueDate,
	}
	for i, line := range in.Lines {
		amount := line.Quantity.Mul(line.Rate)
		tax := percentOf(amount, rates[i])

		out.Lines[i] = ComputedLine{
			Description:    line.Description,
			Quantity:       line.Quantity,
			Rate:           line.Rate,
			TaxRatePercent: rates[i],
			HSNCode:        line.HSNCode,
			Amount:         amount,
			TaxAmount:      tax,
		}
		out.Subtotal = out.Subtotal.Add(amount)
		out.TaxAmount = out.TaxAmount.Add(tax)
	}
	out.Total = out.Subtotal.Add(out.TaxAmount)

	return out, nil
}

func validateLine(i int, line InvoiceLine) (decimal.Decimal, error) {
	prefix := fmt.Sprintf("items[%d].", i)
	if err := requireNonNegative(prefix+"quantity", line.Quantity); err != nil {
		return decimal.Zero, err
	}
	if err := requireNonNegative(prefix+"rate", line.Rate); err != nil {
		return decimal.Zero, err
	}

	rate := DefaultTaxRatePercent
	if line.TaxRatePercent != nil {
		rate = *line.TaxRatePercent
	}
	if rate.IsNegative() || rate.GreaterThan(hundred) {
		return decimal.Zero, invalid(prefix+"tax_rate", "must be between 0 and 100")
	}
	return rate, nil
}

func ValidInvoiceStatus(status string) bool {
	switch status {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// InvoiceStatusAt is the status shown for an invoice at now: a sent invoice past its
// due date reads as overdue. The stored status is not changed.
func InvoiceStatusAt(status string, dueDate, now time.Time) string {
	if status == InvoiceStatusSent && calendarDay(now).After(calendarDay(dueDate)) {
		return InvoiceStatusOverdue
	}
	return status
}
