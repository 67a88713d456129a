package engine_test

import (
	"errors"
	"testing"
	"time"

	"go-taxdesk/internal/engine"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func dp(v string) *decimal.Decimal {
	x := decimal.RequireFromString(v)
	return &x
}

func date(v string) time.Time {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		panic(err)
	}
	return t
}

func assertValidationField(t *testing.T, err error, field string) {
	t.Helper()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrValidation))
	var verr *engine.ValidationError
	if assert.True(t, errors.As(err, &verr)) {
		assert.Equal(t, field, verr.Field)
	}
}

func TestComputeInvoice(t *testing.T) {
	t.Run("two lines with explicit rates", func(t *testing.T) {
		out, err := engine.ComputeInvoice(engine.InvoiceInput{
			Date: date("2024-01-10"),
			Lines: []engine.InvoiceLine{
				{Description: "Bookkeeping", Quantity: d("2"), Rate: d("1000"), TaxRatePercent: dp("18")},
				{Description: "Filing", Quantity: d("1"), Rate: d("500"), TaxRatePercent: dp("5")},
			},
		})

		assert.NoError(t, err)
		assert.True(t, out.Subtotal.Equal(d("2500")))
		assert.True(t, out.TaxAmount.Equal(d("385")))
		assert.True(t, out.Total.Equal(d("2885")))
		assert.Len(t, out.Lines, 2)
		assert.Equal(t, "Bookkeeping", out.Lines[0].Description)
		assert.True(t, out.Lines[0].Amount.Equal(d("2000")))
		assert.True(t, out.Lines[0].TaxAmount.Equal(d("360")))
		assert.True(t, out.Lines[1].TaxAmount.Equal(d("25")))
	})

	t.Run("defaults tax rate and due date", func(t *testing.T) {
		out, err := engine.ComputeInvoice(engine.InvoiceInput{
			Date:  date("2024-01-10"),
			Lines: []engine.InvoiceLine{{Description: "Audit", Quantity: d("1"), Rate: d("100")}},
		})

		assert.NoError(t, err)
		assert.True(t, out.Lines[0].TaxRatePercent.Equal(d("18")))
		assert.True(t, out.TaxAmount.Equal(d("18")))
		assert.True(t, out.Total.Equal(d("118")))
		assert.Equal(t, date("2024-02-09"), out.DueDate)
	})

	t.Run("explicit due date wins", func(t *testing.T) {
		due := date("2024-01-15")
		out, err := engine.ComputeInvoice(engine.InvoiceInput{
			Date:    date("2024-01-10"),
			DueDate: &due,
			Lines:   []engine.InvoiceLine{{Quantity: d("1"), Rate: d("1")}},
		})

		assert.NoError(t, err)
		assert.Equal(t, due, out.DueDate)
	})

	t.Run("zero quantity yields zero totals", func(t *testing.T) {
		out, err := engine.ComputeInvoice(engine.InvoiceInput{
			Date:  date("2024-01-10"),
			Lines: []engine.InvoiceLine{{Quantity: d("0"), Rate: d("250"), TaxRatePercent: dp("18")}},
		})

		assert.NoError(t, err)
		assert.True(t, out.Lines[0].Amount.IsZero())
		assert.True(t, out.Lines[0].TaxAmount.IsZero())
		assert.True(t, out.Total.IsZero())
	})

	t.Run("fractional amounts are not rounded", func(t *testing.T) {
		out, err := engine.ComputeInvoice(engine.InvoiceInput{
			Date:  date("2024-01-10"),
			Lines: []engine.InvoiceLine{{Quantity: d("3"), Rate: d("33.33"), TaxRatePercent: dp("12.5")}},
		})

		assert.NoError(t, err)
		assert.True(t, out.Subtotal.Equal(d("99.99")))
		assert.True(t, out.TaxAmount.Equal(d("12.49875")))
		assert.True(t, out.Total.Equal(out.Subtotal.Add(out.TaxAmount)))
	})

	t.Run("line order does not change totals", func(t *testing.T) {
		lines := []engine.InvoiceLine{
			{Description: "a", Quantity: d("1.5"), Rate: d("10.10"), TaxRatePercent: dp("18")},
			{Description: "b", Quantity: d("7"), Rate: d("0.33"), TaxRatePercent: dp("28")},
			{Description: "c", Quantity: d("2"), Rate: d("99.99"), TaxRatePercent: dp("0")},
		}
		reversed := []engine.InvoiceLine{lines[2], lines[1], lines[0]}

		a, err := engine.ComputeInvoice(engine.InvoiceInput{Date: date("2024-01-10"), Lines: lines})
		assert.NoError(t, err)
		b, err := engine.ComputeInvoice(engine.InvoiceInput{Date: date("2024-01-10"), Lines: reversed})
		assert.NoError(t, err)

		assert.True(t, a.Subtotal.Equal(b.Subtotal))
		assert.True(t, a.TaxAmount.Equal(b.TaxAmount))
		assert.True(t, a.Total.Equal(b.Total))
		assert.Equal(t, "c", b.Lines[0].Description)
	})

	t.Run("recompute is stable", func(t *testing.T) {
		in := engine.InvoiceInput{
			Date:  date("2024-01-10"),
			Lines: []engine.InvoiceLine{{Quantity: d("4"), Rate: d("12.5"), TaxRatePercent: dp("18")}},
		}
		first, err := engine.ComputeInvoice(in)
		assert.NoError(t, err)
		second, err := engine.ComputeInvoice(in)
		assert.NoError(t, err)

		assert.True(t, first.Total.Equal(second.Total))
		assert.True(t, first.TaxAmount.Equal(second.TaxAmount))
	})
}

func TestComputeInvoice_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		in    engine.InvoiceInput
		field string
	}{
		{
			name:  "no lines",
			in:    engine.InvoiceInput{Date: date("2024-01-10")},
			field: "items",
		},
		{
			name:  "missing date",
			in:    engine.InvoiceInput{Lines: []engine.InvoiceLine{{Quantity: d("1"), Rate: d("1")}}},
			field: "date",
		},
		{
			name: "negative quantity",
			in: engine.InvoiceInput{
				Date:  date("2024-01-10"),
				Lines: []engine.InvoiceLine{{Quantity: d("-1"), Rate: d("1")}},
			},
			field: "items[0].quantity",
		},
		{
			name: "negative rate on second line",
			in: engine.InvoiceInput{
				Date: date("2024-01-10"),
				Lines: []engine.InvoiceLine{
					{Quantity: d("1"), Rate: d("1")},
					{Quantity: d("1"), Rate: d("-0.01")},
				},
			},
			field: "items[1].rate",
		},
		{
			name: "tax rate above 100",
			in: engine.InvoiceInput{
				Date:  date("2024-01-10"),
				Lines: []engine.InvoiceLine{{Quantity: d("1"), Rate: d("1"), TaxRatePercent: dp("100.01")}},
			},
			field: "items[0].tax_rate",
		},
		{
			name: "negative tax rate",
			in: engine.InvoiceInput{
				Date:  date("2024-01-10"),
				Lines: []engine.InvoiceLine{{Quantity: d("1"), Rate: d("1"), TaxRatePercent: dp("-1")}},
			},
			field: "items[0].tax_rate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := engine.ComputeInvoice(tt.in)
			assertValidationField(t, err, tt.field)
			assert.Empty(t, out.Lines)
		})
	}
}

func TestInvoiceStatusAt(t *testing.T) {
	due := date("2024-02-11")

	assert.Equal(t, engine.InvoiceStatusSent, engine.InvoiceStatusAt(engine.InvoiceStatusSent, due, due.Add(23*time.Hour)))
	assert.Equal(t, engine.InvoiceStatusOverdue, engine.InvoiceStatusAt(engine.InvoiceStatusSent, due, date("2024-02-12")))
	assert.Equal(t, engine.InvoiceStatusPaid, engine.InvoiceStatusAt(engine.InvoiceStatusPaid, due, date("2024-03-01")))
	assert.Equal(t, engine.InvoiceStatusDraft, engine.InvoiceStatusAt(engine.InvoiceStatusDraft, due, date("2024-03-01")))
}

func TestValidInvoiceStatus(t *testing.T) {
	assert.True(t, engine.ValidInvoiceStatus("draft"))
	assert.True(t, engine.ValidInvoiceStatus("overdue"))
	assert.False(t, engine.ValidInvoiceStatus("DRAFT"))
	assert.False(t, engine.ValidInvoiceStatus(""))
}
