package engine_test

import (
	"testing"
	"time"

	"go-taxdesk/internal/engine"

	"github.com/stretchr/testify/assert"
)

func TestComputeGSTLedger(t *testing.T) {
	t.Run("net payable", func(t *testing.T) {
		out, err := engine.ComputeGSTLedger(engine.GSTLedgerInput{
			OutputTax: engine.TaxHeads{IGST: d("1000"), CGST: d("500"), SGST: d("500"), Cess: d("0")},
			ITC:       engine.TaxHeads{IGST: d("300"), CGST: d("100"), SGST: d("100"), Cess: d("0")},
			LateFee:   d("50"),
			Penalty:   d("0"),
		})

		assert.NoError(t, err)
		assert.True(t, out.TotalTaxLiability.Equal(d("2000")))
		assert.True(t, out.TotalITC.Equal(d("500")))
		assert.True(t, out.NetTaxPayable.Equal(d("1550")))
		assert.False(t, out.RefundDue)
	})

	t.Run("negative net is kept and flagged", func(t *testing.T) {
		out, err := engine.ComputeGSTLedger(engine.GSTLedgerInput{
			OutputTax: engine.TaxHeads{IGST: d("100")},
			ITC:       engine.TaxHeads{IGST: d("300")},
		})

		assert.NoError(t, err)
		assert.True(t, out.NetTaxPayable.Equal(d("-200")))
		assert.True(t, out.RefundDue)
	})

	t.Run("all zero", func(t *testing.T) {
		out, err := engine.ComputeGSTLedger(engine.GSTLedgerInput{})

		assert.NoError(t, err)
		assert.True(t, out.NetTaxPayable.IsZero())
		assert.False(t, out.RefundDue)
	})

	t.Run("recompute is stable", func(t *testing.T) {
		in := engine.GSTLedgerInput{
			OutputTax: engine.TaxHeads{CGST: d("10.05"), SGST: d("10.05")},
			ITC:       engine.TaxHeads{Cess: d("1.1")},
			Penalty:   d("2"),
		}
		first, err := engine.ComputeGSTLedger(in)
		assert.NoError(t, err)
		second, err := engine.ComputeGSTLedger(in)
		assert.NoError(t, err)
		assert.Equal(t, first.NetTaxPayable.String(), second.NetTaxPayable.String())
	})
}

func TestComputeGSTLedger_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		in    engine.GSTLedgerInput
		field string
	}{
		{"negative output igst", engine.GSTLedgerInput{OutputTax: engine.TaxHeads{IGST: d("-1")}}, "output_tax.igst"},
		{"negative itc cess", engine.GSTLedgerInput{ITC: engine.TaxHeads{Cess: d("-0.5")}}, "itc.cess"},
		{"negative late fee", engine.GSTLedgerInput{LateFee: d("-10")}, "late_fee"},
		{"negative penalty", engine.GSTLedgerInput{Penalty: d("-10")}, "penalty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := engine.ComputeGSTLedger(tt.in)
			assertValidationField(t, err, tt.field)
			assert.True(t, out.NetTaxPayable.IsZero())
		})
	}
}

func TestParseTaxPeriod(t *testing.T) {
	got, err := engine.ParseTaxPeriod("2024-03")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = engine.ParseTaxPeriod("03-2024")
	assertValidationField(t, err, "tax_period")
}

func TestValidFilingType(t *testing.T) {
	assert.True(t, engine.ValidFilingType("GSTR-3B"))
	assert.True(t, engine.ValidFilingType("GSTR-9C"))
	assert.False(t, engine.ValidFilingType("GSTR-2"))
}
