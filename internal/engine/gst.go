package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	FilingTypeGSTR1  = "GSTR-1"
	FilingTypeGSTR3B = "GSTR-3B"
	FilingTypeGSTR9  = "GSTR-9"
	FilingTypeGSTR9C = "GSTR-9C"
)

const taxPeriodLayout = "2006-01"

// TaxHeads holds one amount per GST head.
type TaxHeads struct {
	IGST decimal.Decimal
	CGST decimal.Decimal
	SGST decimal.Decimal
	Cess decimal.Decimal
}

func (h TaxHeads) Total() decimal.Decimal {
	return sum(h.IGST, h.CGST, h.SGST, h.Cess)
}

func (h TaxHeads) validate(group string) error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"igst", h.IGST},
		{"cgst", h.CGST},
		{"sgst", h.SGST},
		{"cess", h.Cess},
	}
	for _, f := range fields {
		if err := requireNonNegative(group+"."+f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

type GSTLedgerInput struct {
	OutputTax TaxHeads
	ITC       TaxHeads
	LateFee   decimal.Decimal
	Penalty   decimal.Decimal
}

type GSTLedger struct {
	TotalTaxLiability decimal.Decimal
	TotalITC          decimal.Decimal
	NetTaxPayable     decimal.Decimal
	// RefundDue is advisory: credit exceeds liability plus charges.
	RefundDue bool
}

// ComputeGSTLedger derives all three totals together. The net is not clamped;
// a negative value means a refund is due.
func ComputeGSTLedger(in GSTLedgerInput) (GSTLedger, error) {
	if err := in.OutputTax.validate("output_tax"); err != nil {
		return GSTLedger{}, err
	}
	if err := in.ITC.validate("itc"); err != nil {
		return GSTLedger{}, err
	}
	if err := requireNonNegative("late_fee", in.LateFee); err != nil {
		return GSTLedger{}, err
	}
	if err := requireNonNegative("penalty", in.Penalty); err != nil {
		return GSTLedger{}, err
	}

	liability := in.OutputTax.Total()
	itc := in.ITC.Total()
	net := liability.Sub(itc).Add(in.LateFee).Add(in.Penalty)

	return GSTLedger{
		TotalTaxLiability: liability,
		TotalITC:          itc,
		NetTaxPayable:     net,
		RefundDue:         net.IsNegative(),
	}, nil
}

func ValidFilingType(filingType string) bool {
	switch filingType {
	case FilingTypeGSTR1, FilingTypeGSTR3B, FilingTypeGSTR9, FilingTypeGSTR9C:
		return true
	}
	return false
}

// ParseTaxPeriod parses a YYYY-MM tax period into the first day of that month (UTC).
func ParseTaxPeriod(period string) (time.Time, error) {
	t, err := time.Parse(taxPeriodLayout, period)
	if err != nil {
		return time.Time{}, invalid("tax_period", "must be in YYYY-MM format")
	}
	return t, nil
}
