package engine

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)

	// DefaultTaxRatePercent applies to invoice lines submitted without a rate.
	DefaultTaxRatePercent = decimal.NewFromInt(18)
)

func requireNonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return invalid(field, "cannot be negative")
	}
	return nil
}

// sum adds values in order. Decimal addition is exact, so order never changes the result.
func sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// percentOf returns amount × percent / 100 without rounding.
func percentOf(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Shift(-2)
}
