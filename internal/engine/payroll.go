package engine

import "github.com/shopspring/decimal"

type Deductions struct {
	TDS             decimal.Decimal
	PF              decimal.Decimal
	ESI             decimal.Decimal
	ProfessionalTax decimal.Decimal
	Other           decimal.Decimal
}

func (d Deductions) Total() decimal.Decimal {
	return sum(d.TDS, d.PF, d.ESI, d.ProfessionalTax, d.Other)
}

type PayrollInput struct {
	BasicSalary decimal.Decimal
	HRA         decimal.Decimal
	Allowances  decimal.Decimal
	Deductions  Deductions
}

type PayrollResult struct {
	GrossSalary     decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal
	// NegativeNet flags a data-entry warning; the value is still returned as is.
	NegativeNet bool
}

func ComputePayroll(in PayrollInput) (PayrollResult, error) {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"basic_salary", in.BasicSalary},
		{"hra", in.HRA},
		{"allowances", in.Allowances},
		{"deductions.tds", in.Deductions.TDS},
		{"deductions.pf", in.Deductions.PF},
		{"deductions.esi", in.Deductions.ESI},
		{"deductions.professional_tax", in.Deductions.ProfessionalTax},
		{"deductions.other", in.Deductions.Other},
	}
	for _, f := range fields {
		if err := requireNonNegative(f.name, f.value); err != nil {
			return PayrollResult{}, err
		}
	}

	gross := sum(in.BasicSalary, in.HRA, in.Allowances)
	deductions := in.Deductions.Total()
	net := gross.Sub(deductions)

	return PayrollResult{
		GrossSalary:     gross,
		TotalDeductions: deductions,
		NetSalary:       net,
		NegativeNet:     net.IsNegative(),
	}, nil
}
