package cli

import (
	"go-taxdesk/internal/engine"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type payrollDoc struct {
	BasicSalary decimal.Decimal `json:"basic_salary"`
	HRA         decimal.Decimal `json:"hra"`
	Allowances  decimal.Decimal `json:"allowances"`
	Deductions  struct {
		TDS             decimal.Decimal `json:"tds"`
		PF              decimal.Decimal `json:"pf"`
		ESI             decimal.Decimal `json:"esi"`
		ProfessionalTax decimal.Decimal `json:"professional_tax"`
		Other           decimal.Decimal `json:"other"`
	} `json:"deductions"`
}

type payrollResult struct {
	GrossSalary     decimal.Decimal `json:"gross_salary"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`
	NegativeNet     bool            `json:"negative_net"`
}

func newPayrollCommand(logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:     "payroll",
		Short:   "Compute gross, deductions and net salary for one month",
		Example: `  taxdeskctl payroll -f salary.json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var doc payrollDoc
			if err := readInput(cmd, &doc); err != nil {
				return err
			}

			res, err := engine.ComputePayroll(engine.PayrollInput{
				BasicSalary: doc.BasicSalary,
				HRA:         doc.HRA,
				Allowances:  doc.Allowances,
				Deductions: engine.Deductions{
					TDS:             doc.Deductions.TDS,
					PF:              doc.Deductions.PF,
					ESI:             doc.Deductions.ESI,
					ProfessionalTax: doc.Deductions.ProfessionalTax,
					Other:           doc.Deductions.Other,
				},
			})
			if err != nil {
				return err
			}
			if res.NegativeNet {
				logger.Warn("deductions exceed gross salary", zap.String("net_salary", res.NetSalary.String()))
			}

			return writeOutput(cmd, payrollResult{
				GrossSalary:     res.GrossSalary,
				TotalDeductions: res.TotalDeductions,
				NetSalary:       res.NetSalary,
				NegativeNet:     res.NegativeNet,
			})
		},
	}
}
