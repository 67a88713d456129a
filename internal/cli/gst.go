package cli

import (
	"go-taxdesk/internal/engine"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type taxHeadsDoc struct {
	IGST decimal.Decimal `json:"igst"`
	CGST decimal.Decimal `json:"cgst"`
	SGST decimal.Decimal `json:"sgst"`
	Cess decimal.Decimal `json:"cess"`
}

func (h taxHeadsDoc) heads() engine.TaxHeads {
	return engine.TaxHeads{IGST: h.IGST, CGST: h.CGST, SGST: h.SGST, Cess: h.Cess}
}

type gstDoc struct {
	OutputTax taxHeadsDoc     `json:"output_tax"`
	ITC       taxHeadsDoc     `json:"itc"`
	LateFee   decimal.Decimal `json:"late_fee"`
	Penalty   decimal.Decimal `json:"penalty"`
}

type gstResult struct {
	TotalTaxLiability decimal.Decimal `json:"total_tax_liability"`
	TotalITC          decimal.Decimal `json:"total_itc"`
	NetTaxPayable     decimal.Decimal `json:"net_tax_payable"`
	RefundDue         bool            `json:"refund_due"`
}

func newGSTCommand(logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:     "gst",
		Short:   "Compute GST liability, input tax credit and net payable",
		Example: `  taxdeskctl gst -f gstr3b.json --pretty`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var doc gstDoc
			if err := readInput(cmd, &doc); err != nil {
				return err
			}

			ledger, err := engine.ComputeGSTLedger(engine.GSTLedgerInput{
				OutputTax: doc.OutputTax.heads(),
				ITC:       doc.ITC.heads(),
				LateFee:   doc.LateFee,
				Penalty:   doc.Penalty,
			})
			if err != nil {
				return err
			}
			if ledger.RefundDue {
				logger.Info("input tax credit exceeds liability", zap.String("net_tax_payable", ledger.NetTaxPayable.String()))
			}

			return writeOutput(cmd, gstResult{
				TotalTaxLiability: ledger.TotalTaxLiability,
				TotalITC:          ledger.TotalITC,
				NetTaxPayable:     ledger.NetTaxPayable,
				RefundDue:         ledger.RefundDue,
			})
		},
	}
}
