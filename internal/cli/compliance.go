package cli

import (
	"go-taxdesk/internal/engine"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type complianceDoc struct {
	DueDate              string          `json:"due_date"`
	FilingDate           string          `json:"filing_date,omitempty"`
	AcknowledgmentNumber string          `json:"acknowledgment_number,omitempty"`
	Status               string          `json:"status,omitempty"`
	TaxAmount            decimal.Decimal `json:"tax_amount"`
	Penalty              decimal.Decimal `json:"penalty"`
	Interest             decimal.Decimal `json:"interest"`
}

type complianceResult struct {
	Status       engine.ComplianceStatus `json:"status"`
	AsOf         string                  `json:"as_of"`
	TotalPayable decimal.Decimal         `json:"total_payable"`
}

func newComplianceCommand(logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "compliance",
		Short:   "Resolve a compliance record's status and total payable",
		Example: `  echo '{"due_date":"2024-07-31","filing_date":"2024-08-02"}' | taxdeskctl compliance --as-of 2024-09-01`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var doc complianceDoc
			if err := readInput(cmd, &doc); err != nil {
				return err
			}

			due, err := parseDate("due_date", doc.DueDate)
			if err != nil {
				return err
			}
			filed, err := parseOptionalDate("filing_date", doc.FilingDate)
			if err != nil {
				return err
			}
			if doc.Status != "" && !engine.ValidComplianceStatus(doc.Status) {
				return &engine.ValidationError{Field: "status", Reason: "is not a known compliance status"}
			}
			asOf, err := asOfFlag(cmd)
			if err != nil {
				return err
			}

			total, err := engine.ComputeTotalPayable(doc.TaxAmount, doc.Penalty, doc.Interest)
			if err != nil {
				return err
			}

			resolver := engine.NewStatusResolver(engine.FixedClock(asOf))
			status := resolver.Resolve(engine.StatusInput{
				DueDate:              due,
				FilingDate:           filed,
				AcknowledgmentNumber: doc.AcknowledgmentNumber,
				Current:              engine.ComplianceStatus(doc.Status),
			})
			logger.Debug("compliance resolved", zap.String("status", string(status)))

			return writeOutput(cmd, complianceResult{
				Status:       status,
				AsOf:         asOf.Format(dateLayout),
				TotalPayable: total,
			})
		},
	}
	cmd.Flags().String("as-of", "", "evaluation date (default today)")
	return cmd
}
