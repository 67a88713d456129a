package cli

import (
	"go-taxdesk/internal/engine"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type invoiceLineDoc struct {
	Description string           `json:"description"`
	HSNCode     string           `json:"hsn_code,omitempty"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Rate        decimal.Decimal  `json:"rate"`
	TaxRate     *decimal.Decimal `json:"tax_rate,omitempty"`
}

type invoiceDoc struct {
	Date    string           `json:"date"`
	DueDate string           `json:"due_date,omitempty"`
	Items   []invoiceLineDoc `json:"items"`
}

type invoiceLineResult struct {
	Description string          `json:"description"`
	HSNCode     string          `json:"hsn_code,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Amount      decimal.Decimal `json:"amount"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
}

type invoiceResult struct {
	Items     []invoiceLineResult `json:"items"`
	Subtotal  decimal.Decimal     `json:"subtotal"`
	TaxAmount decimal.Decimal     `json:"tax_amount"`
	Total     decimal.Decimal     `json:"total"`
	DueDate   string              `json:"due_date"`
	Status    string              `json:"status,omitempty"`
}

func newInvoiceCommand(logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Compute invoice line amounts, tax and totals",
		Example: `  echo '{"date":"2024-01-10","items":[{"description":"Audit","quantity":"1","rate":"1000"}]}' | taxdeskctl invoice
  taxdeskctl invoice -f invoice.json --status sent --as-of 2024-03-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var doc invoiceDoc
			if err := readInput(cmd, &doc); err != nil {
				return err
			}

			in := engine.InvoiceInput{Lines: make([]engine.InvoiceLine, len(doc.Items))}
			if doc.Date != "" {
				d, err := parseDate("date", doc.Date)
				if err != nil {
					return err
				}
				in.Date = d
			}
			due, err := parseOptionalDate("due_date", doc.DueDate)
			if err != nil {
				return err
			}
			in.DueDate = due
			for i, it := range doc.Items {
				in.Lines[i] = engine.InvoiceLine{
					Description:    it.Description,
					HSNCode:        it.HSNCode,
					Quantity:       it.Quantity,
					Rate:           it.Rate,
					TaxRatePercent: it.TaxRate,
				}
			}

			totals, err := engine.ComputeInvoice(in)
			if err != nil {
				return err
			}

			out := invoiceResult{
				Items:     make([]invoiceLineResult, len(totals.Lines)),
				Subtotal:  totals.Subtotal,
				TaxAmount: totals.TaxAmount,
				Total:     totals.Total,
				DueDate:   totals.DueDate.Format(dateLayout),
			}
			for i, l := range totals.Lines {
				out.Items[i] = invoiceLineResult{
					Description: l.Description,
					HSNCode:     l.HSNCode,
					Quantity:    l.Quantity,
					Rate:        l.Rate,
					TaxRate:     l.TaxRatePercent,
					Amount:      l.Amount,
					TaxAmount:   l.TaxAmount,
				}
			}

			status, _ := cmd.Flags().GetString("status")
			if status != "" {
				if !engine.ValidInvoiceStatus(status) {
					return &engine.ValidationError{Field: "status", Reason: "is not a known invoice status"}
				}
				asOf, err := asOfFlag(cmd)
				if err != nil {
					return err
				}
				out.Status = engine.InvoiceStatusAt(status, totals.DueDate, asOf)
			}

			logger.Debug("invoice computed", zap.Int("lines", len(out.Items)), zap.String("total", out.Total.String()))
			return writeOutput(cmd, out)
		},
	}
	cmd.Flags().String("status", "", "stored status; when set the overdue view is reported")
	cmd.Flags().String("as-of", "", "evaluation date for --status (default today)")
	return cmd
}
