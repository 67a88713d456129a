package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "0.1.0"

// NewRootCommand builds the taxdeskctl command tree. Every subcommand reads a
// JSON document from --file (or stdin) and writes the computed result as JSON.
func NewRootCommand(logger *zap.Logger) *cobra.Command {
	if logger == nil {
		logger = zap.NewNop()
	}

	root := &cobra.Command{
		Use:   "taxdeskctl",
		Short: "Offline invoice, GST, compliance and payroll calculations",
		Long: `taxdeskctl runs the same calculation engine as the API without a database.

Input is a JSON document read from --file, or from stdin when --file is "-"
or omitted. Amounts are decimal strings; dates use YYYY-MM-DD.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("file", "f", "-", "input JSON file, - for stdin")
	root.PersistentFlags().Bool("pretty", false, "indent JSON output")

	root.AddCommand(
		newInvoiceCommand(logger.Named("cli.invoice")),
		newGSTCommand(logger.Named("cli.gst")),
		newComplianceCommand(logger.Named("cli.compliance")),
		newPayrollCommand(logger.Named("cli.payroll")),
	)
	return root
}

func Execute(logger *zap.Logger) int {
	if err := NewRootCommand(logger).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func readInput(cmd *cobra.Command, v any) error {
	path, _ := cmd.Flags().GetString("file")

	var r io.Reader = cmd.InOrStdin()
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	return nil
}

func writeOutput(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if pretty, _ := cmd.Flags().GetBool("pretty"); pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
