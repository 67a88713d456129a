package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-taxdesk/internal/cli"
	"go-taxdesk/internal/engine"

	"github.com/stretchr/testify/assert"
)

func run(t *testing.T, stdin string, args ...string) (map[string]any, error) {
	t.Helper()
	cmd := cli.NewRootCommand(nil)
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		return nil, err
	}
	var got map[string]any
	assert.NoError(t, json.Unmarshal(out.Bytes(), &got))
	return got, nil
}

func TestInvoiceCommand(t *testing.T) {
	got, err := run(t, `{"date":"2024-01-10","items":[
		{"description":"Bookkeeping","quantity":"2","rate":"1000","tax_rate":"18"},
		{"description":"Filing","quantity":"1","rate":"500","tax_rate":"5"}]}`, "invoice")

	assert.NoError(t, err)
	assert.Equal(t, "2500", got["subtotal"])
	assert.Equal(t, "385", got["tax_amount"])
	assert.Equal(t, "2885", got["total"])
	assert.Equal(t, "2024-02-09", got["due_date"])
	assert.Nil(t, got["status"])
}

func TestInvoiceCommand_OverdueView(t *testing.T) {
	got, err := run(t, `{"date":"2024-01-10","due_date":"2024-02-11","items":[{"quantity":"1","rate":"100"}]}`,
		"invoice", "--status", "sent", "--as-of", "2024-02-12")

	assert.NoError(t, err)
	assert.Equal(t, "overdue", got["status"])
}

func TestInvoiceCommand_RejectsUnknownStatus(t *testing.T) {
	_, err := run(t, `{"date":"2024-01-10","items":[{"quantity":"1","rate":"100"}]}`, "invoice", "--status", "void")

	assert.True(t, errors.Is(err, engine.ErrValidation))
}

func TestGSTCommand_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gst.json")
	body := `{"output_tax":{"igst":"100","cgst":"0","sgst":"0","cess":"0"},"itc":{"igst":"300","cgst":"0","sgst":"0","cess":"0"},"late_fee":"0","penalty":"0"}`
	assert.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	got, err := run(t, "", "gst", "--file", path)

	assert.NoError(t, err)
	assert.Equal(t, "-200", got["net_tax_payable"])
	assert.Equal(t, true, got["refund_due"])
}

func TestComplianceCommand(t *testing.T) {
	got, err := run(t, `{"due_date":"2024-07-31","filing_date":"2024-08-02","acknowledgment_number":"ACK1","tax_amount":"1000","penalty":"50","interest":"10"}`,
		"compliance", "--as-of", "2024-09-01")

	assert.NoError(t, err)
	assert.Equal(t, "completed", got["status"])
	assert.Equal(t, "1060", got["total_payable"])
	assert.Equal(t, "2024-09-01", got["as_of"])
}

func TestComplianceCommand_BadDate(t *testing.T) {
	_, err := run(t, `{"due_date":"31/07/2024"}`, "compliance")

	assert.ErrorContains(t, err, "due_date")
}

func TestPayrollCommand(t *testing.T) {
	got, err := run(t, `{"basic_salary":"1000","deductions":{"tds":"1500"}}`, "payroll")

	assert.NoError(t, err)
	assert.Equal(t, "-500", got["net_salary"])
	assert.Equal(t, true, got["negative_net"])
}

func TestPayrollCommand_UnknownField(t *testing.T) {
	_, err := run(t, `{"basic":"1000"}`, "payroll")

	assert.ErrorContains(t, err, "decode input")
}
