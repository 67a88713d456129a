package payroll

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
)

const payslipCurrency = "INR"

func money(v decimal.Decimal) string {
	return payslipCurrency + " " + v.StringFixed(2)
}

// renderPayslipPDF lays out a single A4 payslip with earnings on the left
// and deductions on the right.
func renderPayslipPDF(p Payroll) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s", period(p.Month, p.Year)), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "PAYSLIP", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	periodLabel := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
	pdf.CellFormat(0, 7, periodLabel, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	header := [][2]string{
		{"Employee", p.EmployeeName},
		{"Employee No.", p.EmployeeNumber},
		{"PAN", p.EmployeePAN},
		{"Payroll ID", p.ID.String()},
		{"Status", p.Status},
	}
	for _, row := range header {
		if row[1] == "" {
			continue
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	b := mapToBreakdown(p)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(55, 7, "Earnings", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 7, "Amount", "1", 0, "R", true, 0, "")
	pdf.CellFormat(55, 7, "Deductions", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 7, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	rows := len(b.Deductions)
	if len(b.Earnings) > rows {
		rows = len(b.Earnings)
	}
	for i := 0; i < rows; i++ {
		name, amount := "", ""
		if i < len(b.Earnings) {
			name, amount = b.Earnings[i].Name, money(b.Earnings[i].Amount)
		}
		pdf.CellFormat(55, 7, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, amount, "1", 0, "R", false, 0, "")

		name, amount = "", ""
		if i < len(b.Deductions) {
			name, amount = b.Deductions[i].Name, money(b.Deductions[i].Amount)
		}
		pdf.CellFormat(55, 7, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, amount, "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(55, 7, "Gross Salary", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, money(p.GrossSalary), "1", 0, "R", false, 0, "")
	pdf.CellFormat(55, 7, "Total Deductions", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, money(p.TotalDeductions), "1", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(150, 9, "Net Salary", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 9, money(p.NetSalary), "1", 1, "R", false, 0, "")

	if p.NetSalary.IsNegative() {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 6, "Deductions exceed gross salary for this period.", "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
