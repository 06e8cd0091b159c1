package salary

import (
	"bytes"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/salary"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

func renderPayslip(record salary.Salary) ([]byte, error) {
	name := record.EmployeeID
	if record.EmployeeName != nil && *record.EmployeeName != "" {
		name = *record.EmployeeName
	}
	period := record.Month
	if m, err := time.Parse("2006-01", record.Month); err == nil {
		period = m.Format("January 2006")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", name, record.EmployeeID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", period))
	pdf.Ln(12)

	lines := []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Base salary", record.BaseSalary},
		{"Bonus", record.Bonus},
		{"Deductions", record.Deductions.Neg()},
	}
	for _, l := range lines {
		pdf.CellFormat(80, 8, l.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(50, 8, l.amount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(80, 10, "Net salary", "T", 0, "L", false, 0, "")
	pdf.CellFormat(50, 10, record.NetSalary.StringFixed(2), "T", 1, "R", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s", time.Now().UTC().Format(time.RFC3339)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
