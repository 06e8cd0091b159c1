package salary

import (
	"fmt"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/salary"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const payrollSheet = "Payroll"

var payrollHeaders = []string{"Employee ID", "Employee Name", "Month", "Base Salary", "Bonus", "Deductions", "Net Salary"}

func renderPayrollWorkbook(month string, records []salary.Salary, summary salary.PayrollSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", payrollSheet); err != nil {
		return nil, err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	moneyFmt := "#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &moneyFmt,
	})
	if err != nil {
		return nil, err
	}

	f.SetCellValue(payrollSheet, "A1", fmt.Sprintf("PAYROLL %s", month))
	f.SetCellStyle(payrollSheet, "A1", "A1", titleStyle)
	f.SetRowHeight(payrollSheet, 1, 22)

	for i, h := range payrollHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		f.SetCellValue(payrollSheet, cell, h)
	}
	f.SetCellStyle(payrollSheet, "A3", "G3", headerStyle)

	row := 4
	for _, r := range records {
		name := ""
		if r.EmployeeName != nil {
			name = *r.EmployeeName
		}
		f.SetCellValue(payrollSheet, fmt.Sprintf("A%d", row), r.EmployeeID)
		f.SetCellValue(payrollSheet, fmt.Sprintf("B%d", row), name)
		f.SetCellValue(payrollSheet, fmt.Sprintf("C%d", row), r.Month)
		setMoney(f, "D", row, r.BaseSalary)
		setMoney(f, "E", row, r.Bonus)
		setMoney(f, "F", row, r.Deductions)
		setMoney(f, "G", row, r.NetSalary)
		row++
	}
	f.SetCellStyle(payrollSheet, "D4", fmt.Sprintf("G%d", row-1), moneyStyle)

	f.SetCellValue(payrollSheet, fmt.Sprintf("A%d", row), "Total")
	f.SetCellValue(payrollSheet, fmt.Sprintf("B%d", row), fmt.Sprintf("%d employees", summary.TotalEmployees))
	setMoney(f, "D", row, summary.TotalBaseSalary)
	setMoney(f, "E", row, summary.TotalBonus)
	setMoney(f, "F", row, summary.TotalDeductions)
	setMoney(f, "G", row, summary.TotalNetSalary)
	f.SetCellStyle(payrollSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), totalStyle)

	f.SetColWidth(payrollSheet, "A", "A", 14)
	f.SetColWidth(payrollSheet, "B", "B", 28)
	f.SetColWidth(payrollSheet, "C", "C", 10)
	f.SetColWidth(payrollSheet, "D", "G", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setMoney(f *excelize.File, col string, row int, amount decimal.Decimal) {
	f.SetCellValue(payrollSheet, fmt.Sprintf("%s%d", col, row), amount.InexactFloat64())
}
