package payroll

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// RenderPayslip writes a single-page A4 salary slip to w.
func RenderPayslip(w io.Writer, slip Payslip) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %d", slip.Record.ID), false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (#%d)", slip.Record.EmployeeName, slip.Record.EmployeeID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Department: %s", slip.Department))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Role: %s", slip.Role))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Date: %s", slip.Record.IssueDate))
	pdf.Ln(10)

	pdf.Cell(0, 8, "Basic salary: "+FormatMoney(slip.BasicSalary))
	pdf.Ln(7)
	pdf.Cell(0, 8, "Bonus: "+FormatMoney(slip.Record.Bonus))
	pdf.Ln(7)
	pdf.Cell(0, 8, "Deductions: "+FormatMoney(slip.Record.Deductions))
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "B", 12)
	net := "n/a"
	if slip.Record.NetSalary.Valid {
		net = FormatMoney(slip.Record.NetSalary.Decimal)
	}
	pdf.Cell(0, 8, "Net salary: "+net)

	return pdf.Output(w)
}

// FormatMoney renders an amount as "$" followed by two decimals.
func FormatMoney(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}
