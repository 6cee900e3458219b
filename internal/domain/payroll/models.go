package payroll

import "github.com/shopspring/decimal"

const DateLayout = "2006-01-02"

// SalaryRecord is one generated payout. NetSalary is the snapshot computed at
// creation time; it is nullable so rows imported without an amount can still
// be listed.
type SalaryRecord struct {
	ID           int64               `json:"id"`
	EmployeeID   int64               `json:"employeeId"`
	EmployeeName string              `json:"employeeName"`
	IssueDate    string              `json:"date"`
	Bonus        decimal.Decimal     `json:"bonus"`
	Deductions   decimal.Decimal     `json:"deductions"`
	NetSalary    decimal.NullDecimal `json:"netSalary"`
}

// GenerateInput carries the raw form values for a salary run.
type GenerateInput struct {
	EmployeeID string `json:"employeeId"`
	Bonus      string `json:"bonus"`
	Deductions string `json:"deductions"`
}

// Payslip is the data printed on a salary slip.
type Payslip struct {
	Record      SalaryRecord
	Department  string
	Role        string
	BasicSalary decimal.Decimal
}
