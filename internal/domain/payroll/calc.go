package payroll

import "github.com/shopspring/decimal"

// ComputeNet returns basic + bonus - deductions rounded to cents. A negative
// result is allowed.
func ComputeNet(basic, bonus, deductions decimal.Decimal) decimal.Decimal {
	return basic.Add(bonus).Sub(deductions).Round(2)
}
