package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"payroll/internal/domain/employee"
)

const WindowMonths = 6

type YearMonth struct {
	Year  int
	Month time.Month
}

func (ym YearMonth) Label() string {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}

type Stats struct {
	TotalEmployees     int             `json:"totalEmployees"`
	TotalPayrolls      int             `json:"totalPayrolls"`
	TotalPaid          decimal.Decimal `json:"totalPaid"`
	TotalPaidFormatted string          `json:"totalPaidFormatted"`
}

// ChartPoint is one bar of the six-month payout trend.
type ChartPoint struct {
	Label         string          `json:"label"`
	Value         decimal.Decimal `json:"value"`
	Formatted     string          `json:"formatted"`
	HeightPercent int             `json:"heightPercent"`
}

// Skipped counts salary records left out of the aggregation. MissingAmount
// records are excluded everywhere; BadDate records still count toward the
// total paid but cannot be placed in a month.
type Skipped struct {
	MissingAmount int `json:"missingAmount"`
	BadDate       int `json:"badDate"`
}

type Summary struct {
	Stats         Stats               `json:"stats"`
	Chart         []ChartPoint        `json:"chart"`
	MaxMonthValue decimal.Decimal     `json:"maxMonthValue"`
	Recent        []employee.Employee `json:"recentEmployees"`
	Skipped       Skipped             `json:"skipped"`
}
