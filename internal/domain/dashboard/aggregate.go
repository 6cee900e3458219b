package dashboard

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"payroll/internal/domain/employee"
	"payroll/internal/domain/payroll"
)

var hundred = decimal.NewFromInt(100)

// MonthWindow returns the WindowMonths calendar months ending with the month
// of now, oldest first.
func MonthWindow(now time.Time) []YearMonth {
	window := make([]YearMonth, 0, WindowMonths)
	for offset := WindowMonths - 1; offset >= 0; offset-- {
		first := time.Date(now.Year(), now.Month()-time.Month(offset), 1, 0, 0, 0, 0, time.UTC)
		window = append(window, YearMonth{Year: first.Year(), Month: first.Month()})
	}
	return window
}

// Aggregate derives the dashboard from the full salary history. Records with
// no amount or an unreadable date are skipped and counted, never reported as
// errors.
func Aggregate(now time.Time, totalEmployees int, salaries []payroll.SalaryRecord, recent []employee.Employee) Summary {
	window := MonthWindow(now)
	buckets := make(map[YearMonth]decimal.Decimal, len(window))
	for _, ym := range window {
		buckets[ym] = decimal.Zero
	}

	var skipped Skipped
	total := decimal.Zero
	for _, rec := range salaries {
		if !rec.NetSalary.Valid {
			skipped.MissingAmount++
			continue
		}
		total = total.Add(rec.NetSalary.Decimal)

		ym, ok := parseYearMonth(rec.IssueDate)
		if !ok {
			skipped.BadDate++
			continue
		}
		if sum, inWindow := buckets[ym]; inWindow {
			buckets[ym] = sum.Add(rec.NetSalary.Decimal)
		}
	}

	maxValue := decimal.Zero
	for _, ym := range window {
		buckets[ym] = buckets[ym].Round(2)
		if buckets[ym].GreaterThan(maxValue) {
			maxValue = buckets[ym]
		}
	}
	if !maxValue.IsPositive() {
		maxValue = decimal.NewFromInt(1)
	}

	chart := make([]ChartPoint, 0, len(window))
	for _, ym := range window {
		value := buckets[ym]
		chart = append(chart, ChartPoint{
			Label:         ym.Label(),
			Value:         value,
			Formatted:     payroll.FormatMoney(value),
			HeightPercent: heightPercent(value, maxValue),
		})
	}

	if recent == nil {
		recent = []employee.Employee{}
	}
	total = total.Round(2)
	return Summary{
		Stats: Stats{
			TotalEmployees:     totalEmployees,
			TotalPayrolls:      len(salaries),
			TotalPaid:          total,
			TotalPaidFormatted: payroll.FormatMoney(total),
		},
		Chart:         chart,
		MaxMonthValue: maxValue,
		Recent:        recent,
		Skipped:       skipped,
	}
}

// heightPercent floors value/ceiling*100 into [0, 100]. ceiling is always positive.
func heightPercent(value, ceiling decimal.Decimal) int {
	if !value.IsPositive() {
		return 0
	}
	pct := value.Mul(hundred).Div(ceiling).Floor().IntPart()
	if pct > 100 {
		return 100
	}
	return int(pct)
}

// parseYearMonth reads the year and month from a YYYY-MM-DD style string,
// ignoring the day.
func parseYearMonth(date string) (YearMonth, bool) {
	parts := strings.Split(date, "-")
	if len(parts) < 2 {
		return YearMonth{}, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return YearMonth{}, false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return YearMonth{}, false
	}
	return YearMonth{Year: year, Month: time.Month(month)}, true
}
