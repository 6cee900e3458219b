package dashboard

import (
	"context"
	"log/slog"
	"time"

	"payroll/internal/domain/employee"
	"payroll/internal/domain/payroll"
)

type EmployeeSource interface {
	CountEmployees(ctx context.Context) (int, error)
	RecentEmployees(ctx context.Context, limit int) ([]employee.Employee, error)
}

type SalarySource interface {
	ListSalaries(ctx context.Context) ([]payroll.SalaryRecord, error)
}

// SkipRecorder receives the number of records each build left out.
type SkipRecorder interface {
	RecordDashboardSkips(missingAmount, badDate int)
}

type Service struct {
	employees EmployeeSource
	salaries  SalarySource
	skips     SkipRecorder
	now       func() time.Time
}

func NewService(employees EmployeeSource, salaries SalarySource, skips SkipRecorder) *Service {
	return &Service{employees: employees, salaries: salaries, skips: skips, now: time.Now}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Build recomputes the dashboard from the store on every call.
func (s *Service) Build(ctx context.Context) (Summary, error) {
	total, err := s.employees.CountEmployees(ctx)
	if err != nil {
		return Summary{}, err
	}
	recent, err := s.employees.RecentEmployees(ctx, employee.RecentLimit)
	if err != nil {
		return Summary{}, err
	}
	salaries, err := s.salaries.ListSalaries(ctx)
	if err != nil {
		return Summary{}, err
	}

	summary := Aggregate(s.now(), total, salaries, recent)
	if skipped := summary.Skipped; skipped.MissingAmount > 0 || skipped.BadDate > 0 {
		slog.DebugContext(ctx, "dashboard skipped salary records",
			"missingAmount", skipped.MissingAmount,
			"badDate", skipped.BadDate,
		)
	}
	if s.skips != nil {
		s.skips.RecordDashboardSkips(summary.Skipped.MissingAmount, summary.Skipped.BadDate)
	}
	return summary, nil
}
