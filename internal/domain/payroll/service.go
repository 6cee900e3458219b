package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"payroll/internal/domain/employee"
)

type EmployeeLookup interface {
	GetEmployee(ctx context.Context, id int64) (employee.Employee, error)
}

type Service struct {
	store     StoreAPI
	employees EmployeeLookup
	now       func() time.Time
}

func NewService(store StoreAPI, employees EmployeeLookup) *Service {
	return &Service{store: store, employees: employees, now: time.Now}
}

// WithClock replaces the time source used to date new records.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.CountSalaries(ctx)
}

func (s *Service) List(ctx context.Context) ([]SalaryRecord, error) {
	return s.store.ListSalaries(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (SalaryRecord, error) {
	return s.store.GetSalary(ctx, id)
}

// Generate computes and stores a salary record for one employee, dated today.
// Nothing is written when an amount does not parse or the employee is unknown.
func (s *Service) Generate(ctx context.Context, input GenerateInput) (SalaryRecord, error) {
	bonus, err := ParseAmount(input.Bonus)
	if err != nil {
		return SalaryRecord{}, fmt.Errorf("bonus: %w", err)
	}
	deductions, err := ParseAmount(input.Deductions)
	if err != nil {
		return SalaryRecord{}, fmt.Errorf("deductions: %w", err)
	}

	employeeID, err := ParseID(input.EmployeeID)
	if err != nil {
		return SalaryRecord{}, ErrEmployeeNotFound
	}
	emp, err := s.employees.GetEmployee(ctx, employeeID)
	if err != nil {
		return SalaryRecord{}, err
	}

	record := SalaryRecord{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		IssueDate:    s.now().Format(DateLayout),
		Bonus:        bonus,
		Deductions:   deductions,
		NetSalary:    decimal.NewNullDecimal(ComputeNet(emp.BasicSalary, bonus, deductions)),
	}
	id, err := s.store.CreateSalary(ctx, record)
	if err != nil {
		return SalaryRecord{}, err
	}
	record.ID = id

	slog.InfoContext(ctx, "salary generated", "salaryId", id, "employeeId", emp.ID, "date", record.IssueDate)
	return record, nil
}

// Payslip gathers the record and its employee for printing.
func (s *Service) Payslip(ctx context.Context, id int64) (Payslip, error) {
	record, err := s.store.GetSalary(ctx, id)
	if err != nil {
		return Payslip{}, err
	}
	slip := Payslip{Record: record}
	emp, err := s.employees.GetEmployee(ctx, record.EmployeeID)
	if err != nil {
		return Payslip{}, err
	}
	slip.Record.EmployeeName = emp.Name
	slip.Department = emp.Department
	slip.Role = emp.Role
	slip.BasicSalary = emp.BasicSalary
	return slip, nil
}

// ParseAmount parses a decimal form value rounded to cents, the precision
// the salaries table keeps. Blank input is not a number.
func ParseAmount(raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	return value.Round(2), nil
}

func ParseID(raw string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
}
