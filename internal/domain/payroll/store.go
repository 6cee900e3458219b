package payroll

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"payroll/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) CountSalaries(ctx context.Context) (int, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM salaries").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) ListSalaries(ctx context.Context) ([]SalaryRecord, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT s.id, s.employee_id, COALESCE(e.name, ''), s.issue_date, s.bonus, s.deductions, s.net_salary
    FROM salaries s
    LEFT JOIN employees e ON s.employee_id = e.id
    ORDER BY s.id DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []SalaryRecord{}
	for rows.Next() {
		var record SalaryRecord
		if err := rows.Scan(&record.ID, &record.EmployeeID, &record.EmployeeName, &record.IssueDate, &record.Bonus, &record.Deductions, &record.NetSalary); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *Store) GetSalary(ctx context.Context, id int64) (SalaryRecord, error) {
	var record SalaryRecord
	err := s.DB.QueryRow(ctx, `
    SELECT s.id, s.employee_id, COALESCE(e.name, ''), s.issue_date, s.bonus, s.deductions, s.net_salary
    FROM salaries s
    LEFT JOIN employees e ON s.employee_id = e.id
    WHERE s.id = $1
  `, id).Scan(&record.ID, &record.EmployeeID, &record.EmployeeName, &record.IssueDate, &record.Bonus, &record.Deductions, &record.NetSalary)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SalaryRecord{}, ErrSalaryNotFound
		}
		return SalaryRecord{}, err
	}
	return record, nil
}

func (s *Store) CreateSalary(ctx context.Context, record SalaryRecord) (int64, error) {
	var id int64
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO salaries (employee_id, issue_date, bonus, deductions, net_salary)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, record.EmployeeID, record.IssueDate, record.Bonus, record.Deductions, record.NetSalary).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
