package employee

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

func (s *Store) CountEmployees(ctx context.Context) (int, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	return s.queryEmployees(ctx, `
    SELECT id, name, department, role, joining_date, basic_salary
    FROM employees
    ORDER BY id
  `)
}

func (s *Store) RecentEmployees(ctx context.Context, limit int) ([]Employee, error) {
	return s.queryEmployees(ctx, `
    SELECT id, name, department, role, joining_date, basic_salary
    FROM employees
    ORDER BY id DESC
    LIMIT $1
  `, limit)
}

func (s *Store) GetEmployee(ctx context.Context, id int64) (Employee, error) {
	var emp Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, department, role, joining_date, basic_salary
    FROM employees
    WHERE id = $1
  `, id).Scan(&emp.ID, &emp.Name, &emp.Department, &emp.Role, &emp.JoiningDate, &emp.BasicSalary)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Employee{}, ErrEmployeeNotFound
		}
		return Employee{}, err
	}
	return emp, nil
}

func (s *Store) CreateEmployee(ctx context.Context, emp Employee) (int64, error) {
	var id int64
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (name, department, role, joining_date, basic_salary)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, emp.Name, emp.Department, emp.Role, emp.JoiningDate, emp.BasicSalary).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) queryEmployees(ctx context.Context, query string, args ...any) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []Employee{}
	for rows.Next() {
		var emp Employee
		if err := rows.Scan(&emp.ID, &emp.Name, &emp.Department, &emp.Role, &emp.JoiningDate, &emp.BasicSalary); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}
