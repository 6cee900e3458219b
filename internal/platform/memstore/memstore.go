// Package memstore keeps every record in process memory. It backs
// STORE_DRIVER=memory and the handler tests.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"payroll/internal/domain/auth"
	"payroll/internal/domain/employee"
	"payroll/internal/domain/payroll"
)

type Store struct {
	mu        sync.RWMutex
	employees map[int64]employee.Employee
	salaries  map[int64]payroll.SalaryRecord
	users     map[int64]auth.User
	nextEmp   int64
	nextSal   int64
	nextUser  int64
}

func New() *Store {
	return &Store{
		employees: map[int64]employee.Employee{},
		salaries:  map[int64]payroll.SalaryRecord{},
		users:     map[int64]auth.User{},
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) CountEmployees(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.employees), nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]employee.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]employee.Employee, 0, len(s.employees))
	for _, emp := range s.employees {
		out = append(out, emp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) RecentEmployees(ctx context.Context, limit int) ([]employee.Employee, error) {
	all, err := s.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]employee.Employee, 0, limit)
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

func (s *Store) GetEmployee(ctx context.Context, id int64) (employee.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	emp, ok := s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *Store) CreateEmployee(ctx context.Context, emp employee.Employee) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextEmp++
	emp.ID = s.nextEmp
	s.employees[emp.ID] = emp
	return emp.ID, nil
}

func (s *Store) CountSalaries(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.salaries), nil
}

// ListSalaries returns the newest record first, with the employee name filled
// in the way the SQL join does.
func (s *Store) ListSalaries(ctx context.Context) ([]payroll.SalaryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]payroll.SalaryRecord, 0, len(s.salaries))
	for _, rec := range s.salaries {
		out = append(out, s.withEmployeeName(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *Store) GetSalary(ctx context.Context, id int64) (payroll.SalaryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.salaries[id]
	if !ok {
		return payroll.SalaryRecord{}, payroll.ErrSalaryNotFound
	}
	return s.withEmployeeName(rec), nil
}

func (s *Store) CreateSalary(ctx context.Context, record payroll.SalaryRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSal++
	record.ID = s.nextSal
	s.salaries[record.ID] = record
	return record.ID, nil
}

// PutSalary stores a record as given, including malformed dates or a missing
// net amount. It stands in for rows written by other tools.
func (s *Store) PutSalary(record payroll.SalaryRecord) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSal++
	record.ID = s.nextSal
	s.salaries[record.ID] = record
	return record.ID
}

// SetBasicSalary overwrites an employee's pay, as an edit made outside this
// service would.
func (s *Store) SetBasicSalary(id int64, salary decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	emp, ok := s.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.BasicSalary = salary
	s.employees[id] = emp
	return nil
}

func (s *Store) withEmployeeName(rec payroll.SalaryRecord) payroll.SalaryRecord {
	if emp, ok := s.employees[rec.EmployeeID]; ok {
		rec.EmployeeName = emp.Name
	}
	return rec
}

func (s *Store) CreateUser(ctx context.Context, user auth.User) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == user.Username || (user.Email != "" && existing.Email == user.Email) {
			return 0, ErrDuplicate
		}
	}
	s.nextUser++
	user.ID = s.nextUser
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	s.users[user.ID] = user
	return user.ID, nil
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (*auth.User, error) {
	return s.findUser(func(u auth.User) bool { return u.Username == username }), nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	return s.findUser(func(u auth.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return auth.User{}, auth.ErrUserNotFound
	}
	return user, nil
}

func (s *Store) CountUsers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

func (s *Store) findUser(match func(auth.User) bool) *auth.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if match(user) {
			found := user
			return &found
		}
	}
	return nil
}
