package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"payroll/internal/domain/auth"
	"payroll/internal/domain/employee"
	"payroll/internal/domain/payroll"
)

func TestRecentEmployeesNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := New()
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		if _, err := store.CreateEmployee(ctx, employee.Employee{Name: name}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	recent, err := store.RecentEmployees(ctx, 5)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 5 {
		t.Fatalf("expected 5 employees, got %d", len(recent))
	}
	if recent[0].Name != "g" || recent[4].Name != "c" {
		t.Fatalf("unexpected order: %+v", recent)
	}
}

func TestGetMissingRows(t *testing.T) {
	ctx := context.Background()
	store := New()
	if _, err := store.GetEmployee(ctx, 1); !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
	if _, err := store.GetSalary(ctx, 1); !errors.Is(err, payroll.ErrSalaryNotFound) {
		t.Fatalf("expected ErrSalaryNotFound, got %v", err)
	}
	if _, err := store.GetUser(ctx, 1); !errors.Is(err, auth.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestListSalariesJoinsEmployeeName(t *testing.T) {
	ctx := context.Background()
	store := New()
	empID, _ := store.CreateEmployee(ctx, employee.Employee{Name: "Ada"})
	store.PutSalary(payroll.SalaryRecord{EmployeeID: empID, IssueDate: "2024-01-31", NetSalary: decimal.NewNullDecimal(decimal.NewFromInt(10))})
	store.PutSalary(payroll.SalaryRecord{EmployeeID: 99, IssueDate: "bad"})

	list, err := store.ListSalaries(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 records, got %d", len(list))
	}
	if list[0].ID != 2 || list[1].EmployeeName != "Ada" {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestUserUniqueness(t *testing.T) {
	ctx := context.Background()
	store := New()
	if _, err := store.CreateUser(ctx, auth.User{Username: "alice", Email: "alice@example.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.CreateUser(ctx, auth.User{Username: "alice", Email: "other@example.com"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	found, err := store.FindUserByEmail(ctx, "alice@example.com")
	if err != nil || found == nil {
		t.Fatalf("expected user by email, got %v %v", found, err)
	}
	missing, err := store.FindUserByUsername(ctx, "Alice")
	if err != nil || missing != nil {
		t.Fatalf("username lookup must be case-sensitive, got %v %v", missing, err)
	}
}
