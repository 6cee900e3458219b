package employee_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"payroll/internal/domain/employee"
	"payroll/internal/platform/memstore"
)

func TestCreateEmployee(t *testing.T) {
	store := memstore.New()
	svc := employee.NewService(store)
	ctx := context.Background()

	emp, err := svc.Create(ctx, employee.CreateInput{
		Name:        "  Grace Hopper ",
		Department:  "Engineering",
		Role:        "Admiral",
		JoiningDate: "1943-01-01",
		BasicSalary: "5000.50",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if emp.ID == 0 || emp.Name != "Grace Hopper" || emp.BasicSalary.String() != "5000.5" {
		t.Fatalf("unexpected employee: %+v", emp)
	}
	count, _ := svc.Count(ctx)
	if count != 1 {
		t.Fatalf("expected 1 employee, got %d", count)
	}
}

func TestCreateEmployeeRoundsSalaryToCents(t *testing.T) {
	svc := employee.NewService(memstore.New())

	emp, err := svc.Create(context.Background(), employee.CreateInput{
		Name:        "Alan Turing",
		Department:  "Research",
		Role:        "Fellow",
		BasicSalary: "4000.125",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got := emp.BasicSalary.StringFixed(3); got != "4000.130" {
		t.Fatalf("expected 4000.13, got %s", got)
	}
}

func TestCreateEmployeeValidation(t *testing.T) {
	tests := []struct {
		name  string
		input employee.CreateInput
		want  []string
	}{
		{
			name:  "everything missing",
			input: employee.CreateInput{},
			want:  []string{"Name is required.", "Department is required.", "Role is required.", "Basic salary must be a non-negative number."},
		},
		{
			name:  "negative salary",
			input: employee.CreateInput{Name: "A", Department: "B", Role: "C", BasicSalary: "-1"},
			want:  []string{"Basic salary must be a non-negative number."},
		},
		{
			name:  "non-numeric salary",
			input: employee.CreateInput{Name: "A", Department: "B", Role: "C", BasicSalary: "ten"},
			want:  []string{"Basic salary must be a non-negative number."},
		},
		{
			name:  "whitespace only name",
			input: employee.CreateInput{Name: "   ", Department: "B", Role: "C", BasicSalary: "0"},
			want:  []string{"Name is required."},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := memstore.New()
			svc := employee.NewService(store)

			_, err := svc.Create(context.Background(), tc.input)
			var verr *employee.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if !errors.Is(err, employee.ErrInvalidEmployee) {
				t.Fatal("validation error must wrap ErrInvalidEmployee")
			}
			if !reflect.DeepEqual(verr.Messages, tc.want) {
				t.Fatalf("expected %q, got %q", tc.want, verr.Messages)
			}
			if count, _ := store.CountEmployees(context.Background()); count != 0 {
				t.Fatalf("expected no rows, got %d", count)
			}
		})
	}
}

func TestRecentReturnsFive(t *testing.T) {
	store := memstore.New()
	svc := employee.NewService(store)
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		if _, err := svc.Create(ctx, employee.CreateInput{Name: "E", Department: "D", Role: "R", BasicSalary: "1"}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	recent, err := svc.Recent(ctx)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != employee.RecentLimit || recent[0].ID != 7 {
		t.Fatalf("unexpected recent list: %+v", recent)
	}
}
