package employee

import (
	"context"
	"log/slog"
)

const RecentLimit = 5

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.CountEmployees(ctx)
}

func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.store.ListEmployees(ctx)
}

func (s *Service) Recent(ctx context.Context) ([]Employee, error) {
	return s.store.RecentEmployees(ctx, RecentLimit)
}

func (s *Service) Get(ctx context.Context, id int64) (Employee, error) {
	return s.store.GetEmployee(ctx, id)
}

// Create validates the submission and stores a new employee.
func (s *Service) Create(ctx context.Context, input CreateInput) (Employee, error) {
	emp, err := input.Normalize().Validate()
	if err != nil {
		return Employee{}, err
	}
	id, err := s.store.CreateEmployee(ctx, emp)
	if err != nil {
		return Employee{}, err
	}
	emp.ID = id
	slog.InfoContext(ctx, "employee created", "employeeId", id, "department", emp.Department)
	return emp, nil
}
