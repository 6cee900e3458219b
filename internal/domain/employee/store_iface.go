package employee

import "context"

type StoreAPI interface {
	CountEmployees(ctx context.Context) (int, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
	RecentEmployees(ctx context.Context, limit int) ([]Employee, error)
	GetEmployee(ctx context.Context, id int64) (Employee, error)
	CreateEmployee(ctx context.Context, emp Employee) (int64, error)
}
