package payroll

import "context"

type StoreAPI interface {
	CountSalaries(ctx context.Context) (int, error)
	ListSalaries(ctx context.Context) ([]SalaryRecord, error)
	GetSalary(ctx context.Context, id int64) (SalaryRecord, error)
	CreateSalary(ctx context.Context, record SalaryRecord) (int64, error)
}
