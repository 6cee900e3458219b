package payroll

import (
	"errors"

	"payroll/internal/domain/employee"
)

var (
	ErrSalaryNotFound   = errors.New("salary record not found")
	ErrEmployeeNotFound = employee.ErrEmployeeNotFound
	ErrInvalidAmount    = errors.New("amount must be a number")
)
