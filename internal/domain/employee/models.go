package employee

import "github.com/shopspring/decimal"

type Employee struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Department  string          `json:"department"`
	Role        string          `json:"role"`
	JoiningDate string          `json:"joiningDate"`
	BasicSalary decimal.Decimal `json:"basicSalary"`
}

// CreateInput is the raw admin submission for a new employee. Values are kept
// as strings so a rejected form can be redisplayed verbatim.
type CreateInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Department  string `json:"department" validate:"required,max=100"`
	Role        string `json:"role" validate:"required,max=100"`
	JoiningDate string `json:"joiningDate" validate:"max=100"`
	BasicSalary string `json:"basicSalary" validate:"required"`
}
