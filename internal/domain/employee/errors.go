package employee

import (
	"errors"
	"strings"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidEmployee  = errors.New("invalid employee")
)

// ValidationError lists every problem found in a CreateInput.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid employee: " + strings.Join(e.Messages, " ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidEmployee
}

