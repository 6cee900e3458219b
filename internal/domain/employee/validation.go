package employee

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const msgBasicSalary = "Basic salary must be a non-negative number."

var validate = validator.New(validator.WithRequiredStructEnabled())

var fieldLabels = map[string]string{
	"Name":        "Name",
	"Department":  "Department",
	"Role":        "Role",
	"JoiningDate": "Joining date",
	"BasicSalary": "Basic salary",
}

// Normalize trims every field of the input.
func (in CreateInput) Normalize() CreateInput {
	return CreateInput{
		Name:        strings.TrimSpace(in.Name),
		Department:  strings.TrimSpace(in.Department),
		Role:        strings.TrimSpace(in.Role),
		JoiningDate: strings.TrimSpace(in.JoiningDate),
		BasicSalary: strings.TrimSpace(in.BasicSalary),
	}
}

// Validate checks a normalized input and builds the Employee it describes.
// All problems are reported together in a *ValidationError.
func (in CreateInput) Validate() (Employee, error) {
	var messages []string
	salaryReported := false

	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return Employee{}, err
		}
		for _, fe := range fieldErrs {
			if fe.StructField() == "BasicSalary" {
				salaryReported = true
				messages = append(messages, msgBasicSalary)
				continue
			}
			messages = append(messages, fieldMessage(fe))
		}
	}

	salary, err := decimal.NewFromString(in.BasicSalary)
	if !salaryReported && (err != nil || salary.IsNegative()) {
		messages = append(messages, msgBasicSalary)
	}

	if len(messages) > 0 {
		return Employee{}, &ValidationError{Messages: messages}
	}

	return Employee{
		Name:        in.Name,
		Department:  in.Department,
		Role:        in.Role,
		JoiningDate: in.JoiningDate,
		BasicSalary: salary.Round(2),
	}, nil
}

func fieldMessage(fe validator.FieldError) string {
	label := fieldLabels[fe.StructField()]
	if label == "" {
		label = fe.StructField()
	}
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "max":
		return label + " must be at most " + fe.Param() + " characters."
	default:
		return label + " is invalid."
	}
}
