// Package validation checks incoming payloads against the student schema
// and reports every violated constraint as structured data. Keeping the
// rules here (rather than inline in handlers) makes them unit-testable and
// independent of the HTTP layer.
package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-records/internal/types"
)

// Violation describes a single failed constraint on a named field.
type Violation struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
	Message    string `json:"message"`
}

// A single validator instance is shared: it caches struct metadata and is
// safe for concurrent use.
var validate = validator.New()

// Student checks a full student payload against the create-time schema:
// name, email, course, and gpa are all required, email must be
// syntactically valid, and gpa must not exceed 4.0.
func Student(s types.Student) []Violation {
	return collect(validate.Struct(s))
}

// Patch checks an update payload. Only present fields are checked, with the
// same per-field constraints as at create time.
func Patch(p types.UpdateStudent) []Violation {
	return collect(validate.Struct(p))
}

func collect(err error) []Violation {
	if err == nil {
		return nil
	}

	validateErrs := err.(validator.ValidationErrors)
	violations := make([]Violation, 0, len(validateErrs))
	for _, e := range validateErrs {
		violations = append(violations, Violation{
			Field:      strings.ToLower(e.Field()),
			Constraint: e.ActualTag(),
			Message:    message(e),
		})
	}

	return violations
}

// message converts a field error into a plain English sentence using the
// wire (lowercase) field name.
func message(e validator.FieldError) string {
	field := strings.ToLower(e.Field())

	switch e.ActualTag() {
	case "required":
		return fmt.Sprintf("field %s is required", field)
	case "email":
		return fmt.Sprintf("field %s must be a valid email address", field)
	case "lte":
		return fmt.Sprintf("field %s must be at most %s", field, e.Param())
	case "min":
		return fmt.Sprintf("field %s must not be empty", field)
	default:
		return fmt.Sprintf("field %s is invalid", field)
	}
}
