package core

import (
	"fmt"
	"strings"
)

// ValidationError represents field validation errors keyed by field name.
type ValidationError map[string][]string

// Error implements the error interface with a short summary of the failures.
func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	var parts []string
	for field, messages := range e {
		if len(messages) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", field, messages[0]))
		}
	}

	return fmt.Sprintf("validation error: %s", strings.Join(parts, ", "))
}

// NewValidationError creates an empty validation error.
func NewValidationError() ValidationError {
	return make(ValidationError)
}

// Add appends an error message for a field.
func (e ValidationError) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Has reports whether a field has any errors.
func (e ValidationError) Has(field string) bool {
	return len(e[field]) > 0
}

// IsEmpty reports whether there are no validation errors.
func (e ValidationError) IsEmpty() bool {
	return len(e) == 0
}
