// Package validator provides rule-based input validation for request
// boundaries. Rules are composed with Apply, which collects every failure
// into a single ValidationErrors value.
package validator

import (
	"fmt"
	"net/mail"
	"strings"
)

// Rule represents a single validation check for a named field.
type Rule struct {
	Check func() bool
	Field string
	Error string
}

// ValidationErrors maps field names to their error messages.
type ValidationErrors map[string][]string

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	var parts []string
	for field, messages := range e {
		if len(messages) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", field, messages[0]))
		}
	}
	if len(parts) == 0 {
		return "validation failed"
	}
	return strings.Join(parts, "; ")
}

// Apply runs all rules and returns the collected failures, or nil.
func Apply(rules ...Rule) error {
	errs := make(ValidationErrors)
	for _, rule := range rules {
		if !rule.Check() {
			errs[rule.Field] = append(errs[rule.Field], rule.Error)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Required checks that a string value is non-empty after trimming.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Field: field,
		Error: "is required",
	}
}

// ValidEmail checks that value parses as a bare email address.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}
			addr, err := mail.ParseAddress(value)
			if err != nil {
				return false
			}
			// Reject display-name forms; only the bare address is accepted.
			return addr.Address == value
		},
		Field: field,
		Error: "must be a valid email address",
	}
}

// NumericCode checks that value is exactly length digits.
func NumericCode(field, value string, length int) Rule {
	return Rule{
		Check: func() bool {
			if len(value) != length {
				return false
			}
			for _, r := range value {
				if r < '0' || r > '9' {
					return false
				}
			}
			return true
		},
		Field: field,
		Error: fmt.Sprintf("must be a %d-digit code", length),
	}
}

// MinLength checks that value is at least min bytes long.
func MinLength(field, value string, min int) Rule {
	return Rule{
		Check: func() bool { return len(value) >= min },
		Field: field,
		Error: fmt.Sprintf("must be at least %d characters", min),
	}
}
