// Package errs define custom error types and utilities.
//
// Handlers and services return *HTTPError values; the global error handler
// turns them into one of two client payloads:
//
//	404 and other non-validation errors -> {"error": "Restaurant not found"}
//	400 validation errors               -> {"errors": ["validation errors"]}
package errs

import (
	"fmt"
	"strings"
)

// FieldError represents a field-level validation error.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// String renders the field error as a single human readable line.
func (f FieldError) String() string {
	if f.Field == "" {
		return f.Error
	}
	return fmt.Sprintf("%s %s", f.Field, f.Error)
}

// HTTPError is the main custom error type for API responses.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "RESTAURANT_NOT_FOUND"), logged.
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: the message is safe to show to clients as-is.
//   - Errors: field-level validation errors.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError. Code and status are not
// compared.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
	}
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
