package errs

import "net/http"

// ErrorResponse is the JSON body written for every failed request.
// Exactly one of Error or Errors is populated.
type ErrorResponse struct {
	Error  string   `json:"error,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

// NewErrorResponse shapes the client payload for a failed request.
//
// Validation failures (400) list one entry per field error, or the message
// alone when there are none. Every other status carries a single message.
func NewErrorResponse(status int, message string, fieldErrors []FieldError) ErrorResponse {
	if status != http.StatusBadRequest {
		return ErrorResponse{Error: message}
	}

	if len(fieldErrors) == 0 {
		return ErrorResponse{Errors: []string{message}}
	}

	entries := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		entries = append(entries, fe.String())
	}
	return ErrorResponse{Errors: entries}
}
