package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewErrorResponse(t *testing.T) {
	t.Run("Should render not found as a single error message", func(t *testing.T) {
		body, err := json.Marshal(NewErrorResponse(http.StatusNotFound, "Restaurant not found", nil))
		require.NoError(t, err)
		assert.JSONEq(t, `{"error":"Restaurant not found"}`, string(body))
	})

	t.Run("Should render a generic validation failure as an errors list", func(t *testing.T) {
		body, err := json.Marshal(NewErrorResponse(http.StatusBadRequest, GenericValidationMessage, nil))
		require.NoError(t, err)
		assert.JSONEq(t, `{"errors":["validation errors"]}`, string(body))
	})

	t.Run("Should list each field error", func(t *testing.T) {
		resp := NewErrorResponse(http.StatusBadRequest, "Validation failed", []FieldError{
			{Field: "price", Error: "must not exceed 30"},
			{Field: "pizza_id", Error: "is required"},
		})
		assert.Equal(t, []string{"price must not exceed 30", "pizza_id is required"}, resp.Errors)
		assert.Empty(t, resp.Error)
	})
}

func TestHTTPError(t *testing.T) {
	t.Run("Should match any HTTPError with errors.Is", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", NewNotFoundError("Restaurant not found", true, nil))
		assert.True(t, errors.Is(err, &HTTPError{}))
	})

	t.Run("Should derive codes from status text", func(t *testing.T) {
		assert.Equal(t, "NOT_FOUND", NewNotFoundError("x", false, nil).Code)
		assert.Equal(t, "BAD_REQUEST", NewBadRequestError("x", false, nil, nil).Code)
		assert.Equal(t, "INTERNAL_SERVER_ERROR", NewInternalServerError().Code)
	})

	t.Run("Should keep the cause code on persistence validation errors", func(t *testing.T) {
		err := NewPersistenceValidationError("PIZZA_NOT_FOUND")
		assert.Equal(t, http.StatusBadRequest, err.Status)
		assert.Equal(t, "PIZZA_NOT_FOUND", err.Code)
		assert.Equal(t, GenericValidationMessage, err.Message)
	})

	t.Run("Should copy with a new message", func(t *testing.T) {
		base := NewNotFoundError("Resource not found", false, nil)
		copied := base.WithMessage("Pizza not found")
		assert.Equal(t, "Resource not found", base.Message)
		assert.Equal(t, "Pizza not found", copied.Message)
		assert.Equal(t, base.Status, copied.Status)
	})
}
