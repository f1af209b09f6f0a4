// Package validation binds echo requests into payload structs and turns
// validator failures into per-field errors that read "pizza_id is required".
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/deppfellow/pizza-restaurants/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Validatable is implemented by request payload types that know how to
// validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"required,min=1"`)
//   - Implement Validate() error that calls validation.Struct(req)
//   - Return validator.ValidationErrors (or CustomValidationErrors)
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a
// specific field that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// instance returns the shared validator. Field names are reported using
// their json tag so errors read "pizza_id is required" rather than
// "PizzaID is required".
func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "param"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})
	})
	return validate
}

// Struct validates s against its `validate` struct tags.
func Struct(s any) error {
	return instance().Struct(s)
}

// Rejecter is implemented by payloads that answer bind and validation
// failures with an error of their own instead of the field-level 400.
// cause is the error BindAndValidate would otherwise return.
type Rejecter interface {
	Reject(cause error) error
}

// InvalidRequestMessage is returned for requests that could not be bound.
// The decoder's message names Go types and stays in the logs.
const InvalidRequestMessage = "Invalid request"

// BindAndValidate binds request data into payload and validates it.
//
//  1. c.Bind(payload) populates the request struct from path params,
//     query params and the JSON body.
//  2. payload.Validate() applies validation rules.
//  3. Returns *errs.HTTPError (400) with field-level errors on failure,
//     or payload.Reject(cause) when payload is a Rejecter.
//
// payload must be a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	logger := zerolog.Ctx(c.Request().Context())

	if err := c.Bind(payload); err != nil {
		logger.Info().Err(err).Msg("request binding failed")
		return reject(payload, errs.NewBadRequestError(InvalidRequestMessage, true, nil, nil))
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		logger.Info().
			Strs("field_errors", fieldErrorStrings(fieldErrors)).
			Msg("request validation failed")
		return reject(payload, errs.NewBadRequestError(msg, true, nil, fieldErrors))
	}

	return nil
}

func reject(payload Validatable, cause *errs.HTTPError) error {
	if r, ok := payload.(Rejecter); ok {
		return r.Reject(cause)
	}
	return cause
}

func fieldErrorStrings(fieldErrors []errs.FieldError) []string {
	out := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		out = append(out, fe.String())
	}
	return out
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, ce := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: ce.Field,
				Error: ce.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed", []errs.FieldError{{Error: err.Error()}}
	}

	for _, fe := range validationErrors {
		field := fe.Field()
		var msg string

		switch fe.Tag() {
		case "required":
			msg = "is required"

		case "min", "gte":
			if fe.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", fe.Param())
			}

		case "max", "lte":
			if fe.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", fe.Param())
			}

		case "gt":
			msg = fmt.Sprintf("must be greater than %s", fe.Param())

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", fe.Param())

		default:
			if fe.Param() != "" {
				msg = fmt.Sprintf("%s:%s", fe.Tag(), fe.Param())
			} else {
				msg = fe.Tag()
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}
