package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/pizza-restaurants/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type priceRequest struct {
	ID    int64 `param:"id"`
	Price *int  `json:"price" validate:"required,min=1,max=30"`
}

func (r *priceRequest) Validate() error {
	return Struct(r)
}

type rejectingRequest struct {
	ID     int64 `param:"id"`
	Price  *int  `json:"price" validate:"required,min=1,max=30"`
	causes []error
}

func (r *rejectingRequest) Validate() error {
	return Struct(r)
}

var errRejected = errors.New("rejected")

func (r *rejectingRequest) Reject(cause error) error {
	r.causes = append(r.causes, cause)
	return errRejected
}

func bindContext(body string, id string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	return c
}

func TestBindAndValidate(t *testing.T) {
	t.Run("Should report field errors by json name", func(t *testing.T) {
		err := BindAndValidate(bindContext(`{"price": 31}`, ""), &priceRequest{})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, "price must not exceed 30", httpErr.Errors[0].String())
	})

	t.Run("Should not echo decoder details for bind failures", func(t *testing.T) {
		for _, c := range []echo.Context{
			bindContext(`{"price": "abc"}`, ""),
			bindContext(`{"price": 4}`, "abc"),
			bindContext(`{"price": `, ""),
		} {
			err := BindAndValidate(c, &priceRequest{})

			var httpErr *errs.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, InvalidRequestMessage, httpErr.Message)
			assert.Empty(t, httpErr.Errors)
			assert.NotContains(t, err.Error(), "strconv")
			assert.NotContains(t, err.Error(), "Go struct")
		}
	})

	t.Run("Should let the payload replace bind and validation errors", func(t *testing.T) {
		bad := &rejectingRequest{}
		assert.ErrorIs(t, BindAndValidate(bindContext(`{"price": "abc"}`, ""), bad), errRejected)

		invalid := &rejectingRequest{}
		assert.ErrorIs(t, BindAndValidate(bindContext(`{"price": 0}`, ""), invalid), errRejected)

		require.Len(t, invalid.causes, 1)
		var httpErr *errs.HTTPError
		require.ErrorAs(t, invalid.causes[0], &httpErr)
		assert.Equal(t, "price must be at least 1", httpErr.Errors[0].String())
	})

	t.Run("Should accept a valid payload", func(t *testing.T) {
		req := &rejectingRequest{}
		require.NoError(t, BindAndValidate(bindContext(`{"price": 12}`, "7"), req))

		assert.Equal(t, int64(7), req.ID)
		assert.Equal(t, 12, *req.Price)
		assert.Empty(t, req.causes)
	})
}
