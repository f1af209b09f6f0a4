package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/pizza-restaurants/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	t.Run("Should allocate a fresh value per call", func(t *testing.T) {
		witness := &model.RestaurantIDRequest{ID: 7}

		first := newRequest(witness)
		second := newRequest(witness)

		assert.Zero(t, first.ID)
		assert.NotSame(t, witness, first)
		assert.NotSame(t, first, second)
	})
}

func TestHandle(t *testing.T) {
	t.Run("Should not leak bound fields between requests", func(t *testing.T) {
		e := echo.New()
		var seen []int
		h := Handle(Handler{}, func(c echo.Context, req *model.CreateRestaurantPizzaRequest) (int, error) {
			if req.Price != nil {
				seen = append(seen, *req.Price)
			} else {
				seen = append(seen, -1)
			}
			return 0, nil
		}, http.StatusOK, &model.CreateRestaurantPizzaRequest{})

		send := func(body string) error {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			return h(e.NewContext(req, httptest.NewRecorder()))
		}

		require.NoError(t, send(`{"price": 4, "pizza_id": 1, "restaurant_id": 1}`))
		require.Error(t, send(`{"pizza_id": 1, "restaurant_id": 1}`))

		assert.Equal(t, []int{4}, seen)
	})

	t.Run("Should render html bodies", func(t *testing.T) {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		h := HandleHTML(Handler{}, (&IndexHandler{}).Index, &IndexRequest{})
		require.NoError(t, h(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, IndexPage, rec.Body.String())
	})
}
