package handler

import (
	"github.com/deppfellow/pizza-restaurants/internal/model"
	"github.com/deppfellow/pizza-restaurants/internal/server"
	"github.com/deppfellow/pizza-restaurants/internal/service"
	"github.com/labstack/echo/v4"
)

type PizzaHandler struct {
	Handler
	pizzas *service.PizzaService
}

func NewPizzaHandler(s *server.Server, pizzas *service.PizzaService) *PizzaHandler {
	return &PizzaHandler{
		Handler: NewHandler(s),
		pizzas:  pizzas,
	}
}

func (h *PizzaHandler) ListPizzas(c echo.Context, _ *model.ListPizzasRequest) ([]model.PizzaSummary, error) {
	return h.pizzas.ListPizzas(c.Request().Context())
}
