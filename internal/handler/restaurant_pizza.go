package handler

import (
	"github.com/deppfellow/pizza-restaurants/internal/model"
	"github.com/deppfellow/pizza-restaurants/internal/server"
	"github.com/deppfellow/pizza-restaurants/internal/service"
	"github.com/labstack/echo/v4"
)

type RestaurantPizzaHandler struct {
	Handler
	restaurantPizzas *service.RestaurantPizzaService
}

func NewRestaurantPizzaHandler(s *server.Server, restaurantPizzas *service.RestaurantPizzaService) *RestaurantPizzaHandler {
	return &RestaurantPizzaHandler{
		Handler:          NewHandler(s),
		restaurantPizzas: restaurantPizzas,
	}
}

// CreateRestaurantPizza prices a pizza at a restaurant. Any rejected body,
// missing reference or out of range price surfaces as the generic
// validation error.
func (h *RestaurantPizzaHandler) CreateRestaurantPizza(c echo.Context, req *model.CreateRestaurantPizzaRequest) (*model.RestaurantPizzaDetail, error) {
	return h.restaurantPizzas.CreateRestaurantPizza(c.Request().Context(), req)
}
