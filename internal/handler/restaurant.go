package handler

import (
	"github.com/deppfellow/pizza-restaurants/internal/model"
	"github.com/deppfellow/pizza-restaurants/internal/server"
	"github.com/deppfellow/pizza-restaurants/internal/service"
	"github.com/labstack/echo/v4"
)

type RestaurantHandler struct {
	Handler
	restaurants *service.RestaurantService
}

func NewRestaurantHandler(s *server.Server, restaurants *service.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{
		Handler:     NewHandler(s),
		restaurants: restaurants,
	}
}

func (h *RestaurantHandler) ListRestaurants(c echo.Context, _ *model.ListRestaurantsRequest) ([]model.RestaurantSummary, error) {
	return h.restaurants.ListRestaurants(c.Request().Context())
}

// GetRestaurant returns the restaurant with its priced pizzas.
func (h *RestaurantHandler) GetRestaurant(c echo.Context, req *model.RestaurantIDRequest) (*model.RestaurantDetail, error) {
	return h.restaurants.GetRestaurant(c.Request().Context(), req.ID)
}

// DeleteRestaurant removes the restaurant and every price row pointing at it.
func (h *RestaurantHandler) DeleteRestaurant(c echo.Context, req *model.RestaurantIDRequest) error {
	return h.restaurants.DeleteRestaurant(c.Request().Context(), req.ID)
}
