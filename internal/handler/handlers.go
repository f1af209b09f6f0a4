// Package handler is the HTTP layer. Each handler binds and validates the
// request, calls the matching service, and writes the response.
package handler

import (
	"github.com/deppfellow/pizza-restaurants/internal/server"
	"github.com/deppfellow/pizza-restaurants/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Index           *IndexHandler
	Restaurant      *RestaurantHandler
	Pizza           *PizzaHandler
	RestaurantPizza *RestaurantPizzaHandler
	Health          *HealthHandler
	OpenAPI         *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Index:           NewIndexHandler(s),
		Restaurant:      NewRestaurantHandler(s, services.Restaurant),
		Pizza:           NewPizzaHandler(s, services.Pizza),
		RestaurantPizza: NewRestaurantPizzaHandler(s, services.RestaurantPizza),
		Health:          NewHealthHandler(s),
		OpenAPI:         NewOpenAPIHandler(s),
	}
}
