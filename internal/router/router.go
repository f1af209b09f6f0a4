// Package router builds the echo instance: middleware order, the error
// handler, and every route mapped to its handler.
package router

import (
	"net/http"

	"github.com/deppfellow/pizza-restaurants/internal/handler"
	"github.com/deppfellow/pizza-restaurants/internal/middleware"
	"github.com/deppfellow/pizza-restaurants/internal/model"
	"github.com/deppfellow/pizza-restaurants/internal/server"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.RateLimit.Limit(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerAPIRoutes(router, h)

	return router
}

func registerAPIRoutes(r *echo.Echo, h *handler.Handlers) {
	base := h.Index.Handler

	r.GET("/", handler.HandleHTML(base, h.Index.Index, &handler.IndexRequest{}))

	restaurants := r.Group("/restaurants")
	restaurants.GET("", handler.Handle(base, h.Restaurant.ListRestaurants, http.StatusOK, &model.ListRestaurantsRequest{}))
	restaurants.GET("/:id", handler.Handle(base, h.Restaurant.GetRestaurant, http.StatusOK, &model.RestaurantIDRequest{}))
	restaurants.DELETE("/:id", handler.HandleNoContent(base, h.Restaurant.DeleteRestaurant, http.StatusNoContent, &model.RestaurantIDRequest{}))

	r.GET("/pizzas", handler.Handle(base, h.Pizza.ListPizzas, http.StatusOK, &model.ListPizzasRequest{}))

	r.POST("/restaurant_pizzas", handler.Handle(base, h.RestaurantPizza.CreateRestaurantPizza, http.StatusCreated, &model.CreateRestaurantPizzaRequest{}))
}
