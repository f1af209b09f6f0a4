package router

import (
	"github.com/deppfellow/pizza-restaurants/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that sit outside the API itself.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/openapi.json", h.OpenAPI.ServeOpenAPISpec)
}
