package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/miwebservice/internal/handler"
)

// registerSystemRoutes registers "system" endpoints that are not part of business logic:
// the readiness probe and the API documentation.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	// Readiness (database ping), used by load balancers and monitors.
	r.GET("/status", h.Health.CheckHealth)

	r.GET("/api/docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/api/openapi.json", h.OpenAPI.ServeOpenAPISpec)
}
