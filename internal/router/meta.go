package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/miwebservice/internal/handler"
)

func registerMetaRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", handler.Handle(h.Meta.Root, http.StatusOK))
	r.GET("/api/health", handler.Handle(h.Meta.Health, http.StatusOK))
	r.GET("/api/time", handler.Handle(h.Meta.Time, http.StatusOK))
}
