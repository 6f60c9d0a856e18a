// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/deppfellow/miwebservice/internal/handler"
	"github.com/deppfellow/miwebservice/internal/middleware"
	"github.com/deppfellow/miwebservice/internal/server"
)

// NewRouter builds the Echo instance with the global middleware stack and every route.
//
// Middleware order matters:
//   - RequestID runs before anything that logs, so every line is correlated
//   - NewRelic starts the transaction that EnhanceTracing and ContextEnhancer read
//   - RequestLogger sits inside ContextEnhancer so it uses the request logger
//   - Recover is innermost, turning handler panics into errors
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// "/api/productos/" and "/api/productos" reach the same handler.
	router.Pre(echoMiddleware.RemoveTrailingSlash())

	router.Use(
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
	registerMetaRoutes(router, h)

	api := router.Group("/api")
	registerProductRoutes(api, h, middlewares.Session)
	registerUserRoutes(api, h, middlewares.Session)

	return router
}
