package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/miwebservice/internal/middleware"
	"github.com/deppfellow/miwebservice/internal/response"
	"github.com/deppfellow/miwebservice/internal/server"
)

// HealthCheckTimeout bounds the database ping of the readiness check.
const HealthCheckTimeout = 5 * time.Second

// HealthHandler exposes a readiness endpoint that load balancers and uptime
// monitors can use to verify the service and its database are reachable.
//
// Unlike /api/health, which is pure liveness, this one pings the database.
type HealthHandler struct {
	Handler
}

// NewHealthHandler constructs a HealthHandler with access to shared app dependencies.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// Check is the result of a single dependency probe.
type Check struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// HealthReport is the data of the readiness endpoint.
type HealthReport struct {
	Status      string           `json:"status"`
	Timestamp   time.Time        `json:"timestamp"`
	Environment string           `json:"environment"`
	Checks      map[string]Check `json:"checks"`
}

// CheckHealth returns 200 when every check passes and 503 otherwise.
// Both bodies are envelopes carrying the report.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	report := HealthReport{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]Check),
	}

	// ---------------- Database connectivity check ----------------------------
	ctx, cancel := context.WithTimeout(c.Request().Context(), HealthCheckTimeout)
	defer cancel()

	dbStart := time.Now()
	if err := h.server.DB.Ping(ctx); err != nil {
		report.Status = "unhealthy"
		report.Checks["database"] = Check{
			Status:       "unhealthy",
			ResponseTime: time.Since(dbStart).String(),
			Error:        err.Error(),
		}

		logger.Error().
			Err(err).
			Dur("response_time", time.Since(dbStart)).
			Msg("database health check failed")

		if app := h.server.LoggerService.GetApplication(); app != nil {
			app.RecordCustomEvent("HealthCheckError", map[string]any{
				"check_type":       "database",
				"operation":        "health_check",
				"error_type":       "database_unhealthy",
				"response_time_ms": time.Since(dbStart).Milliseconds(),
				"error_message":    err.Error(),
			})
		}
	} else {
		report.Checks["database"] = Check{
			Status:       "healthy",
			ResponseTime: time.Since(dbStart).String(),
		}
	}

	// ---------------- Overall status + response ------------------------------
	if report.Status != "healthy" {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response.Envelope[HealthReport]{
			Success: false,
			Message: "unhealthy",
			Data:    report,
		})
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response.OK("healthy", report)); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}
