package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/miwebservice/internal/model"
	"github.com/deppfellow/miwebservice/internal/response"
	"github.com/deppfellow/miwebservice/internal/server"
)

// MetaHandler serves the root, liveness and clock endpoints. None of them touch the database.
type MetaHandler struct {
	Handler
	now func() time.Time
}

func NewMetaHandler(s *server.Server) *MetaHandler {
	return &MetaHandler{
		Handler: NewHandler(s),
		now:     time.Now,
	}
}

// ServiceInfo is the data of the root endpoint.
type ServiceInfo struct {
	Env       string   `json:"env"`
	Docs      string   `json:"docs"`
	Endpoints []string `json:"endpoints"`
}

// ServerTime is the data of the time endpoint.
type ServerTime struct {
	UTC string `json:"utc"`
}

func (h *MetaHandler) Root(c echo.Context, _ *model.EmptyRequest) (response.Envelope[ServiceInfo], error) {
	return response.OK("Service running", ServiceInfo{
		Env:  h.server.Config.Primary.Env,
		Docs: "/api/docs",
		Endpoints: []string{
			"/api/health",
			"/api/time",
			"/api/productos",
			"/api/usuarios",
		},
	}), nil
}

func (h *MetaHandler) Health(c echo.Context, _ *model.EmptyRequest) (response.Envelope[any], error) {
	return response.OK[any]("ok", nil), nil
}

func (h *MetaHandler) Time(c echo.Context, _ *model.EmptyRequest) (response.Envelope[ServerTime], error) {
	return response.OK("Server time (UTC)", ServerTime{
		UTC: h.now().UTC().Format(time.RFC3339Nano),
	}), nil
}
