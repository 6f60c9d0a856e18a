package handler

import (
	"github.com/deppfellow/miwebservice/internal/server"
	"github.com/deppfellow/miwebservice/internal/service"
)

// Handlers is a container that groups all HTTP handlers, so router setup
// passes one object around instead of many.
type Handlers struct {
	Meta    *MetaHandler    // Meta serves /, /api/health and /api/time.
	Product *ProductHandler // Product serves /api/productos.
	User    *UserHandler    // User serves /api/usuarios.
	Health  *HealthHandler  // Health serves the database readiness probe.
	OpenAPI *OpenAPIHandler // OpenAPI serves the API documentation.
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Meta:    NewMetaHandler(s),
		Product: NewProductHandler(s, services.Product),
		User:    NewUserHandler(s, services.User),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
