package handler

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/miwebservice/internal/server"
)

// APIVersion is reported as info.version in the OpenAPI document.
const APIVersion = "1.1.0"

//go:embed static/openapi.html
var openAPIUI []byte

//go:embed static/openapi.json
var openAPISpec []byte

// OpenAPIHandler serves the API documentation: a static UI page that loads
// the OpenAPI document from /api/openapi.json.
//
// Both files are embedded in the binary, so the docs work regardless of the
// working directory.
type OpenAPIHandler struct {
	Handler
}

// NewOpenAPIHandler constructs an OpenAPIHandler with access to shared dependencies.
func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPIUI serves the documentation page.
//
// Cache-Control is set to "no-cache" so clients do not reuse an old docs page.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")

	if err := c.HTMLBlob(http.StatusOK, openAPIUI); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}

// ServeOpenAPISpec serves the OpenAPI document with info.title set from API_TITLE.
func (h *OpenAPIHandler) ServeOpenAPISpec(c echo.Context) error {
	var doc map[string]any
	if err := json.Unmarshal(openAPISpec, &doc); err != nil {
		return fmt.Errorf("failed to parse OpenAPI document: %w", err)
	}

	info, _ := doc["info"].(map[string]any)
	if info == nil {
		info = map[string]any{}
		doc["info"] = info
	}
	info["title"] = h.server.Config.Primary.Title
	info["version"] = APIVersion

	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.JSON(http.StatusOK, doc)
}
