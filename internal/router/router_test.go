package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/miwebservice/internal/database"
	"github.com/deppfellow/miwebservice/internal/handler"
	"github.com/deppfellow/miwebservice/internal/middleware"
	"github.com/deppfellow/miwebservice/internal/repository"
	"github.com/deppfellow/miwebservice/internal/server"
	"github.com/deppfellow/miwebservice/internal/service"
	"github.com/deppfellow/miwebservice/internal/testhelpers"
)

func newTestRouter(t *testing.T) (*echo.Echo, *server.Server) {
	t.Helper()

	s := testhelpers.NewTestServer(t)
	services := service.NewServices(s, repository.NewRepositories())
	return NewRouter(s, handler.NewHandlers(s, services)), s
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type productBody struct {
	ID     string  `json:"id"`
	Nombre string  `json:"nombre"`
	Precio float64 `json:"precio"`
	Stock  int     `json:"stock"`
}

func TestProducts_WidgetLifecycle(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := doRequest(e, http.MethodPost, "/api/productos", `{"nombre":"Widget","precio":9.99,"stock":5}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[productBody](t, rec)
	_, err := uuid.Parse(created.ID)
	require.NoError(t, err)
	assert.Len(t, created.ID, 36)
	assert.JSONEq(t, `{"id":"`+created.ID+`","nombre":"Widget","precio":9.99,"stock":5}`, rec.Body.String())

	rec = doRequest(e, http.MethodGet, "/api/productos/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"`+created.ID+`","nombre":"Widget","precio":9.99,"stock":5}`, rec.Body.String())

	rec = doRequest(e, http.MethodDelete, "/api/productos/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Deleted","data":null}`, rec.Body.String())

	rec = doRequest(e, http.MethodGet, "/api/productos/"+created.ID, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Product not found"}`, rec.Body.String())
}

func TestProducts_NegativeValuesAreRejectedBeforePersisting(t *testing.T) {
	e, _ := newTestRouter(t)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"negative price", `{"nombre":"Widget","precio":-1,"stock":5}`, "precio"},
		{"negative stock", `{"nombre":"Widget","precio":1,"stock":-3}`, "stock"},
		{"missing price", `{"nombre":"Widget"}`, "precio"},
		{"missing name", `{"precio":1}`, "nombre"},
		{"long name", `{"nombre":"` + strings.Repeat("x", 101) + `","precio":1}`, "nombre"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(e, http.MethodPost, "/api/productos", tc.body)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

			body := decode[map[string]any](t, rec)
			assert.Equal(t, false, body["success"])
			assert.Contains(t, rec.Body.String(), `"field":"`+tc.field+`"`)
		})
	}

	rec := doRequest(e, http.MethodGet, "/api/productos", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestProducts_DefaultsAndZeroValues(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := doRequest(e, http.MethodPost, "/api/productos", `{"nombre":"Freebie","precio":0}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[productBody](t, rec)
	assert.Zero(t, created.Precio)
	assert.Zero(t, created.Stock)
}

func TestProducts_MalformedBody(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := doRequest(e, http.MethodPost, "/api/productos", `{"nombre":"Widget",`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doRequest(e, http.MethodPost, "/api/productos", `{"nombre":"Widget","precio":"cheap"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Validation failed","errors":[{"field":"precio","error":"must be a number"}]}`, rec.Body.String())

	rec = doRequest(e, http.MethodPost, "/api/productos", `{"nombre":"Widget","precio":1,"stock":2.5}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Validation failed","errors":[{"field":"stock","error":"must be an integer"}]}`, rec.Body.String())

	rec = doRequest(e, http.MethodGet, "/api/productos", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestProducts_IntegralStockAsFloat(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := doRequest(e, http.MethodPost, "/api/productos", `{"nombre":"Widget","precio":1,"stock":5.0}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, 5, decode[productBody](t, rec).Stock)
}

func TestProducts_UniqueIdentifiers(t *testing.T) {
	e, _ := newTestRouter(t)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		rec := doRequest(e, http.MethodPost, "/api/productos", `{"nombre":"Same","precio":1,"stock":1}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		id := decode[productBody](t, rec).ID
		assert.False(t, seen[id], id)
		seen[id] = true
	}

	rec := doRequest(e, http.MethodGet, "/api/productos", "")
	require.Equal(t, http.StatusOK, rec.Code)

	listed := decode[[]productBody](t, rec)
	require.Len(t, listed, 5)
	for _, p := range listed {
		assert.True(t, seen[p.ID], p.ID)
	}
}

func TestProducts_UpdateReplacesAllFields(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := doRequest(e, http.MethodPost, "/api/productos", `{"nombre":"Widget","precio":9.99,"stock":5}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[productBody](t, rec).ID

	// Omitted stock resets to 0; the id in the body is ignored.
	rec = doRequest(e, http.MethodPut, "/api/productos/"+id, `{"id":"other","nombre":"Gadget","precio":3.5}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"id":"`+id+`","nombre":"Gadget","precio":3.5,"stock":0}`, rec.Body.String())

	rec = doRequest(e, http.MethodGet, "/api/productos/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"`+id+`","nombre":"Gadget","precio":3.5,"stock":0}`, rec.Body.String())

	rec = doRequest(e, http.MethodPut, "/api/productos/"+id, `{"nombre":"Gadget","precio":-1}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/productos/"+id, "")
	assert.JSONEq(t, `{"id":"`+id+`","nombre":"Gadget","precio":3.5,"stock":0}`, rec.Body.String())
}

func TestProducts_UnknownID(t *testing.T) {
	e, _ := newTestRouter(t)
	missing := uuid.NewString()

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		rec := doRequest(e, method, "/api/productos/"+missing, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, method)
		assert.JSONEq(t, `{"success":false,"message":"Product not found"}`, rec.Body.String())
	}

	rec := doRequest(e, http.MethodPut, "/api/productos/"+missing, `{"nombre":"Ghost","precio":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Product not found"}`, rec.Body.String())

	rec = doRequest(e, http.MethodGet, "/api/productos/not-a-uuid", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUsers_CreateAndListWithoutPassword(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := doRequest(e, http.MethodPost, "/api/usuarios", `{"nombre":"Ana","correo":"ana@example.com","password":"hunter2"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "hunter2")

	created := decode[map[string]any](t, rec)
	assert.Positive(t, created["id_usuario"])
	assert.Equal(t, "Ana", created["nombre"])
	assert.Equal(t, "ana@example.com", created["correo"])

	registered, err := time.Parse(time.RFC3339Nano, created["fecha_reg"].(string))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), registered, time.Minute)

	rec = doRequest(e, http.MethodPost, "/api/usuarios", `{"nombre":"Luis","correo":"luis@example.com","password":"s3cret"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/usuarios", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	users := decode[[]map[string]any](t, rec)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.NotContains(t, u, "password")
		assert.Contains(t, u, "id_usuario")
		assert.Contains(t, u, "fecha_reg")
	}
}

func TestUsers_DuplicateEmailIsConflict(t *testing.T) {
	e, _ := newTestRouter(t)

	body := `{"nombre":"Ana","correo":"ana@example.com","password":"hunter2"}`
	require.Equal(t, http.StatusCreated, doRequest(e, http.MethodPost, "/api/usuarios", body).Code)

	rec := doRequest(e, http.MethodPost, "/api/usuarios", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"A user with this email already exists"}`, rec.Body.String())

	rec = doRequest(e, http.MethodGet, "/api/usuarios", "")
	assert.Len(t, decode[[]map[string]any](t, rec), 1)
}

func TestUsers_Validation(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := doRequest(e, http.MethodPost, "/api/usuarios", `{"nombre":"Ana"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"correo"`)
	assert.Contains(t, rec.Body.String(), `"field":"password"`)

	rec = doRequest(e, http.MethodGet, "/api/usuarios", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestMeta(t *testing.T) {
	e, s := newTestRouter(t)

	rec := doRequest(e, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"success": true,
		"message": "Service running",
		"data": {
			"env": "`+s.Config.Primary.Env+`",
			"docs": "/api/docs",
			"endpoints": ["/api/health", "/api/time", "/api/productos", "/api/usuarios"]
		}
	}`, rec.Body.String())

	rec = doRequest(e, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"ok","data":null}`, rec.Body.String())

	rec = doRequest(e, http.MethodGet, "/api/time", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			UTC string `json:"utc"`
		} `json:"data"`
	}](t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, "Server time (UTC)", body.Message)

	now, err := time.Parse(time.RFC3339Nano, body.Data.UTC)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(body.Data.UTC, "Z"), body.Data.UTC)
	assert.WithinDuration(t, time.Now(), now, time.Minute)
}

func TestRouting(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := doRequest(e, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Route not found"}`, rec.Body.String())

	rec = doRequest(e, http.MethodGet, "/api/productos/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = doRequest(e, http.MethodGet, "/api/health", "")
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestRouting_WrongMethodIsNotAllowed(t *testing.T) {
	e, _ := newTestRouter(t)

	for _, target := range []string{"/api/productos/abc", "/api/productos", "/api/usuarios", "/api/health"} {
		rec := doRequest(e, http.MethodPatch, target, "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, target)
		assert.JSONEq(t, `{"success":false,"message":"Method Not Allowed"}`, rec.Body.String(), target)
	}
}

func TestRouting_PanicIsRecoveredAndSessionReleased(t *testing.T) {
	e, s := newTestRouter(t)

	var session *database.Session
	e.POST("/api/explode", func(c echo.Context) error {
		session = middleware.GetSession(c)
		_, err := session.ExecContext(c.Request().Context(),
			"INSERT INTO productos (id, nombre, precio, stock) VALUES (?, ?, ?, ?)", "lost", "Widget", 1.0, 1)
		require.NoError(t, err)
		panic("handler exploded")
	}, middleware.NewSessionMiddleware(s).Session())

	rec := doRequest(e, http.MethodPost, "/api/explode", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Internal Server Error"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "exploded")

	require.NotNil(t, session)
	assert.ErrorIs(t, session.Commit(), database.ErrSessionClosed)

	// The single SQLite connection is free again and the insert was rolled back.
	rec = doRequest(e, http.MethodGet, "/api/productos/lost", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = doRequest(e, http.MethodGet, "/api/productos", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestSystemRoutes(t *testing.T) {
	e, s := newTestRouter(t)

	rec := doRequest(e, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	status := decode[map[string]any](t, rec)
	assert.Equal(t, true, status["success"])
	assert.Equal(t, "healthy", status["data"].(map[string]any)["status"])

	rec = doRequest(e, http.MethodGet, "/api/docs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML)
	assert.Contains(t, rec.Body.String(), "/api/openapi.json")

	rec = doRequest(e, http.MethodGet, "/api/openapi.json", "")
	require.Equal(t, http.StatusOK, rec.Code)

	doc := decode[map[string]any](t, rec)
	info := doc["info"].(map[string]any)
	assert.Equal(t, s.Config.Primary.Title, info["title"])
	assert.Equal(t, handler.APIVersion, info["version"])
	assert.Contains(t, doc["paths"], "/api/productos/{id}")
}

func TestStatus_DatabaseDown(t *testing.T) {
	e, s := newTestRouter(t)
	require.NoError(t, s.DB.Close())

	rec := doRequest(e, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	status := decode[map[string]any](t, rec)
	assert.Equal(t, false, status["success"])
	assert.Equal(t, "unhealthy", status["data"].(map[string]any)["status"])
}
