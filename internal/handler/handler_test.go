package handler

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/miwebservice/internal/model"
	"github.com/deppfellow/miwebservice/internal/testhelpers"
	"github.com/deppfellow/miwebservice/internal/validation"
)

func TestMetaHandler_TimeIsUTC(t *testing.T) {
	h := NewMetaHandler(testhelpers.NewTestServer(t))
	h.now = func() time.Time {
		return time.Date(2024, 3, 1, 12, 30, 0, 0, time.FixedZone("CET", 3600))
	}

	got, err := h.Time(nil, &model.EmptyRequest{})
	require.NoError(t, err)
	assert.True(t, got.Success)
	assert.Equal(t, "2024-03-01T11:30:00Z", got.Data.UTC)
}

type echoRequest struct {
	Name string `param:"name" validate:"required"`
}

func (r *echoRequest) Validate() error {
	return validation.Struct(r)
}

func TestHandle_FreshRequestPerCall(t *testing.T) {
	e := echo.New()
	e.GET("/echo/:name", Handle(func(c echo.Context, req *echoRequest) (string, error) {
		// Give concurrent requests a chance to overwrite a shared payload.
		time.Sleep(5 * time.Millisecond)
		return req.Name, nil
	}, http.StatusOK))

	var wg sync.WaitGroup
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		name := name
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/echo/"+name, nil))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `"`+name+`"`, rec.Body.String())
		}()
	}
	wg.Wait()
}
