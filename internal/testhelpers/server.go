package testhelpers

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/deppfellow/miwebservice/internal/server"
)

// NewTestServer returns a Server backed by a fresh SQLite database and a silent logger.
func NewTestServer(t *testing.T) *server.Server {
	t.Helper()

	cfg := NewTestConfig(t)
	logger := zerolog.Nop()
	return server.NewWithDatabase(cfg, &logger, nil, newDatabase(t, cfg))
}
