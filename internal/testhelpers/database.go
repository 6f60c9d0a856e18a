// Package testhelpers builds throwaway databases and servers for tests.
package testhelpers

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/miwebservice/internal/config"
	"github.com/deppfellow/miwebservice/internal/database"
)

// NewTestConfig returns the default configuration pointed at a fresh SQLite file.
func NewTestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Primary.Env = "test"
	cfg.Observability.Environment = "test"
	cfg.Observability.Logging.Level = "error"
	cfg.Database.URL = "sqlite:///" + filepath.Join(t.TempDir(), "test.db")
	return cfg
}

// NewTestDatabase opens a schema-ready SQLite database that is closed on cleanup.
func NewTestDatabase(t *testing.T) *database.Database {
	t.Helper()
	return newDatabase(t, NewTestConfig(t))
}

func newDatabase(t *testing.T, cfg *config.Config) *database.Database {
	t.Helper()

	logger := zerolog.Nop()
	db, err := database.New(cfg, &logger, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.EnsureSchema(context.Background()))
	return db
}
