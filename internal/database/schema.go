package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
)

// schemaFS holds one directory per dialect. Each file is a single statement,
// executed as-is in file name order.
//
//go:embed schema
var schemaFS embed.FS

// schemaStatements returns the DDL statements for a dialect in execution order.
func schemaStatements(dialect Dialect) ([]string, error) {
	dir := path.Join("schema", string(dialect))

	entries, err := fs.ReadDir(schemaFS, dir)
	if err != nil {
		return nil, fmt.Errorf("no schema for dialect %q: %w", dialect, err)
	}

	statements := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}
		stmt, err := fs.ReadFile(schemaFS, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		statements = append(statements, string(stmt))
	}

	return statements, nil
}

// EnsureSchema creates the usuarios and productos tables when they are missing.
//
// Existing tables are left untouched; there is no migration of mismatched schemas.
func (db *Database) EnsureSchema(ctx context.Context) error {
	statements, err := schemaStatements(db.Dialect)
	if err != nil {
		return err
	}

	for _, stmt := range statements {
		if _, err := db.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	db.log.Info().Str("dialect", string(db.Dialect)).Int("statements", len(statements)).Msg("database schema ready")
	return nil
}
