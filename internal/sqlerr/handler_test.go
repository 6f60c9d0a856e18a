package sqlerr

import (
	"database/sql"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/miwebservice/internal/errs"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "sqlerr.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE usuarios (
		id_usuario INTEGER PRIMARY KEY AUTOINCREMENT,
		nombre VARCHAR(100) NOT NULL,
		correo VARCHAR(150) NOT NULL UNIQUE
	)`)
	require.NoError(t, err)

	return db
}

func TestHandleError_SQLiteUniqueViolation(t *testing.T) {
	db := openSQLite(t)

	_, err := db.Exec(`INSERT INTO usuarios (nombre, correo) VALUES ('Ana', 'ana@example.com')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO usuarios (nombre, correo) VALUES ('Ana B', 'ana@example.com')`)
	require.Error(t, err)
	assert.Equal(t, UniqueViolation, Convert(err).Code)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, HandleError(errors.Wrap(err, "insert user")), &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Equal(t, "A user with this email already exists", httpErr.Message)
	assert.Equal(t, "USUARIO_ALREADY_EXISTS", httpErr.Code)
}

func TestHandleError_SQLiteNotNullViolation(t *testing.T) {
	db := openSQLite(t)

	_, err := db.Exec(`INSERT INTO usuarios (nombre, correo) VALUES (NULL, 'x@example.com')`)
	require.Error(t, err)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, HandleError(err), &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "The name is required", httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "nombre", httpErr.Errors[0].Field)
}

func TestHandleError_PgErrors(t *testing.T) {
	tests := []struct {
		name    string
		pgErr   *pgconn.PgError
		status  int
		message string
	}{
		{
			name: "unique violation",
			pgErr: &pgconn.PgError{
				Code:           "23505",
				Severity:       "ERROR",
				TableName:      "usuarios",
				ConstraintName: "usuarios_correo_key",
			},
			status:  http.StatusConflict,
			message: "A user with this email already exists",
		},
		{
			name: "not null violation",
			pgErr: &pgconn.PgError{
				Code:       "23502",
				TableName:  "productos",
				ColumnName: "precio",
			},
			status:  http.StatusBadRequest,
			message: "The price is required",
		},
		{
			name: "check violation",
			pgErr: &pgconn.PgError{
				Code:      "23514",
				TableName: "productos",
			},
			status:  http.StatusBadRequest,
			message: "One or more values do not meet required conditions",
		},
		{
			name:    "unmapped code",
			pgErr:   &pgconn.PgError{Code: "42P01"},
			status:  http.StatusInternalServerError,
			message: http.StatusText(http.StatusInternalServerError),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var httpErr *errs.HTTPError
			require.ErrorAs(t, HandleError(fmt.Errorf("exec: %w", tc.pgErr)), &httpErr)
			assert.Equal(t, tc.status, httpErr.Status)
			assert.Equal(t, tc.message, httpErr.Message)
		})
	}
}

func TestHandleError_NoRows(t *testing.T) {
	var httpErr *errs.HTTPError

	require.ErrorAs(t, HandleError(errors.Wrap(sql.ErrNoRows, "table:productos:get")), &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Product not found", httpErr.Message)

	require.ErrorAs(t, HandleError(sql.ErrNoRows), &httpErr)
	assert.Equal(t, "Resource not found", httpErr.Message)
}

func TestHandleError_PassesThroughHTTPErrors(t *testing.T) {
	original := errs.NewNotFoundError("User not found", nil)
	assert.Same(t, original, HandleError(original))
}

func TestHandleError_UnknownIsInternal(t *testing.T) {
	var httpErr *errs.HTTPError
	require.ErrorAs(t, HandleError(errors.New("boom")), &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.NotContains(t, httpErr.Message, "boom")
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "correo", extractColumnForUniqueViolation("usuarios_correo_key"))
	assert.Equal(t, "correo", extractColumnForUniqueViolation("unique_usuarios_correo"))
	assert.Equal(t, "", extractColumnForUniqueViolation("pk"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}
