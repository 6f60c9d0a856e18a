package sqlerr

import (
	"regexp"
	"strconv"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// sqliteColumnRe extracts "<table>.<column>" from SQLite constraint messages such as
// "UNIQUE constraint failed: usuarios.correo".
var sqliteColumnRe = regexp.MustCompile(`constraint failed: (\w+)\.(\w+)`)

// MapSQLiteCode maps an extended SQLite result code to a Code.
func MapSQLiteCode(code int) Code {
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return UniqueViolation
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return NotNullViolation
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return ForeignKeyViolation
	case sqlite3.SQLITE_CONSTRAINT_CHECK:
		return CheckViolation
	default:
		return Other
	}
}

// ConvertSQLiteError converts a modernc sqlite error into our Error.
//
// SQLite reports no structured table/column fields, so they are parsed out of
// the message. The constraint name is synthesized as "<table>_<column>_key",
// the PostgreSQL convention, so the rest of the package treats both alike.
func ConvertSQLiteError(src *sqlite.Error) *Error {
	out := &Error{
		Code:         MapSQLiteCode(src.Code()),
		Severity:     SeverityError,
		DatabaseCode: strconv.Itoa(src.Code()),
		Message:      src.Error(),
		driverErr:    src,
	}

	if m := sqliteColumnRe.FindStringSubmatch(src.Error()); len(m) == 3 {
		out.TableName = m[1]
		out.ColumnName = m[2]
		out.ConstraintName = m[1] + "_" + m[2] + "_key"
	}

	return out
}
