package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"modernc.org/sqlite"

	"github.com/deppfellow/miwebservice/internal/errs"
)

// entityNames gives tables the singular, client-facing name used in messages.
var entityNames = map[string]string{
	"productos": "product",
	"usuarios":  "user",
}

// fieldNames gives columns the client-facing name used in messages.
var fieldNames = map[string]string{
	"correo": "email",
	"nombre": "name",
	"precio": "price",
}

// uniqueKeyRe matches the "<table>_<column>_key" constraint naming convention.
var uniqueKeyRe = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// ErrCode reports the Code of err if it wraps an *Error, Other otherwise.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	return Other
}

// Convert normalizes a driver error into *Error.
// It returns nil when err carries no recognised driver error.
func Convert(err error) *Error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ConvertPgError(pgErr)
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return ConvertSQLiteError(liteErr)
	}

	return nil
}

// generateErrorCode creates "application error codes" from DB errors:
//
//	usuarios + UniqueViolation => USUARIO_ALREADY_EXISTS
//
// These codes are meant for logs and machines, not humans.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage produces an end-user-facing error message.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		// "identifier" is replaced by the column name when it can be inferred.
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := getFieldName(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		if fieldName := getFieldName(sqlErr.ColumnName); fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName infers an entity name from table/column data.
//
//  1. A known table uses its entity name ("usuarios" -> "user").
//  2. A column ending with "_id" names the referenced entity ("user_id" -> "user").
//  3. Otherwise the table name, crudely singularized.
//  4. Otherwise "record".
func getEntityName(tableName, columnName string) string {
	if name, ok := entityNames[strings.ToLower(tableName)]; ok {
		return name
	}

	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		return strings.ToLower(humanizeText(strings.TrimSuffix(strings.ToLower(columnName), "_id")))
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return strings.ToLower(humanizeText(entity))
	}

	return "record"
}

// getFieldName maps a column to its client-facing field name.
func getFieldName(columnName string) string {
	if name, ok := fieldNames[strings.ToLower(columnName)]; ok {
		return name
	}
	return strings.ToLower(humanizeText(columnName))
}

// humanizeText converts snake_case into Title Case words.
//
//	"first_name" -> "First Name"
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation infers the column name from a unique constraint name.
//
//  1. "unique_<table>_<column>"        e.g. unique_usuarios_correo -> "correo"
//  2. "<table>_<column>_(key|ukey)"    e.g. usuarios_correo_key   -> "correo"
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if matches := uniqueKeyRe.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts a low-level database error into an application-level error.
//
//   - *errs.HTTPError: returned unchanged
//   - unique violation: 409 Conflict
//   - foreign key / not null / check violation: 400 Bad Request
//   - no rows: 404 Not Found
//   - anything else: 500 Internal Server Error
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	if sqlErr := Convert(err); sqlErr != nil {
		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(userMessage, &errorCode, nil)

		case UniqueViolation:
			column := sqlErr.ColumnName
			if column == "" {
				column = extractColumnForUniqueViolation(sqlErr.ConstraintName)
			}
			if column != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", getFieldName(column))
			}
			return errs.NewConflictError(userMessage, &errorCode)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, &errorCode, fieldErrors)

		case CheckViolation:
			return errs.NewBadRequestError(userMessage, &errorCode, nil)

		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		// Repositories prefix lookups with "table:<name>:" so the entity can be named.
		errMsg := err.Error()
		tablePrefix := "table:"
		if strings.Contains(errMsg, tablePrefix) {
			table := strings.Split(strings.Split(errMsg, tablePrefix)[1], ":")[0]
			entityName := cases.Title(language.English).String(getEntityName(table, ""))
			return errs.NewNotFoundError(fmt.Sprintf("%s not found", entityName), nil)
		}
		return errs.NewNotFoundError("Resource not found", nil)
	}

	return errs.NewInternalServerError()
}
