package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "precio", "error": "must be greater than or equal to 0" }
type FieldError struct {
	// Field is the JSON name of the offending field (e.g. "precio").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the error type handlers and services return to abort a request.
//
// Returning one short-circuits the request: the global error handler turns it
// into a failure envelope with Status as the HTTP status code.
//   - Code: machine-friendly error code (e.g. "NOT_FOUND"), logged only.
//   - Message: human-friendly message sent to the client.
//   - Status: HTTP status code.
//   - Errors: per-field errors (validation only).
type HTTPError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Status  int          `json:"status"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError, regardless of its fields.
// It lets callers test errors.Is(err, &HTTPError{}) for "already classified".
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
