package errs

import (
	"net/http"
)

// New creates an HTTPError for any status, with a code derived from the status text.
//
// It is the generic "fail with this status and message" helper:
//
//	return nil, errs.New(http.StatusNotFound, "Product not found")
func New(status int, message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message: message,
		Status:  status,
	}
}

// withCode replaces the derived code when the caller supplied one.
func withCode(e *HTTPError, code *string) *HTTPError {
	if code != nil {
		e.Code = *code
	}
	return e
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// code optionally replaces "BAD_REQUEST"; errors carries field errors.
func NewBadRequestError(message string, code *string, errors []FieldError) *HTTPError {
	e := withCode(New(http.StatusBadRequest, message), code)
	e.Errors = errors
	return e
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, code *string) *HTTPError {
	return withCode(New(http.StatusNotFound, message), code)
}

// NewConflictError creates a 409 Conflict HTTPError, used for uniqueness violations.
func NewConflictError(message string, code *string) *HTTPError {
	return withCode(New(http.StatusConflict, message), code)
}

// NewUnprocessableEntityError creates a 422 Unprocessable Entity HTTPError.
//
// This is what request bodies that fail binding or validation produce.
func NewUnprocessableEntityError(message string, errors []FieldError) *HTTPError {
	e := New(http.StatusUnprocessableEntity, message)
	e.Errors = errors
	return e
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is the generic status text, never the underlying error.
func NewInternalServerError() *HTTPError {
	return New(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// ValidationError converts a generic validation error into a 422 HTTPError.
func ValidationError(err error) *HTTPError {
	return NewUnprocessableEntityError("Validation failed: "+err.Error(), nil)
}
