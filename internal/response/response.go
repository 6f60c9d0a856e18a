// Package response defines the JSON envelope every API response is wrapped in.
//
// Successful responses carry:
//
//	{ "success": true, "message": "...", "data": ... }
//
// Failures carry success=false, a message, and optional field errors.
package response

import "github.com/deppfellow/miwebservice/internal/errs"

// Envelope is the success wrapper. Data is always present, even when null.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// OK wraps data in a successful envelope.
func OK[T any](message string, data T) Envelope[T] {
	return Envelope[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// Failure is the error wrapper written by the global error handler.
type Failure struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  []errs.FieldError `json:"errors,omitempty"`
}

// Fail builds a failure envelope from an HTTPError.
//
// The machine-readable code stays in the logs; clients only see the message.
func Fail(err *errs.HTTPError) Failure {
	return Failure{
		Success: false,
		Message: err.Message,
		Errors:  err.Errors,
	}
}
