// Package domain provides canonical error types for the event planner.
package domain

import (
	"fmt"
	"net/http"
)

// ErrorType represents the category of a tool error.
type ErrorType string

const (
	// ErrorTypeInvalidParams indicates the tool was invoked with parameters
	// it cannot act on, or a downstream call it made on the caller's behalf
	// failed. This is the only error kind surfaced during normal operation.
	ErrorTypeInvalidParams ErrorType = "invalid_params"

	// ErrorTypeAuthentication indicates a bearer token failure.
	ErrorTypeAuthentication ErrorType = "authentication"

	// ErrorTypeInternal indicates an unexpected server-side failure.
	ErrorTypeInternal ErrorType = "internal"
)

// ToolError is the canonical error returned from tool handlers. Heterogeneous
// downstream failures (network errors, malformed provider responses) are
// collapsed into a single ToolError carrying the cause as free text.
type ToolError struct {
	// Type is the category of error.
	Type ErrorType `json:"type"`

	// Message is the human-readable error message.
	Message string `json:"message"`

	// Cause is the underlying error, if any. Not serialized.
	Cause error `json:"-"`
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *ToolError) Unwrap() error {
	return e.Cause
}

// HTTPStatusCode returns the appropriate HTTP status code for this error.
func (e *ToolError) HTTPStatusCode() int {
	switch e.Type {
	case ErrorTypeInvalidParams:
		return http.StatusBadRequest
	case ErrorTypeAuthentication:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// ErrInvalidParams creates an invalid-params error.
func ErrInvalidParams(message string) *ToolError {
	return &ToolError{Type: ErrorTypeInvalidParams, Message: message}
}

// ErrInvalidParamsWrap creates an invalid-params error that records cause for
// unwrapping while exposing only the formatted message to the caller.
func ErrInvalidParamsWrap(message string, cause error) *ToolError {
	return &ToolError{Type: ErrorTypeInvalidParams, Message: message, Cause: cause}
}

// ErrInternal creates an internal error.
func ErrInternal(message string) *ToolError {
	return &ToolError{Type: ErrorTypeInternal, Message: message}
}
