// Package errors provides structured error handling with context propagation and HTTP status code mapping.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the category of error for metrics and response formatting.
type ErrorType string

const (
	// TypeValidation indicates a malformed inbound payload (HTTP 400)
	TypeValidation ErrorType = "validation"
	// TypeUnauthorized indicates a failed static-token check (HTTP 401)
	TypeUnauthorized ErrorType = "unauthorized"
	// TypeLookup indicates an unknown key in static configuration (HTTP 500)
	TypeLookup ErrorType = "lookup"
	// TypeConfiguration indicates invalid startup configuration
	TypeConfiguration ErrorType = "configuration"
	// TypeRemote indicates a failing or misbehaving upstream service (HTTP 502)
	TypeRemote ErrorType = "remote"
	// TypeInternal indicates server-side error (HTTP 500)
	TypeInternal ErrorType = "internal"
)

// Error represents a structured error with type, message, and context.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for this error type.
func (e *Error) HTTPStatus() int {
	switch e.Type {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeUnauthorized:
		return http.StatusUnauthorized
	case TypeRemote:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func newError(t ErrorType, message string, cause error) *Error {
	return &Error{
		Type:    t,
		Message: message,
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// ValidationError creates a new validation error (HTTP 400).
func ValidationError(message string, cause error) *Error {
	return newError(TypeValidation, message, cause)
}

// UnauthorizedError creates a new unauthorized error (HTTP 401).
func UnauthorizedError(message string) *Error {
	return newError(TypeUnauthorized, message, nil)
}

// LookupError creates a new lookup error for unknown configuration keys.
func LookupError(message string, cause error) *Error {
	return newError(TypeLookup, message, cause)
}

// ConfigurationError creates a new startup configuration error.
func ConfigurationError(message string, cause error) *Error {
	return newError(TypeConfiguration, message, cause)
}

// RemoteServiceError creates a new upstream service error (HTTP 502).
// service names the upstream, e.g. "sentiment" or "slack".
func RemoteServiceError(service, message string, cause error) *Error {
	return newError(TypeRemote, message, cause).WithContext("service", service)
}

// InternalError creates a new internal error (HTTP 500).
func InternalError(message string, cause error) *Error {
	return newError(TypeInternal, message, cause)
}

// WithContext adds context fields to the error (chainable).
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// ErrorResponse represents the JSON structure sent to clients.
// Context stays server-side; upstream bodies may carry credentials.
type ErrorResponse struct {
	Error string    `json:"error"`
	Type  ErrorType `json:"type"`
}

// ToResponse converts an Error to a generic ErrorResponse.
func (e *Error) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error: http.StatusText(e.HTTPStatus()),
		Type:  e.Type,
	}
}

// IsType reports whether err wraps a structured error of type t.
func IsType(err error, t ErrorType) bool {
	var structuredErr *Error
	if !errors.As(err, &structuredErr) {
		return false
	}
	return structuredErr.Type == t
}

// AsStructuredError converts any error into a structured Error.
// If err is already an *Error, returns it unchanged.
// Otherwise wraps it as an internal error.
func AsStructuredError(err error) *Error {
	if err == nil {
		return nil
	}

	var structuredErr *Error
	if errors.As(err, &structuredErr) {
		return structuredErr
	}

	return InternalError("internal server error", err)
}
