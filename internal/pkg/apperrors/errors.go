package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// Transport and HTTP errors
	ErrTransport = errors.New("transport error")
	ErrHTTP      = errors.New("unexpected http status")
	ErrNotFound  = errors.New("resource not found")

	// Authentication errors
	ErrUnauthorized     = errors.New("unauthorized")
	ErrTokenNotFound    = errors.New("token not found")
	ErrTokenInvalid     = errors.New("invalid token")
	ErrLogoutInProgress = errors.New("logout already in progress")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Player errors
	ErrPlayerNotReady = errors.New("player api not ready")
	ErrScriptLoad     = errors.New("player script failed to load")
)

// HTTPError is returned when the backend answers with a non-2xx status.
// The body is kept verbatim so callers can render backend messages.
type HTTPError struct {
	Method string
	URL    string
	Status int
	Body   []byte
}

// Error implements error interface
func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.Status)
}

// Is lets errors.Is match ErrHTTP for every status and ErrNotFound / ErrUnauthorized
// for their specific statuses.
func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrHTTP:
		return true
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	}
	return false
}

// TransportError wraps a failure to reach the backend at all.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// Error implements error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap implements errors.Unwrap interface
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is matches ErrTransport
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// StatusCode extracts the HTTP status carried by err, or 0 when err is not an HTTPError.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return 0
}

// IsNotFound reports whether err is a backend 404
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Is returns whether err matches target or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewValidationError wraps ErrValidationFailed with a message
func NewValidationError(message string) *CustomError {
	return NewCustomError(ErrValidationFailed, message)
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
