package dto

import (
	"fmt"
	"time"

	"github.com/amrelfalogy/smarted/internal/app/models/dto/enums"
)

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Code      enums.ErrorCode     `json:"code" example:"RES_001"`
	Message   string              `json:"message" example:"Resource not found"`
	Field     string              `json:"field,omitempty"`
	Severity  enums.ErrorSeverity `json:"severity" example:"ERROR"`
	Details   interface{}         `json:"details,omitempty"`
	DebugInfo string              `json:"debugInfo,omitempty"`
}

// ErrorResponse represents the standard gateway error response
type ErrorResponse struct {
	Success   bool         `json:"success" example:"false"`
	Error     *ErrorDetail `json:"error"`
	Timestamp time.Time    `json:"timestamp"`
}

// ProxyErrorResponse is returned by the proxy when the backend cannot be reached.
type ProxyErrorResponse struct {
	Error   string `json:"error" example:"Proxy request failed"`
	Details string `json:"details" example:"dial tcp 127.0.0.1:3000: connect: connection refused"`
}

// NewErrorDetail creates a new error detail
func NewErrorDetail(code enums.ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{
		Code:     code,
		Message:  message,
		Severity: enums.ErrorSeverityError,
	}
}

// WithField adds a field name to the error detail
func (e *ErrorDetail) WithField(field string) *ErrorDetail {
	e.Field = field
	return e
}

// WithDetails adds additional details to the error
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// WithDebugInfo adds debug information (for development/testing only)
func (e *ErrorDetail) WithDebugInfo(format string, args ...interface{}) *ErrorDetail {
	e.DebugInfo = fmt.Sprintf(format, args...)
	return e
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(errorDetail *ErrorDetail) *ErrorResponse {
	return &ErrorResponse{
		Success:   false,
		Error:     errorDetail,
		Timestamp: time.Now(),
	}
}
