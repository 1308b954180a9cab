package http

import (
	"fmt"
	"net/http"
)

// Error codes returned in ErrorBody.Error.
const (
	CodeMissingConfiguration = "missing-configuration"
	CodeInvalidRequest       = "invalid-request"
	CodeSummarizationFailed  = "summarization-failed"
	CodeTooManyRequests      = "too-many-requests"
	CodeInternal             = "internal-error"
)

// AppError represents application-level error with HTTP status.
type AppError struct {
	Code    string `json:"error"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new application error.
func NewAppError(code, message string, status int) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
	}
}

// WithError wraps an underlying error.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// MissingConfigurationError creates a 500 error for absent credentials.
func MissingConfigurationError(message string) *AppError {
	return NewAppError(CodeMissingConfiguration, message, http.StatusInternalServerError)
}

// BadRequestError creates a 400 error.
func BadRequestError(message string) *AppError {
	return NewAppError(CodeInvalidRequest, message, http.StatusBadRequest)
}

// BadGatewayError creates a 502 error for failed upstream services.
func BadGatewayError(code, message string) *AppError {
	return NewAppError(code, message, http.StatusBadGateway)
}

// InternalError creates a 500 error.
func InternalError(message string) *AppError {
	return NewAppError(CodeInternal, message, http.StatusInternalServerError)
}
