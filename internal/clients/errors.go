package clients

import (
	"errors"
	"fmt"
)

// ProxyError represents the failure kinds surfaced by the upstream proxies
type ProxyError struct {
	Type    ErrorType
	Message string
	Status  int
	Cause   error
}

type ErrorType int

const (
	ErrorTypeGeneral ErrorType = iota
	ErrorTypeValidation
	ErrorTypeConfiguration
	ErrorTypeTimeout
	ErrorTypeUpstream
	ErrorTypeNetwork
	ErrorTypeInvalidResponse
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeValidation:
		return "validation"
	case ErrorTypeConfiguration:
		return "configuration"
	case ErrorTypeTimeout:
		return "timeout"
	case ErrorTypeUpstream:
		return "upstream"
	case ErrorTypeNetwork:
		return "network"
	case ErrorTypeInvalidResponse:
		return "invalid_response"
	default:
		return "general"
	}
}

func (e *ProxyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ProxyError) Unwrap() error {
	return e.Cause
}

// TypeOf returns the ErrorType carried by err, or ErrorTypeGeneral
func TypeOf(err error) ErrorType {
	var proxyErr *ProxyError
	if errors.As(err, &proxyErr) {
		return proxyErr.Type
	}
	return ErrorTypeGeneral
}

// IsValidationError checks if the error was raised before any upstream call because of bad input
func IsValidationError(err error) bool {
	return TypeOf(err) == ErrorTypeValidation
}

// IsConfigurationError checks if the error is caused by missing server-side configuration
func IsConfigurationError(err error) bool {
	return TypeOf(err) == ErrorTypeConfiguration
}

// IsTimeoutError checks if the upstream call exceeded its deadline
func IsTimeoutError(err error) bool {
	return TypeOf(err) == ErrorTypeTimeout
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *ProxyError {
	return &ProxyError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(message string) *ProxyError {
	return &ProxyError{
		Type:    ErrorTypeConfiguration,
		Message: message,
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(message string, cause error) *ProxyError {
	return &ProxyError{
		Type:    ErrorTypeTimeout,
		Message: message,
		Cause:   cause,
	}
}

// NewUpstreamError creates a new error for a non-success upstream response
func NewUpstreamError(status int, message string) *ProxyError {
	return &ProxyError{
		Type:    ErrorTypeUpstream,
		Message: message,
		Status:  status,
	}
}

// NewNetworkError creates a new network error
func NewNetworkError(message string, cause error) *ProxyError {
	return &ProxyError{
		Type:    ErrorTypeNetwork,
		Message: message,
		Cause:   cause,
	}
}

// NewInvalidResponseError creates a new error for an upstream body that could not be decoded
func NewInvalidResponseError(message string, cause error) *ProxyError {
	return &ProxyError{
		Type:    ErrorTypeInvalidResponse,
		Message: message,
		Cause:   cause,
	}
}
