package core

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType categorizes client errors so callers can decide between retry
// and abort without string matching.
type ErrorType int

const (
	// ErrorTypeUnknown indicates an unclassified error.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeConfiguration indicates missing or placeholder credentials,
	// or an otherwise unusable client configuration. Detected pre-flight,
	// before any network activity.
	ErrorTypeConfiguration
	// ErrorTypeTimeout indicates the call exceeded its wall-clock bound.
	ErrorTypeTimeout
	// ErrorTypeTransport indicates a connection-level failure with no HTTP
	// status available.
	ErrorTypeTransport
	// ErrorTypeAPI indicates the exchange returned an HTTP error status.
	ErrorTypeAPI
	// ErrorTypeDecode indicates a response body that is not valid JSON
	// despite a success status.
	ErrorTypeDecode
)

// String returns the string representation of the error type.
func (t ErrorType) String() string {
	return [...]string{
		"UNKNOWN",
		"CONFIGURATION",
		"TIMEOUT",
		"TRANSPORT",
		"API",
		"DECODE",
	}[t]
}

// Sentinel errors for common pre-flight conditions.
var (
	// ErrNoCredentials is returned when a signed endpoint is called without
	// usable credentials.
	ErrNoCredentials = errors.New("no credentials configured")
	// ErrTradingDisabled is returned when a trading endpoint is called
	// without the explicit trading opt-in.
	ErrTradingDisabled = errors.New("trading endpoints are disabled; enable with Config.WithTrading(true)")
	// ErrCircuitBreakerOpen is returned when the circuit breaker refuses a
	// call.
	ErrCircuitBreakerOpen = errors.New("circuit breaker is open")
)

// ClientError is a structured error surfaced by the client. Depending on
// Type it carries the HTTP status code, the exchange error code and message,
// or the raw response body for diagnostics.
type ClientError struct {
	// Type categorizes the error for programmatic handling.
	Type ErrorType `json:"type"`
	// StatusCode is the HTTP status code, when one was received.
	StatusCode int `json:"status_code,omitempty"`
	// Code is the exchange-specific error code, e.g. -2014.
	Code int `json:"code,omitempty"`
	// Message is the human-readable description.
	Message string `json:"message"`
	// RawBody holds the unparsed response body for decode failures.
	RawBody []byte `json:"raw_body,omitempty"`
	// Timestamp is when the error occurred.
	Timestamp time.Time `json:"timestamp"`
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	switch {
	case e.Code != 0:
		return fmt.Sprintf("[asterdex] %s (%d/%d): %s", e.Type, e.StatusCode, e.Code, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("[asterdex] %s (%d): %s", e.Type, e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("[asterdex] %s: %s", e.Type, e.Message)
	}
}

// NewError creates a ClientError of the given type.
func NewError(errorType ErrorType, message string) *ClientError {
	return &ClientError{
		Type:      errorType,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewConfigurationError creates a pre-flight configuration error wrapping
// the given cause.
func NewConfigurationError(cause error) *ClientError {
	return NewError(ErrorTypeConfiguration, cause.Error())
}

// NewAPIError creates an error for an exchange-reported failure.
func NewAPIError(statusCode, code int, message string) *ClientError {
	e := NewError(ErrorTypeAPI, message)
	e.StatusCode = statusCode
	e.Code = code
	return e
}

// NewDecodeError creates an error for an undecodable success response,
// preserving the raw body.
func NewDecodeError(rawBody []byte, cause error) *ClientError {
	e := NewError(ErrorTypeDecode, fmt.Sprintf("decode response: %v", cause))
	e.RawBody = rawBody
	return e
}

// AsClientError unwraps err into a *ClientError if possible.
func AsClientError(err error) (*ClientError, bool) {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsConfigurationError returns true for pre-flight configuration failures.
func IsConfigurationError(err error) bool {
	return hasType(err, ErrorTypeConfiguration)
}

// IsTimeoutError returns true when the call exceeded its deadline. Timeout
// errors may be retryable, but trading calls must not be retried blindly.
func IsTimeoutError(err error) bool {
	return hasType(err, ErrorTypeTimeout)
}

// IsTransportError returns true for connection-level failures.
func IsTransportError(err error) bool {
	return hasType(err, ErrorTypeTransport)
}

// IsAPIError returns true when the exchange rejected the request.
func IsAPIError(err error) bool {
	return hasType(err, ErrorTypeAPI)
}

// IsDecodeError returns true when a success response carried invalid JSON.
func IsDecodeError(err error) bool {
	return hasType(err, ErrorTypeDecode)
}

func hasType(err error, t ErrorType) bool {
	if ce, ok := AsClientError(err); ok {
		return ce.Type == t
	}
	return false
}
