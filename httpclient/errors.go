package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode classifies adapter errors.
type ErrorCode int

const (
	// ErrCodeTimeout indicates a request or connection timeout.
	ErrCodeTimeout ErrorCode = iota
	// ErrCodeConnection indicates a transport failure with no response
	// (refused, DNS, broken pipe).
	ErrCodeConnection
	// ErrCodeCancelled indicates the caller cancelled the request.
	ErrCodeCancelled
	// ErrCodeAuth indicates an authentication/authorization failure (401/403).
	ErrCodeAuth
	// ErrCodeNotFound indicates the resource was not found (404).
	ErrCodeNotFound
	// ErrCodeRateLimit indicates rate limiting (429).
	ErrCodeRateLimit
	// ErrCodeValidation indicates a client-side or 4xx validation error.
	ErrCodeValidation
	// ErrCodeServer indicates a server-side error (5xx).
	ErrCodeServer
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeConnection:
		return "connection"
	case ErrCodeCancelled:
		return "cancelled"
	case ErrCodeAuth:
		return "auth"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeRateLimit:
		return "rate_limit"
	case ErrCodeValidation:
		return "validation"
	case ErrCodeServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is the single error shape this layer produces. Backend failures
// carry StatusCode and a Message extracted from the response body;
// transport-level failures carry StatusCode 0.
type Error struct {
	// StatusCode is the HTTP status code (0 when no response arrived).
	StatusCode int
	// Code classifies the error.
	Code ErrorCode
	// Message describes the error. For backend failures this is the
	// backend-provided message when one exists in the body.
	Message string
	// Retryable indicates whether the operation can be retried.
	Retryable bool
	// Body is the original response body (may be nil).
	Body []byte
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(err error) *Error {
	return &Error{Code: ErrCodeTimeout, Message: err.Error(), Retryable: true, Err: err}
}

// NewConnectionError creates a connection error.
func NewConnectionError(err error) *Error {
	return &Error{Code: ErrCodeConnection, Message: err.Error(), Retryable: true, Err: err}
}

// NewCancelledError creates a cancellation error.
func NewCancelledError(err error) *Error {
	return &Error{Code: ErrCodeCancelled, Message: "request cancelled", Retryable: false, Err: err}
}

// NewValidationError creates a client-side validation error.
func NewValidationError(msg string) *Error {
	return &Error{Code: ErrCodeValidation, Message: msg, Retryable: false}
}

// ClassifyStatusCode converts a non-2xx HTTP status code into a typed
// error, extracting the backend message from the body when present.
// Returns nil for 2xx status codes.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	e := &Error{
		StatusCode: statusCode,
		Message:    messageFromBody(body, statusCode),
		Body:       body,
	}
	switch {
	case statusCode == 401 || statusCode == 403:
		e.Code = ErrCodeAuth
	case statusCode == 404:
		e.Code = ErrCodeNotFound
	case statusCode == 429:
		e.Code = ErrCodeRateLimit
		e.Retryable = true
	case statusCode >= 400 && statusCode < 500:
		e.Code = ErrCodeValidation
	default:
		e.Code = ErrCodeServer
		e.Retryable = statusCode >= 500
	}
	return e
}

// messageFromBody extracts a backend-provided message from a JSON error
// body. Falls back to a generic "HTTP <code>" message.
func messageFromBody(body []byte, statusCode int) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if len(body) > 0 && json.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return fmt.Sprintf("HTTP %d", statusCode)
}

// IsHTTPError checks if an error is a backend failure (response received).
func IsHTTPError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.StatusCode > 0
}

// IsTransport checks if an error is a no-response transport failure.
func IsTransport(err error) bool {
	var e *Error
	return errors.As(err, &e) && (e.Code == ErrCodeConnection || e.Code == ErrCodeTimeout)
}

// IsCancelled checks if an error is a caller cancellation.
func IsCancelled(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeCancelled
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeNotFound
}

// IsRateLimit checks if an error is a rate-limit error.
func IsRateLimit(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeRateLimit
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}

// StatusCode returns the HTTP status code carried by err, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}
