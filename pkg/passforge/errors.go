package passforge

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// RemoteError represents a non-2xx response from the PassForge API.
type RemoteError struct {
	StatusCode int    `json:"statusCode" yaml:"statusCode"`
	Message    string `json:"message"    yaml:"message"`
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	return e.Message
}

// Is maps remote status codes onto the package sentinel errors so callers
// can test with errors.Is instead of inspecting status codes.
func (e *RemoteError) Is(target error) bool {
	switch {
	case errors.Is(target, ErrUnauthorized):
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case errors.Is(target, ErrNotFound):
		return e.StatusCode == http.StatusNotFound
	case errors.Is(target, ErrQuotaExceeded):
		return e.StatusCode == http.StatusTooManyRequests
	}

	return false
}

// ParseError represents a 2xx response whose body could not be decoded as JSON.
type ParseError struct {
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to parse response: %v", e.Err)
}

// Unwrap returns the underlying decode error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired    = errors.New("config is required")
	ErrInvalidCredential = errors.New("invalid API key")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrTimeout           = errors.New("request timed out")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotFound          = errors.New("not found")
	ErrQuotaExceeded     = errors.New("quota exceeded")
)

// errorBody is the error envelope the API returns for failed requests.
type errorBody struct {
	Message string `json:"message"`
}

// NewRemoteError builds a RemoteError from a response status and body. The
// message is taken from the body's "message" field when present; otherwise it
// falls back to "HTTP <code>: <status text>".
func NewRemoteError(statusCode int, statusText string, body []byte) *RemoteError {
	var envelope errorBody

	err := json.Unmarshal(body, &envelope)
	if err == nil && envelope.Message != "" {
		return &RemoteError{StatusCode: statusCode, Message: envelope.Message}
	}

	if statusText == "" {
		statusText = http.StatusText(statusCode)
	}

	return &RemoteError{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("HTTP %d: %s", statusCode, statusText),
	}
}

// IsTimeout checks if the error was caused by the configured request timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsInvalidCredential checks if the error was caused by a missing or malformed API key.
func IsInvalidCredential(err error) bool {
	return errors.Is(err, ErrInvalidCredential)
}

// IsInvalidRequest checks if the error was caused by malformed call arguments.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// IsUnauthorized checks if the error is an authentication or authorization failure.
func IsUnauthorized(err error) bool {
	remoteErr := &RemoteError{}
	if errors.As(err, &remoteErr) {
		return remoteErr.StatusCode == http.StatusUnauthorized || remoteErr.StatusCode == http.StatusForbidden
	}

	return false
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	remoteErr := &RemoteError{}
	if errors.As(err, &remoteErr) {
		return remoteErr.StatusCode == http.StatusNotFound
	}

	return false
}

// IsQuotaExceeded checks if the error is a rate or quota limit error.
func IsQuotaExceeded(err error) bool {
	remoteErr := &RemoteError{}
	if errors.As(err, &remoteErr) {
		return remoteErr.StatusCode == http.StatusTooManyRequests
	}

	return false
}

// IsParseError checks if the error came from decoding a malformed success response.
func IsParseError(err error) bool {
	parseErr := &ParseError{}

	return errors.As(err, &parseErr)
}

// AsRemoteError extracts the RemoteError from an error chain, or nil.
func AsRemoteError(err error) *RemoteError {
	remoteErr := &RemoteError{}
	if errors.As(err, &remoteErr) {
		return remoteErr
	}

	return nil
}
