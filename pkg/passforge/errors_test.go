package passforge

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteError_Error(t *testing.T) {
	err := &RemoteError{
		StatusCode: http.StatusUnauthorized,
		Message:    "bad key",
	}

	assert.Equal(t, "bad key", err.Error())
}

func TestNewRemoteError(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		statusText string
		body       []byte
		expected   string
	}{
		{
			name:       "message extracted from body",
			statusCode: 401,
			statusText: "Unauthorized",
			body:       []byte(`{"message": "bad key"}`),
			expected:   "bad key",
		},
		{
			name:       "unparseable body falls back to status",
			statusCode: 500,
			statusText: "Internal Server Error",
			body:       []byte(`<html>oops</html>`),
			expected:   "HTTP 500: Internal Server Error",
		},
		{
			name:       "body without message falls back to status",
			statusCode: 502,
			statusText: "Bad Gateway",
			body:       []byte(`{"error": "upstream"}`),
			expected:   "HTTP 502: Bad Gateway",
		},
		{
			name:       "empty body falls back to status",
			statusCode: 503,
			statusText: "Service Unavailable",
			body:       nil,
			expected:   "HTTP 503: Service Unavailable",
		},
		{
			name:       "missing status text is derived from the code",
			statusCode: 404,
			statusText: "",
			body:       []byte(``),
			expected:   "HTTP 404: Not Found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRemoteError(tt.statusCode, tt.statusText, tt.body)
			require.NotNil(t, err)
			assert.Equal(t, tt.statusCode, err.StatusCode)
			assert.Equal(t, tt.expected, err.Message)
		})
	}
}

func TestRemoteError_Is(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		target     error
		expected   bool
	}{
		{"401 is unauthorized", http.StatusUnauthorized, ErrUnauthorized, true},
		{"403 is unauthorized", http.StatusForbidden, ErrUnauthorized, true},
		{"404 is not found", http.StatusNotFound, ErrNotFound, true},
		{"429 is quota exceeded", http.StatusTooManyRequests, ErrQuotaExceeded, true},
		{"500 is not unauthorized", http.StatusInternalServerError, ErrUnauthorized, false},
		{"404 is not quota exceeded", http.StatusNotFound, ErrQuotaExceeded, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &RemoteError{StatusCode: tt.statusCode, Message: "whatever"}
			assert.Equal(t, tt.expected, errors.Is(err, tt.target))
		})
	}
}

func TestIsTimeout(t *testing.T) {
	assert.True(t, IsTimeout(ErrTimeout))
	assert.True(t, IsTimeout(fmt.Errorf("%w after 10s", ErrTimeout)))
	assert.False(t, IsTimeout(errors.New("some error")))
	assert.False(t, IsTimeout(nil))
}

func TestIsInvalidCredential(t *testing.T) {
	assert.True(t, IsInvalidCredential(ErrInvalidCredential))
	assert.True(t, IsInvalidCredential(fmt.Errorf("%w: must be at least 10 characters", ErrInvalidCredential)))
	assert.False(t, IsInvalidCredential(errors.New("some error")))
}

func TestIsInvalidRequest(t *testing.T) {
	assert.True(t, IsInvalidRequest(fmt.Errorf("%w: request path is empty", ErrInvalidRequest)))
	assert.False(t, IsInvalidRequest(errors.New("some error")))
}

func TestIsUnauthorized(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "remote 401",
			err:      &RemoteError{StatusCode: http.StatusUnauthorized},
			expected: true,
		},
		{
			name:     "remote 403",
			err:      &RemoteError{StatusCode: http.StatusForbidden},
			expected: true,
		},
		{
			name:     "wrapped remote 401",
			err:      fmt.Errorf("getting usage: %w", &RemoteError{StatusCode: http.StatusUnauthorized}),
			expected: true,
		},
		{
			name:     "remote 404",
			err:      &RemoteError{StatusCode: http.StatusNotFound},
			expected: false,
		},
		{
			name:     "other error type",
			err:      errors.New("some error"),
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsUnauthorized(tt.err))
		})
	}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "remote 404",
			err:      &RemoteError{StatusCode: http.StatusNotFound},
			expected: true,
		},
		{
			name:     "wrapped remote 404",
			err:      fmt.Errorf("getting team info: %w", &RemoteError{StatusCode: http.StatusNotFound}),
			expected: true,
		},
		{
			name:     "remote 500",
			err:      &RemoteError{StatusCode: http.StatusInternalServerError},
			expected: false,
		},
		{
			name:     "other error type",
			err:      errors.New("some error"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFound(tt.err))
		})
	}
}

func TestIsQuotaExceeded(t *testing.T) {
	assert.True(t, IsQuotaExceeded(&RemoteError{StatusCode: http.StatusTooManyRequests}))
	assert.True(t, IsQuotaExceeded(fmt.Errorf("generating password: %w", &RemoteError{StatusCode: http.StatusTooManyRequests})))
	assert.False(t, IsQuotaExceeded(&RemoteError{StatusCode: http.StatusBadRequest}))
	assert.False(t, IsQuotaExceeded(errors.New("some error")))
}

func TestParseError(t *testing.T) {
	inner := errors.New("invalid character '<' looking for beginning of value")
	err := &ParseError{Err: inner}

	assert.Equal(t, "unable to parse response: invalid character '<' looking for beginning of value", err.Error())
	assert.Equal(t, inner, err.Unwrap())
	assert.True(t, IsParseError(err))
	assert.True(t, IsParseError(fmt.Errorf("parsing usage response: %w", err)))
	assert.False(t, IsParseError(errors.New("some error")))
}

func TestAsRemoteError(t *testing.T) {
	remote := &RemoteError{StatusCode: http.StatusBadRequest, Message: "length out of range"}

	extracted := AsRemoteError(fmt.Errorf("generating password: %w", remote))
	require.NotNil(t, extracted)
	assert.Equal(t, http.StatusBadRequest, extracted.StatusCode)
	assert.Equal(t, "length out of range", extracted.Message)

	assert.Nil(t, AsRemoteError(errors.New("some error")))
	assert.Nil(t, AsRemoteError(nil))
}
