package infinity

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Error codes set by the client for transport-level failures. Codes reported
// by the server pass through APIError.Code unchanged.
const (
	CodeRateLimit    = "RATE_LIMIT"
	CodeTimeout      = "TIMEOUT"
	CodeNetworkError = "NETWORK_ERROR"
)

// APIError represents a failed API call with full context.
type APIError struct {
	// Message is the human-readable error description, taken from the
	// server's error body when one was received.
	Message string

	// Code is the machine-readable error code, when known.
	Code string

	// StatusCode is the HTTP status of the failing response. It is 408 for
	// attempt timeouts and 0 for connection-level failures that never
	// produced a response.
	StatusCode int

	// Response is the decoded JSON error body, when one was received.
	Response map[string]any

	// Err is the sentinel this error matches for errors.Is.
	Err error

	// retryAfter carries the server-dictated wait from a 429 response to
	// the retry loop.
	retryAfter time.Duration
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying sentinel for error chaining.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Sentinel errors for classification.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrRateLimited  = errors.New("rate limited")
	ErrBadRequest   = errors.New("bad request")
	ErrNotFound     = errors.New("not found")
	ErrServer       = errors.New("server error")
	ErrNetwork      = errors.New("network error")
	ErrTimeout      = errors.New("request timeout")
	ErrDecode       = errors.New("decode error")
	ErrStream       = errors.New("stream error")
)

var (
	// ErrClientClosed is returned by every operation after Client.Close.
	ErrClientClosed = errors.New("infinity: client is closed")

	// ErrStreamClosed is returned by ChatStream.Next after ChatStream.Close.
	ErrStreamClosed = errors.New("infinity: stream is closed")

	// Done is returned by ChatStream.Next once the terminal chunk has been
	// consumed, like io.EOF for readers.
	Done = errors.New("infinity: stream done")
)

// sentinelForStatus maps an HTTP status code to a sentinel error.
func sentinelForStatus(status int) error {
	switch {
	case status == http.StatusBadRequest:
		return ErrBadRequest
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusTooManyRequests:
		return ErrRateLimited
	case status >= 500:
		return ErrServer
	default:
		return ErrServer
	}
}

// errorFromBody builds the APIError for a non-2xx, non-429 response. The body
// is decoded as JSON; when that fails a synthetic {"error": "Unknown error"}
// body is substituted so the error path itself cannot fail.
func errorFromBody(status int, body []byte) *APIError {
	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil || data == nil {
		data = map[string]any{"error": "Unknown error"}
	}

	message := stringField(data, "message")
	if message == "" {
		message = stringField(data, "error")
	}
	if message == "" {
		message = "Request failed"
	}

	return &APIError{
		Message:    message,
		Code:       stringField(data, "code"),
		StatusCode: status,
		Response:   data,
		Err:        sentinelForStatus(status),
	}
}

// rateLimitError is produced when 429 responses outlast the retry budget.
func rateLimitError() *APIError {
	return &APIError{
		Message:    "Rate limit exceeded. Please try again later.",
		Code:       CodeRateLimit,
		StatusCode: http.StatusTooManyRequests,
		Err:        ErrRateLimited,
	}
}

// timeoutError is produced when a single attempt exceeds the configured
// timeout. Timeouts are terminal; they are never retried.
func timeoutError() *APIError {
	return &APIError{
		Message:    "Request timeout",
		Code:       CodeTimeout,
		StatusCode: http.StatusRequestTimeout,
		Err:        ErrTimeout,
	}
}

// networkError wraps a transport failure that outlasted the retry budget.
func networkError(err error) *APIError {
	return &APIError{
		Message: fmt.Sprintf("Network error: %v", err),
		Code:    CodeNetworkError,
		Err:     ErrNetwork,
	}
}

// decodeError wraps a malformed body on an otherwise successful response.
func decodeError(status int, err error) *APIError {
	return &APIError{
		Message:    fmt.Sprintf("Failed to decode response body: %v", err),
		StatusCode: status,
		Err:        ErrDecode,
	}
}

func stringField(data map[string]any, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}
