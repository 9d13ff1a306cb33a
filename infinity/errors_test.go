package infinity

import (
	"errors"
	"net/http"
	"testing"
)

func TestAPIErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			"with code",
			&APIError{Message: "slow down", Code: CodeRateLimit},
			"RATE_LIMIT: slow down",
		},
		{
			"without code",
			&APIError{Message: "just a message"},
			"just a message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAPIErrorUnwrap(t *testing.T) {
	err := rateLimitError()
	if !errors.Is(err, ErrRateLimited) {
		t.Error("rate limit error does not unwrap to ErrRateLimited")
	}
	if errors.Is(err, ErrTimeout) {
		t.Error("rate limit error unexpectedly matches ErrTimeout")
	}
}

func TestSentinelForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusInternalServerError, ErrServer},
		{http.StatusBadGateway, ErrServer},
		{http.StatusTeapot, ErrServer},
	}

	for _, tt := range tests {
		if got := sentinelForStatus(tt.status); got != tt.want {
			t.Errorf("sentinelForStatus(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestErrorFromBody(t *testing.T) {
	err := errorFromBody(http.StatusNotFound, []byte(`{"message":"no such key","code":"NOT_FOUND"}`))

	if err.Message != "no such key" {
		t.Errorf("Message = %q, want %q", err.Message, "no such key")
	}
	if err.Code != "NOT_FOUND" {
		t.Errorf("Code = %q, want NOT_FOUND", err.Code)
	}
	if err.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", err.StatusCode)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("errors.Is(err, ErrNotFound) = false")
	}
}

func TestErrorFromBodyUnparseable(t *testing.T) {
	err := errorFromBody(http.StatusBadGateway, []byte("upstream says no"))

	if err.Message != "Unknown error" {
		t.Errorf("Message = %q, want %q", err.Message, "Unknown error")
	}
	if err.Response["error"] != "Unknown error" {
		t.Errorf(`Response["error"] = %v, want "Unknown error"`, err.Response["error"])
	}
}

func TestFixedErrorKinds(t *testing.T) {
	rl := rateLimitError()
	if rl.Code != CodeRateLimit || rl.StatusCode != 429 {
		t.Errorf("rate limit error = code %q status %d, want RATE_LIMIT 429", rl.Code, rl.StatusCode)
	}

	to := timeoutError()
	if to.Code != CodeTimeout || to.StatusCode != 408 || to.Message != "Request timeout" {
		t.Errorf("timeout error = %+v, want TIMEOUT/408/Request timeout", to)
	}

	ne := networkError(errors.New("connection refused"))
	if ne.Code != CodeNetworkError || ne.StatusCode != 0 {
		t.Errorf("network error = code %q status %d, want NETWORK_ERROR 0", ne.Code, ne.StatusCode)
	}
	if !errors.Is(ne, ErrNetwork) {
		t.Error("errors.Is(networkError, ErrNetwork) = false")
	}
}
