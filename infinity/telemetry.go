package infinity

import "time"

// TelemetryHook receives notifications about request lifecycle events.
// Implementations can use this for logging, metrics, or tracing.
//
// Event types are designed to NEVER include sensitive data:
//   - the API key is never included (it is held as a Secret)
//   - message content and response content are never included
//   - only operational metadata is exposed (method, path, timing, status)
//
// If extending this interface, maintain these properties. Never add fields
// that could carry the credential, request bodies, or response bodies.
type TelemetryHook interface {
	// OnRequestStart is called when an attempt begins, including each retry.
	OnRequestStart(e RequestStartEvent)

	// OnRequestEnd is called when an attempt completes.
	OnRequestEnd(e RequestEndEvent)

	// OnRetry is called after a failed attempt has been scheduled for
	// another try, before the delay elapses.
	OnRetry(e RetryEvent)
}

// RequestStartEvent contains metadata about a starting attempt.
type RequestStartEvent struct {
	Method  string    // HTTP method
	Path    string    // API path (no query string, which may hold user data)
	Attempt int       // zero-based attempt counter
	Start   time.Time // when the attempt started
}

// RequestEndEvent contains metadata about a completed attempt.
type RequestEndEvent struct {
	Method     string    // HTTP method
	Path       string    // API path
	Attempt    int       // zero-based attempt counter
	StatusCode int       // HTTP status, zero when no response arrived
	Start      time.Time // when the attempt started
	End        time.Time // when the attempt completed
	Err        error     // error for this attempt, nil on success
}

// Duration returns the elapsed time for the attempt.
func (e RequestEndEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// RetryEvent contains metadata about a scheduled retry.
type RetryEvent struct {
	Method  string        // HTTP method
	Path    string        // API path
	Attempt int           // zero-based attempt that just failed
	Delay   time.Duration // wait before the next attempt
	Err     error         // the failure that triggered the retry
}

// NoopTelemetryHook is a no-op implementation of TelemetryHook.
// Use this as a default when no telemetry is configured.
type NoopTelemetryHook struct{}

// OnRequestStart does nothing.
func (NoopTelemetryHook) OnRequestStart(RequestStartEvent) {}

// OnRequestEnd does nothing.
func (NoopTelemetryHook) OnRequestEnd(RequestEndEvent) {}

// OnRetry does nothing.
func (NoopTelemetryHook) OnRetry(RetryEvent) {}

// Compile-time check that NoopTelemetryHook implements TelemetryHook.
var _ TelemetryHook = NoopTelemetryHook{}
