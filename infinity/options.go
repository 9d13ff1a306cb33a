package infinity

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Config holds configuration for the client. Everything here is fixed at
// construction; only the credential can change afterwards, through
// Client.SetAPIKey.
type Config struct {
	// APIKey is the credential sent as X-API-Key. Empty means the header is
	// omitted entirely.
	APIKey Secret

	// BaseURL is the API base URL. Defaults to DefaultBaseURL. A trailing
	// slash is stripped.
	BaseURL string

	// HTTPClient is the HTTP client to use. Defaults to a client with a
	// pooled transport suitable for long-lived streaming responses.
	HTTPClient *http.Client

	// Timeout bounds a single attempt, not a whole retrying operation.
	// Defaults to DefaultTimeout; zero disables the per-attempt bound.
	Timeout time.Duration

	// MaxRetries is the number of retries after the first attempt for rate
	// limits and transport failures. Defaults to DefaultMaxRetries.
	MaxRetries int

	// RetryDelay is the base delay between retries: flat for rate limits
	// without a Retry-After header, linear (delay, 2*delay, ...) for
	// transport failures. Defaults to DefaultRetryDelay.
	RetryDelay time.Duration

	// Headers contains optional extra headers to include in requests.
	Headers http.Header

	// Telemetry receives request lifecycle events. Defaults to a no-op hook.
	Telemetry TelemetryHook

	// Metrics optionally records Prometheus metrics. Nil records nothing.
	Metrics *MetricsCollector

	// Limiter optionally throttles outgoing attempts client-side.
	Limiter *rate.Limiter
}

// Defaults match the hosted API's published client settings.
const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://infinityassistant.io/api"

	// DefaultTimeout bounds a single attempt.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxRetries is the retry budget for rate limits and transport
	// failures.
	DefaultMaxRetries = 3

	// DefaultRetryDelay is the base inter-attempt delay.
	DefaultRetryDelay = time.Second
)

// Option configures the client.
type Option func(*Config)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client. Clients with a non-zero Timeout
// will cut off streaming responses at that deadline.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithTimeout sets the per-attempt timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithMaxRetries sets the retry budget for rate limits and transport
// failures. Zero disables retries.
func WithMaxRetries(n int) Option {
	return func(c *Config) {
		c.MaxRetries = n
	}
}

// WithRetryDelay sets the base inter-attempt delay.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Config) {
		c.RetryDelay = d
	}
}

// WithHeader adds an extra header to include in requests.
func WithHeader(key, value string) Option {
	return func(c *Config) {
		if c.Headers == nil {
			c.Headers = make(http.Header)
		}
		c.Headers.Set(key, value)
	}
}

// WithTelemetry sets the telemetry hook receiving request lifecycle events.
func WithTelemetry(hook TelemetryHook) Option {
	return func(c *Config) {
		if hook != nil {
			c.Telemetry = hook
		}
	}
}

// WithMetrics attaches a Prometheus metrics collector.
func WithMetrics(mc *MetricsCollector) Option {
	return func(c *Config) {
		c.Metrics = mc
	}
}

// WithRateLimit throttles outgoing attempts to ratePerSecond with the given
// burst. Waiting for a token counts against the caller's context, not the
// per-attempt timeout.
func WithRateLimit(ratePerSecond float64, burst int) Option {
	return WithRateLimiter(rate.NewLimiter(rate.Limit(ratePerSecond), burst))
}

// WithRateLimiter installs a custom rate limiter shared with other clients.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *Config) {
		c.Limiter = l
	}
}
