package infinity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"
)

// APIKeyEnvVar is the environment variable NewFromEnv reads the credential
// from.
const APIKeyEnvVar = "INFINITY_ASSISTANT_API_KEY"

// ErrAPIKeyNotFound is returned by NewFromEnv when the environment variable
// is not set.
var ErrAPIKeyNotFound = errors.New("infinity: " + APIKeyEnvVar + " environment variable not set")

// Client is an Infinity Assistant API client. It owns one pooled transport
// shared by every call and is safe for concurrent use; create it once and
// reuse it.
type Client struct {
	cfg        Config
	httpClient *http.Client

	mu     sync.RWMutex // guards apiKey and closed
	apiKey Secret
	closed bool
}

// New creates a client with the given API key. An empty key is valid; the
// X-API-Key header is then omitted and only unauthenticated endpoints will
// succeed.
func New(apiKey string, opts ...Option) *Client {
	cfg := Config{
		APIKey:     NewSecret(apiKey),
		BaseURL:    DefaultBaseURL,
		Timeout:    DefaultTimeout,
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
		Telemetry:  NoopTelemetryHook{},
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = newPooledHTTPClient()
	}

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		apiKey:     cfg.APIKey,
	}
}

// NewFromEnv creates a client using the INFINITY_ASSISTANT_API_KEY
// environment variable and fails with ErrAPIKeyNotFound when it is unset.
func NewFromEnv(opts ...Option) (*Client, error) {
	apiKey := os.Getenv(APIKeyEnvVar)
	if apiKey == "" {
		return nil, ErrAPIKeyNotFound
	}
	return New(apiKey, opts...), nil
}

// newPooledHTTPClient builds the default transport: pooled connections with
// no client-level timeout, so streaming responses are never cut off. The
// per-attempt timeout is applied through request contexts instead.
func newPooledHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: time.Second,
			ForceAttemptHTTP2:     true,
		},
	}
}

// SetAPIKey replaces the credential. Only subsequent requests are affected;
// attempts already in flight keep the key they started with.
func (c *Client) SetAPIKey(apiKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = NewSecret(apiKey)
}

// APIKey returns the current credential, redaction-wrapped. Use Expose to
// read the raw value.
func (c *Client) APIKey() Secret {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey
}

// BaseURL returns the configured base URL with its trailing slash stripped.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// Close releases idle connections and makes every subsequent call fail with
// ErrClientClosed. Streams already open keep their connection until their
// own Close.
func (c *Client) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.httpClient.CloseIdleConnections()
	return nil
}

// checkOpen returns ErrClientClosed after Close.
func (c *Client) checkOpen() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}

// buildHeaders constructs the headers for one attempt. The credential is
// read fresh each time so a SetAPIKey swap lands on the next attempt.
func (c *Client) buildHeaders() http.Header {
	headers := make(http.Header)
	headers.Set("Content-Type", "application/json")

	if key := c.APIKey(); !key.IsEmpty() {
		headers.Set("X-API-Key", key.Expose())
	}

	for key, values := range c.cfg.Headers {
		for _, v := range values {
			headers.Add(key, v)
		}
	}

	return headers
}

// buildURL joins the base URL, path, and optional query string.
func (c *Client) buildURL(path string, query url.Values) string {
	u := c.cfg.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do executes one API operation: build, send, classify, retry. On success
// the response body is decoded into out (skipped when out is nil); every
// failure is a *APIError or a context error.
//
// Only 429 responses and connection-level failures are retried. 429 waits
// the server's Retry-After (integer seconds) or the flat configured delay;
// transport failures back off linearly. Any other non-2xx status fails
// immediately regardless of remaining budget, and a timed-out attempt is
// terminal. The retry loop is bounded; only the attempt counter carries
// across iterations.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.checkOpen(); err != nil {
		return err
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return &APIError{
				Message: "Failed to encode request body: " + err.Error(),
				Err:     ErrDecode,
			}
		}
	}

	for attempt := 0; ; attempt++ {
		result, status, err := c.attempt(ctx, method, path, query, payload, attempt)
		if err == nil {
			if out == nil {
				return nil
			}
			// A decode failure on a 2xx body is reported as such even when
			// the caller's context is cancelled concurrently; the request
			// itself succeeded.
			if uerr := json.Unmarshal(result, out); uerr != nil {
				derr := decodeError(status, uerr)
				c.cfg.Metrics.RecordError(metricErrorType(derr), method, path)
				return derr
			}
			return nil
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !retryable(err) || attempt >= c.cfg.MaxRetries {
			c.cfg.Metrics.RecordError(metricErrorType(err), method, path)
			return err
		}

		delay := nextDelay(err, attempt, c.cfg.RetryDelay, retryAfterOf(err, c.cfg.RetryDelay))
		c.cfg.Telemetry.OnRetry(RetryEvent{
			Method:  method,
			Path:    path,
			Attempt: attempt,
			Delay:   delay,
			Err:     err,
		})
		c.cfg.Metrics.RecordRetry(method, path, attempt)

		if serr := sleep(ctx, delay); serr != nil {
			return serr
		}
	}
}

// attempt performs exactly one HTTP round trip and returns the raw body and
// status of a 2xx response. Failures come back pre-classified as *APIError
// values.
func (c *Client) attempt(ctx context.Context, method, path string, query url.Values, payload []byte, attempt int) ([]byte, int, error) {
	if c.cfg.Limiter != nil {
		if err := c.cfg.Limiter.Wait(ctx); err != nil {
			return nil, 0, err
		}
	}

	attemptCtx := ctx
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(attemptCtx, method, c.buildURL(path, query), bodyReader)
	if err != nil {
		return nil, 0, networkError(err)
	}
	req.Header = c.buildHeaders()

	start := time.Now()
	c.cfg.Telemetry.OnRequestStart(RequestStartEvent{
		Method:  method,
		Path:    path,
		Attempt: attempt,
		Start:   start,
	})
	c.cfg.Metrics.RecordRequestStart(method, path)

	resp, err := c.httpClient.Do(req)

	status := 0
	var respBody []byte
	if err == nil {
		status = resp.StatusCode
		respBody, err = io.ReadAll(resp.Body)
		resp.Body.Close()
	}

	end := time.Now()
	outcome := c.classify(ctx, status, respHeader(resp), respBody, err)

	c.cfg.Metrics.RecordRequestEnd(method, path)
	c.cfg.Metrics.RecordRequest(method, path, status, end.Sub(start))
	c.cfg.Telemetry.OnRequestEnd(RequestEndEvent{
		Method:     method,
		Path:       path,
		Attempt:    attempt,
		StatusCode: status,
		Start:      start,
		End:        end,
		Err:        outcome,
	})

	if outcome != nil {
		return nil, status, outcome
	}
	return respBody, status, nil
}

// classify maps one attempt's raw outcome to nil (success) or a typed error,
// in the priority order rate limit, HTTP error, timeout, transport failure.
func (c *Client) classify(ctx context.Context, status int, header http.Header, body []byte, err error) error {
	if err != nil {
		// Parent cancellation is the caller's signal, not a transport
		// condition.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if isTimeout(err) {
			return timeoutError()
		}
		return networkError(err)
	}

	switch {
	case status == http.StatusTooManyRequests:
		e := rateLimitError()
		e.retryAfter = parseRetryAfter(header.Get("Retry-After"), c.cfg.RetryDelay)
		return e
	case status < 200 || status >= 300:
		return errorFromBody(status, body)
	default:
		return nil
	}
}

// isTimeout reports whether err is the per-attempt deadline firing.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// respHeader tolerates a nil response from a failed round trip.
func respHeader(resp *http.Response) http.Header {
	if resp == nil {
		return nil
	}
	return resp.Header
}
