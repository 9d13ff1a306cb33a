package infinity

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"
)

// retryable reports whether err warrants another attempt. Only rate limiting
// and connection-level failures are retried; every other failure is terminal
// no matter how many retries remain.
func retryable(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrNetwork)
}

// nextDelay computes the wait before the next attempt. Rate limits wait the
// server-dictated or configured flat delay with no growth; transport failures
// back off linearly on the configured base delay.
func nextDelay(err error, attempt int, base, retryAfter time.Duration) time.Duration {
	if errors.Is(err, ErrRateLimited) {
		return retryAfter
	}
	return base * time.Duration(attempt+1)
}

// retryAfterOf extracts the wait carried by a rate-limit error. The value
// was already resolved against the Retry-After header when the error was
// built, so the fallback only covers errors constructed elsewhere.
func retryAfterOf(err error, fallback time.Duration) time.Duration {
	var apiErr *APIError
	if errors.As(err, &apiErr) && errors.Is(err, ErrRateLimited) && apiErr.retryAfter > 0 {
		return apiErr.retryAfter
	}
	return fallback
}

// parseRetryAfter interprets a Retry-After header as whole seconds, the only
// form this API sends. Missing or invalid values fall back to the configured
// retry delay.
func parseRetryAfter(header string, fallback time.Duration) time.Duration {
	header = strings.TrimSpace(header)
	if header == "" {
		return fallback
	}
	secs, err := strconv.Atoi(header)
	if err != nil || secs < 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}

// sleep waits for d, aborting early if ctx is canceled.
func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
