package infinity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilMetricsCollectorIsSafe(t *testing.T) {
	var mc *MetricsCollector

	// None of these may panic.
	mc.RecordRequest(http.MethodGet, "/health", 200, time.Millisecond)
	mc.RecordRequestStart(http.MethodGet, "/health")
	mc.RecordRequestEnd(http.MethodGet, "/health")
	mc.RecordRetry(http.MethodGet, "/health", 0)
	mc.RecordError("network", http.MethodGet, "/health")
	mc.RecordStreamChunk("text")
}

func TestMetricsRecordedThroughClient(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{}`))
			return
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	registry := prometheus.NewRegistry()
	mc := NewMetricsCollectorWithRegistry(registry)

	client := New("test-key",
		WithBaseURL(server.URL),
		WithMaxRetries(2),
		WithRetryDelay(time.Millisecond),
		WithMetrics(mc),
	)
	defer client.Close()

	if _, err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health() error = %v", err)
	}

	if got := testutil.ToFloat64(mc.requestsTotal.WithLabelValues(http.MethodGet, "429", "/health")); got != 1 {
		t.Errorf("requests_total{429} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(mc.requestsTotal.WithLabelValues(http.MethodGet, "200", "/health")); got != 1 {
		t.Errorf("requests_total{200} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(mc.retriesTotal.WithLabelValues(http.MethodGet, "/health", "0")); got != 1 {
		t.Errorf("retries_total{attempt 0} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(mc.requestsInFlight.WithLabelValues(http.MethodGet, "/health")); got != 0 {
		t.Errorf("requests_in_flight = %v, want 0 after completion", got)
	}
}

func TestStreamChunkMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	mc := NewMetricsCollectorWithRegistry(registry)

	s := streamOf("data: {\"content\":\"hi\"}\ndata: [DONE]\n")
	s.metrics = mc
	defer s.Close()

	collect(t, s)

	if got := testutil.ToFloat64(mc.streamChunksTotal.WithLabelValues("text")); got != 1 {
		t.Errorf("stream_chunks_total{text} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(mc.streamChunksTotal.WithLabelValues("done")); got != 1 {
		t.Errorf("stream_chunks_total{done} = %v, want 1", got)
	}
}

func TestMetricErrorType(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{rateLimitError(), "rate_limit"},
		{timeoutError(), "timeout"},
		{networkError(context.DeadlineExceeded), "network"},
		{decodeError(200, context.Canceled), "decode"},
		{errorFromBody(500, []byte(`{}`)), "api"},
		{context.Canceled, "canceled"},
	}

	for _, tt := range tests {
		if got := metricErrorType(tt.err); got != tt.want {
			t.Errorf("metricErrorType(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
