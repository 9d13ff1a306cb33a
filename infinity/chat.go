package infinity

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

// chatPath is the endpoint for both chat and streaming chat.
const chatPath = "/chat"

// Chat sends one chat message and waits for the complete reply.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var resp ChatResponse
	if err := c.do(ctx, http.MethodPost, chatPath, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StreamChat sends one chat message and returns the reply as a ChatStream of
// decoded chunks. The request always carries stream=true; callers cannot
// opt out through ChatRequest.
//
// Streaming requests are issued once, with no retry loop, and are bounded by
// ctx rather than the per-attempt timeout, which would sever long-lived
// streams mid-reply. A non-2xx status fails before any chunk is produced,
// with the same error construction as the non-streaming path.
func (c *Client) StreamChat(ctx context.Context, req ChatRequest) (*ChatStream, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(streamChatRequest{ChatRequest: req, Stream: true})
	if err != nil {
		return nil, &APIError{
			Message: "Failed to encode request body: " + err.Error(),
			Err:     ErrDecode,
		}
	}

	if c.cfg.Limiter != nil {
		if err := c.cfg.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	c.cfg.Telemetry.OnRequestStart(RequestStartEvent{
		Method: http.MethodPost,
		Path:   chatPath,
		Start:  start,
	})
	c.cfg.Metrics.RecordRequestStart(http.MethodPost, chatPath)
	defer c.cfg.Metrics.RecordRequestEnd(http.MethodPost, chatPath)

	resp, err := c.openStream(ctx, payload)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	end := time.Now()
	c.cfg.Metrics.RecordRequest(http.MethodPost, chatPath, status, end.Sub(start))
	c.cfg.Telemetry.OnRequestEnd(RequestEndEvent{
		Method:     http.MethodPost,
		Path:       chatPath,
		StatusCode: status,
		Start:      start,
		End:        end,
		Err:        err,
	})

	if err != nil {
		c.cfg.Metrics.RecordError(metricErrorType(err), http.MethodPost, chatPath)
		return nil, err
	}
	return newChatStream(resp.Body, c.cfg.Metrics), nil
}

// openStream issues the streaming request and validates the status before
// handing the open body over. On failure the body is always consumed and
// closed here.
func (c *Client) openStream(ctx context.Context, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(chatPath, nil), bytes.NewReader(payload))
	if err != nil {
		return nil, networkError(err)
	}
	req.Header = c.buildHeaders()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if isTimeout(err) {
			return nil, timeoutError()
		}
		return nil, networkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, errorFromBody(resp.StatusCode, body)
	}

	return resp, nil
}
