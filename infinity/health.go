package infinity

import (
	"context"
	"net/http"
)

// healthPath is the liveness probe endpoint.
const healthPath = "/health"

// Health probes the API. The response shape is whatever the server reports;
// callers typically only care that the call succeeds.
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	var resp map[string]any
	if err := c.do(ctx, http.MethodGet, healthPath, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
