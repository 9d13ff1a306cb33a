package infinity

import (
	"context"
	"net/http"
	"net/url"
)

// Management endpoints.
const (
	apiKeysPath  = "/api-keys"
	webhooksPath = "/webhooks"
)

// Management operations return their bodies as undecoded maps; the server's
// list envelopes are not part of the published API surface. APIKey and
// Webhook document the item shapes found inside them.

// ListAPIKeys lists the account's API keys.
func (c *Client) ListAPIKeys(ctx context.Context) (map[string]any, error) {
	var resp map[string]any
	if err := c.do(ctx, http.MethodGet, apiKeysPath, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateAPIKey provisions a new API key with the given display name. The
// full key value appears only in this response.
func (c *Client) CreateAPIKey(ctx context.Context, name string) (map[string]any, error) {
	body := map[string]string{"name": name}

	var resp map[string]any
	if err := c.do(ctx, http.MethodPost, apiKeysPath, nil, body, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// DeleteAPIKey revokes an API key by ID.
func (c *Client) DeleteAPIKey(ctx context.Context, id string) (map[string]any, error) {
	query := url.Values{"id": {id}}

	var resp map[string]any
	if err := c.do(ctx, http.MethodDelete, apiKeysPath, query, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ListWebhooks lists the account's registered webhooks.
func (c *Client) ListWebhooks(ctx context.Context) (map[string]any, error) {
	var resp map[string]any
	if err := c.do(ctx, http.MethodGet, webhooksPath, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateWebhook registers a webhook URL for the given event names.
func (c *Client) CreateWebhook(ctx context.Context, webhookURL string, events []string) (map[string]any, error) {
	body := map[string]any{"url": webhookURL, "events": events}

	var resp map[string]any
	if err := c.do(ctx, http.MethodPost, webhooksPath, nil, body, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// DeleteWebhook removes a webhook by ID.
func (c *Client) DeleteWebhook(ctx context.Context, id string) (map[string]any, error) {
	query := url.Values{"id": {id}}

	var resp map[string]any
	if err := c.do(ctx, http.MethodDelete, webhooksPath, query, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
