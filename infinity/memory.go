package infinity

import (
	"context"
	"net/http"
	"net/url"
)

// Memory endpoints.
const (
	memoryStorePath    = "/memory/store"
	memoryRetrievePath = "/memory/retrieve"
)

// StoreMemory stores a value in the assistant's memory under key. A nil ttl
// means no expiry and is sent as an explicit JSON null, which is what the
// server expects.
func (c *Client) StoreMemory(ctx context.Context, key string, value any, ttl *int) (*MemoryStoreResponse, error) {
	req := memoryStoreRequest{Key: key, Value: value, TTL: ttl}

	var resp MemoryStoreResponse
	if err := c.do(ctx, http.MethodPost, memoryStorePath, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RetrieveMemory fetches a previously stored value. A missing or expired key
// is not an error; the response reports Found false.
func (c *Client) RetrieveMemory(ctx context.Context, key string) (*MemoryRetrieveResponse, error) {
	query := url.Values{"key": {key}}

	var resp MemoryRetrieveResponse
	if err := c.do(ctx, http.MethodGet, memoryRetrievePath, query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
