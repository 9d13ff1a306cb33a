package infinity

import (
	"context"
	"net/http"
)

// knowledgeSearchPath is the endpoint for knowledge base queries.
const knowledgeSearchPath = "/knowledge/search"

// SearchKnowledge queries the assistant's knowledge base.
func (c *Client) SearchKnowledge(ctx context.Context, req KnowledgeSearchRequest) (*KnowledgeSearchResponse, error) {
	var resp KnowledgeSearchResponse
	if err := c.do(ctx, http.MethodPost, knowledgeSearchPath, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
