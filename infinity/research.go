package infinity

import (
	"context"
	"net/http"
)

// researchPath is the endpoint for research tasks.
const researchPath = "/research"

// Research runs a web research task and waits for the findings.
func (c *Client) Research(ctx context.Context, req ResearchRequest) (*ResearchResponse, error) {
	var resp ResearchResponse
	if err := c.do(ctx, http.MethodPost, researchPath, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
