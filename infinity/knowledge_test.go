package infinity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchKnowledge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Method = %q, want POST", r.Method)
		}
		if r.URL.Path != "/knowledge/search" {
			t.Errorf("Path = %q, want /knowledge/search", r.URL.Path)
		}

		var req KnowledgeSearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Query != "go generics" {
			t.Errorf("Query = %q, want %q", req.Query, "go generics")
		}
		if req.Limit != 5 {
			t.Errorf("Limit = %d, want 5", req.Limit)
		}

		json.NewEncoder(w).Encode(KnowledgeSearchResponse{
			Success: true,
			Results: []map[string]any{{"title": "Type parameters"}},
			Total:   1,
		})
	}))
	defer server.Close()

	client := New("test-key", WithBaseURL(server.URL))
	defer client.Close()

	resp, err := client.SearchKnowledge(context.Background(), KnowledgeSearchRequest{
		Query: "go generics",
		Limit: 5,
	})
	if err != nil {
		t.Fatalf("SearchKnowledge() error = %v", err)
	}
	if resp.Total != 1 || len(resp.Results) != 1 {
		t.Errorf("resp = %+v, want one result", resp)
	}
}
