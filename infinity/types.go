package infinity

// UserTier identifies the subscription tier attached to a chat request.
type UserTier string

const (
	TierFree       UserTier = "free"
	TierPro        UserTier = "pro"
	TierEnterprise UserTier = "enterprise"
)

// ChatMode selects how the assistant handles a message.
type ChatMode string

const (
	// ModeSearch answers from the knowledge base without generation.
	ModeSearch ChatMode = "search"
	// ModeAssist is the default conversational mode.
	ModeAssist ChatMode = "assist"
	// ModeBuild produces artifacts (code, documents) rather than prose.
	ModeBuild ChatMode = "build"
)

// ResearchDepth controls how far a research request digs.
type ResearchDepth string

const (
	DepthShallow ResearchDepth = "shallow"
	DepthMedium  ResearchDepth = "medium"
	DepthDeep    ResearchDepth = "deep"
)

// ChatRequest holds the parameters for one chat message. Message is the only
// field the server requires; everything else is optional context. The client
// does not validate any of it; malformed input surfaces as a server-reported
// *APIError.
type ChatRequest struct {
	Message        string         `json:"message"`
	ConversationID string         `json:"conversationId,omitempty"`
	UserID         string         `json:"userId,omitempty"`
	UserTier       UserTier       `json:"userTier,omitempty"`
	Mode           ChatMode       `json:"mode,omitempty"`
	UserContext    string         `json:"userContext,omitempty"`
	Preferences    map[string]any `json:"preferences,omitempty"`
	Essence        map[string]any `json:"essence,omitempty"`
	SessionID      string         `json:"sessionId,omitempty"`
	DrivingMode    bool           `json:"drivingMode,omitempty"`
}

// streamChatRequest is the wire form of a streaming chat call. Streaming is
// not caller-selectable through ChatRequest; StreamChat always forces it.
type streamChatRequest struct {
	ChatRequest
	Stream bool `json:"stream"`
}

// ChatResponse is the assistant's reply to a chat request.
type ChatResponse struct {
	Success        bool           `json:"success"`
	Response       string         `json:"response,omitempty"`
	ConversationID string         `json:"conversationId,omitempty"`
	MessageID      string         `json:"messageId,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	Error          string         `json:"error,omitempty"`
}

// KnowledgeSearchRequest queries the knowledge base.
type KnowledgeSearchRequest struct {
	Query   string         `json:"query"`
	Limit   int            `json:"limit,omitempty"`
	Filters map[string]any `json:"filters,omitempty"`
}

// KnowledgeSearchResponse carries knowledge base hits.
type KnowledgeSearchResponse struct {
	Success bool             `json:"success"`
	Results []map[string]any `json:"results,omitempty"`
	Total   int              `json:"total,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// memoryStoreRequest is the wire form of StoreMemory. TTL deliberately has no
// omitempty: the server expects an explicit null when no expiry is set.
type memoryStoreRequest struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
	TTL   *int   `json:"ttl"`
}

// MemoryStoreResponse reports whether a value was stored.
type MemoryStoreResponse struct {
	Success bool   `json:"success"`
	Stored  bool   `json:"stored,omitempty"`
	Error   string `json:"error,omitempty"`
}

// MemoryRetrieveResponse carries a previously stored value. Found is false
// when the key does not exist or has expired.
type MemoryRetrieveResponse struct {
	Success bool   `json:"success"`
	Value   any    `json:"value,omitempty"`
	Found   bool   `json:"found,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ResearchRequest starts a web research task. Sources caps how many sources
// the assistant consults.
type ResearchRequest struct {
	Query   string        `json:"query"`
	Depth   ResearchDepth `json:"depth,omitempty"`
	Sources int           `json:"sources,omitempty"`
}

// ResearchResponse carries research findings.
type ResearchResponse struct {
	Success bool             `json:"success"`
	Results []map[string]any `json:"results,omitempty"`
	Summary string           `json:"summary,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// APIKey describes one provisioned API key. It is the item shape inside the
// map returned by ListAPIKeys; the key management endpoints themselves return
// their bodies undecoded.
type APIKey struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Prefix    string `json:"prefix"`
	CreatedAt string `json:"createdAt"`
	LastUsed  string `json:"lastUsed,omitempty"`
	IsActive  bool   `json:"isActive"`
}

// Webhook describes one registered webhook, the item shape inside the map
// returned by ListWebhooks.
type Webhook struct {
	ID            string   `json:"id"`
	URL           string   `json:"url"`
	Events        []string `json:"events"`
	IsActive      bool     `json:"isActive"`
	CreatedAt     string   `json:"createdAt"`
	LastTriggered string   `json:"lastTriggered,omitempty"`
	FailureCount  int      `json:"failureCount"`
}

// Ptr returns a pointer to v. Convenience for optional scalar fields such as
// the StoreMemory TTL.
func Ptr[T any](v T) *T {
	return &v
}
