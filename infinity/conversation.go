package infinity

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Conversation is a stateful wrapper over Chat that threads the
// server-assigned conversation ID through successive messages, so each turn
// sees the history of the previous ones. The history itself lives on the
// server; the wrapper only tracks identifiers.
//
// A Conversation is safe for concurrent use, though interleaving turns from
// multiple goroutines makes the resulting history order server-defined.
type Conversation struct {
	client  *Client
	request ChatRequest

	mu             sync.Mutex
	conversationID string
}

// ConversationOption configures a Conversation.
type ConversationOption func(*Conversation)

// WithUserID attaches a user ID to every turn.
func WithUserID(userID string) ConversationOption {
	return func(c *Conversation) {
		c.request.UserID = userID
	}
}

// WithUserTier attaches a subscription tier to every turn.
func WithUserTier(tier UserTier) ConversationOption {
	return func(c *Conversation) {
		c.request.UserTier = tier
	}
}

// WithMode sets the chat mode for every turn.
func WithMode(mode ChatMode) ConversationOption {
	return func(c *Conversation) {
		c.request.Mode = mode
	}
}

// WithSessionID overrides the generated session ID.
func WithSessionID(sessionID string) ConversationOption {
	return func(c *Conversation) {
		c.request.SessionID = sessionID
	}
}

// NewConversation starts a conversation on the client. A fresh session ID is
// generated unless WithSessionID overrides it; the conversation ID is
// assigned by the server on the first turn.
func (c *Client) NewConversation(opts ...ConversationOption) *Conversation {
	conv := &Conversation{
		client:  c,
		request: ChatRequest{SessionID: uuid.NewString()},
	}

	for _, opt := range opts {
		opt(conv)
	}

	return conv
}

// Send sends one turn and records the conversation ID from the reply.
func (c *Conversation) Send(ctx context.Context, message string) (*ChatResponse, error) {
	req := c.request
	req.Message = message

	c.mu.Lock()
	req.ConversationID = c.conversationID
	c.mu.Unlock()

	resp, err := c.client.Chat(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp.ConversationID != "" {
		c.mu.Lock()
		c.conversationID = resp.ConversationID
		c.mu.Unlock()
	}

	return resp, nil
}

// ID returns the server-assigned conversation ID, empty before the first
// successful turn.
func (c *Conversation) ID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conversationID
}

// SessionID returns the session ID sent with every turn.
func (c *Conversation) SessionID() string {
	return c.request.SessionID
}

// Reset forgets the conversation ID; the next Send starts a new thread under
// the same session.
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conversationID = ""
}
