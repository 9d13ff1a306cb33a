package infinity

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/brianonbased-dev/infinity-assistant/internal/sse"
)

// ChunkType discriminates the kinds of streaming chat chunks.
type ChunkType string

const (
	// ChunkText carries a piece of the assistant's reply.
	ChunkText ChunkType = "text"
	// ChunkMetadata carries structured metadata about the reply.
	ChunkMetadata ChunkType = "metadata"
	// ChunkDone marks the normal end of a stream.
	ChunkDone ChunkType = "done"
	// ChunkError marks an abnormal end of a stream.
	ChunkError ChunkType = "error"
)

// StreamChunk is one decoded unit of a streaming chat response. Exactly one
// of Content, Metadata, and Error is populated, according to Type; Done
// chunks carry nothing.
type StreamChunk struct {
	Type     ChunkType      `json:"type"`
	Content  string         `json:"content,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// doneMarker ends a stream in the wire protocol.
const doneMarker = "[DONE]"

// streamFrame is the decoded form of one data frame.
type streamFrame struct {
	Type     string         `json:"type"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata"`
	Error    string         `json:"error"`
}

// ChatStream is a pull-based iterator over the chunks of one streaming chat
// response. It is single-pass and not restartable; each StreamChat call
// opens a fresh stream. A ChatStream is not safe for concurrent Next calls,
// but Close may be called from any goroutine to release the connection.
//
// Every stream yields exactly one terminal chunk, Done or Error, even when
// the server closes the connection abruptly. After the terminal chunk has
// been consumed, Next returns the Done sentinel.
type ChatStream struct {
	body    io.Closer
	scanner *sse.Scanner
	metrics *MetricsCollector

	// pending holds a metadata chunk decoded from a frame that also
	// carried text; it is delivered on the following Next call.
	pending *StreamChunk

	mu       sync.Mutex
	closed   bool
	finished bool
}

// newChatStream wraps the body of an already-validated streaming response.
func newChatStream(body io.ReadCloser, metrics *MetricsCollector) *ChatStream {
	return &ChatStream{
		body:    body,
		scanner: sse.NewScanner(body),
		metrics: metrics,
	}
}

// Next returns the next chunk. It returns the Done sentinel once the
// terminal chunk has been consumed and ErrStreamClosed after Close.
func (s *ChatStream) Next() (StreamChunk, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return StreamChunk{}, ErrStreamClosed
	}
	if s.finished {
		s.mu.Unlock()
		return StreamChunk{}, Done
	}
	s.mu.Unlock()

	if s.pending != nil {
		chunk := *s.pending
		s.pending = nil
		s.metrics.RecordStreamChunk(string(chunk.Type))
		return chunk, nil
	}

	for {
		payload, err := s.scanner.Next()
		if err != nil {
			// An abrupt close still terminates the stream cleanly; any
			// other read failure is surfaced as a terminal error chunk.
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return s.terminal(StreamChunk{Type: ChunkDone}), nil
			}
			return s.terminal(StreamChunk{Type: ChunkError, Error: err.Error()}), nil
		}

		if payload == doneMarker {
			return s.terminal(StreamChunk{Type: ChunkDone}), nil
		}

		var frame streamFrame
		if err := json.Unmarshal([]byte(payload), &frame); err != nil {
			// Malformed or partial frame; skip it.
			continue
		}

		if frame.Type == "error" {
			msg := frame.Error
			if msg == "" {
				msg = "Unknown error"
			}
			return s.terminal(StreamChunk{Type: ChunkError, Error: msg}), nil
		}

		// Text and metadata are independent; one frame may carry both, in
		// which case the metadata chunk is queued for the next call.
		var chunk *StreamChunk
		if frame.Content != "" {
			chunk = &StreamChunk{Type: ChunkText, Content: frame.Content}
		}
		if len(frame.Metadata) > 0 {
			meta := StreamChunk{Type: ChunkMetadata, Metadata: frame.Metadata}
			if chunk == nil {
				chunk = &meta
			} else {
				s.pending = &meta
			}
		}
		if chunk == nil {
			continue
		}

		s.metrics.RecordStreamChunk(string(chunk.Type))
		return *chunk, nil
	}
}

// terminal records the final chunk, marks the stream exhausted, and releases
// the connection.
func (s *ChatStream) terminal(chunk StreamChunk) StreamChunk {
	s.mu.Lock()
	s.finished = true
	s.mu.Unlock()

	s.body.Close()
	s.metrics.RecordStreamChunk(string(chunk.Type))
	return chunk
}

// Drain consumes the rest of the stream, concatenating the text chunks. A
// terminal Error chunk is returned as an error alongside the text collected
// before it.
func (s *ChatStream) Drain() (string, error) {
	var b strings.Builder
	for {
		chunk, err := s.Next()
		if errors.Is(err, Done) {
			return b.String(), nil
		}
		if err != nil {
			return b.String(), err
		}

		switch chunk.Type {
		case ChunkText:
			b.WriteString(chunk.Content)
		case ChunkDone:
			return b.String(), nil
		case ChunkError:
			return b.String(), &APIError{Message: chunk.Error, Err: ErrStream}
		}
	}
}

// Close releases the underlying connection. It is idempotent and safe to
// call while another goroutine blocks in Next; that Next observes the closed
// body and terminates.
func (s *ChatStream) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	return s.body.Close()
}

var _ io.Closer = (*ChatStream)(nil)
