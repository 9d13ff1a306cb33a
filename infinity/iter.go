//go:build go1.23

package infinity

import (
	"errors"
	"iter"
)

// All returns the remaining chunks as a range-over-func iterator. The stream
// is closed when iteration stops, including early breaks:
//
//	for chunk, err := range stream.All() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Print(chunk.Content)
//	}
//
// The terminal Done chunk is yielded; the Done sentinel itself is not.
func (s *ChatStream) All() iter.Seq2[StreamChunk, error] {
	return func(yield func(StreamChunk, error) bool) {
		defer s.Close()

		for {
			chunk, err := s.Next()
			if errors.Is(err, Done) {
				return
			}
			if !yield(chunk, err) {
				return
			}
			if err != nil {
				return
			}
		}
	}
}
