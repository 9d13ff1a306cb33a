// Package sse extracts server-sent event data frames from a line-oriented
// byte stream.
package sse

import (
	"bufio"
	"io"
	"strings"
)

// dataPrefix is the exact frame prefix the API emits, space included.
const dataPrefix = "data: "

// Scanner returns the payload of successive "data: " frames, skipping
// framing noise (blank lines, comments, other SSE fields). Scanner is not
// safe for concurrent use.
type Scanner struct {
	r *bufio.Reader
}

// NewScanner wraps r for frame-by-frame reading.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: bufio.NewReader(r)}
}

// Next returns the payload of the next data frame. It returns io.EOF when
// the stream ends cleanly; any other error comes from the underlying reader.
func (s *Scanner) Next() (string, error) {
	for {
		line, err := s.r.ReadString('\n')
		if err != nil {
			// A final frame without a trailing newline still counts.
			if err == io.EOF && line != "" {
				if payload, ok := framePayload(line); ok {
					return payload, nil
				}
			}
			return "", err
		}

		if payload, ok := framePayload(line); ok {
			return payload, nil
		}
	}
}

// framePayload strips the frame envelope from one line. The bool is false
// for anything that is not a data frame.
func framePayload(line string) (string, bool) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, dataPrefix) {
		return "", false
	}
	return line[len(dataPrefix):], true
}
