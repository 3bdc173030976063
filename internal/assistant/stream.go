package assistant

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Stream is a finite, non-restartable pull iterator over the fragments of a
// streamed chat-completion reply. It parses server-sent "data:" events off
// the wire and yields the delta content of each chunk.
//
// Typical use:
//
//	stream, err := client.Stream(ctx, messages)
//	if err != nil { ... }
//	defer stream.Close()
//	for {
//	    fragment, ok := stream.Next()
//	    if !ok {
//	        break
//	    }
//	    // relay fragment
//	}
//	if err := stream.Err(); err != nil { ... }
//
// A Stream is not safe for concurrent use.
type Stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner

	err  error
	done bool
}

func newStream(body io.ReadCloser) *Stream {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Stream{body: body, scanner: scanner}
}

// Next returns the next reply fragment. ok is false once the stream is
// exhausted, either normally (the "[DONE]" sentinel or EOF) or on error;
// check Err after the loop to distinguish the two.
func (s *Stream) Next() (fragment string, ok bool) {
	if s.done {
		return "", false
	}

	for s.scanner.Scan() {
		line := s.scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" {
			continue
		}
		if data == "[DONE]" {
			s.done = true
			return "", false
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			// malformed keep-alive or comment payload, skip it
			continue
		}
		if chunk.Error != nil {
			s.done = true
			s.err = fmt.Errorf("%w: %s", ErrAPIError, chunk.Error.Message)
			return "", false
		}
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}

		return chunk.Choices[0].Delta.Content, true
	}

	s.done = true
	if scanErr := s.scanner.Err(); scanErr != nil {
		s.err = fmt.Errorf("%w: %w", ErrRequestFailed, scanErr)
	}
	return "", false
}

// Err returns the first error encountered while consuming the stream, or nil
// if the stream ended normally.
func (s *Stream) Err() error {
	return s.err
}

// Close releases the underlying response body. It is safe to call Close
// before the stream is drained; remaining fragments are discarded.
func (s *Stream) Close() error {
	s.done = true
	return s.body.Close()
}

// readErrorBody drains up to a small cap of an error response body for
// inclusion in the returned error, then closes it.
func readErrorBody(body io.ReadCloser) string {
	defer body.Close()
	payload, err := io.ReadAll(io.LimitReader(body, 4*1024))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(payload))
}
