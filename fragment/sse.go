package fragment

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// sseEvent is the minimal, provider-agnostic shape this package expects
// from an SSE `data: ` line: a delta-text field, plus a done flag that ends
// the stream. Real LLM providers
// nest this differently (see the teacher's anthropic/openai stream event
// structs); callers that need a provider's actual shape should decode it
// themselves and feed the resulting delta text through a Slicer instead.
type sseEvent struct {
	Delta string `json:"delta"`
	Done  bool   `json:"done"`
}

// SSEProducer implements jsonstream.Producer over a Server-Sent-Events
// stream, the same line-scanning shape the teacher's Anthropic/OpenAI
// clients use to read their providers' chat-completion streams
// (bufio.Scanner line-by-line, cutting the "data: " prefix). Each event's
// decoded delta text becomes one fragment.
type SSEProducer struct {
	scanner *bufio.Scanner
	done    bool
}

// NewSSEProducer wraps r, an HTTP response body or any other io.Reader
// emitting newline-delimited SSE frames.
func NewSSEProducer(r io.Reader) *SSEProducer {
	return &SSEProducer{scanner: bufio.NewScanner(r)}
}

// Next scans forward until it finds the next non-empty data line, decodes
// it, and returns its delta text as the fragment.
func (p *SSEProducer) Next(ctx context.Context) (string, error) {
	if p.done {
		return "", io.EOF
	}
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}
		if !p.scanner.Scan() {
			p.done = true
			if err := p.scanner.Err(); err != nil {
				return "", fmt.Errorf("jsonstream/fragment: reading SSE stream: %w", err)
			}
			return "", io.EOF
		}
		line, ok := strings.CutPrefix(p.scanner.Text(), "data: ")
		if !ok {
			continue
		}
		if line == "" {
			continue
		}
		var event sseEvent
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			return "", fmt.Errorf("jsonstream/fragment: decoding SSE event: %w", err)
		}
		if event.Done {
			p.done = true
			return "", io.EOF
		}
		if event.Delta == "" {
			continue
		}
		return event.Delta, nil
	}
}
