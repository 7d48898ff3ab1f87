// Package sink implements the per-path Path Sink and the single-producer/
// multi-consumer Lazy Sequence Primitive it exposes to subscribers.
//
// A Sink is owned exclusively by the controller that created it (see the
// jsonstream package); delegates push partial values and announce children
// into it, and consumers borrow it through buffered or live iterator views.
// All synchronization here is a single sync.Mutex/sync.Cond pair per sink,
// the same shape as the condition-variable cursor used by streaming cursors
// elsewhere in this ecosystem: a producer mutates shared state under the
// lock and broadcasts, consumers park in Cond.Wait instead of polling.
package sink

import (
	"context"
	"sync"

	"github.com/flitsinc/go-jsonstream/jsonpath"
)

// Announcement records a child sink becoming known to its parent aggregate,
// in parse order, before any of the child's own content has arrived.
type Announcement struct {
	Child   *Sink
	Key     string // valid when the parent is an object
	Index   int    // valid when the parent is an array
	IsIndex bool
}

// Sink is the per-path state holder described in spec §3: a fixed kind, a
// monotonically growing buffer of partial emissions, an optional
// child-announce log (objects/arrays only), and a one-shot final value.
type Sink struct {
	Path jsonpath.Path
	Kind jsonpath.Kind

	mu            sync.Mutex
	cond          *sync.Cond
	buffer        []any
	announcements []Announcement
	closed        bool
	finalValue    any
	err           error
	done          chan struct{}
}

// New creates an open sink for path p of the given kind.
func New(p jsonpath.Path, kind jsonpath.Kind) *Sink {
	s := &Sink{
		Path: p,
		Kind: kind,
		done: make(chan struct{}),
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Push appends a partial emission to the buffer. Pushes after Close are
// dropped silently, per spec §3 ("Ownership").
func (s *Sink) Push(value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.buffer = append(s.buffer, value)
	s.cond.Broadcast()
}

// Announce records a new child sink in the child-announce log. Like Push,
// this is a no-op once the sink is closed.
func (s *Sink) Announce(a Announcement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.announcements = append(s.announcements, a)
	s.cond.Broadcast()
}

// Close completes the sink successfully. For object/array sinks it pushes
// one final snapshot equal to final before closing (spec §9's resolved
// Open Question), so the last buffered item always equals the awaited
// value. Idempotent: a second call is a no-op.
func (s *Sink) Close(final any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.finalValue = final
	if s.Kind.IsAggregate() {
		s.buffer = append(s.buffer, final)
	}
	s.closed = true
	close(s.done)
	s.cond.Broadcast()
}

// CloseWithError fails the sink. Any handle awaiting or iterating it
// observes err. Idempotent.
func (s *Sink) CloseWithError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.err = err
	s.closed = true
	close(s.done)
	s.cond.Broadcast()
}

// Closed reports whether the sink has completed (successfully or not).
func (s *Sink) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// DebugSnapshot returns a point-in-time view of the sink's public state,
// for diagnostic dumps only; it's not part of the consumer-facing contract.
func (s *Sink) DebugSnapshot() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := map[string]any{
		"kind":          s.Kind.String(),
		"closed":        s.closed,
		"bufferedCount": len(s.buffer),
	}
	if s.closed {
		if s.err != nil {
			snap["error"] = s.err.Error()
		} else {
			snap["finalValue"] = s.finalValue
		}
	}
	return snap
}

// Await blocks until the sink closes, returning its final value or error.
// It also returns early with ctx.Err() if ctx is cancelled first.
func (s *Sink) Await(ctx context.Context) (any, error) {
	select {
	case <-s.done:
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.finalValue, s.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
