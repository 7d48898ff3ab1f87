// Package fragment provides Producer implementations: a test-helper slicer
// that chops a complete document into fragments on a timer, and a generic
// Server-Sent-Events reader for real chunked provider output.
package fragment

import (
	"context"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// SizeFunc returns the length, in bytes, of the next fragment to emit.
type SizeFunc func() int

// FixedSize returns a SizeFunc that always yields n.
func FixedSize(n int) SizeFunc {
	return func() int { return n }
}

// OneCharacter is the stress-case SizeFunc: every fragment is one byte.
func OneCharacter() SizeFunc { return FixedSize(1) }

// Slicer implements jsonstream.Producer over an in-memory document, slicing
// it into fragments whose size is chosen by a SizeFunc and, optionally,
// pacing their delivery with a ticker so tests can exercise real
// interleaving against live consumers rather than a synchronous drain.
//
// The pacing goroutine (when a delay is configured) and the Next consumer
// are joined through an errgroup.Group: Close cancels the shared context,
// the goroutine observes it and returns, and Wait (called from Close)
// can't return until it has, so the goroutine never leaks past the
// Slicer's lifetime.
type Slicer struct {
	doc   string
	size  SizeFunc
	delay time.Duration

	mu     sync.Mutex
	offset int

	ch     chan string
	g      *errgroup.Group
	gctx   context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// NewSlicer creates a Slicer over doc. If delay is zero, Next slices and
// returns fragments synchronously with no pacing goroutine at all.
func NewSlicer(doc string, size SizeFunc, delay time.Duration) *Slicer {
	s := &Slicer{doc: doc, size: size, delay: delay}
	if delay > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		g, gctx := errgroup.WithContext(ctx)
		s.ch = make(chan string)
		s.g = g
		s.gctx = gctx
		s.cancel = cancel
		g.Go(func() error {
			return s.pace(gctx)
		})
	}
	return s
}

func (s *Slicer) nextFragment() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.offset >= len(s.doc) {
		return "", false
	}
	n := s.size()
	if n <= 0 {
		n = 1
	}
	end := s.offset + n
	if end > len(s.doc) {
		end = len(s.doc)
	}
	frag := s.doc[s.offset:end]
	s.offset = end
	return frag, true
}

func (s *Slicer) pace(ctx context.Context) error {
	defer close(s.ch)
	ticker := time.NewTicker(s.delay)
	defer ticker.Stop()
	for {
		frag, ok := s.nextFragment()
		if !ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case s.ch <- frag:
		}
	}
}

// Next returns the document's next fragment, or io.EOF once exhausted.
func (s *Slicer) Next(ctx context.Context) (string, error) {
	if s.ch == nil {
		frag, ok := s.nextFragment()
		if !ok {
			return "", io.EOF
		}
		return frag, nil
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case frag, ok := <-s.ch:
		if !ok {
			if err := s.g.Wait(); err != nil && err != context.Canceled {
				return "", err
			}
			return "", io.EOF
		}
		return frag, nil
	}
}

// Close stops the pacing goroutine, if any, and waits for it to exit.
func (s *Slicer) Close() {
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
			s.g.Wait()
		}
	})
}
