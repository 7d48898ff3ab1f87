package sink

import (
	"context"
	"iter"
)

// watch starts a goroutine that wakes every consumer blocked on s.cond as
// soon as ctx is cancelled, so a blocked Wait() can re-check ctx.Err() and
// return instead of hanging forever. The returned stop func must be called
// (via defer) once the iteration ends, to avoid leaking the goroutine for
// the lifetime of a long-lived or never-cancelled ctx.
func (s *Sink) watch(ctx context.Context) (stop func()) {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			s.cond.Broadcast()
			s.mu.Unlock()
		case <-done:
		}
	}()
	return func() { close(done) }
}

// IterBuffered returns a lazy sequence over every item ever pushed to the
// sink, starting at index 0, suspending when the buffer is exhausted and
// the sink is still open, and ending when the sink closes. On error it
// ends without yielding a final value; callers should check Await or
// inspect the sink's error separately if they need to distinguish a clean
// end from a failure.
func (s *Sink) IterBuffered(ctx context.Context) iter.Seq[any] {
	return s.iterFrom(ctx, 0)
}

// IterLive returns a lazy sequence like IterBuffered, but skips every item
// already buffered at the moment IterLive is called.
func (s *Sink) IterLive(ctx context.Context) iter.Seq[any] {
	s.mu.Lock()
	start := len(s.buffer)
	s.mu.Unlock()
	return s.iterFrom(ctx, start)
}

func (s *Sink) iterFrom(ctx context.Context, start int) iter.Seq[any] {
	return func(yield func(any) bool) {
		stop := s.watch(ctx)
		defer stop()

		cursor := start
		s.mu.Lock()
		defer s.mu.Unlock()
		for {
			for cursor >= len(s.buffer) && !s.closed && ctx.Err() == nil {
				s.cond.Wait()
			}
			if ctx.Err() != nil {
				return
			}
			if cursor >= len(s.buffer) {
				// Closed with nothing left to yield.
				return
			}
			item := s.buffer[cursor]
			cursor++
			s.mu.Unlock()
			ok := yield(item)
			s.mu.Lock()
			if !ok {
				return
			}
		}
	}
}

// IterAnnouncements returns a lazy sequence over the child-announce log,
// always replaying from the first announcement, so a subscriber that
// attaches after n children have already been announced still sees all n
// of them before any new one (spec property P6).
func (s *Sink) IterAnnouncements(ctx context.Context) iter.Seq[Announcement] {
	return func(yield func(Announcement) bool) {
		stop := s.watch(ctx)
		defer stop()

		cursor := 0
		s.mu.Lock()
		defer s.mu.Unlock()
		for {
			for cursor >= len(s.announcements) && !s.closed && ctx.Err() == nil {
				s.cond.Wait()
			}
			if ctx.Err() != nil {
				return
			}
			if cursor >= len(s.announcements) {
				return
			}
			a := s.announcements[cursor]
			cursor++
			s.mu.Unlock()
			ok := yield(a)
			s.mu.Lock()
			if !ok {
				return
			}
		}
	}
}
