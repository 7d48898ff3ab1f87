package jsonstream

import (
	"context"
	"iter"

	"github.com/flitsinc/go-jsonstream/jsonpath"
	"github.com/flitsinc/go-jsonstream/sink"
)

// Handle is the unified promise-plus-lazy-sequence view spec'd for the
// Subscription API: one eventual value via Await, and a lazy sequence via
// IterBuffered/IterLive. For an array-kind handle, both iterators yield
// child *Handle values in index order instead of the sink's own snapshots,
// since the interesting thing about a streamed array is usually its
// elements, not its growing-length copies.
type Handle struct {
	sink       *sink.Sink
	controller *Controller
}

// Await blocks until the path's value is fully known, or ctx is done.
func (h *Handle) Await(ctx context.Context) (any, error) {
	return h.sink.Await(ctx)
}

// IterBuffered replays every emission seen so far, then blocks for more
// until the sink closes.
func (h *Handle) IterBuffered(ctx context.Context) iter.Seq[any] {
	if h.sink.Kind == jsonpath.KindArray {
		return h.childIter(ctx)
	}
	return h.sink.IterBuffered(ctx)
}

// IterLive skips everything already buffered and yields only emissions
// that happen after the call. For arrays it's identical to IterBuffered:
// the child-announce log is always replayed in full so late subscribers
// never miss an element (spec P6).
func (h *Handle) IterLive(ctx context.Context) iter.Seq[any] {
	if h.sink.Kind == jsonpath.KindArray {
		return h.childIter(ctx)
	}
	return h.sink.IterLive(ctx)
}

func (h *Handle) childIter(ctx context.Context) iter.Seq[any] {
	return func(yield func(any) bool) {
		for a := range h.sink.IterAnnouncements(ctx) {
			child := &Handle{sink: a.Child, controller: h.controller}
			if !yield(child) {
				return
			}
		}
	}
}

// Get composes sub onto this handle's path and returns a handle for it,
// creating the underlying sink on first reference (spec §4.4 path
// composition).
func (h *Handle) Get(sub jsonpath.Path, kind jsonpath.Kind) (*Handle, error) {
	return h.controller.Get(jsonpath.Append(h.sink.Path, sub), kind)
}

// Path returns the path this handle was opened at.
func (h *Handle) Path() jsonpath.Path {
	return h.sink.Path
}

// Kind returns the value kind this handle's sink was created with.
func (h *Handle) Kind() jsonpath.Kind {
	return h.sink.Kind
}
