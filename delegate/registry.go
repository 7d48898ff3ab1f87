// Package delegate implements the six per-value-type incremental parsers
// described in spec §4.2 (string, number, boolean, null, object, array)
// behind a single tagged-interface (spec §9: "express the six delegates as
// a tagged variant behind a single feed/flush/done interface, not a class
// hierarchy").
package delegate

import (
	"github.com/flitsinc/go-jsonstream/jsonpath"
	"github.com/flitsinc/go-jsonstream/sink"
)

// Registry is the narrow interface delegates use to create or resolve the
// sink for a path, mirroring the teacher's Provider/ProviderStream split:
// delegates never see the controller's full surface, only this.
type Registry interface {
	// GetOrCreateSink returns the sink for p with the given authoritative
	// kind (as determined by the parser), creating it if absent. It always
	// returns a usable sink of kind k. If a sink already existed at p with
	// a different kind, the old sink is closed with a KindConflictError and
	// that same error is returned here; callers that are mid-parse (rather
	// than a subscriber's own request) should treat a non-nil error as
	// informational and keep using the returned sink, since a subscriber's
	// mistaken kind must never abort the parse.
	GetOrCreateSink(p jsonpath.Path, k jsonpath.Kind) (*sink.Sink, error)
}

// Delegate is the common interface implemented by all six value parsers.
// feed and flush never suspend; the entire state advance for one character
// is synchronous (spec §4.2).
type Delegate interface {
	// Feed advances the delegate's state machine by one character.
	Feed(c byte)
	// Flush is called at each fragment boundary; delegates that buffer
	// partial output (strings, objects, arrays) use it to emit a chunk or
	// snapshot.
	Flush()
	// Done reports whether this delegate has finalized its sink and can be
	// dropped by its parent.
	Done() bool
	// Kind reports the value kind this delegate parses, used by the parent
	// to decide whether to reprocess the character that ended a child
	// value (spec §4.2.7).
	Kind() jsonpath.Kind
}
