// Package errs defines the error taxonomy shared by the delegate and
// jsonstream packages (spec §7). It is a standalone leaf package so that
// both the low-level parsing delegates and the public jsonstream API can
// construct and recognize the same error types without an import cycle.
package errs

import (
	"errors"
	"fmt"

	"github.com/flitsinc/go-jsonstream/jsonpath"
)

// ErrDisposed is returned by any operation attempted after the controller's
// Dispose has been called.
var ErrDisposed = errors.New("jsonstream: controller disposed")

// StreamError wraps a fatal producer or parse failure that terminates the
// whole parse: the producer returned an error, or it ended before the root
// value was complete.
type StreamError struct {
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("jsonstream: stream error: %s", e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

// KindConflictError is raised when a path is requested (by a subscriber or
// by the parser reaching it) with a kind that conflicts with a sink
// already registered at that path.
type KindConflictError struct {
	Path      jsonpath.Path
	Existing  jsonpath.Kind
	Requested jsonpath.Kind
}

func (e *KindConflictError) Error() string {
	return fmt.Sprintf("jsonstream: kind conflict at %q: existing %s, requested %s",
		e.Path, e.Existing, e.Requested)
}

// PathNotFoundError is raised when the root closes successfully but a
// requested path was never visited during the parse.
type PathNotFoundError struct {
	Path jsonpath.Path
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("jsonstream: path not found: %q", e.Path)
}

// ParseError is raised when a delegate encounters a locally invalid
// character sequence (e.g. an unrecognized escape with strict mode
// enabled). Only the sink it pertains to is closed; siblings are
// unaffected.
type ParseError struct {
	Path jsonpath.Path
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("jsonstream: parse error at %q: %s", e.Path, e.Msg)
}
