package jsonstream

import "github.com/flitsinc/go-jsonstream/errs"

// Error types and sentinels, re-exported from the errs package so callers
// of this package don't need a second import for them.
type (
	StreamError       = errs.StreamError
	KindConflictError = errs.KindConflictError
	PathNotFoundError = errs.PathNotFoundError
	ParseError        = errs.ParseError
)

// ErrDisposed is returned by Get and by any pending Await once Dispose has
// been called. Iterators over a disposed sink end without yielding an error;
// the error is visible only through Await.
var ErrDisposed = errs.ErrDisposed
