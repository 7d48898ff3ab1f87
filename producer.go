package jsonstream

import "context"

// Producer is the single external boundary this package consumes: an
// abstract source of text fragments. A fragment is an arbitrary non-empty
// string with no delimiter semantics. Next returns io.EOF once the sequence
// is exhausted; any other error terminates the parse with a StreamError.
type Producer interface {
	Next(ctx context.Context) (fragment string, err error)
}
