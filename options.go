package jsonstream

// Options configures a Controller's lifecycle and diagnostics.
type Options struct {
	// CloseOnRootComplete stops draining the producer the moment the root
	// value finishes, ignoring any trailing text. DefaultOptions sets it to
	// true (the zero value is false); set it false only if trailing fragments must still be consumed for some
	// other reason (e.g. to drain a shared connection).
	CloseOnRootComplete bool

	// StrictEscapes turns the two documented leniencies (unrecognized
	// string escapes, backslashes in object keys) into ParseErrors instead
	// of the default passthrough behavior.
	StrictEscapes bool

	// Debug, when true, writes a YAML snapshot of every registered sink's
	// current state to DebugPath after each drained fragment.
	Debug     bool
	DebugPath string
}

// DefaultOptions returns the Options a Controller uses when none are given
// explicitly: root short-circuiting on, lenient escape handling, no debug
// dump.
func DefaultOptions() Options {
	return Options{CloseOnRootComplete: true}
}
