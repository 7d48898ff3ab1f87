package delegate

import (
	"github.com/flitsinc/go-jsonstream/jsonpath"
	"github.com/flitsinc/go-jsonstream/sink"
)

// ClassifyFirstChar maps the first character of a value to its kind, per
// spec §4.2.4/§4.2.5's "classify" step. ok is false for a character that
// cannot begin any JSON value.
func ClassifyFirstChar(c byte) (jsonpath.Kind, bool) {
	switch {
	case c == '"':
		return jsonpath.KindString, true
	case c == '{':
		return jsonpath.KindObject, true
	case c == '[':
		return jsonpath.KindArray, true
	case c == 't' || c == 'f':
		return jsonpath.KindBoolean, true
	case c == 'n':
		return jsonpath.KindNull, true
	case c == '-' || (c >= '0' && c <= '9'):
		return jsonpath.KindNumber, true
	default:
		return 0, false
	}
}

// IsWhitespace reports whether c is one of the ASCII whitespace characters
// spec §4.2.4 enumerates: space, tab, LF, CR.
func IsWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// IsValueTerminator reports whether c can legally follow a value with no
// intervening whitespace. The literal and number delegates do not call it:
// they end on any character that cannot extend the value.
func IsValueTerminator(c byte) bool {
	return c == ',' || c == '}' || c == ']' || IsWhitespace(c)
}

// New constructs the delegate for kind at path, registering its sink
// through reg. strict enables strict-mode escape/key decoding (spec §9,
// disabled by default). The returned error is the same conflict signal
// Registry.GetOrCreateSink documents; New always returns a usable delegate
// regardless.
func New(kind jsonpath.Kind, path jsonpath.Path, reg Registry, strict bool) (Delegate, *sink.Sink, error) {
	s, err := reg.GetOrCreateSink(path, kind)
	switch kind {
	case jsonpath.KindString:
		return newStringDelegate(s, strict), s, err
	case jsonpath.KindNumber:
		return newNumberDelegate(s), s, err
	case jsonpath.KindBoolean:
		return newLiteralDelegate(s, jsonpath.KindBoolean), s, err
	case jsonpath.KindNull:
		return newLiteralDelegate(s, jsonpath.KindNull), s, err
	case jsonpath.KindObject:
		return newObjectDelegate(path, s, reg, strict), s, err
	case jsonpath.KindArray:
		return newArrayDelegate(path, s, reg, strict), s, err
	default:
		panic("delegate: unknown kind")
	}
}
