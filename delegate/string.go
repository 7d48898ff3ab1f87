package delegate

import (
	"github.com/flitsinc/go-jsonstream/errs"
	"github.com/flitsinc/go-jsonstream/jsonpath"
	"github.com/flitsinc/go-jsonstream/sink"
)

type stringState int

const (
	stringPreQuote stringState = iota
	stringInString
	stringEscapePending
	stringDone
)

// escapeTable maps a recognized escape character to its decoded rune, per
// spec §4.2.1.
var escapeTable = map[byte]byte{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'"':  '"',
	'\\': '\\',
	'/':  '/',
	'b':  '\b',
	'f':  '\f',
}

// stringDelegate implements spec §4.2.1. Unrecognized escapes pass through
// literally (a backslash-u escape such as the one for H survives as its six
// literal characters, backslash included) unless strict
// mode is enabled, in which case they close the sink with a ParseError.
type stringDelegate struct {
	sink    *sink.Sink
	state   stringState
	pending []byte // characters accumulated since the last flush/emission
	whole   []byte // full decoded value, passed to Close as the final value
	strict  bool
}

func newStringDelegate(s *sink.Sink, strict bool) *stringDelegate {
	return &stringDelegate{sink: s, strict: strict}
}

func (d *stringDelegate) Kind() jsonpath.Kind { return jsonpath.KindString }
func (d *stringDelegate) Done() bool          { return d.state == stringDone }

func (d *stringDelegate) Feed(c byte) {
	switch d.state {
	case stringPreQuote:
		if c == '"' {
			d.state = stringInString
		}
		// Any other character here would be a malformed value; the parent
		// never feeds one because it only constructs this delegate after
		// observing '"'.
	case stringInString:
		switch c {
		case '\\':
			d.state = stringEscapePending
		case '"':
			d.finish()
		default:
			d.pending = append(d.pending, c)
			d.whole = append(d.whole, c)
		}
	case stringEscapePending:
		if decoded, ok := escapeTable[c]; ok {
			d.pending = append(d.pending, decoded)
			d.whole = append(d.whole, decoded)
		} else if d.strict {
			d.sink.CloseWithError(&errs.ParseError{Path: d.sink.Path, Msg: "unrecognized escape sequence"})
			d.state = stringDone
			return
		} else {
			// Preserve the escape verbatim, including the backslash, e.g.
			// a backslash-u escape is kept as its six literal characters.
			d.pending = append(d.pending, '\\', c)
			d.whole = append(d.whole, '\\', c)
		}
		d.state = stringInString
	case stringDone:
		// Ignored; the parent should not feed a done delegate.
	}
}

func (d *stringDelegate) Flush() {
	if d.state != stringInString && d.state != stringEscapePending {
		return
	}
	if len(d.pending) == 0 {
		return
	}
	d.sink.Push(string(d.pending))
	d.pending = nil
}

func (d *stringDelegate) finish() {
	d.Flush()
	d.sink.Close(string(d.whole))
	d.state = stringDone
}
