package delegate

import (
	"github.com/flitsinc/go-jsonstream/errs"
	"github.com/flitsinc/go-jsonstream/jsonpath"
	"github.com/flitsinc/go-jsonstream/sink"
)

// literalCandidates lists, for each kind that's parsed as a fixed literal,
// every spelling it might turn out to be. The boolean kind covers both
// "true" and "false"; the actual candidate is narrowed down to one as soon
// as enough characters have been fed to distinguish them.
var literalCandidates = map[jsonpath.Kind][]string{
	jsonpath.KindBoolean: {"true", "false"},
	jsonpath.KindNull:    {"null"},
}

// literalDelegate implements spec §4.2.3: a fixed-length literal
// accumulator for true/false/null. Like numberDelegate, it does not
// consume the character that terminates the literal.
type literalDelegate struct {
	sink       *sink.Sink
	kind       jsonpath.Kind
	candidates []string
	matched    []byte
	done       bool
}

func newLiteralDelegate(s *sink.Sink, kind jsonpath.Kind) *literalDelegate {
	return &literalDelegate{
		sink:       s,
		kind:       kind,
		candidates: append([]string(nil), literalCandidates[kind]...),
	}
}

func (d *literalDelegate) Kind() jsonpath.Kind { return d.kind }
func (d *literalDelegate) Done() bool          { return d.done }

func (d *literalDelegate) Feed(c byte) {
	if d.done {
		return
	}
	next := string(d.matched) + string(c)
	var remaining []string
	for _, cand := range d.candidates {
		if len(next) <= len(cand) && cand[:len(next)] == next {
			remaining = append(remaining, cand)
		}
	}
	if len(remaining) > 0 {
		d.matched = append(d.matched, c)
		d.candidates = remaining
		if len(remaining) == 1 && len(d.matched) == len(remaining[0]) {
			d.finish()
		}
		return
	}
	// c doesn't extend any candidate: treat it as the terminator and
	// finalize based on whatever has matched so far.
	d.finish()
}

func (d *literalDelegate) Flush() {}

func (d *literalDelegate) finish() {
	text := string(d.matched)
	var complete bool
	for _, cand := range literalCandidates[d.kind] {
		if text == cand {
			complete = true
			break
		}
	}
	if !complete {
		d.sink.CloseWithError(&errs.ParseError{Path: d.sink.Path, Msg: "invalid literal " + text})
		d.done = true
		return
	}
	var value any
	switch text {
	case "true":
		value = true
	case "false":
		value = false
	case "null":
		value = nil
	}
	d.sink.Push(value)
	d.sink.Close(value)
	d.done = true
}
