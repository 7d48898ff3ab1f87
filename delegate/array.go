package delegate

import (
	"github.com/flitsinc/go-jsonstream/errs"
	"github.com/flitsinc/go-jsonstream/jsonpath"
	"github.com/flitsinc/go-jsonstream/sink"
)

type arrayState int

const (
	arrayPreBracket arrayState = iota
	arrayWaitingForValue
	arrayReadingValue
	arrayWaitingForCommaOrEnd
	arrayDone
)

// arrayDelegate implements spec §4.2.5. It mirrors objectDelegate with an
// integer index standing in for the object's string key.
type arrayDelegate struct {
	path   jsonpath.Path
	sink   *sink.Sink
	reg    Registry
	strict bool

	state arrayState

	nextIndex int
	current   []any

	child     Delegate
	childSink *sink.Sink
	childIdx  int
}

func newArrayDelegate(path jsonpath.Path, s *sink.Sink, reg Registry, strict bool) *arrayDelegate {
	return &arrayDelegate{path: path, sink: s, reg: reg, strict: strict}
}

func (d *arrayDelegate) Kind() jsonpath.Kind { return jsonpath.KindArray }
func (d *arrayDelegate) Done() bool          { return d.state == arrayDone }

func (d *arrayDelegate) Feed(c byte) {
	switch d.state {
	case arrayPreBracket:
		if c == '[' {
			d.state = arrayWaitingForValue
		}
	case arrayWaitingForValue:
		if IsWhitespace(c) {
			return
		}
		if c == ']' {
			d.finish()
			return
		}
		d.beginValue(c)
	case arrayReadingValue:
		d.child.Feed(c)
		if !d.child.Done() {
			return
		}
		final, _ := d.childSink.Await(doneCtx)
		d.setCurrent(d.childIdx, final)
		aggregate := d.child.Kind().IsAggregate()
		d.child, d.childSink = nil, nil
		d.state = arrayWaitingForCommaOrEnd
		if !aggregate {
			// Atomic/string children don't consume their own terminator;
			// the parent must reprocess it now (spec §4.2.7).
			d.Feed(c)
		}
	case arrayWaitingForCommaOrEnd:
		if IsWhitespace(c) {
			return
		}
		switch c {
		case ',':
			d.state = arrayWaitingForValue
		case ']':
			d.finish()
		}
	case arrayDone:
	}
}

func (d *arrayDelegate) beginValue(c byte) {
	kind, ok := ClassifyFirstChar(c)
	if !ok {
		d.sink.CloseWithError(&errs.ParseError{Path: d.sink.Path, Msg: "unexpected character starting a value"})
		d.state = arrayDone
		return
	}
	idx := d.nextIndex
	d.nextIndex++
	childPath := jsonpath.AppendIndex(d.path, idx)
	child, childSink, _ := New(kind, childPath, d.reg, d.strict)
	d.sink.Announce(sink.Announcement{Child: childSink, Index: idx, IsIndex: true})
	d.setCurrent(idx, nil)
	d.child, d.childSink, d.childIdx = child, childSink, idx
	d.state = arrayReadingValue
	d.child.Feed(c)
	if d.child.Done() {
		// As in the object delegate, an object or array child can never
		// finish on its own opening bracket, so there's nothing to
		// reprocess here.
		final, _ := d.childSink.Await(doneCtx)
		d.setCurrent(idx, final)
		d.child, d.childSink = nil, nil
		d.state = arrayWaitingForCommaOrEnd
	}
}

func (d *arrayDelegate) setCurrent(idx int, value any) {
	for len(d.current) <= idx {
		d.current = append(d.current, nil)
	}
	d.current[idx] = value
}

func (d *arrayDelegate) Flush() {
	if d.child != nil {
		d.child.Flush()
	}
	if d.state == arrayDone {
		return
	}
	d.sink.Push(d.snapshot())
}

func (d *arrayDelegate) snapshot() []any {
	cp := make([]any, len(d.current))
	copy(cp, d.current)
	return cp
}

func (d *arrayDelegate) finish() {
	d.sink.Close(d.snapshot())
	d.state = arrayDone
}
