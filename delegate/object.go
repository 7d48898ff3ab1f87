package delegate

import (
	"github.com/metalim/jsonmap"

	"github.com/flitsinc/go-jsonstream/errs"
	"github.com/flitsinc/go-jsonstream/jsonpath"
	"github.com/flitsinc/go-jsonstream/sink"
)

type objectState int

const (
	objectPreBrace objectState = iota
	objectWaitingForKey
	objectReadingKey
	objectWaitingForValue
	objectReadingValue
	objectWaitingForCommaOrEnd
	objectDone
)

// objectDelegate implements spec §4.2.4. Object keys are scanned raw, with
// no escape handling (spec §9: intentional, matches the source's
// documented behavior rather than "fixing" it).
type objectDelegate struct {
	path   jsonpath.Path
	sink   *sink.Sink
	reg    Registry
	strict bool

	state objectState

	keyBuffer []byte
	current   *jsonmap.Map

	child     Delegate
	childSink *sink.Sink
	childKey  string
}

func newObjectDelegate(path jsonpath.Path, s *sink.Sink, reg Registry, strict bool) *objectDelegate {
	return &objectDelegate{
		path:    path,
		sink:    s,
		reg:     reg,
		strict:  strict,
		current: jsonmap.New(),
	}
}

func (d *objectDelegate) Kind() jsonpath.Kind { return jsonpath.KindObject }
func (d *objectDelegate) Done() bool          { return d.state == objectDone }

func (d *objectDelegate) Feed(c byte) {
	switch d.state {
	case objectPreBrace:
		if c == '{' {
			d.state = objectWaitingForKey
		}
	case objectWaitingForKey:
		if IsWhitespace(c) {
			return
		}
		switch c {
		case '"':
			d.keyBuffer = nil
			d.state = objectReadingKey
		case '}':
			d.finish()
		}
	case objectReadingKey:
		// No escape handling: a key containing \" terminates early here,
		// matching the documented limitation in spec §9, unless strict
		// mode is enabled.
		if c == '"' {
			d.state = objectWaitingForValue
			return
		}
		if d.strict && c == '\\' {
			d.sink.CloseWithError(&errs.ParseError{Path: d.sink.Path, Msg: "escaped characters in object keys are not supported"})
			d.state = objectDone
			return
		}
		d.keyBuffer = append(d.keyBuffer, c)
	case objectWaitingForValue:
		if c == ':' || IsWhitespace(c) {
			return
		}
		d.beginValue(c)
	case objectReadingValue:
		d.child.Feed(c)
		if !d.child.Done() {
			return
		}
		final, _ := d.childSink.Await(doneCtx)
		d.current.Set(d.childKey, final)
		aggregate := d.child.Kind().IsAggregate()
		d.child, d.childSink, d.childKey = nil, nil, ""
		d.state = objectWaitingForCommaOrEnd
		if !aggregate {
			// Atomic/string children don't consume their own terminator;
			// the parent must reprocess it now (spec §4.2.7).
			d.Feed(c)
		}
	case objectWaitingForCommaOrEnd:
		if IsWhitespace(c) {
			return
		}
		switch c {
		case ',':
			d.keyBuffer = nil
			d.state = objectWaitingForKey
		case '}':
			d.finish()
		}
	case objectDone:
	}
}

func (d *objectDelegate) beginValue(c byte) {
	kind, ok := ClassifyFirstChar(c)
	if !ok {
		d.sink.CloseWithError(&errs.ParseError{Path: d.sink.Path, Msg: "unexpected character starting a value"})
		d.state = objectDone
		return
	}
	key := string(d.keyBuffer)
	childPath := jsonpath.AppendKey(d.path, key)
	child, childSink, _ := New(kind, childPath, d.reg, d.strict)
	d.sink.Announce(sink.Announcement{Child: childSink, Key: key})
	d.current.Set(key, nil)
	d.child, d.childSink, d.childKey = child, childSink, key
	d.state = objectReadingValue
	d.child.Feed(c)
	if d.child.Done() {
		// A child can only finish on its first character if that character
		// was itself a complete value, which never happens for an object or
		// array (whose opening bracket alone can't finish them), so there's
		// no terminator to reprocess here.
		final, _ := d.childSink.Await(doneCtx)
		d.current.Set(key, final)
		d.child, d.childSink, d.childKey = nil, nil, ""
		d.state = objectWaitingForCommaOrEnd
	}
}

func (d *objectDelegate) Flush() {
	if d.child != nil {
		d.child.Flush()
	}
	if d.state == objectDone {
		return
	}
	d.sink.Push(d.snapshot())
}

func (d *objectDelegate) snapshot() *jsonmap.Map {
	cp := jsonmap.New()
	for _, k := range d.current.Keys() {
		v, _ := d.current.Get(k)
		cp.Set(k, v)
	}
	return cp
}

func (d *objectDelegate) finish() {
	d.sink.Close(d.snapshot())
	d.state = objectDone
}
