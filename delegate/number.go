package delegate

import (
	"strconv"

	"github.com/flitsinc/go-jsonstream/errs"
	"github.com/flitsinc/go-jsonstream/jsonpath"
	"github.com/flitsinc/go-jsonstream/sink"
)

type numberDelegate struct {
	sink    *sink.Sink
	scratch []byte
	done    bool
}

func newNumberDelegate(s *sink.Sink) *numberDelegate {
	return &numberDelegate{sink: s}
}

func (d *numberDelegate) Kind() jsonpath.Kind { return jsonpath.KindNumber }
func (d *numberDelegate) Done() bool          { return d.done }

func isNumberChar(c byte) bool {
	switch c {
	case '-', '+', '.', 'e', 'E', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return true
	default:
		return false
	}
}

// Feed does not consume the terminating character; the parent reprocesses
// it (spec §4.2.2, §4.2.7).
func (d *numberDelegate) Feed(c byte) {
	if d.done {
		return
	}
	if isNumberChar(c) {
		d.scratch = append(d.scratch, c)
		return
	}
	d.finish()
}

// Flush is a no-op: number text may legitimately span fragments (spec
// §4.2.2).
func (d *numberDelegate) Flush() {}

func (d *numberDelegate) finish() {
	value, err := strconv.ParseFloat(string(d.scratch), 64)
	if err != nil {
		d.sink.CloseWithError(&errs.ParseError{Path: d.sink.Path, Msg: "invalid number literal " + strconv.Quote(string(d.scratch))})
		d.done = true
		return
	}
	d.sink.Push(value)
	d.sink.Close(value)
	d.done = true
}
