package jsonstream

import (
	"context"
	"io"
	"sync"

	"github.com/flitsinc/go-jsonstream/delegate"
	"github.com/flitsinc/go-jsonstream/errs"
	"github.com/flitsinc/go-jsonstream/jsonpath"
	"github.com/flitsinc/go-jsonstream/sink"
)

// Controller drains a Producer, routes each character to a tree of value
// delegates rooted at the document's top-level value, and owns every sink
// those delegates create. It's the only writer of the sink registry; Get
// and the delegates reading/writing through the Registry interface all
// serialize on the same mutex.
type Controller struct {
	mu         sync.Mutex
	sinks      map[jsonpath.Path]*sink.Sink
	disposed   bool
	terminated bool

	root delegate.Delegate
	opts Options

	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// Open starts draining p in a background goroutine and returns immediately
// with a Controller handle, mirroring the eager-start behavior spec'd for
// this package's entry point.
func Open(ctx context.Context, p Producer, opts Options) *Controller {
	ctx, cancel := context.WithCancel(ctx)
	c := &Controller{
		sinks:  make(map[jsonpath.Path]*sink.Sink),
		opts:   opts,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go c.drain(ctx, p)
	return c
}

// Get returns a Handle for path, creating its sink if this is the first
// reference to path. Subscribers that collide with an already-registered,
// differently-kinded sink get KindConflictError; the prior sink is closed
// with the same error so anything already awaiting it observes the
// conflict too (spec P7). Calling Get(jsonpath.Root, kind) before the root
// delegate exists still works: it materializes the root's sink up front so
// the delegate later finds and reuses it instead of racing to create a
// second one.
func (c *Controller) Get(path jsonpath.Path, kind jsonpath.Kind) (*Handle, error) {
	s, err := c.GetOrCreateSink(path, kind)
	if err != nil {
		return nil, err
	}
	return &Handle{sink: s, controller: c}, nil
}

// GetOrCreateSink implements delegate.Registry. See the Registry doc
// comment for the conflict-error contract delegates rely on.
func (c *Controller) GetOrCreateSink(p jsonpath.Path, k jsonpath.Kind) (*sink.Sink, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return closedSink(p, k, errs.ErrDisposed), errs.ErrDisposed
	}
	if existing, ok := c.sinks[p]; ok {
		if existing.Kind == k {
			return existing, nil
		}
		conflict := &errs.KindConflictError{Path: p, Existing: existing.Kind, Requested: k}
		existing.CloseWithError(conflict)
		fresh := sink.New(p, k)
		c.sinks[p] = fresh
		return fresh, conflict
	}
	if c.terminated {
		// Draining already stopped, so nothing will ever visit a brand new
		// path. Per spec §7, a fault (StreamError) makes every later Get
		// raise Disposed; a clean root-done makes it PathNotFound
		// immediately instead of hanging on a sink nothing will ever close.
		if c.err != nil {
			return closedSink(p, k, errs.ErrDisposed), errs.ErrDisposed
		}
		s := sink.New(p, k)
		s.CloseWithError(&errs.PathNotFoundError{Path: p})
		c.sinks[p] = s
		return s, nil
	}
	s := sink.New(p, k)
	c.sinks[p] = s
	return s, nil
}

// closedSink returns an unregistered sink already failed with err, so a
// delegate still mid-parse keeps a usable sink (pushes to it are dropped).
func closedSink(p jsonpath.Path, k jsonpath.Kind, err error) *sink.Sink {
	s := sink.New(p, k)
	s.CloseWithError(err)
	return s
}

// Dispose closes every open sink with ErrDisposed, stops the drain
// goroutine, and makes every future Get fail with ErrDisposed. Idempotent.
func (c *Controller) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	for _, s := range c.sinks {
		s.CloseWithError(errs.ErrDisposed)
	}
	c.mu.Unlock()
	c.cancel()
	<-c.done
}

// Wait blocks until draining has stopped (root complete, producer error, or
// dispose) and returns the terminal error, if any.
func (c *Controller) Wait() error {
	<-c.done
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Controller) drain(ctx context.Context, p Producer) {
	defer close(c.done)
	defer c.cancel()

	var dbg *debugDumper
	if c.opts.Debug {
		dbg = newDebugDumper(c.opts.DebugPath)
	}

	for {
		fragment, err := p.Next(ctx)
		if err != nil {
			if err == io.EOF {
				c.finish(rootIncomplete(c.rootDone()))
			} else {
				c.failAll(&errs.StreamError{Err: err})
			}
			return
		}

		for i := 0; i < len(fragment); i++ {
			stop := c.feed(fragment[i])
			if stop {
				c.finish(nil)
				if dbg != nil {
					dbg.dump(c)
				}
				return
			}
		}
		c.flushRoot()
		if dbg != nil {
			dbg.dump(c)
		}

		if ctx.Err() != nil {
			c.failAll(&errs.StreamError{Err: ctx.Err()})
			return
		}
	}
}

// feed routes one character to the root delegate, creating it on the first
// non-whitespace '{' or '[' (skipping any preamble per scenario 5 — spec
// §4.2.6 restricts the root value to an object or array; anything else
// preceding it, including a stray quote or digit, is preamble), and reports
// whether the root is now done and CloseOnRootComplete applies.
func (c *Controller) feed(ch byte) bool {
	if c.root == nil {
		if ch != '{' && ch != '[' {
			// Preamble: markdown fences, prose, whitespace, junk. Ignore it.
			return false
		}
		kind := jsonpath.KindObject
		if ch == '[' {
			kind = jsonpath.KindArray
		}
		d, _, _ := delegate.New(kind, jsonpath.Root, c, c.opts.StrictEscapes)
		c.root = d
	}
	c.root.Feed(ch)
	if c.root.Done() && c.opts.CloseOnRootComplete {
		return true
	}
	return false
}

func (c *Controller) flushRoot() {
	if c.root != nil {
		c.root.Flush()
	}
}

func (c *Controller) rootDone() bool {
	return c.root != nil && c.root.Done()
}

// rootIncomplete turns "producer ended" into the right terminal error: a
// StreamError if the root value never finished, nil otherwise.
func rootIncomplete(done bool) error {
	if done {
		return nil
	}
	return &errs.StreamError{Err: io.ErrUnexpectedEOF}
}

// finish is called once draining stops because the root completed or the
// producer ended. A nil err means the root value completed: any sink never
// visited by the parse fails its pending callers with PathNotFoundError
// (spec §7), and everything else keeps whatever value it already closed
// with. A non-nil err (a StreamError for a producer that ended before the
// root was complete) closes every open sink with that error instead.
func (c *Controller) finish(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.terminated = true
	if err != nil {
		c.err = err
		for _, s := range c.sinks {
			s.CloseWithError(err)
		}
		return
	}
	for _, s := range c.sinks {
		if !s.Closed() {
			s.CloseWithError(&errs.PathNotFoundError{Path: s.Path})
		}
	}
}

func (c *Controller) failAll(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.terminated = true
	c.err = err
	for _, s := range c.sinks {
		s.CloseWithError(err)
	}
}
