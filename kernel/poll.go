package kernel

// Poll is the result of resuming a suspendable computation.
type Poll uint8

const (
	// Pending means the computation suspended and arranged to be woken.
	Pending Poll = iota
	// Ready means the computation finished.
	Ready
)

func (p Poll) String() string {
	switch p {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Waker re-admits a suspended computation to its scheduler.
//
// Wakers are shared: Clone adds a reference and Drop releases one. Wake
// consumes the caller's reference; WakeByRef leaves it intact. Both wake
// methods must have the same externally visible effect.
type Waker interface {
	Wake()
	WakeByRef()
	Clone() Waker
	Drop()
}

// Context is handed to a computation each time it is resumed.
type Context struct {
	waker Waker
}

// NewContext returns a context carrying w.
func NewContext(w Waker) *Context {
	return &Context{waker: w}
}

// Waker returns the waker of the computation being polled.
func (c *Context) Waker() Waker { return c.waker }

// Future is a suspendable computation that produces no value.
//
// Poll must not block. When it returns Pending it must have arranged for the
// context's waker to be invoked once progress is possible.
type Future interface {
	Poll(cx *Context) Poll
}

// FutureFunc adapts a function to the Future interface.
type FutureFunc func(cx *Context) Poll

func (f FutureFunc) Poll(cx *Context) Poll { return f(cx) }

// Stream is a lazily produced sequence.
//
// PollNext returns (item, true, Ready) for an item, (zero, false, Ready) at the
// end of the sequence, and (zero, false, Pending) when suspended.
type Stream[T any] interface {
	PollNext(cx *Context) (item T, ok bool, p Poll)
}

// NextFuture resolves to the next item of a stream.
type NextFuture[T any] struct {
	s    Stream[T]
	item T
	ok   bool
}

// Next returns a future resolving to the next item of s.
func Next[T any](s Stream[T]) *NextFuture[T] {
	return &NextFuture[T]{s: s}
}

func (n *NextFuture[T]) Poll(cx *Context) Poll {
	item, ok, p := n.s.PollNext(cx)
	if p == Pending {
		return Pending
	}
	n.item, n.ok = item, ok
	return Ready
}

// Result returns the resolved item and whether the stream produced one.
func (n *NextFuture[T]) Result() (T, bool) { return n.item, n.ok }

// NoopWaker returns a waker that does nothing.
func NoopWaker() Waker { return noopWaker{} }

type noopWaker struct{}

func (noopWaker) Wake()        {}
func (noopWaker) WakeByRef()   {}
func (noopWaker) Clone() Waker { return noopWaker{} }
func (noopWaker) Drop()        {}
