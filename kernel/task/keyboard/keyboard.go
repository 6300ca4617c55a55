// Package keyboard connects the keyboard interrupt to the task executor.
//
// The interrupt handler calls Deliver for every scancode byte. Bytes are
// buffered in a bounded lock-free queue and the consuming task is woken
// through a single-slot waker register. The consumer side is a
// ScancodeStream, which may be constructed once per Controller.
package keyboard

import (
	"sync/atomic"

	"kestrel/kernel"
)

// DefaultCapacity is the scancode queue capacity of the default controller.
const DefaultCapacity = 100

// DeliverResult describes the outcome of delivering one scancode.
type DeliverResult uint8

const (
	DeliverOK DeliverResult = iota
	DeliverQueueFull
	DeliverUninitialized
)

func (r DeliverResult) String() string {
	switch r {
	case DeliverOK:
		return "ok"
	case DeliverQueueFull:
		return "queue full"
	case DeliverUninitialized:
		return "queue uninitialized"
	default:
		return "unknown"
	}
}

// Controller owns one scancode queue and its waker register.
type Controller struct {
	_        [0]func() // prevent accidental copying.
	capacity int

	queue kernel.OnceCell[*kernel.ArrayQueue[byte]]
	waker kernel.AtomicWaker

	delivered   atomic.Uint64
	dropsFull   atomic.Uint64
	dropsUninit atomic.Uint64
}

// NewController returns a controller whose queue will hold capacity bytes.
// The queue itself is allocated when the stream is constructed.
func NewController(capacity int) *Controller {
	if capacity <= 0 {
		kernel.Fatalf("keyboard: scancode capacity must be positive, got %d", capacity)
	}
	return &Controller{capacity: capacity}
}

var std atomic.Pointer[Controller]

func init() {
	std.Store(NewController(DefaultCapacity))
}

// Default returns the controller used by the package-level functions.
func Default() *Controller { return std.Load() }

// SetDefault replaces the default controller. It must be called during boot,
// before the keyboard interrupt is enabled. Replacing a default whose stream
// already exists is fatal.
func SetDefault(c *Controller) {
	if c == nil {
		kernel.Fatalf("keyboard: nil default controller")
	}
	if prev := std.Load(); prev != c && prev.queue.IsInitialized() {
		kernel.Fatalf("keyboard: default controller replaced after its scancode stream was created")
	}
	std.Store(c)
}

// Deliver hands one scancode to the default controller.
// It is called from the keyboard interrupt handler.
func Deliver(b byte) DeliverResult { return std.Load().Deliver(b) }

// Deliver queues b and wakes the consumer.
//
// It never blocks and does no I/O. Bytes are dropped when the queue is full
// or has not been created yet; drops are only counted here and reported by
// the stream from the foreground.
func (c *Controller) Deliver(b byte) DeliverResult {
	q, err := c.queue.TryGet()
	if err != nil {
		c.dropsUninit.Add(1)
		return DeliverUninitialized
	}
	if !q.Push(b) {
		c.dropsFull.Add(1)
		return DeliverQueueFull
	}
	c.delivered.Add(1)
	c.waker.Wake()
	return DeliverOK
}

// Delivered returns the number of scancodes queued.
func (c *Controller) Delivered() uint64 { return c.delivered.Load() }

// Drops returns the number of scancodes dropped because the queue was full
// and because it did not exist yet.
func (c *Controller) Drops() (full, uninitialized uint64) {
	return c.dropsFull.Load(), c.dropsUninit.Load()
}

// Capacity returns the scancode queue capacity.
func (c *Controller) Capacity() int { return c.capacity }
