package keyboard

import "kestrel/kernel"

// ScancodeStream is the consuming end of a Controller's scancode queue.
// It never ends.
type ScancodeStream struct {
	_     [0]func() // prevent accidental copying.
	c     *Controller
	queue *kernel.ArrayQueue[byte]

	// Drop counts already reported.
	seenFull, seenUninit uint64

	// afterRegister runs between registering the waker and the second pop.
	afterRegister func()
}

// NewScancodeStream creates the default controller's stream.
func NewScancodeStream() *ScancodeStream { return std.Load().NewScancodeStream() }

// NewScancodeStream allocates the scancode queue and returns its stream.
// A second call on the same controller is fatal.
func (c *Controller) NewScancodeStream() *ScancodeStream {
	err := c.queue.TryInitOnce(func() *kernel.ArrayQueue[byte] {
		return kernel.NewArrayQueue[byte](c.capacity)
	})
	if err != nil {
		kernel.Fatalf("keyboard: scancode stream can only be created once: %v", err)
	}
	q, _ := c.queue.TryGet()
	return &ScancodeStream{c: c, queue: q}
}

// PollNext returns the next scancode, or Pending with the context's waker
// registered.
func (s *ScancodeStream) PollNext(cx *kernel.Context) (byte, bool, kernel.Poll) {
	s.reportDrops()
	if b, ok := s.queue.Pop(); ok {
		return b, true, kernel.Ready
	}

	s.c.waker.Register(cx.Waker())
	if s.afterRegister != nil {
		s.afterRegister()
	}

	// A byte pushed before the registration landed would never wake us.
	if b, ok := s.queue.Pop(); ok {
		if w := s.c.waker.Take(); w != nil {
			w.Drop()
		}
		return b, true, kernel.Ready
	}
	return 0, false, kernel.Pending
}

// reportDrops logs drops counted by Deliver since the last poll. It runs in
// the foreground so the interrupt path never touches the logger.
func (s *ScancodeStream) reportDrops() {
	full, uninit := s.c.Drops()
	if full == s.seenFull && uninit == s.seenUninit {
		return
	}
	kernel.Logger().Warn().
		Uint64("queue_full", full-s.seenFull).
		Uint64("uninitialized", uninit-s.seenUninit).
		Msg("scancodes dropped")
	s.seenFull, s.seenUninit = full, uninit
}

// Next returns a future resolving to the next scancode.
func (s *ScancodeStream) Next() *kernel.NextFuture[byte] {
	return kernel.Next[byte](s)
}
