package kernel

import "sync/atomic"

const (
	wakerWaiting     uint32 = 0
	wakerRegistering uint32 = 1 << 0
	wakerWaking      uint32 = 1 << 1
)

// AtomicWaker holds at most one pending waker.
//
// Register is called by the single consumer in foreground context. Wake and
// Take may be called concurrently with Register, including from interrupt
// context; they never block and never allocate.
type AtomicWaker struct {
	_     [0]func() // prevent accidental copying.
	state atomic.Uint32
	waker Waker
}

// Register stores a clone of w, replacing any previously stored waker.
//
// If a Wake races with the registration, w is woken immediately instead of
// being left armed.
func (a *AtomicWaker) Register(w Waker) {
	if !a.state.CompareAndSwap(wakerWaiting, wakerRegistering) {
		// A wake is in progress and will observe no waker; do it ourselves.
		w.WakeByRef()
		return
	}

	if old := a.waker; old != w {
		if old != nil {
			old.Drop()
		}
		a.waker = w.Clone()
	}

	if a.state.CompareAndSwap(wakerRegistering, wakerWaiting) {
		return
	}

	// Wake was called while registering. The WAKING bit is set, so the slot
	// is still ours.
	pending := a.waker
	a.waker = nil
	a.state.Store(wakerWaiting)
	if pending != nil {
		pending.Wake()
	}
}

// Wake removes and invokes the stored waker, if any.
func (a *AtomicWaker) Wake() {
	if w := a.Take(); w != nil {
		w.Wake()
	}
}

// Take removes the stored waker without invoking it.
func (a *AtomicWaker) Take() Waker {
	for {
		prev := a.state.Load()
		if !a.state.CompareAndSwap(prev, prev|wakerWaking) {
			continue
		}
		if prev != wakerWaiting {
			// Either the registering side will handle the wake, or another
			// Take already holds the slot.
			return nil
		}
		w := a.waker
		a.waker = nil
		a.state.Store(wakerWaiting)
		return w
	}
}
