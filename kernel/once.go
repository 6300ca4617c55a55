package kernel

import (
	"errors"
	"sync/atomic"
)

var (
	ErrUninit       = errors.New("once cell: not initialized")
	ErrInitializing = errors.New("once cell: initialization in progress")
	ErrAlreadyInit  = errors.New("once cell: already initialized")
)

const (
	onceUninit uint32 = iota
	onceInitializing
	onceReady
)

// OnceCell is process-wide state that is initialized exactly once.
//
// TryGet never blocks and never allocates, so it may be called from interrupt
// context. Reads before initialization return ErrUninit.
type OnceCell[T any] struct {
	_     [0]func() // prevent accidental copying.
	state atomic.Uint32
	value T
}

// TryInitOnce runs init and stores its result if the cell is uninitialized.
func (c *OnceCell[T]) TryInitOnce(init func() T) error {
	if !c.state.CompareAndSwap(onceUninit, onceInitializing) {
		if c.state.Load() == onceInitializing {
			return ErrInitializing
		}
		return ErrAlreadyInit
	}
	c.value = init()
	c.state.Store(onceReady)
	return nil
}

// TryGet returns the stored value.
func (c *OnceCell[T]) TryGet() (T, error) {
	switch c.state.Load() {
	case onceReady:
		return c.value, nil
	case onceInitializing:
		var zero T
		return zero, ErrInitializing
	default:
		var zero T
		return zero, ErrUninit
	}
}

// IsInitialized reports whether the cell holds a value.
func (c *OnceCell[T]) IsInitialized() bool {
	return c.state.Load() == onceReady
}
