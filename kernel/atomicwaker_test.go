package kernel

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingWaker struct {
	wakes  atomic.Int32
	byRef  atomic.Int32
	clones atomic.Int32
	drops  atomic.Int32
}

func (w *countingWaker) Wake()        { w.wakes.Add(1) }
func (w *countingWaker) WakeByRef()   { w.byRef.Add(1) }
func (w *countingWaker) Clone() Waker { w.clones.Add(1); return w }
func (w *countingWaker) Drop()        { w.drops.Add(1) }

func (w *countingWaker) total() int32 { return w.wakes.Load() + w.byRef.Load() }

func TestAtomicWakerWakeWithoutRegistration(t *testing.T) {
	var aw AtomicWaker
	aw.Wake()
	assert.Nil(t, aw.Take())
}

func TestAtomicWakerRegisterThenWake(t *testing.T) {
	var aw AtomicWaker
	w := &countingWaker{}

	aw.Register(w)
	assert.Equal(t, int32(1), w.clones.Load(), "Register() stores a clone")
	assert.Equal(t, int32(0), w.total())

	aw.Wake()
	assert.Equal(t, int32(1), w.wakes.Load())

	// The slot is empty again.
	aw.Wake()
	assert.Equal(t, int32(1), w.wakes.Load())
}

func TestAtomicWakerLastRegistrationWins(t *testing.T) {
	var aw AtomicWaker
	first := &countingWaker{}
	second := &countingWaker{}

	aw.Register(first)
	aw.Register(second)
	assert.Equal(t, int32(1), first.drops.Load(), "replaced waker is released")

	aw.Wake()
	assert.Equal(t, int32(0), first.total())
	assert.Equal(t, int32(1), second.wakes.Load())
}

func TestAtomicWakerReRegisterSameWakerDoesNotClone(t *testing.T) {
	var aw AtomicWaker
	w := &countingWaker{}

	aw.Register(w)
	aw.Register(w)
	assert.Equal(t, int32(1), w.clones.Load())
	assert.Equal(t, int32(0), w.drops.Load())
}

func TestAtomicWakerTakeDoesNotWake(t *testing.T) {
	var aw AtomicWaker
	w := &countingWaker{}

	aw.Register(w)
	got := aw.Take()
	require.NotNil(t, got)
	assert.Same(t, w, got)
	assert.Equal(t, int32(0), w.total())

	aw.Wake()
	assert.Equal(t, int32(0), w.total())
}

func TestAtomicWakerRegisterDuringWake(t *testing.T) {
	var aw AtomicWaker
	w := &countingWaker{}

	// Simulate a wake that has claimed the slot but not finished.
	aw.state.Store(wakerWaking)
	aw.Register(w)
	assert.Equal(t, int32(1), w.byRef.Load(), "registration racing a wake must wake immediately")
	aw.state.Store(wakerWaiting)
}

func TestAtomicWakerConcurrentWakeNeverLost(t *testing.T) {
	const rounds = 2000

	for i := 0; i < rounds; i++ {
		var aw AtomicWaker
		w := &countingWaker{}

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			aw.Wake()
		}()
		aw.Register(w)
		wg.Wait()

		// Either the wake saw the registration, or it ran first and the
		// waker is still armed. Nothing may be left unaccounted for.
		if w.total() == 0 {
			aw.Wake()
		}
		require.Equal(t, int32(1), w.total(), "round %d", i)
	}
}
