package kernel

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func resetPanicState(t *testing.T) {
	t.Helper()
	panicOnce = sync.Once{}
	panicActive.Store(false)
	SetPanicHandler(nil)
	t.Cleanup(func() {
		panicOnce = sync.Once{}
		panicActive.Store(false)
		SetPanicHandler(nil)
	})
}

func TestFatalfPanicsWithMessage(t *testing.T) {
	resetPanicState(t)

	assert.PanicsWithValue(t, "queue full: 3", func() {
		Fatalf("queue full: %d", 3)
	})
	assert.True(t, InPanicMode())
}

func TestFatalfInvokesHandlerOnce(t *testing.T) {
	resetPanicState(t)

	var got []PanicInfo
	SetPanicHandler(func(info PanicInfo) { got = append(got, info) })

	assert.Panics(t, func() { Fatalf("first") })
	assert.Panics(t, func() { Fatalf("second") })

	if assert.Len(t, got, 1) {
		assert.Equal(t, "first", got[0].Message)
		assert.NotEmpty(t, got[0].Stack)
	}
}
