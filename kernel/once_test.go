package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnceCellUninit(t *testing.T) {
	var c OnceCell[*ArrayQueue[byte]]

	_, err := c.TryGet()
	assert.ErrorIs(t, err, ErrUninit)
	assert.False(t, c.IsInitialized())
}

func TestOnceCellInitOnce(t *testing.T) {
	var c OnceCell[int]
	calls := 0

	require.NoError(t, c.TryInitOnce(func() int { calls++; return 42 }))
	err := c.TryInitOnce(func() int { calls++; return 7 })
	assert.ErrorIs(t, err, ErrAlreadyInit)
	assert.Equal(t, 1, calls)

	v, err := c.TryGet()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestOnceCellReentrantInit(t *testing.T) {
	var c OnceCell[int]

	var inner error
	require.NoError(t, c.TryInitOnce(func() int {
		inner = c.TryInitOnce(func() int { return 1 })
		_, getErr := c.TryGet()
		assert.ErrorIs(t, getErr, ErrInitializing)
		return 2
	}))
	assert.ErrorIs(t, inner, ErrInitializing)
}
