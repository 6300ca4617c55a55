package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleWritesSerialAndFramebuffer(t *testing.T) {
	fb := newTestFB(64, 40)
	serial := &testSerial{}
	c := NewConsole(testDisplay{fb: fb}, serial)
	require.NotNil(t, c.term)
	assert.Equal(t, 4, c.rows)

	n, err := c.Write([]byte("hi\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "hi\n", serial.String())
	assert.Greater(t, fb.presents, 0)
	assert.Less(t, fb.count(0), fb.w*fb.h, "glyph pixels drawn")
	assert.Equal(t, 1, c.row)
	assert.Equal(t, 0, c.col)
}

func TestConsoleRestartsAtTopWhenFull(t *testing.T) {
	fb := newTestFB(64, 40)
	c := NewConsole(testDisplay{fb: fb}, nil)
	require.NotNil(t, c.term)

	_, err := c.Write([]byte("1\n2\n3\n4\n5"))
	require.NoError(t, err)
	assert.Equal(t, 0, c.row)
	assert.Equal(t, 1, c.col)
}

func TestConsoleWrapsLongLines(t *testing.T) {
	fb := newTestFB(64, 40)
	c := NewConsole(testDisplay{fb: fb}, nil)
	require.NotNil(t, c.term)
	require.Greater(t, c.cols, 0)

	_, err := c.Write([]byte(strings.Repeat("x", c.cols+1)))
	require.NoError(t, err)
	assert.Equal(t, 1, c.row)
	assert.Equal(t, 1, c.col)
}

func TestConsoleWithoutFramebuffer(t *testing.T) {
	serial := &testSerial{}
	c := NewConsole(testDisplay{}, serial)
	assert.Nil(t, c.term)

	_, err := c.Write([]byte("async number: 42\n"))
	require.NoError(t, err)
	assert.Equal(t, "async number: 42\n", serial.String())

	c = NewConsole(nil, nil)
	n, err := c.Write([]byte("x"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
