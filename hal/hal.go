package hal

import (
	"errors"

	"kestrel/kernel/pckbd"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// CPU is the interrupt mask and idle primitive of the single core the
// executor runs on.
type CPU interface {
	DisableInterrupts()
	EnableInterrupts()
	// EnableAndHalt enables interrupts and sleeps until the next one. No
	// interrupt can be taken between the enable and the sleep.
	EnableAndHalt()
}

// Keyboard is a scancode source.
//
// The handler runs in interrupt context, once per received byte, with
// interrupts masked. It must not block.
type Keyboard interface {
	// Set is the scancode set the device emits.
	Set() pckbd.ScancodeSet
	SetHandler(fn func(scancode byte))
}

// Timer raises a periodic interrupt.
type Timer interface {
	// SetHandler installs fn to run in interrupt context on every tick.
	SetHandler(fn func())
	// Start begins ticking at hz. hz <= 0 leaves the timer stopped.
	Start(hz int) error
}

// Serial is the console output port. Writes may come from interrupt
// handlers as well as the foreground.
type Serial interface {
	Write(p []byte) (int, error)
}

// HAL provides the only contact point between the kernel and the outside world.
type HAL interface {
	Logger() Logger
	LED() LED
	CPU() CPU
	Display() Display
	Keyboard() Keyboard
	Timer() Timer
	Serial() Serial
}
