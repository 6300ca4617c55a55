package app

import (
	"bytes"
	"runtime"
	"sync"

	"kestrel/hal"
	"kestrel/kernel/pckbd"
)

type testFB struct {
	w, h     int
	buf      []byte
	presents int
}

func newTestFB(w, h int) *testFB {
	return &testFB{w: w, h: h, buf: make([]byte, w*h*2)}
}

func (f *testFB) Width() int              { return f.w }
func (f *testFB) Height() int             { return f.h }
func (f *testFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *testFB) StrideBytes() int        { return f.w * 2 }
func (f *testFB) Buffer() []byte          { return f.buf }
func (f *testFB) Present() error          { f.presents++; return nil }

func (f *testFB) ClearRGB(r, g, b uint8) {
	px := uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i], f.buf[i+1] = byte(px), byte(px>>8)
	}
}

func (f *testFB) pixel(x, y int) uint16 {
	off := y*f.StrideBytes() + x*2
	return uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
}

// count returns how many pixels have value px.
func (f *testFB) count(px uint16) int {
	n := 0
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			if f.pixel(x, y) == px {
				n++
			}
		}
	}
	return n
}

type testDisplay struct{ fb hal.Framebuffer }

func (d testDisplay) Framebuffer() hal.Framebuffer { return d.fb }

type testLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *testLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
}

func (l *testLogger) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

type testLED struct {
	levels []bool
}

func (l *testLED) High() { l.levels = append(l.levels, true) }
func (l *testLED) Low()  { l.levels = append(l.levels, false) }

// testCPU parks the foreground on every halt until the test raises an
// interrupt or stops it.
type testCPU struct {
	halted chan struct{}
	wake   chan struct{}
	stop   chan struct{}
}

func newTestCPU() *testCPU {
	return &testCPU{
		halted: make(chan struct{}),
		wake:   make(chan struct{}),
		stop:   make(chan struct{}),
	}
}

func (c *testCPU) DisableInterrupts() {}
func (c *testCPU) EnableInterrupts()  {}

func (c *testCPU) EnableAndHalt() {
	select {
	case c.halted <- struct{}{}:
	case <-c.stop:
		runtime.Goexit()
	}
	select {
	case <-c.wake:
	case <-c.stop:
		runtime.Goexit()
	}
}

type testKeyboard struct {
	set     pckbd.ScancodeSet
	handler func(byte)
}

func (k *testKeyboard) Set() pckbd.ScancodeSet   { return k.set }
func (k *testKeyboard) SetHandler(fn func(byte)) { k.handler = fn }

type testTimer struct {
	handler func()
	started []int
}

func (t *testTimer) SetHandler(fn func()) { t.handler = fn }

func (t *testTimer) Start(hz int) error {
	t.started = append(t.started, hz)
	return nil
}

type testSerial struct {
	mu  sync.Mutex
	out bytes.Buffer
}

func (s *testSerial) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.Write(p)
}

func (s *testSerial) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.String()
}

type testHAL struct {
	log    *testLogger
	led    *testLED
	cpu    *testCPU
	fb     *testFB
	kbd    *testKeyboard
	timer  *testTimer
	serial *testSerial
}

func newTestHAL(fb *testFB) *testHAL {
	return &testHAL{
		log:    &testLogger{},
		led:    &testLED{},
		cpu:    newTestCPU(),
		fb:     fb,
		kbd:    &testKeyboard{set: pckbd.Set1},
		timer:  &testTimer{},
		serial: &testSerial{},
	}
}

func (h *testHAL) Logger() hal.Logger { return h.log }
func (h *testHAL) LED() hal.LED       { return h.led }
func (h *testHAL) CPU() hal.CPU       { return h.cpu }

func (h *testHAL) Display() hal.Display {
	if h.fb == nil {
		return testDisplay{}
	}
	return testDisplay{fb: h.fb}
}

func (h *testHAL) Keyboard() hal.Keyboard { return h.kbd }
func (h *testHAL) Timer() hal.Timer       { return h.timer }
func (h *testHAL) Serial() hal.Serial     { return h.serial }
