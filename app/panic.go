package app

import (
	"image/color"
	"strings"
	"unicode/utf8"

	"tinygo.org/x/tinyfont"

	"kestrel/hal"
	"kestrel/kernel"
)

// haltForever parks the faulting context. Interrupt handlers keep running.
var haltForever = func() { select {} }

func installPanicHandler(h hal.HAL) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		renderPanic(h, info)
		haltForever()
	})
}

func panicLines(info kernel.PanicInfo) []string {
	lines := []string{"KERNEL PANIC", info.Message}
	if len(info.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func renderPanic(h hal.HAL, info kernel.PanicInfo) {
	lines := panicLines(info)
	if l := h.Logger(); l != nil {
		l.WriteLineString(panicBanner(lines[0]) + ": " + lines[1])
		for _, line := range lines[2:] {
			l.WriteLineString(line)
		}
	}

	disp := h.Display()
	if disp == nil {
		return
	}
	d := newFBDisplay(disp.Framebuffer())
	if d == nil {
		return
	}
	fb := d.fb
	fb.ClearRGB(0x00, 0x00, 0xAA)

	_, outboxWidth := tinyfont.LineWidth(consoleFont, "0")
	fontWidth := int16(outboxWidth)
	if fontWidth <= 0 {
		_ = fb.Present()
		return
	}
	cols := int16(fb.Width()) / fontWidth
	if cols <= 0 {
		cols = 1
	}

	fg := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	y := int16(0)
	maxH := int16(fb.Height())
	for _, line := range lines {
		for len(line) > 0 {
			if y+consoleFontHeight > maxH {
				_ = fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			drawTextLine(d, fontWidth, 0, y, chunk, fg)
			y += consoleFontHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = fb.Present()
}

func drawTextLine(d *fbDisplay, fontWidth, x0, y0 int16, s string, fg color.RGBA) {
	x := x0
	for _, r := range s {
		tinyfont.DrawChar(d, consoleFont, x, y0+consoleFontOffset, r, fg)
		x += fontWidth
	}
}

// takeRunes splits s after n runes.
func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	var i int
	for count := int16(0); i < len(s) && count < n; count++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i], s[i:]
}
