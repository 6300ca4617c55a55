package app

import (
	"image/color"
	"io"
	"unicode/utf8"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"

	"kestrel/hal"
	"kestrel/kernel"
)

var (
	consoleFont       = &proggy.TinySZ8pt7b
	consoleFontHeight = int16(10)
	consoleFontOffset = int16(6)

	consoleBackground = color.RGBA{A: 255}
)

// Console is the text output of the system. Every write goes to the serial
// port and, when the display has a framebuffer, to a terminal drawn on it.
//
// A Console belongs to the foreground context and must not be written from
// interrupt handlers.
type Console struct {
	serial io.Writer

	disp       *fbDisplay
	term       *tinyterm.Terminal
	rows, cols int
	row, col   int
}

// NewConsole creates a console on d. Either argument may be nil.
func NewConsole(d hal.Display, serial io.Writer) *Console {
	c := &Console{serial: serial}
	if d == nil {
		return c
	}
	c.disp = newFBDisplay(d.Framebuffer())
	if c.disp == nil {
		return c
	}

	_, charWidth := tinyfont.LineWidth(consoleFont, "0")
	w, h := c.disp.Size()
	if charWidth == 0 || int(h) < int(consoleFontHeight) {
		c.disp = nil
		return c
	}
	c.cols = int(w) / int(charWidth)
	c.rows = int(h) / int(consoleFontHeight)
	c.term = tinyterm.NewTerminal(c.disp)
	c.reset()
	return c
}

func (c *Console) reset() {
	_ = c.disp.FillRectangle(0, 0, int16(c.disp.fb.Width()), int16(c.disp.fb.Height()), consoleBackground)
	c.term.Configure(&tinyterm.Config{
		Font:       consoleFont,
		FontHeight: consoleFontHeight,
		FontOffset: consoleFontOffset,
	})
	c.row, c.col = 0, 0
}

func (c *Console) Write(p []byte) (int, error) {
	if c.serial != nil {
		if _, err := c.serial.Write(p); err != nil {
			kernel.Logger().Debug().Err(err).Msg("console: serial write")
		}
	}
	if c.term == nil {
		return len(p), nil
	}

	start := 0
	for i := 0; i < len(p); {
		r, size := utf8.DecodeRune(p[i:])
		i += size
		switch {
		case r == '\n':
			c.row++
			c.col = 0
			if c.row >= c.rows {
				c.reset()
				start = i
			}
		case r == '\r':
			c.col = 0
		case r >= ' ':
			if c.col == c.cols {
				c.row++
				c.col = 0
			}
			if c.row >= c.rows {
				c.reset()
				start = i - size
			}
			c.col++
		}
	}
	if start < len(p) {
		if _, err := c.term.Write(p[start:]); err != nil {
			return len(p), err
		}
	}
	return len(p), c.disp.Display()
}
