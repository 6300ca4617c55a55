package keyboard

import (
	"fmt"
	"io"

	"kestrel/kernel"
	"kestrel/kernel/pckbd"
)

// PrintKeypresses returns a task body that decodes scancodes from the
// default controller and writes each key to out.
func PrintKeypresses(out io.Writer, set pckbd.ScancodeSet) kernel.Future {
	return std.Load().PrintKeypresses(out, set)
}

// PrintKeypresses returns a task body that decodes c's scancodes and writes
// each key to out. Characters are written as is; keys without a character
// are written by name. The stream is created on first poll.
func (c *Controller) PrintKeypresses(out io.Writer, set pckbd.ScancodeSet) kernel.Future {
	return &keypressPrinter{c: c, out: out, set: set}
}

type keypressPrinter struct {
	c   *Controller
	out io.Writer
	set pckbd.ScancodeSet

	stream *ScancodeStream
	kb     *pckbd.Keyboard
}

func (p *keypressPrinter) Poll(cx *kernel.Context) kernel.Poll {
	if p.stream == nil {
		p.stream = p.c.NewScancodeStream()
		p.kb = pckbd.New(p.set, pckbd.IgnoreControl)
		kernel.Logger().Debug().Stringer("set", p.set).Msg("waiting for keypresses")
	}
	for {
		b, ok, poll := p.stream.PollNext(cx)
		if poll == kernel.Pending {
			return kernel.Pending
		}
		if !ok {
			return kernel.Ready
		}
		key, ok, err := p.kb.Feed(b)
		if err != nil {
			kernel.Logger().Debug().Err(err).Uint8("scancode", b).Msg("undecodable scancode")
			continue
		}
		if !ok {
			continue
		}
		if key.Unicode {
			fmt.Fprintf(p.out, "%c", key.Rune)
		} else {
			fmt.Fprint(p.out, key.Key.String())
		}
	}
}
