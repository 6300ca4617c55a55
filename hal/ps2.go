package hal

import "errors"

var (
	ErrPS2Framing = errors.New("ps2: framing error")
	ErrPS2Parity  = errors.New("ps2: parity error")
)

// ps2Frame assembles device-to-host PS/2 frames one clock edge at a time.
//
// A frame is 11 bits sampled on the falling clock edge: a start bit (0),
// eight data bits LSB first, an odd parity bit and a stop bit (1).
type ps2Frame struct {
	bit    uint8
	data   uint8
	parity uint8
}

// shift consumes the data line level sampled on one falling clock edge.
// done is true when a frame completed; err is set if that frame was bad.
// The frame state always resets after the stop bit or a bad start bit.
func (f *ps2Frame) shift(level bool) (b byte, done bool, err error) {
	var v uint8
	if level {
		v = 1
	}
	switch {
	case f.bit == 0:
		if v != 0 {
			// Not a start bit; stay idle.
			return 0, false, nil
		}
		f.data, f.parity = 0, 0
	case f.bit <= 8:
		f.data |= v << (f.bit - 1)
		f.parity += v
	case f.bit == 9:
		f.parity += v
	case f.bit == 10:
		f.bit = 0
		if v != 1 {
			return 0, true, ErrPS2Framing
		}
		if f.parity&1 != 1 {
			return 0, true, ErrPS2Parity
		}
		return f.data, true, nil
	}
	f.bit++
	return 0, false, nil
}

func (f *ps2Frame) reset() {
	*f = ps2Frame{}
}
