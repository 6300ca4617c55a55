package pckbd

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownKeyCode     = errors.New("pckbd: unknown key code")
	ErrUnsupportedSet     = errors.New("pckbd: unsupported scancode set")
	ErrUnsupportedKeyCode = errors.New("pckbd: key has no scancode in set")
)

// ScancodeSet selects the wire encoding of key transitions.
type ScancodeSet uint8

const (
	Set1 ScancodeSet = 1
	Set2 ScancodeSet = 2
)

func (s ScancodeSet) String() string {
	switch s {
	case Set1:
		return "set1"
	case Set2:
		return "set2"
	default:
		return fmt.Sprintf("set(%d)", uint8(s))
	}
}

const (
	prefixExtended byte = 0xE0
	prefixPause    byte = 0xE1
	set2Release    byte = 0xF0
	set1Release    byte = 0x80
)

type scancodeEntry struct {
	b    byte
	code KeyCode
}

var set1Base = []scancodeEntry{
	{0x01, KeyEscape}, {0x02, Key1}, {0x03, Key2}, {0x04, Key3}, {0x05, Key4},
	{0x06, Key5}, {0x07, Key6}, {0x08, Key7}, {0x09, Key8}, {0x0A, Key9},
	{0x0B, Key0}, {0x0C, KeyMinus}, {0x0D, KeyEquals}, {0x0E, KeyBackspace},
	{0x0F, KeyTab}, {0x10, KeyQ}, {0x11, KeyW}, {0x12, KeyE}, {0x13, KeyR},
	{0x14, KeyT}, {0x15, KeyY}, {0x16, KeyU}, {0x17, KeyI}, {0x18, KeyO},
	{0x19, KeyP}, {0x1A, KeyLeftBracket}, {0x1B, KeyRightBracket},
	{0x1C, KeyEnter}, {0x1D, KeyLeftCtrl}, {0x1E, KeyA}, {0x1F, KeyS},
	{0x20, KeyD}, {0x21, KeyF}, {0x22, KeyG}, {0x23, KeyH}, {0x24, KeyJ},
	{0x25, KeyK}, {0x26, KeyL}, {0x27, KeySemicolon}, {0x28, KeyQuote},
	{0x29, KeyBacktick}, {0x2A, KeyLeftShift}, {0x2B, KeyBackslash},
	{0x2C, KeyZ}, {0x2D, KeyX}, {0x2E, KeyC}, {0x2F, KeyV}, {0x30, KeyB},
	{0x31, KeyN}, {0x32, KeyM}, {0x33, KeyComma}, {0x34, KeyPeriod},
	{0x35, KeySlash}, {0x36, KeyRightShift}, {0x37, KeyPadMultiply},
	{0x38, KeyLeftAlt}, {0x39, KeySpace}, {0x3A, KeyCapsLock},
	{0x3B, KeyF1}, {0x3C, KeyF2}, {0x3D, KeyF3}, {0x3E, KeyF4}, {0x3F, KeyF5},
	{0x40, KeyF6}, {0x41, KeyF7}, {0x42, KeyF8}, {0x43, KeyF9}, {0x44, KeyF10},
	{0x45, KeyNumLock}, {0x46, KeyScrollLock}, {0x47, KeyPad7}, {0x48, KeyPad8},
	{0x49, KeyPad9}, {0x4A, KeyPadMinus}, {0x4B, KeyPad4}, {0x4C, KeyPad5},
	{0x4D, KeyPad6}, {0x4E, KeyPadPlus}, {0x4F, KeyPad1}, {0x50, KeyPad2},
	{0x51, KeyPad3}, {0x52, KeyPad0}, {0x53, KeyPadPeriod},
	{0x56, KeyNonUSBackslash}, {0x57, KeyF11}, {0x58, KeyF12},
}

var set1Extended = []scancodeEntry{
	{0x1C, KeyPadEnter}, {0x1D, KeyRightCtrl}, {0x35, KeyPadDivide},
	{0x37, KeyPrintScreen}, {0x38, KeyRightAlt}, {0x47, KeyHome},
	{0x48, KeyUp}, {0x49, KeyPageUp}, {0x4B, KeyLeft}, {0x4D, KeyRight},
	{0x4F, KeyEnd}, {0x50, KeyDown}, {0x51, KeyPageDown}, {0x52, KeyInsert},
	{0x53, KeyDelete}, {0x5B, KeyLeftMeta}, {0x5C, KeyRightMeta},
	{0x5D, KeyMenu},
}

var set2Base = []scancodeEntry{
	{0x01, KeyF9}, {0x03, KeyF5}, {0x04, KeyF3}, {0x05, KeyF1}, {0x06, KeyF2},
	{0x07, KeyF12}, {0x09, KeyF10}, {0x0A, KeyF8}, {0x0B, KeyF6}, {0x0C, KeyF4},
	{0x0D, KeyTab}, {0x0E, KeyBacktick}, {0x11, KeyLeftAlt},
	{0x12, KeyLeftShift}, {0x14, KeyLeftCtrl}, {0x15, KeyQ}, {0x16, Key1},
	{0x1A, KeyZ}, {0x1B, KeyS}, {0x1C, KeyA}, {0x1D, KeyW}, {0x1E, Key2},
	{0x21, KeyC}, {0x22, KeyX}, {0x23, KeyD}, {0x24, KeyE}, {0x25, Key4},
	{0x26, Key3}, {0x29, KeySpace}, {0x2A, KeyV}, {0x2B, KeyF}, {0x2C, KeyT},
	{0x2D, KeyR}, {0x2E, Key5}, {0x31, KeyN}, {0x32, KeyB}, {0x33, KeyH},
	{0x34, KeyG}, {0x35, KeyY}, {0x36, Key6}, {0x3A, KeyM}, {0x3B, KeyJ},
	{0x3C, KeyU}, {0x3D, Key7}, {0x3E, Key8}, {0x41, KeyComma}, {0x42, KeyK},
	{0x43, KeyI}, {0x44, KeyO}, {0x45, Key0}, {0x46, Key9}, {0x49, KeyPeriod},
	{0x4A, KeySlash}, {0x4B, KeyL}, {0x4C, KeySemicolon}, {0x4D, KeyP},
	{0x4E, KeyMinus}, {0x52, KeyQuote}, {0x54, KeyLeftBracket},
	{0x55, KeyEquals}, {0x58, KeyCapsLock}, {0x59, KeyRightShift},
	{0x5A, KeyEnter}, {0x5B, KeyRightBracket}, {0x5D, KeyBackslash},
	{0x61, KeyNonUSBackslash}, {0x66, KeyBackspace}, {0x69, KeyPad1},
	{0x6B, KeyPad4}, {0x6C, KeyPad7}, {0x70, KeyPad0}, {0x71, KeyPadPeriod},
	{0x72, KeyPad2}, {0x73, KeyPad5}, {0x74, KeyPad6}, {0x75, KeyPad8},
	{0x76, KeyEscape}, {0x77, KeyNumLock}, {0x78, KeyF11}, {0x79, KeyPadPlus},
	{0x7A, KeyPad3}, {0x7B, KeyPadMinus}, {0x7C, KeyPadMultiply},
	{0x7D, KeyPad9}, {0x7E, KeyScrollLock}, {0x83, KeyF7},
}

var set2Extended = []scancodeEntry{
	{0x11, KeyRightAlt}, {0x14, KeyRightCtrl}, {0x1F, KeyLeftMeta},
	{0x27, KeyRightMeta}, {0x2F, KeyMenu}, {0x4A, KeyPadDivide},
	{0x5A, KeyPadEnter}, {0x69, KeyEnd}, {0x6B, KeyLeft}, {0x6C, KeyHome},
	{0x70, KeyInsert}, {0x71, KeyDelete}, {0x72, KeyDown}, {0x74, KeyRight},
	{0x75, KeyUp}, {0x7A, KeyPageDown}, {0x7C, KeyPrintScreen},
	{0x7D, KeyPageUp},
}

// scancodeTable maps one set's bytes to key codes in both directions.
type scancodeTable struct {
	base     [256]KeyCode
	extended [256]KeyCode

	// Reverse lookup: code -> byte, with extended flag.
	make [keyCount]byte
	ext  [keyCount]bool
}

func newScancodeTable(base, extended []scancodeEntry) *scancodeTable {
	t := &scancodeTable{}
	for _, e := range base {
		t.base[e.b] = e.code
		t.make[e.code] = e.b
	}
	for _, e := range extended {
		t.extended[e.b] = e.code
		t.make[e.code] = e.b
		t.ext[e.code] = true
	}
	return t
}

var (
	set1Table = newScancodeTable(set1Base, set1Extended)
	set2Table = newScancodeTable(set2Base, set2Extended)
)

type decodeState uint8

const (
	stateStart decodeState = iota
	stateExtended
	stateRelease
	stateExtendedRelease
	statePause
)

// decoder is a byte-at-a-time scancode state machine.
type decoder struct {
	set   ScancodeSet
	state decodeState
	skip  int
}

func (d *decoder) reset() {
	d.state = stateStart
	d.skip = 0
}

// advance consumes one byte. It returns ok=false with a nil error when the
// byte was a prefix or an ignored sequence.
func (d *decoder) advance(b byte) (KeyEvent, bool, error) {
	switch d.set {
	case Set1:
		return d.advanceSet1(b)
	case Set2:
		return d.advanceSet2(b)
	default:
		return KeyEvent{}, false, ErrUnsupportedSet
	}
}

func (d *decoder) advanceSet1(b byte) (KeyEvent, bool, error) {
	switch d.state {
	case statePause:
		// Pause/Break: E1 1D 45 E1 9D C5.
		d.skip--
		if d.skip == 0 {
			d.state = stateStart
		}
		return KeyEvent{}, false, nil
	case stateExtended:
		d.state = stateStart
		code := set1Table.extended[b&^set1Release]
		if code == KeyNone {
			if isFakeShift1(b &^ set1Release) {
				return KeyEvent{}, false, nil
			}
			return KeyEvent{}, false, fmt.Errorf("%w: set1 e0 %#02x", ErrUnknownKeyCode, b)
		}
		return KeyEvent{Code: code, State: set1State(b)}, true, nil
	}

	switch b {
	case prefixExtended:
		d.state = stateExtended
		return KeyEvent{}, false, nil
	case prefixPause:
		d.state = statePause
		d.skip = 5
		return KeyEvent{}, false, nil
	}
	code := set1Table.base[b&^set1Release]
	if code == KeyNone {
		return KeyEvent{}, false, fmt.Errorf("%w: set1 %#02x", ErrUnknownKeyCode, b)
	}
	return KeyEvent{Code: code, State: set1State(b)}, true, nil
}

func set1State(b byte) KeyState {
	if b&set1Release != 0 {
		return Released
	}
	return Pressed
}

// Extended left/right shift bytes wrap PrintScreen and the navigation
// cluster when NumLock is on. They carry no key of their own.
func isFakeShift1(b byte) bool { return b == 0x2A || b == 0x36 }
func isFakeShift2(b byte) bool { return b == 0x12 || b == 0x59 }

func (d *decoder) advanceSet2(b byte) (KeyEvent, bool, error) {
	switch d.state {
	case statePause:
		// Pause/Break: E1 14 77 E1 F0 14 F0 77.
		d.skip--
		if d.skip == 0 {
			d.state = stateStart
		}
		return KeyEvent{}, false, nil
	case stateExtended:
		if b == set2Release {
			d.state = stateExtendedRelease
			return KeyEvent{}, false, nil
		}
		d.state = stateStart
		return set2Event(set2Table.extended[b], b, Pressed, true)
	case stateExtendedRelease:
		d.state = stateStart
		return set2Event(set2Table.extended[b], b, Released, true)
	case stateRelease:
		d.state = stateStart
		return set2Event(set2Table.base[b], b, Released, false)
	}

	switch b {
	case prefixExtended:
		d.state = stateExtended
		return KeyEvent{}, false, nil
	case set2Release:
		d.state = stateRelease
		return KeyEvent{}, false, nil
	case prefixPause:
		d.state = statePause
		d.skip = 7
		return KeyEvent{}, false, nil
	}
	return set2Event(set2Table.base[b], b, Pressed, false)
}

func set2Event(code KeyCode, b byte, state KeyState, extended bool) (KeyEvent, bool, error) {
	if code != KeyNone {
		return KeyEvent{Code: code, State: state}, true, nil
	}
	if extended {
		if isFakeShift2(b) {
			return KeyEvent{}, false, nil
		}
		return KeyEvent{}, false, fmt.Errorf("%w: set2 e0 %#02x", ErrUnknownKeyCode, b)
	}
	return KeyEvent{}, false, fmt.Errorf("%w: set2 %#02x", ErrUnknownKeyCode, b)
}

// Encode appends the scancode bytes for ev in set to dst.
func Encode(dst []byte, set ScancodeSet, ev KeyEvent) ([]byte, error) {
	var t *scancodeTable
	switch set {
	case Set1:
		t = set1Table
	case Set2:
		t = set2Table
	default:
		return dst, ErrUnsupportedSet
	}
	if ev.Code == KeyNone || ev.Code >= keyCount || t.make[ev.Code] == 0 {
		return dst, fmt.Errorf("%w: %s in %s", ErrUnsupportedKeyCode, ev.Code, set)
	}
	b := t.make[ev.Code]
	if t.ext[ev.Code] {
		dst = append(dst, prefixExtended)
	}
	switch {
	case ev.State == Pressed:
		dst = append(dst, b)
	case set == Set1:
		dst = append(dst, b|set1Release)
	default:
		dst = append(dst, set2Release, b)
	}
	return dst, nil
}
