package pckbd

import (
	"fmt"
	"strconv"
)

// DecodedKey is the result of processing a key press: either a character or
// a key with no character mapping.
type DecodedKey struct {
	Unicode bool
	Rune    rune
	Key     KeyCode
}

func unicodeKey(r rune) DecodedKey { return DecodedKey{Unicode: true, Rune: r} }
func rawKey(k KeyCode) DecodedKey  { return DecodedKey{Key: k} }

func (d DecodedKey) String() string {
	if d.Unicode {
		return strconv.QuoteRune(d.Rune)
	}
	return d.Key.String()
}

// Keyboard turns a scancode byte stream into decoded keys.
//
// It is not safe for concurrent use; a single consumer task owns it.
type Keyboard struct {
	dec  decoder
	mods Modifiers
	ctrl HandleControl
}

// New returns a keyboard decoding set with a US 104-key layout. NumLock
// starts on.
func New(set ScancodeSet, ctrl HandleControl) *Keyboard {
	return &Keyboard{
		dec:  decoder{set: set},
		mods: Modifiers{NumLock: true},
		ctrl: ctrl,
	}
}

// Set returns the scancode set being decoded.
func (k *Keyboard) Set() ScancodeSet { return k.dec.set }

// Modifiers returns the current modifier state.
func (k *Keyboard) Modifiers() Modifiers { return k.mods }

// Clear resets the decoder and modifier state.
func (k *Keyboard) Clear() {
	k.dec.reset()
	k.mods = Modifiers{NumLock: true}
}

// AddByte feeds one scancode byte. ok is false while a multi-byte sequence
// is incomplete. An unknown byte returns an error and resets the decoder.
func (k *Keyboard) AddByte(b byte) (ev KeyEvent, ok bool, err error) {
	ev, ok, err = k.dec.advance(b)
	if err != nil {
		k.dec.reset()
	}
	return ev, ok, err
}

// ProcessKeyEvent updates modifier state and decodes key presses. ok is
// false for releases and for modifier keys.
func (k *Keyboard) ProcessKeyEvent(ev KeyEvent) (DecodedKey, bool) {
	down := ev.State == Pressed
	switch ev.Code {
	case KeyLeftShift:
		k.mods.LeftShift = down
	case KeyRightShift:
		k.mods.RightShift = down
	case KeyLeftCtrl:
		k.mods.LeftCtrl = down
	case KeyRightCtrl:
		k.mods.RightCtrl = down
	case KeyLeftAlt:
		k.mods.LeftAlt = down
	case KeyRightAlt:
		k.mods.RightAlt = down
	case KeyCapsLock:
		if down {
			k.mods.CapsLock = !k.mods.CapsLock
		}
	case KeyNumLock:
		if down {
			k.mods.NumLock = !k.mods.NumLock
		}
	default:
		if !down {
			return DecodedKey{}, false
		}
		return mapUS104(ev.Code, k.mods, k.ctrl), true
	}
	return DecodedKey{}, false
}

// Feed is AddByte followed by ProcessKeyEvent.
func (k *Keyboard) Feed(b byte) (DecodedKey, bool, error) {
	ev, ok, err := k.AddByte(b)
	if err != nil || !ok {
		return DecodedKey{}, false, err
	}
	key, ok := k.ProcessKeyEvent(ev)
	return key, ok, nil
}

// EncodeRune appends the press and release bytes that type r on a US
// 104-key layout, wrapped in left shift when needed.
func EncodeRune(dst []byte, set ScancodeSet, r rune) ([]byte, error) {
	if r == '\r' {
		r = '\n'
	}
	rk, ok := runeKeys[r]
	if !ok {
		return dst, fmt.Errorf("pckbd: no key types %q", r)
	}
	var err error
	if rk.shift {
		if dst, err = Encode(dst, set, KeyEvent{Code: KeyLeftShift, State: Pressed}); err != nil {
			return dst, err
		}
	}
	for _, st := range []KeyState{Pressed, Released} {
		if dst, err = Encode(dst, set, KeyEvent{Code: rk.code, State: st}); err != nil {
			return dst, err
		}
	}
	if rk.shift {
		dst, err = Encode(dst, set, KeyEvent{Code: KeyLeftShift, State: Released})
	}
	return dst, err
}

// EncodeString encodes every rune of s. It stops at the first rune with no
// key.
func EncodeString(set ScancodeSet, s string) ([]byte, error) {
	out := make([]byte, 0, len(s)*2)
	var err error
	for _, r := range s {
		if out, err = EncodeRune(out, set, r); err != nil {
			return out, err
		}
	}
	return out, nil
}
