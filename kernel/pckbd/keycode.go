// Package pckbd decodes PC keyboard scancodes into key events and characters.
//
// Both scancode set 1 (XT, what a PC keyboard controller translates to) and
// set 2 (AT, what a PS/2 keyboard sends on the wire) are supported. Decoded
// key events are mapped to characters by a US 104-key layout.
package pckbd

// KeyCode identifies a physical key independent of scancode set.
type KeyCode uint8

const (
	KeyNone KeyCode = iota

	KeyEscape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyPrintScreen
	KeyScrollLock

	KeyBacktick
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	Key0
	KeyMinus
	KeyEquals
	KeyBackspace

	KeyTab
	KeyQ
	KeyW
	KeyE
	KeyR
	KeyT
	KeyY
	KeyU
	KeyI
	KeyO
	KeyP
	KeyLeftBracket
	KeyRightBracket
	KeyBackslash

	KeyCapsLock
	KeyA
	KeyS
	KeyD
	KeyF
	KeyG
	KeyH
	KeyJ
	KeyK
	KeyL
	KeySemicolon
	KeyQuote
	KeyEnter

	KeyLeftShift
	KeyNonUSBackslash
	KeyZ
	KeyX
	KeyC
	KeyV
	KeyB
	KeyN
	KeyM
	KeyComma
	KeyPeriod
	KeySlash
	KeyRightShift

	KeyLeftCtrl
	KeyLeftMeta
	KeyLeftAlt
	KeySpace
	KeyRightAlt
	KeyRightMeta
	KeyMenu
	KeyRightCtrl

	KeyInsert
	KeyHome
	KeyPageUp
	KeyDelete
	KeyEnd
	KeyPageDown
	KeyUp
	KeyLeft
	KeyDown
	KeyRight

	KeyNumLock
	KeyPadDivide
	KeyPadMultiply
	KeyPadMinus
	KeyPad7
	KeyPad8
	KeyPad9
	KeyPadPlus
	KeyPad4
	KeyPad5
	KeyPad6
	KeyPad1
	KeyPad2
	KeyPad3
	KeyPad0
	KeyPadPeriod
	KeyPadEnter

	keyCount
)

var keyNames = [keyCount]string{
	KeyNone:           "None",
	KeyEscape:         "Escape",
	KeyF1:             "F1",
	KeyF2:             "F2",
	KeyF3:             "F3",
	KeyF4:             "F4",
	KeyF5:             "F5",
	KeyF6:             "F6",
	KeyF7:             "F7",
	KeyF8:             "F8",
	KeyF9:             "F9",
	KeyF10:            "F10",
	KeyF11:            "F11",
	KeyF12:            "F12",
	KeyPrintScreen:    "PrintScreen",
	KeyScrollLock:     "ScrollLock",
	KeyBacktick:       "Backtick",
	Key1:              "Key1",
	Key2:              "Key2",
	Key3:              "Key3",
	Key4:              "Key4",
	Key5:              "Key5",
	Key6:              "Key6",
	Key7:              "Key7",
	Key8:              "Key8",
	Key9:              "Key9",
	Key0:              "Key0",
	KeyMinus:          "Minus",
	KeyEquals:         "Equals",
	KeyBackspace:      "Backspace",
	KeyTab:            "Tab",
	KeyQ:              "Q",
	KeyW:              "W",
	KeyE:              "E",
	KeyR:              "R",
	KeyT:              "T",
	KeyY:              "Y",
	KeyU:              "U",
	KeyI:              "I",
	KeyO:              "O",
	KeyP:              "P",
	KeyLeftBracket:    "LeftBracket",
	KeyRightBracket:   "RightBracket",
	KeyBackslash:      "Backslash",
	KeyCapsLock:       "CapsLock",
	KeyA:              "A",
	KeyS:              "S",
	KeyD:              "D",
	KeyF:              "F",
	KeyG:              "G",
	KeyH:              "H",
	KeyJ:              "J",
	KeyK:              "K",
	KeyL:              "L",
	KeySemicolon:      "Semicolon",
	KeyQuote:          "Quote",
	KeyEnter:          "Enter",
	KeyLeftShift:      "LeftShift",
	KeyNonUSBackslash: "NonUSBackslash",
	KeyZ:              "Z",
	KeyX:              "X",
	KeyC:              "C",
	KeyV:              "V",
	KeyB:              "B",
	KeyN:              "N",
	KeyM:              "M",
	KeyComma:          "Comma",
	KeyPeriod:         "Period",
	KeySlash:          "Slash",
	KeyRightShift:     "RightShift",
	KeyLeftCtrl:       "LeftCtrl",
	KeyLeftMeta:       "LeftMeta",
	KeyLeftAlt:        "LeftAlt",
	KeySpace:          "Space",
	KeyRightAlt:       "RightAlt",
	KeyRightMeta:      "RightMeta",
	KeyMenu:           "Menu",
	KeyRightCtrl:      "RightCtrl",
	KeyInsert:         "Insert",
	KeyHome:           "Home",
	KeyPageUp:         "PageUp",
	KeyDelete:         "Delete",
	KeyEnd:            "End",
	KeyPageDown:       "PageDown",
	KeyUp:             "Up",
	KeyLeft:           "Left",
	KeyDown:           "Down",
	KeyRight:          "Right",
	KeyNumLock:        "NumLock",
	KeyPadDivide:      "PadDivide",
	KeyPadMultiply:    "PadMultiply",
	KeyPadMinus:       "PadMinus",
	KeyPad7:           "Pad7",
	KeyPad8:           "Pad8",
	KeyPad9:           "Pad9",
	KeyPadPlus:        "PadPlus",
	KeyPad4:           "Pad4",
	KeyPad5:           "Pad5",
	KeyPad6:           "Pad6",
	KeyPad1:           "Pad1",
	KeyPad2:           "Pad2",
	KeyPad3:           "Pad3",
	KeyPad0:           "Pad0",
	KeyPadPeriod:      "PadPeriod",
	KeyPadEnter:       "PadEnter",
}

func (k KeyCode) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return "Unknown"
}

// KeyState is the direction of a key transition.
type KeyState uint8

const (
	Released KeyState = iota
	Pressed
)

func (s KeyState) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "released"
}

// KeyEvent is a single decoded key transition.
type KeyEvent struct {
	Code  KeyCode
	State KeyState
}
