package pckbd

// Modifiers is the current state of the modifier and lock keys.
type Modifiers struct {
	LeftShift  bool
	RightShift bool
	LeftCtrl   bool
	RightCtrl  bool
	LeftAlt    bool
	RightAlt   bool
	CapsLock   bool
	NumLock    bool
}

func (m Modifiers) Shift() bool { return m.LeftShift || m.RightShift }
func (m Modifiers) Ctrl() bool  { return m.LeftCtrl || m.RightCtrl }

// HandleControl selects how Ctrl+letter combinations decode.
type HandleControl uint8

const (
	// MapLettersToUnicode decodes Ctrl+A..Ctrl+Z to U+0001..U+001A.
	MapLettersToUnicode HandleControl = iota
	// IgnoreControl decodes Ctrl+letter as the plain letter.
	IgnoreControl
)

type shiftPair struct {
	plain, shifted rune
}

var us104Letters = [...]KeyCode{
	KeyA, KeyB, KeyC, KeyD, KeyE, KeyF, KeyG, KeyH, KeyI, KeyJ, KeyK, KeyL, KeyM,
	KeyN, KeyO, KeyP, KeyQ, KeyR, KeyS, KeyT, KeyU, KeyV, KeyW, KeyX, KeyY, KeyZ,
}

var us104Symbols = map[KeyCode]shiftPair{
	KeyBacktick:       {'`', '~'},
	Key1:              {'1', '!'},
	Key2:              {'2', '@'},
	Key3:              {'3', '#'},
	Key4:              {'4', '$'},
	Key5:              {'5', '%'},
	Key6:              {'6', '^'},
	Key7:              {'7', '&'},
	Key8:              {'8', '*'},
	Key9:              {'9', '('},
	Key0:              {'0', ')'},
	KeyMinus:          {'-', '_'},
	KeyEquals:         {'=', '+'},
	KeyLeftBracket:    {'[', '{'},
	KeyRightBracket:   {']', '}'},
	KeyBackslash:      {'\\', '|'},
	KeyNonUSBackslash: {'\\', '|'},
	KeySemicolon:      {';', ':'},
	KeyQuote:          {'\'', '"'},
	KeyComma:          {',', '<'},
	KeyPeriod:         {'.', '>'},
	KeySlash:          {'/', '?'},
	KeySpace:          {' ', ' '},
	KeyTab:            {'\t', '\t'},
	KeyEnter:          {'\n', '\n'},
	KeyBackspace:      {'\b', '\b'},
	KeyEscape:         {0x1B, 0x1B},
	KeyDelete:         {0x7F, 0x7F},
	KeyPadDivide:      {'/', '/'},
	KeyPadMultiply:    {'*', '*'},
	KeyPadMinus:       {'-', '-'},
	KeyPadPlus:        {'+', '+'},
	KeyPadEnter:       {'\n', '\n'},
}

// Keypad keys that produce digits while NumLock is on.
var us104Keypad = map[KeyCode]rune{
	KeyPad0: '0', KeyPad1: '1', KeyPad2: '2', KeyPad3: '3', KeyPad4: '4',
	KeyPad5: '5', KeyPad6: '6', KeyPad7: '7', KeyPad8: '8', KeyPad9: '9',
	KeyPadPeriod: '.',
}

// With NumLock off the keypad acts as the navigation cluster.
var us104KeypadNav = map[KeyCode]KeyCode{
	KeyPad0: KeyInsert, KeyPad1: KeyEnd, KeyPad2: KeyDown, KeyPad3: KeyPageDown,
	KeyPad4: KeyLeft, KeyPad6: KeyRight, KeyPad7: KeyHome, KeyPad8: KeyUp,
	KeyPad9: KeyPageUp, KeyPadPeriod: KeyDelete,
}

// mapUS104 decodes a pressed key on a US 104-key layout.
func mapUS104(code KeyCode, m Modifiers, ctrl HandleControl) DecodedKey {
	if i := letterIndex(code); i >= 0 {
		if m.Ctrl() && ctrl == MapLettersToUnicode {
			return unicodeKey(rune(i + 1))
		}
		if m.Shift() != m.CapsLock {
			return unicodeKey(rune('A' + i))
		}
		return unicodeKey(rune('a' + i))
	}
	if r, ok := us104Keypad[code]; ok {
		if m.NumLock {
			return unicodeKey(r)
		}
		if nav, ok := us104KeypadNav[code]; ok {
			return rawKey(nav)
		}
		return rawKey(code)
	}
	if p, ok := us104Symbols[code]; ok {
		if m.Shift() {
			return unicodeKey(p.shifted)
		}
		return unicodeKey(p.plain)
	}
	return rawKey(code)
}

func letterIndex(code KeyCode) int {
	for i, k := range us104Letters {
		if k == code {
			return i
		}
	}
	return -1
}

// runeKeys is the reverse of the US 104-key layout for printable input.
var runeKeys = buildRuneKeys()

type runeKey struct {
	code  KeyCode
	shift bool
}

func buildRuneKeys() map[rune]runeKey {
	out := make(map[rune]runeKey, 128)
	for i, k := range us104Letters {
		out[rune('a'+i)] = runeKey{code: k}
		out[rune('A'+i)] = runeKey{code: k, shift: true}
	}
	for _, k := range []KeyCode{
		KeyBacktick, Key1, Key2, Key3, Key4, Key5, Key6, Key7, Key8, Key9, Key0,
		KeyMinus, KeyEquals, KeyLeftBracket, KeyRightBracket, KeyBackslash,
		KeySemicolon, KeyQuote, KeyComma, KeyPeriod, KeySlash,
		KeySpace, KeyTab, KeyEnter, KeyBackspace, KeyEscape, KeyDelete,
	} {
		p := us104Symbols[k]
		if _, ok := out[p.plain]; !ok {
			out[p.plain] = runeKey{code: k}
		}
		if _, ok := out[p.shifted]; !ok {
			out[p.shifted] = runeKey{code: k, shift: true}
		}
	}
	return out
}
