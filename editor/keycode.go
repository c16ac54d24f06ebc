package editor

// Key identifies a key independent of the terminal library.
type Key int

const (
	KeyRune Key = iota // A printable character, or a letter combined with Ctrl
	KeyEnter
	KeyLineFeed // Ctrl+J, inserts a newline while editing
	KeyTab
	KeyDelete
	KeyBackspace
	KeyEscape
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyHome
	KeyEnd
	KeyF2
)

// Modifier is a bit set of held modifier keys.
type Modifier int

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
)

// KeyEvent represents either a regular character or a special key
type KeyEvent struct {
	Key  Key
	Rune rune
	Mod  Modifier
}

// Has reports whether all modifiers in m are held.
func (k KeyEvent) Has(m Modifier) bool {
	return k.Mod&m == m
}

// IsCtrl reports whether the event is Ctrl plus the given lowercase letter.
// Shifted chords (Ctrl+Shift+Z, or an uppercase rune) do not match.
func (k KeyEvent) IsCtrl(letter rune) bool {
	if k.Key != KeyRune || !k.Has(ModCtrl) || k.Has(ModShift) {
		return false
	}
	return k.Rune == letter
}
