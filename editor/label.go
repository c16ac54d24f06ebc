package editor

import (
	"strings"
	"unicode"
)

// EditState is the state of a node's in-place label editor.
type EditState int

const (
	Viewing EditState = iota // Label shown as static text
	Editing                  // Label shown in a focused text input
)

// String returns the state name for display
func (s EditState) String() string {
	switch s {
	case Viewing:
		return "VIEW"
	case Editing:
		return "EDIT"
	default:
		return "UNKNOWN"
	}
}

// LabelCommitFunc receives a committed label that differs from the old one.
type LabelCommitFunc func(id, text string)

// LabelEditor is the edit-in-place state machine for one node's label.
// Viewing -> Editing on BeginEdit; Enter (without Shift) or Blur commits
// and returns to Viewing.
//
// While editing, the label is a rune buffer with a single insertion point.
// Lines and columns are derived from the buffer on demand.
type LabelEditor struct {
	id        string
	committed string
	state     EditState

	buf []rune
	pos int // Insertion point, 0..len(buf)

	onCommit LabelCommitFunc
}

// NewLabelEditor creates an editor in the Viewing state.
func NewLabelEditor(id, label string, onCommit LabelCommitFunc) *LabelEditor {
	l := &LabelEditor{
		id:        id,
		committed: label,
		state:     Viewing,
		onCommit:  onCommit,
	}
	l.reset(label)
	return l
}

// NodeID returns the id of the node being edited
func (l *LabelEditor) NodeID() string {
	return l.id
}

// State returns the current state
func (l *LabelEditor) State() EditState {
	return l.state
}

// Text returns the buffer contents
func (l *LabelEditor) Text() string {
	return string(l.buf)
}

// Lines returns the buffer split on newlines.
func (l *LabelEditor) Lines() []string {
	return strings.Split(string(l.buf), "\n")
}

// Cursor returns the cursor line and column within the buffer.
func (l *LabelEditor) Cursor() (line, col int) {
	for _, r := range l.buf[:l.pos] {
		if r == '\n' {
			line++
		}
	}
	return line, l.pos - l.lineStart(l.pos)
}

// Sync follows an external change of the committed label, e.g. after undo.
// The buffer is only replaced while viewing.
func (l *LabelEditor) Sync(label string) {
	l.committed = label
	if l.state == Viewing {
		l.reset(label)
	}
}

// BeginEdit enters Editing with the buffer seeded from the label and the
// cursor at the end.
func (l *LabelEditor) BeginEdit() {
	if l.state == Editing {
		return
	}
	l.state = Editing
	l.reset(l.committed)
}

// Blur commits the buffer and returns to Viewing. The commit callback only
// fires when the text changed.
func (l *LabelEditor) Blur() {
	if l.state != Editing {
		return
	}
	l.state = Viewing
	text := string(l.buf)
	if text == l.committed {
		return
	}
	l.committed = text
	if l.onCommit != nil {
		l.onCommit(l.id, text)
	}
}

// HandleKey processes a key while editing. It returns false if the editor
// is not in the Editing state.
func (l *LabelEditor) HandleKey(ev KeyEvent) bool {
	if l.state != Editing {
		return false
	}

	switch ev.Key {
	case KeyEnter:
		if ev.Has(ModShift) || ev.Has(ModAlt) {
			l.insert('\n')
		} else {
			l.Blur()
		}
	case KeyLineFeed:
		l.insert('\n')
	case KeyEscape:
		l.Blur()

	case KeyBackspace:
		if l.pos > 0 {
			l.cut(l.pos-1, l.pos)
		}
	case KeyDelete:
		if l.pos < len(l.buf) {
			l.cut(l.pos, l.pos+1)
		}

	case KeyArrowLeft:
		l.pos = max(l.pos-1, 0)
	case KeyArrowRight:
		l.pos = min(l.pos+1, len(l.buf))
	case KeyArrowUp:
		l.moveLine(-1)
	case KeyArrowDown:
		l.moveLine(1)
	case KeyHome:
		l.pos = l.lineStart(l.pos)
	case KeyEnd:
		l.pos = l.lineEnd(l.pos)

	case KeyTab:
		// Swallowed so Tab never creates a node mid-edit

	case KeyRune:
		switch {
		case ev.IsCtrl('w'):
			l.cut(l.wordStart(l.pos), l.pos)
		case ev.IsCtrl('u'):
			l.cut(l.lineStart(l.pos), l.pos)
		case ev.IsCtrl('k'):
			l.cut(l.pos, l.lineEnd(l.pos))
		case ev.Has(ModCtrl):
			// Other control chords are ignored while editing
		case unicode.IsGraphic(ev.Rune):
			l.insert(ev.Rune)
		}
	}

	return true
}

// reset loads text into the buffer with the cursor at the end.
func (l *LabelEditor) reset(text string) {
	l.buf = []rune(text)
	l.pos = len(l.buf)
}

func (l *LabelEditor) insert(r rune) {
	l.buf = append(l.buf, 0)
	copy(l.buf[l.pos+1:], l.buf[l.pos:])
	l.buf[l.pos] = r
	l.pos++
}

// cut removes buf[from:to] and leaves the cursor at from.
func (l *LabelEditor) cut(from, to int) {
	if from >= to {
		return
	}
	l.buf = append(l.buf[:from], l.buf[to:]...)
	l.pos = from
}

// lineStart is the offset of the first rune on p's line.
func (l *LabelEditor) lineStart(p int) int {
	for p > 0 && l.buf[p-1] != '\n' {
		p--
	}
	return p
}

// lineEnd is the offset of the newline ending p's line, or len(buf).
func (l *LabelEditor) lineEnd(p int) int {
	for p < len(l.buf) && l.buf[p] != '\n' {
		p++
	}
	return p
}

// wordStart is where a backward word delete from p stops: trailing blanks
// go first, then the word. Newlines are never crossed.
func (l *LabelEditor) wordStart(p int) int {
	blank := func(r rune) bool { return r != '\n' && unicode.IsSpace(r) }
	for p > 0 && blank(l.buf[p-1]) {
		p--
	}
	for p > 0 && !unicode.IsSpace(l.buf[p-1]) {
		p--
	}
	return p
}

// moveLine moves the cursor one line up (dir < 0) or down, keeping the
// column where the target line is long enough.
func (l *LabelEditor) moveLine(dir int) {
	start := l.lineStart(l.pos)
	col := l.pos - start

	var target int
	if dir < 0 {
		if start == 0 {
			return
		}
		target = l.lineStart(start - 1)
	} else {
		end := l.lineEnd(l.pos)
		if end == len(l.buf) {
			return
		}
		target = end + 1
	}
	l.pos = min(target+col, l.lineEnd(target))
}
