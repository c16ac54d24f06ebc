package terminal

import (
	"logictree/editor"

	"github.com/gdamore/tcell/v2"
)

// translateKey converts a tcell key event into the editor's key model.
// ok is false for keys the editor has no use for.
func translateKey(ev *tcell.EventKey) (editor.KeyEvent, bool) {
	mod := translateMods(ev.Modifiers())

	switch ev.Key() {
	case tcell.KeyRune:
		return editor.KeyEvent{Key: editor.KeyRune, Rune: ev.Rune(), Mod: mod}, true
	case tcell.KeyEnter:
		return editor.KeyEvent{Key: editor.KeyEnter, Mod: mod}, true
	case tcell.KeyLF:
		return editor.KeyEvent{Key: editor.KeyLineFeed, Mod: mod}, true
	case tcell.KeyTab:
		return editor.KeyEvent{Key: editor.KeyTab, Mod: mod}, true
	case tcell.KeyDelete:
		return editor.KeyEvent{Key: editor.KeyDelete, Mod: mod}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return editor.KeyEvent{Key: editor.KeyBackspace, Mod: mod}, true
	case tcell.KeyEscape:
		return editor.KeyEvent{Key: editor.KeyEscape, Mod: mod}, true
	case tcell.KeyUp:
		return editor.KeyEvent{Key: editor.KeyArrowUp, Mod: mod}, true
	case tcell.KeyDown:
		return editor.KeyEvent{Key: editor.KeyArrowDown, Mod: mod}, true
	case tcell.KeyLeft:
		return editor.KeyEvent{Key: editor.KeyArrowLeft, Mod: mod}, true
	case tcell.KeyRight:
		return editor.KeyEvent{Key: editor.KeyArrowRight, Mod: mod}, true
	case tcell.KeyHome:
		return editor.KeyEvent{Key: editor.KeyHome, Mod: mod}, true
	case tcell.KeyEnd:
		return editor.KeyEvent{Key: editor.KeyEnd, Mod: mod}, true
	case tcell.KeyF2:
		return editor.KeyEvent{Key: editor.KeyF2, Mod: mod}, true
	}

	// Remaining control codes are Ctrl+letter chords
	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		r := rune(k-tcell.KeyCtrlA) + 'a'
		return editor.KeyEvent{Key: editor.KeyRune, Rune: r, Mod: mod | editor.ModCtrl}, true
	}

	return editor.KeyEvent{}, false
}

func translateMods(m tcell.ModMask) editor.Modifier {
	var mod editor.Modifier
	if m&tcell.ModShift != 0 {
		mod |= editor.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mod |= editor.ModCtrl
	}
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		mod |= editor.ModAlt
	}
	return mod
}
