package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commitRecorder struct {
	ids   []string
	texts []string
}

func (r *commitRecorder) commit(id, text string) {
	r.ids = append(r.ids, id)
	r.texts = append(r.texts, text)
}

func typeText(l *LabelEditor, text string) {
	for _, r := range text {
		l.HandleKey(KeyEvent{Key: KeyRune, Rune: r})
	}
}

func TestLabelEditorStartsViewing(t *testing.T) {
	l := NewLabelEditor("1", "hello", nil)
	assert.Equal(t, Viewing, l.State())
	assert.False(t, l.HandleKey(KeyEvent{Key: KeyRune, Rune: 'x'}))
	assert.Equal(t, "hello", l.Text())
}

func TestLabelEditorEnterCommits(t *testing.T) {
	rec := &commitRecorder{}
	l := NewLabelEditor("7", "old", rec.commit)

	l.BeginEdit()
	require.Equal(t, Editing, l.State())
	assert.Equal(t, "old", l.Text())

	// Cursor starts at the end of the seeded label
	line, col := l.Cursor()
	assert.Equal(t, 0, line)
	assert.Equal(t, 3, col)

	typeText(l, "er")
	l.HandleKey(KeyEvent{Key: KeyEnter})

	assert.Equal(t, Viewing, l.State())
	assert.Equal(t, []string{"7"}, rec.ids)
	assert.Equal(t, []string{"older"}, rec.texts)
}

func TestLabelEditorUnchangedTextDoesNotCommit(t *testing.T) {
	rec := &commitRecorder{}
	l := NewLabelEditor("1", "same", rec.commit)

	l.BeginEdit()
	typeText(l, "x")
	l.HandleKey(KeyEvent{Key: KeyBackspace})
	l.Blur()

	assert.Equal(t, Viewing, l.State())
	assert.Empty(t, rec.ids)
}

func TestLabelEditorNewlineKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   KeyEvent
	}{
		{"shift enter", KeyEvent{Key: KeyEnter, Mod: ModShift}},
		{"alt enter", KeyEvent{Key: KeyEnter, Mod: ModAlt}},
		{"ctrl j", KeyEvent{Key: KeyLineFeed}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &commitRecorder{}
			l := NewLabelEditor("1", "a", rec.commit)
			l.BeginEdit()

			l.HandleKey(tt.ev)
			typeText(l, "b")

			assert.Equal(t, Editing, l.State(), "newline must not commit")
			assert.Equal(t, "a\nb", l.Text())
			assert.Equal(t, []string{"a", "b"}, l.Lines())

			l.HandleKey(KeyEvent{Key: KeyEnter})
			assert.Equal(t, []string{"a\nb"}, rec.texts)
		})
	}
}

func TestLabelEditorBlurCommits(t *testing.T) {
	rec := &commitRecorder{}
	l := NewLabelEditor("3", "", rec.commit)
	l.BeginEdit()
	typeText(l, "blurred")

	l.Blur()
	assert.Equal(t, []string{"blurred"}, rec.texts)

	// A second blur while viewing is a no-op
	l.Blur()
	assert.Len(t, rec.texts, 1)
}

func TestLabelEditorEscapeCommits(t *testing.T) {
	rec := &commitRecorder{}
	l := NewLabelEditor("3", "a", rec.commit)
	l.BeginEdit()
	typeText(l, "b")

	l.HandleKey(KeyEvent{Key: KeyEscape})
	assert.Equal(t, Viewing, l.State())
	assert.Equal(t, []string{"ab"}, rec.texts)
}

func TestLabelEditorCursorMovement(t *testing.T) {
	l := NewLabelEditor("1", "abc\nde", nil)
	l.BeginEdit()

	line, col := l.Cursor()
	assert.Equal(t, 1, line)
	assert.Equal(t, 2, col)

	l.HandleKey(KeyEvent{Key: KeyArrowUp})
	line, col = l.Cursor()
	assert.Equal(t, 0, line)
	assert.Equal(t, 2, col)

	l.HandleKey(KeyEvent{Key: KeyEnd})
	_, col = l.Cursor()
	assert.Equal(t, 3, col)

	l.HandleKey(KeyEvent{Key: KeyArrowDown})
	line, col = l.Cursor()
	assert.Equal(t, 1, line)
	assert.Equal(t, 2, col, "column clamps to the shorter line")

	l.HandleKey(KeyEvent{Key: KeyHome})
	typeText(l, ">")
	assert.Equal(t, "abc\n>de", l.Text())

	l.HandleKey(KeyEvent{Key: KeyArrowLeft})
	l.HandleKey(KeyEvent{Key: KeyArrowLeft})
	l.HandleKey(KeyEvent{Key: KeyDelete})
	assert.Equal(t, "abc>de", l.Text())
}

func TestLabelEditorDeletionChords(t *testing.T) {
	l := NewLabelEditor("1", "one two three", nil)
	l.BeginEdit()

	l.HandleKey(KeyEvent{Key: KeyRune, Rune: 'w', Mod: ModCtrl})
	assert.Equal(t, "one two ", l.Text())

	l.HandleKey(KeyEvent{Key: KeyHome})
	l.HandleKey(KeyEvent{Key: KeyArrowRight})
	l.HandleKey(KeyEvent{Key: KeyArrowRight})
	l.HandleKey(KeyEvent{Key: KeyArrowRight})
	l.HandleKey(KeyEvent{Key: KeyRune, Rune: 'k', Mod: ModCtrl})
	assert.Equal(t, "one", l.Text())

	l.HandleKey(KeyEvent{Key: KeyRune, Rune: 'u', Mod: ModCtrl})
	assert.Equal(t, "", l.Text())
}

func TestLabelEditorIgnoresTabAndControlChords(t *testing.T) {
	l := NewLabelEditor("1", "x", nil)
	l.BeginEdit()

	assert.True(t, l.HandleKey(KeyEvent{Key: KeyTab}))
	assert.True(t, l.HandleKey(KeyEvent{Key: KeyRune, Rune: 'z', Mod: ModCtrl}))
	assert.Equal(t, "x", l.Text())
}

func TestLabelEditorSync(t *testing.T) {
	rec := &commitRecorder{}
	l := NewLabelEditor("1", "a", rec.commit)

	l.Sync("b")
	assert.Equal(t, "b", l.Text())

	l.BeginEdit()
	assert.Equal(t, "b", l.Text())
	l.Blur()
	assert.Empty(t, rec.texts)
}

func TestLabelEditorWordDeleteStopsAtLineBreak(t *testing.T) {
	l := NewLabelEditor("1", "行一\n二　三", nil)
	l.BeginEdit()
	ctrlW := KeyEvent{Key: KeyRune, Rune: 'w', Mod: ModCtrl}

	l.HandleKey(ctrlW)
	assert.Equal(t, "行一\n二　", l.Text())

	l.HandleKey(ctrlW)
	assert.Equal(t, "行一\n", l.Text())

	l.HandleKey(ctrlW)
	assert.Equal(t, "行一\n", l.Text())
	line, col := l.Cursor()
	assert.Equal(t, 1, line)
	assert.Equal(t, 0, col)
}

func TestLabelEditorInsertMidLine(t *testing.T) {
	l := NewLabelEditor("1", "ac\nx", nil)
	l.BeginEdit()

	// Up keeps column 1, between "a" and "c"
	l.HandleKey(KeyEvent{Key: KeyArrowUp})
	typeText(l, "b")
	assert.Equal(t, "abc\nx", l.Text())

	l.HandleKey(KeyEvent{Key: KeyRune, Rune: 'u', Mod: ModCtrl})
	assert.Equal(t, "c\nx", l.Text())
	line, col := l.Cursor()
	assert.Equal(t, 0, line)
	assert.Equal(t, 0, col)
}
