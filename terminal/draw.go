package terminal

import (
	"fmt"
	"logictree/graph"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const (
	minBoxWidth = 15 // 150 canvas units
	boxPadding  = 2  // Border plus one space on each side
)

// Status bar captions
const (
	loadSampleCaption = "ロジックツリーを生成 (Ctrl+G)"
	loadingCaption    = "生成中..."
	undoCaption       = "Undo (Ctrl+Z)"
	redoCaption       = "Redo (Ctrl+Y)"
	helpCaption       = "Tab:追加 Del:削除 Enter:編集 Ctrl+Q:終了"
)

var (
	styleCanvas = tcell.StyleDefault
	styleEdge   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleDimmed = styleStatus.Foreground(tcell.ColorGray)
	styleAlert  = tcell.StyleDefault.Background(tcell.ColorMaroon).Foreground(tcell.ColorWhite).Bold(true)
)

// box is a node's footprint on screen.
type box struct {
	id   string
	x, y int
	w, h int
}

func (b box) contains(x, y int) bool {
	return x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h
}

func (b box) bottomCenter() (int, int) { return b.x + b.w/2, b.y + b.h - 1 }
func (b box) topCenter() (int, int)    { return b.x + b.w/2, b.y }

// hit returns the topmost node under (x, y), or "".
func (a *App) hit(x, y int) string {
	for i := len(a.boxes) - 1; i >= 0; i-- {
		if a.boxes[i].contains(x, y) {
			return a.boxes[i].id
		}
	}
	return ""
}

// toScreen maps canvas units to a cell, applying the pan offset.
func (a *App) toScreen(p graph.Position) (int, int) {
	return int(p.X/unitsPerCol) - a.panX, int(p.Y/unitsPerRow) - a.panY
}

// nodeLines is what a node box shows: the live buffer while editing,
// the committed label otherwise.
func (a *App) nodeLines(n graph.Node) []string {
	if ed := a.ctrl.Editing(); ed != nil && ed.NodeID() == n.ID {
		return ed.Lines()
	}
	return strings.Split(n.Label, "\n")
}

func (a *App) layout(nodes []graph.Node) []box {
	boxes := make([]box, 0, len(nodes))
	for _, n := range nodes {
		lines := a.nodeLines(n)
		w := minBoxWidth
		for _, line := range lines {
			if lw := runewidth.StringWidth(line) + 2*boxPadding; lw > w {
				w = lw
			}
		}
		x, y := a.toScreen(n.Position)
		boxes = append(boxes, box{id: n.ID, x: x, y: y, w: w, h: len(lines) + 2})
	}
	return boxes
}

func (a *App) draw() {
	a.screen.Clear()
	w, h := a.screen.Size()

	nodes := a.ctrl.Nodes()
	a.boxes = a.layout(nodes)
	byID := make(map[string]box, len(a.boxes))
	for _, b := range a.boxes {
		byID[b.id] = b
	}

	for _, e := range a.ctrl.Edges() {
		src, ok1 := byID[e.Source]
		dst, ok2 := byID[e.Target]
		if !ok1 || !ok2 {
			continue
		}
		x0, y0 := src.bottomCenter()
		x1, y1 := dst.topCenter()
		a.drawLine(x0, y0, x1, y1, h-1)
	}

	a.screen.HideCursor()
	for i, n := range nodes {
		a.drawNode(n, a.boxes[i], h-1)
	}

	a.drawStatus(w, h-1)
	if a.alert != "" {
		a.drawAlert(w, h)
	}
	a.screen.Show()
}

// drawLine plots a straight edge, clipped to rows above maxY.
func (a *App) drawLine(x0, y0, x1, y1, maxY int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	err := dx + dy
	for {
		if y0 >= 0 && y0 < maxY {
			a.screen.SetContent(x0, y0, '·', nil, styleEdge)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (a *App) drawNode(n graph.Node, b box, maxY int) {
	bg := tcell.GetColor(n.Style.BackgroundColor)
	if n.Style.BackgroundColor == "" {
		bg = tcell.GetColor(graph.ColorDefault)
	}
	style := styleCanvas.Background(bg).Foreground(tcell.ColorBlack)
	if n.Style.FontWeight == "bold" {
		style = style.Bold(true)
	}

	ed := a.ctrl.Editing()
	editing := ed != nil && ed.NodeID() == n.ID
	border := []rune("┌┐└┘─│")
	if editing {
		border = []rune("╔╗╚╝═║")
	}

	for row := 0; row < b.h; row++ {
		y := b.y + row
		if y < 0 || y >= maxY {
			continue
		}
		for col := 0; col < b.w; col++ {
			r := ' '
			switch {
			case row == 0 && col == 0:
				r = border[0]
			case row == 0 && col == b.w-1:
				r = border[1]
			case row == b.h-1 && col == 0:
				r = border[2]
			case row == b.h-1 && col == b.w-1:
				r = border[3]
			case row == 0 || row == b.h-1:
				r = border[4]
			case col == 0 || col == b.w-1:
				r = border[5]
			}
			a.screen.SetContent(b.x+col, y, r, nil, style)
		}
	}

	lines := a.nodeLines(n)
	for i, line := range lines {
		if y := b.y + 1 + i; y >= 0 && y < maxY {
			a.drawText(b.x+boxPadding, y, line, style)
		}
	}

	if editing {
		line, col := ed.Cursor()
		if line < len(lines) {
			runes := []rune(lines[line])
			if col > len(runes) {
				col = len(runes)
			}
			cx := b.x + boxPadding + runewidth.StringWidth(string(runes[:col]))
			cy := b.y + 1 + line
			if cy >= 0 && cy < maxY {
				a.screen.ShowCursor(cx, cy)
			}
		}
	}
}

func (a *App) drawStatus(w, y int) {
	for x := 0; x < w; x++ {
		a.screen.SetContent(x, y, ' ', nil, styleStatus)
	}

	x := 1
	x = a.drawCaption(x, y, undoCaption, a.ctrl.CanUndo())
	x = a.drawCaption(x, y, redoCaption, a.ctrl.CanRedo())
	if a.ctrl.Loading() {
		x = a.drawCaption(x, y, loadingCaption, false)
	} else {
		x = a.drawCaption(x, y, loadSampleCaption, true)
	}

	undo, redo := a.ctrl.HistoryStats()
	info := fmt.Sprintf("[%d/%d]", undo, redo)
	if sel := a.ctrl.Selected(); sel != "" {
		info = fmt.Sprintf("#%s  %s", sel, info)
	}

	// Drop the key help first when the terminal is narrow
	for _, s := range []string{helpCaption + "  " + info, info} {
		if rx := w - runewidth.StringWidth(s) - 1; rx > x {
			a.drawText(rx, y, s, styleStatus)
			return
		}
	}
}

func (a *App) drawCaption(x, y int, caption string, enabled bool) int {
	style := styleStatus
	if !enabled {
		style = styleDimmed
	}
	return a.drawText(x, y, caption, style) + 2
}

func (a *App) drawAlert(w, h int) {
	msg := " " + a.alert + " "
	hint := " OK (any key) "
	bw := runewidth.StringWidth(msg)
	if hw := runewidth.StringWidth(hint); hw > bw {
		bw = hw
	}
	x := (w - bw) / 2
	y := h/2 - 1
	for row := 0; row < 2; row++ {
		for col := 0; col < bw; col++ {
			a.screen.SetContent(x+col, y+row, ' ', nil, styleAlert)
		}
	}
	a.drawText(x, y, msg, styleAlert)
	a.drawText(x+(bw-runewidth.StringWidth(hint))/2, y+1, hint, styleAlert)
}

// drawText writes s starting at (x, y) and returns the column after it.
func (a *App) drawText(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		a.screen.SetContent(x, y, r, nil, style)
		x += rw
	}
	return x
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
