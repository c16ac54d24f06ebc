// Package terminal runs the logic tree editor on a tcell screen: it turns
// key and mouse events into editor commands and paints the graph.
package terminal

import (
	"context"
	"logictree/editor"
	"logictree/graph"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// Canvas units per terminal cell. A new child sits 150x100 units from its
// parent, which is 15 columns right and 4 rows down.
const (
	unitsPerCol = 10.0
	unitsPerRow = 25.0

	doubleClickInterval = 400 * time.Millisecond
	panStep             = 4
)

// sampleEvent carries a finished sample load back onto the UI goroutine.
type sampleEvent struct {
	tcell.EventTime
	token string
	text  string
}

type pressState struct {
	id           string // Pressed node, "" for empty canvas
	startX       int
	startY       int
	origin       graph.Position
	panX0, panY0 int
	moved        bool
	connect      bool // Right-button drag draws an edge
}

type clickState struct {
	id string
	at time.Time
}

// App drives an editor.Controller from a tcell screen.
type App struct {
	screen  tcell.Screen
	ctrl    *editor.Controller
	fetcher editor.SampleFetcher
	logger  *zap.Logger
	now     func() time.Time

	alert     string // Modal message, blocks input until dismissed
	panX      int
	panY      int
	boxes     []box // Node hit areas from the last draw
	press     *pressState
	lastClick clickState
}

// New creates an App and registers it as the controller's alert sink.
func New(screen tcell.Screen, ctrl *editor.Controller, fetcher editor.SampleFetcher, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{
		screen:  screen,
		ctrl:    ctrl,
		fetcher: fetcher,
		logger:  logger,
		now:     time.Now,
	}
	ctrl.SetNotifier(a)
	return a
}

// Alert shows a modal message until the next key or click.
func (a *App) Alert(message string) {
	a.alert = message
}

// Run is the main loop. It returns when the user quits, the screen is
// finalized, or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.screen.EnableMouse()
	a.resize()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			a.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	for {
		a.draw()

		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if a.handleEvent(ctx, ev) {
			return ctx.Err()
		}
	}
}

// handleEvent processes one event and reports whether to exit.
func (a *App) handleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.resize()
		a.screen.Sync()

	case *tcell.EventKey:
		if a.alert != "" {
			a.alert = ""
			return false
		}
		key, ok := translateKey(ev)
		if !ok {
			return false
		}
		switch a.ctrl.HandleKey(key) {
		case editor.ActionQuit:
			return true
		case editor.ActionLoadSample:
			a.startSample(ctx)
		case editor.ActionNone:
			a.handleCanvasKey(key)
		}

	case *tcell.EventMouse:
		if a.alert != "" {
			if ev.Buttons()&tcell.Button1 != 0 {
				a.alert = ""
			}
			return false
		}
		a.handleMouse(ev)

	case *sampleEvent:
		a.ctrl.FinishSample(ev.token, ev.text)

	case *tcell.EventInterrupt:
		return ctx.Err() != nil
	}

	return false
}

// CanvasSize converts a terminal size in cells to canvas units, leaving the
// bottom row for the status bar.
func CanvasSize(cols, rows int) (width, height float64) {
	return float64(cols) * unitsPerCol, float64(rows-1) * unitsPerRow
}

func (a *App) resize() {
	a.ctrl.SetViewport(CanvasSize(a.screen.Size()))
}

// handleCanvasKey pans the canvas with the arrow keys.
func (a *App) handleCanvasKey(key editor.KeyEvent) {
	switch key.Key {
	case editor.KeyArrowLeft:
		a.panX -= panStep
	case editor.KeyArrowRight:
		a.panX += panStep
	case editor.KeyArrowUp:
		a.panY -= panStep / 2
	case editor.KeyArrowDown:
		a.panY += panStep / 2
	}
}

// startSample fetches in the background and posts the result back to the
// event loop, so the controller is only touched from one goroutine.
func (a *App) startSample(ctx context.Context) {
	token, err := a.ctrl.StartSample()
	if err != nil {
		a.logger.Debug("sample load ignored", zap.Error(err))
		return
	}

	go func() {
		ev := &sampleEvent{token: token, text: a.fetcher.Fetch(ctx)}
		ev.SetEventNow()
		for a.screen.PostEvent(ev) != nil {
			select {
			case <-ctx.Done():
				return
			case <-time.After(10 * time.Millisecond):
			}
		}
	}()
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()

	switch {
	case ev.Buttons()&tcell.Button1 != 0:
		if a.press == nil {
			a.onPress(x, y)
		} else {
			a.onDrag(x, y)
		}
	case ev.Buttons()&tcell.Button2 != 0:
		if a.press == nil {
			a.press = &pressState{id: a.hit(x, y), startX: x, startY: y, connect: true}
		}
	case ev.Buttons() == tcell.ButtonNone && a.press != nil:
		a.onRelease(x, y)
	}
}

func (a *App) onPress(x, y int) {
	id := a.hit(x, y)
	a.press = &pressState{id: id, startX: x, startY: y, panX0: a.panX, panY0: a.panY}

	// Clicking anywhere but the edited node blurs its editor
	if ed := a.ctrl.Editing(); ed != nil && ed.NodeID() != id {
		a.ctrl.BlurEditor()
	}
	if id == "" {
		return
	}

	if node, ok := graph.FindNode(a.ctrl.Nodes(), id); ok {
		a.press.origin = node.Position
	}
	if err := a.ctrl.Select(id); err != nil {
		a.logger.Debug("select failed", zap.Error(err))
		return
	}

	now := a.now()
	if a.lastClick.id == id && now.Sub(a.lastClick.at) <= doubleClickInterval {
		a.lastClick = clickState{}
		if err := a.ctrl.BeginEdit(id); err != nil {
			a.logger.Debug("begin edit failed", zap.Error(err))
		}
		return
	}
	a.lastClick = clickState{id: id, at: now}
}

func (a *App) onDrag(x, y int) {
	p := a.press
	dx, dy := x-p.startX, y-p.startY
	if dx == 0 && dy == 0 {
		return
	}

	if p.id == "" {
		a.panX = p.panX0 - dx
		a.panY = p.panY0 - dy
		return
	}

	pos := p.origin.Add(float64(dx)*unitsPerCol, float64(dy)*unitsPerRow)
	a.ctrl.OnNodesChange([]graph.NodeChange{{
		Type:     graph.ChangePosition,
		ID:       p.id,
		Position: &pos,
		Dragging: true,
	}})
	p.moved = true
	a.lastClick = clickState{}
}

func (a *App) onRelease(x, y int) {
	p := a.press
	a.press = nil
	if p.connect {
		if target := a.hit(x, y); p.id != "" && target != "" && target != p.id {
			a.ctrl.OnConnect(graph.Connection{Source: p.id, Target: target})
		}
		return
	}
	if p.id == "" || !p.moved {
		return
	}
	node, ok := graph.FindNode(a.ctrl.Nodes(), p.id)
	if !ok {
		return
	}
	pos := node.Position
	a.ctrl.OnNodesChange([]graph.NodeChange{{
		Type:     graph.ChangePosition,
		ID:       p.id,
		Position: &pos,
		Dragging: false,
	}})
}
