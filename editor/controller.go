package editor

import (
	"fmt"
	"logictree/graph"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// RootLabel is the label of the root node on a fresh canvas.
const RootLabel = "メイントピック"

// Layout offsets for new children: a diagonal cascade from the parent.
const (
	childOffsetX    = 150
	childOffsetY    = 100
	childCascadeY   = 10
	defaultViewport = 800
)

// Notifier shows blocking, user-facing messages.
type Notifier interface {
	Alert(message string)
}

// Controller is the application state container: it owns the graph store,
// the history, the selection and the active label editor, and exposes the
// commands that mutate them. All methods must be called from one goroutine.
type Controller struct {
	store   *graph.Store
	history *History

	selected string       // Selected node ID ("" for none)
	editing  *LabelEditor // Active label editor, nil while viewing
	dragging map[string]bool

	lastID         int // Highest numeric node id handed out
	historyLimit   int
	viewportWidth  float64
	viewportHeight float64

	sampleToken string // Generation token of the in-flight sample load
	loading     bool

	now      func() time.Time
	notifier Notifier
	logger   *zap.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock sets the time source used for edge ids.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithNotifier sets where alerts go.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithHistoryLimit bounds the undo depth; 0 keeps everything.
func WithHistoryLimit(limit int) Option {
	return func(c *Controller) { c.historyLimit = limit }
}

// WithViewport sets the canvas size used to place root nodes.
func WithViewport(width, height float64) Option {
	return func(c *Controller) {
		c.viewportWidth = width
		c.viewportHeight = height
	}
}

// NewController creates a controller holding a single root node.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		dragging:       make(map[string]bool),
		viewportWidth:  defaultViewport,
		viewportHeight: defaultViewport,
		now:            time.Now,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.history = NewHistory(c.historyLimit, c.logger)

	root := graph.Node{
		ID:       "1",
		Type:     graph.NodeTypeCustom,
		Label:    RootLabel,
		Position: graph.Position{X: c.viewportWidth / 2, Y: c.viewportHeight / 5},
	}
	c.store = graph.NewStore([]graph.Node{root}, []graph.Edge{})
	c.lastID = 1
	return c
}

// SetNotifier sets where alerts go.
func (c *Controller) SetNotifier(n Notifier) {
	c.notifier = n
}

// SetViewport updates the canvas size used to place root nodes.
func (c *Controller) SetViewport(width, height float64) {
	c.viewportWidth = width
	c.viewportHeight = height
}

// Nodes returns the current node list. Treat it as read-only.
func (c *Controller) Nodes() []graph.Node {
	return c.store.Nodes()
}

// Edges returns the current edge list. Treat it as read-only.
func (c *Controller) Edges() []graph.Edge {
	return c.store.Edges()
}

// Snapshot returns a copy of the current graph.
func (c *Controller) Snapshot() graph.Snapshot {
	return c.store.Snapshot()
}

// Selected returns the selected node ID, or "" if none.
func (c *Controller) Selected() string {
	return c.selected
}

// Editing returns the active label editor, or nil.
func (c *Controller) Editing() *LabelEditor {
	return c.editing
}

// Loading reports whether a sample load is in flight.
func (c *Controller) Loading() bool {
	return c.loading
}

// RootID returns the id of the node at index 0.
func (c *Controller) RootID() string {
	nodes := c.store.Nodes()
	if len(nodes) == 0 {
		return ""
	}
	return nodes[0].ID
}

// SaveHistory records the current graph before a mutation.
func (c *Controller) SaveHistory() {
	c.history.Save(c.store.Snapshot())
}

// CanUndo returns true if undo is possible
func (c *Controller) CanUndo() bool {
	return c.history.CanUndo()
}

// CanRedo returns true if redo is possible
func (c *Controller) CanRedo() bool {
	return c.history.CanRedo()
}

// HistoryStats returns the undo and redo depths.
func (c *Controller) HistoryStats() (undo, redo int) {
	return c.history.Stats()
}

// Undo restores the previous snapshot. It returns false when there is
// nothing to undo.
func (c *Controller) Undo() bool {
	prev, ok := c.history.Undo(c.store.Snapshot())
	if !ok {
		return false
	}
	c.restore(prev)
	return true
}

// Redo reapplies the next snapshot. It returns false when there is nothing
// to redo.
func (c *Controller) Redo() bool {
	next, ok := c.history.Redo(c.store.Snapshot())
	if !ok {
		return false
	}
	c.restore(next)
	return true
}

func (c *Controller) restore(snap graph.Snapshot) {
	c.store.Restore(snap)
	// The selection survives only if the restored graph still highlights it
	if node, ok := graph.FindNode(snap.Nodes, c.selected); !ok || node.Style.BackgroundColor != graph.ColorSelected {
		c.selected = ""
	}
	if c.editing != nil {
		if node, ok := graph.FindNode(snap.Nodes, c.editing.NodeID()); ok {
			c.editing.Sync(node.Label)
		}
	}
	c.dragging = make(map[string]bool)
	c.checkInvariants("restore")
}

// Select makes id the selected node and recolors every node so only it
// carries the highlight.
func (c *Controller) Select(id string) error {
	if _, ok := graph.FindNode(c.store.Nodes(), id); !ok {
		return fmt.Errorf("select %q: %w", id, ErrNodeNotFound)
	}
	c.selected = id
	c.recolor()
	return nil
}

// ClearSelection deselects and removes every highlight.
func (c *Controller) ClearSelection() {
	c.selected = ""
	c.recolor()
}

func (c *Controller) recolor() {
	selected := c.selected
	c.store.SetNodes(func(nodes []graph.Node) []graph.Node {
		next := graph.CloneNodes(nodes)
		for i := range next {
			if next[i].ID == selected {
				next[i].Style.BackgroundColor = graph.ColorSelected
			} else {
				next[i].Style.BackgroundColor = graph.ColorDefault
			}
		}
		return next
	})
}

// CreateChild adds a child under the selected node, or under the first node
// when nothing is selected, joined by a new edge. It returns the new id.
func (c *Controller) CreateChild() (string, error) {
	c.SaveHistory()

	nodes := c.store.Nodes()
	if len(nodes) == 0 {
		return "", fmt.Errorf("create child: %w", ErrNodeNotFound)
	}
	parent, ok := graph.FindNode(nodes, c.selected)
	if !ok {
		parent = nodes[0]
	}

	id := c.allocateID(nodes)
	count := float64(len(nodes))
	child := graph.Node{
		ID:       id,
		Type:     graph.NodeTypeCustom,
		Label:    "Node " + id,
		Position: parent.Position.Add(childOffsetX, childOffsetY+count*childCascadeY),
		Style:    graph.Style{BackgroundColor: graph.ColorDefault},
	}
	edge := graph.Edge{
		ID:     fmt.Sprintf("e%s-%s-%d", parent.ID, id, c.now().UnixMilli()),
		Source: parent.ID,
		Target: id,
	}

	c.store.SetNodes(func(nodes []graph.Node) []graph.Node {
		return append(graph.CloneNodes(nodes), child)
	})
	c.store.SetEdges(func(edges []graph.Edge) []graph.Edge {
		return append(graph.CloneEdges(edges), edge)
	})

	c.logger.Debug("child created", zap.String("parent", parent.ID), zap.String("id", id))
	c.checkInvariants("create")
	return id, nil
}

// allocateID hands out a numeric id above every id ever issued or present,
// so ids stay unique after deletes and undos.
func (c *Controller) allocateID(nodes []graph.Node) string {
	next := c.lastID
	for _, n := range nodes {
		if v, err := strconv.Atoi(n.ID); err == nil && v > next {
			next = v
		}
	}
	next++
	c.lastID = next
	return strconv.Itoa(next)
}

// DeleteSelected removes the selected node and every edge touching it.
// History is saved before anything is checked.
func (c *Controller) DeleteSelected() error {
	c.SaveHistory()

	if c.selected == "" {
		return ErrNothingSelected
	}
	if c.selected == c.RootID() {
		c.logger.Info("refused to delete root node", zap.String("id", c.selected))
		return ErrRootNodeProtected
	}

	id := c.selected
	c.store.SetNodes(func(nodes []graph.Node) []graph.Node {
		next := make([]graph.Node, 0, len(nodes))
		for _, n := range nodes {
			if n.ID != id {
				next = append(next, n)
			}
		}
		return next
	})
	c.store.SetEdges(func(edges []graph.Edge) []graph.Edge {
		next := make([]graph.Edge, 0, len(edges))
		for _, e := range edges {
			if !e.Touches(id) {
				next = append(next, e)
			}
		}
		return next
	})
	c.selected = ""
	if c.editing != nil && c.editing.NodeID() == id {
		c.editing = nil
	}

	c.logger.Debug("node deleted", zap.String("id", id))
	c.checkInvariants("delete")
	return nil
}

// BeginEdit opens the label editor on node id. Any other open editor is
// blurred first.
func (c *Controller) BeginEdit(id string) error {
	node, ok := graph.FindNode(c.store.Nodes(), id)
	if !ok {
		return fmt.Errorf("edit %q: %w", id, ErrNodeNotFound)
	}
	if c.editing != nil {
		if c.editing.NodeID() == id {
			return nil
		}
		c.BlurEditor()
	}
	c.editing = NewLabelEditor(id, node.Label, c.CommitLabel)
	c.editing.BeginEdit()
	return nil
}

// BlurEditor commits and closes the active label editor, if any.
func (c *Controller) BlurEditor() {
	if c.editing == nil {
		return
	}
	ed := c.editing
	c.editing = nil
	ed.Blur()
}

// CommitLabel sets a node's label, saving history first. It is the commit
// callback handed to label editors.
func (c *Controller) CommitLabel(id, text string) {
	if _, ok := graph.FindNode(c.store.Nodes(), id); !ok {
		return
	}
	c.SaveHistory()
	c.store.SetNodes(func(nodes []graph.Node) []graph.Node {
		next := graph.CloneNodes(nodes)
		for i := range next {
			if next[i].ID == id {
				next[i].Label = text
			}
		}
		return next
	})
	c.logger.Debug("label committed", zap.String("id", id))
}

// OnNodesChange forwards canvas deltas to the store. Moves and removals
// save history first; a drag saves once, when it starts. Select and
// dimension deltas do not touch history. Removing the root is ignored,
// and edges of removed nodes go with them.
func (c *Controller) OnNodesChange(changes []graph.NodeChange) {
	rootID := c.RootID()
	filtered := make([]graph.NodeChange, 0, len(changes))
	save := false
	var removed []string

	for _, ch := range changes {
		switch ch.Type {
		case graph.ChangeRemove:
			if ch.ID == rootID {
				continue
			}
			removed = append(removed, ch.ID)
			save = true
		case graph.ChangePosition:
			if !c.dragging[ch.ID] {
				save = true
			}
			if ch.Dragging {
				c.dragging[ch.ID] = true
			} else {
				delete(c.dragging, ch.ID)
			}
		case graph.ChangeAdd:
			save = true
		}
		filtered = append(filtered, ch)
	}
	if len(filtered) == 0 {
		return
	}

	if save {
		c.SaveHistory()
	}
	c.store.ApplyNodeChanges(filtered)

	if len(removed) > 0 {
		gone := make(map[string]bool, len(removed))
		for _, id := range removed {
			gone[id] = true
		}
		c.store.SetEdges(func(edges []graph.Edge) []graph.Edge {
			next := make([]graph.Edge, 0, len(edges))
			for _, e := range edges {
				if !gone[e.Source] && !gone[e.Target] {
					next = append(next, e)
				}
			}
			return next
		})
		if gone[c.selected] {
			c.selected = ""
		}
	}
}

// OnEdgesChange forwards canvas edge deltas to the store.
func (c *Controller) OnEdgesChange(changes []graph.EdgeChange) {
	c.store.ApplyEdgeChanges(changes)
}

// OnConnect adds an edge the user drew between two existing nodes.
func (c *Controller) OnConnect(conn graph.Connection) {
	nodes := c.store.Nodes()
	if _, ok := graph.FindNode(nodes, conn.Source); !ok {
		return
	}
	if _, ok := graph.FindNode(nodes, conn.Target); !ok {
		return
	}
	c.store.SetEdges(func(edges []graph.Edge) []graph.Edge {
		return graph.AddEdge(conn, edges)
	})
}

func (c *Controller) alert(message string) {
	if c.notifier != nil {
		c.notifier.Alert(message)
	}
}

func (c *Controller) checkInvariants(op string) {
	if err := graph.Validate(c.store.Nodes(), c.store.Edges()); err != nil {
		c.logger.Warn("graph invariant broken", zap.String("op", op), zap.Error(err))
	}
}
