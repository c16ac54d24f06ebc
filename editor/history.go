package editor

import (
	"logictree/graph"

	"go.uber.org/zap"
)

// History manages undo/redo using two stacks of full graph snapshots.
type History struct {
	undo   []graph.Snapshot // Oldest first, most recent at the tail
	redo   []graph.Snapshot // Next redo at the head
	max    int              // Maximum undo depth, 0 for unbounded
	logger *zap.Logger
}

// NewHistory creates a history manager. max <= 0 keeps every state.
func NewHistory(max int, logger *zap.Logger) *History {
	if max < 0 {
		max = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &History{
		undo:   []graph.Snapshot{},
		redo:   []graph.Snapshot{},
		max:    max,
		logger: logger,
	}
}

// Save pushes the state about to be replaced and clears redo.
func (h *History) Save(current graph.Snapshot) {
	h.pushUndo(current.Clone())
	h.redo = h.redo[:0]
	h.logger.Debug("history saved", zap.Int("undo", len(h.undo)))
}

// CanUndo returns true if we can undo
func (h *History) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo returns true if we can redo
func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// Undo pops the most recent snapshot and stores current for redo.
// ok is false when there is nothing to undo.
func (h *History) Undo(current graph.Snapshot) (prev graph.Snapshot, ok bool) {
	if !h.CanUndo() {
		return graph.Snapshot{}, false
	}

	last := len(h.undo) - 1
	prev = h.undo[last]
	h.undo = h.undo[:last]
	h.redo = append([]graph.Snapshot{current.Clone()}, h.redo...)

	h.logger.Debug("undo", zap.Int("undo", len(h.undo)), zap.Int("redo", len(h.redo)))
	return prev.Clone(), true
}

// Redo takes the head of the redo stack and stores current for undo.
// ok is false when there is nothing to redo.
func (h *History) Redo(current graph.Snapshot) (next graph.Snapshot, ok bool) {
	if !h.CanRedo() {
		return graph.Snapshot{}, false
	}

	next = h.redo[0]
	h.redo = h.redo[1:]
	h.pushUndo(current.Clone())

	h.logger.Debug("redo", zap.Int("undo", len(h.undo)), zap.Int("redo", len(h.redo)))
	return next.Clone(), true
}

// Clear drops all history.
func (h *History) Clear() {
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
}

// Stats returns the depth of each stack for display
func (h *History) Stats() (undo, redo int) {
	return len(h.undo), len(h.redo)
}

func (h *History) pushUndo(snap graph.Snapshot) {
	h.undo = append(h.undo, snap)
	// If we exceed max, remove oldest
	if h.max > 0 && len(h.undo) > h.max {
		h.undo = h.undo[len(h.undo)-h.max:]
	}
}
