package editor

import (
	"errors"

	"go.uber.org/zap"
)

// Action tells the caller what, if anything, is left to do after a key.
type Action int

const (
	ActionNone       Action = iota // Key not consumed; the caller may use it
	ActionHandled                  // Key consumed; suppress any default behavior
	ActionLoadSample               // Caller should start a sample load
	ActionQuit                     // Caller should exit
)

// HandleKey is the global key listener. While a label editor is open every
// key goes to it; otherwise the command keys are interpreted:
//
//	Tab      create a child of the selected (or first) node
//	Delete   delete the selected node
//	Ctrl+Z   undo
//	Ctrl+Y   redo
//	Enter/F2 edit the selected node's label
//	Esc      clear the selection
//	Ctrl+G   load a sample tree
//	Ctrl+Q   quit
func (c *Controller) HandleKey(ev KeyEvent) Action {
	if c.editing != nil {
		c.editing.HandleKey(ev)
		if c.editing != nil && c.editing.State() == Viewing {
			c.editing = nil
		}
		return ActionHandled
	}

	switch {
	case ev.Key == KeyTab:
		if _, err := c.CreateChild(); err != nil {
			c.logger.Debug("create child ignored", zap.Error(err))
		}
		return ActionHandled

	case ev.Key == KeyDelete:
		if err := c.DeleteSelected(); err != nil {
			if errors.Is(err, ErrRootNodeProtected) {
				c.alert(RootDeleteMessage)
			}
		}
		return ActionHandled

	case ev.IsCtrl('z'):
		c.Undo()
		return ActionHandled

	case ev.IsCtrl('y'):
		c.Redo()
		return ActionHandled

	case ev.Key == KeyEnter, ev.Key == KeyF2:
		if c.selected == "" {
			return ActionNone
		}
		if err := c.BeginEdit(c.selected); err != nil {
			return ActionNone
		}
		return ActionHandled

	case ev.Key == KeyEscape:
		if c.selected == "" {
			return ActionNone
		}
		c.ClearSelection()
		return ActionHandled

	case ev.IsCtrl('g'):
		return ActionLoadSample

	case ev.IsCtrl('q'), ev.IsCtrl('c'):
		return ActionQuit
	}

	return ActionNone
}
