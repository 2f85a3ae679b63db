package history

import "github.com/svd-tools/svd-go/pkg/model"

// DefaultLimit is the undo depth a History created by New keeps before
// evicting its oldest entry.
const DefaultLimit = 100

// History tracks applied commands for one device model and replays them
// backwards and forwards. It is not safe for concurrent use; the session
// owning the model serializes access.
type History struct {
	limit int
	undo  []Command
	redo  []Command
}

// New returns an empty History with the default undo depth.
func New() *History {
	return NewWithLimit(DefaultLimit)
}

// NewWithLimit returns an empty History keeping at most limit undoable
// commands. A limit below 1 falls back to the default.
func NewWithLimit(limit int) *History {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &History{limit: limit}
}

// Apply runs cmd against dev and records it for undo. On failure the
// error is returned and neither the model nor the stacks change. A
// successful apply discards any redoable commands.
func (h *History) Apply(cmd Command, dev *model.Device) error {
	if err := cmd.Apply(dev); err != nil {
		return err
	}
	h.undo = append(h.undo, cmd)
	if len(h.undo) > h.limit {
		// Oldest edit becomes permanent.
		copy(h.undo, h.undo[1:])
		h.undo = h.undo[:h.limit]
	}
	h.redo = h.redo[:0]
	return nil
}

// Undo reverts the most recent applied command. Returns ErrNothingToUndo
// on an empty stack.
func (h *History) Undo(dev *model.Device) error {
	if len(h.undo) == 0 {
		return ErrNothingToUndo
	}
	cmd := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	cmd.Undo(dev)
	h.redo = append(h.redo, cmd)
	return nil
}

// Redo reapplies the most recently undone command. Returns ErrNothingToRedo
// when no command has been undone since the last apply.
func (h *History) Redo(dev *model.Device) error {
	if len(h.redo) == 0 {
		return ErrNothingToRedo
	}
	cmd := h.redo[len(h.redo)-1]
	// Reapplying inverts exactly what Undo reverted, so preconditions hold
	// again; a failure means the stacks and model went out of step.
	if err := cmd.Apply(dev); err != nil {
		return err
	}
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, cmd)
	return nil
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoDescription names the command Undo would revert, "" when none.
func (h *History) UndoDescription() string {
	if len(h.undo) == 0 {
		return ""
	}
	return h.undo[len(h.undo)-1].Description()
}

// RedoDescription names the command Redo would reapply, "" when none.
func (h *History) RedoDescription() string {
	if len(h.redo) == 0 {
		return ""
	}
	return h.redo[len(h.redo)-1].Description()
}

// Clear drops both stacks, typically after loading a new document.
func (h *History) Clear() {
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
}
