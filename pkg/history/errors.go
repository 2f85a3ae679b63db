package history

import (
	"errors"
	"fmt"
)

// Stack state sentinels returned by History.Undo and History.Redo.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// CommandError reports a command whose preconditions failed. The model is
// guaranteed untouched when a CommandError is returned.
type CommandError struct {
	Op     string // command verb, e.g. "rename"
	Reason string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func rejectf(op, format string, args ...any) *CommandError {
	return &CommandError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
