// Package history provides reversible editing of a device model.
//
// All mutation of a loaded device goes through Commands: a closed set of
// edit variants (rename, set-attribute, add-child, remove-child, reorder,
// move) that each carry exactly the data needed to apply and invert
// themselves. Inversion data (old names, removed subtrees, source positions)
// is captured at apply time, never re-derived from a diff.
//
// A History holds the undo and redo stacks for one editing session. Applying
// a command validates its preconditions first; on failure the model is left
// completely unchanged and a *CommandError describes the rejection. On
// success the command is pushed onto the undo stack and the redo stack is
// cleared. For any sequence of N applied commands, N undos followed by N
// redos restores the model to structural equality with its post-apply state.
//
// Commands address their targets by name paths (see Path), never by held
// pointers, so a command is self-describing and checkable against the
// current model state.
//
// Editing a register that entered a derived peripheral through derivedFrom
// resolution materializes it as an override: its Inherited marker is cleared
// so the generator emits it, and undo restores the marker.
package history
