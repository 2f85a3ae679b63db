package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/svd-tools/svd-go/pkg/history"
	"github.com/svd-tools/svd-go/pkg/log"
	"github.com/svd-tools/svd-go/pkg/model"
	"github.com/svd-tools/svd-go/pkg/resolve"
	"github.com/svd-tools/svd-go/pkg/svd"
	"github.com/svd-tools/svd-go/pkg/validate"
	"github.com/svd-tools/svd-go/pkg/validate/rules"
)

// ErrNoDevice is returned by operations that need a loaded document.
var ErrNoDevice = errors.New("no device loaded")

// Session is one editing session over a single SVD document. The published
// device is the resolved model; inherited registers and interrupts keep
// their resolver markers so saving re-emits derived peripherals minimally.
type Session struct {
	id       string
	journal  log.Logger
	registry *validate.Registry

	dev     *model.Device
	history *history.History
}

// New creates an empty session. A nil journal disables journaling.
func New(journal log.Logger) *Session {
	if journal == nil {
		journal = log.NoopLogger{}
	}
	return &Session{
		id:       uuid.NewString(),
		journal:  journal,
		registry: rules.NewDefaultRegistry(),
		history:  history.New(),
	}
}

// ID returns the session's UUID.
func (s *Session) ID() string { return s.id }

// Device returns the currently loaded resolved device, nil before Load.
func (s *Session) Device() *model.Device { return s.dev }

// History exposes the session's undo/redo stacks, for UI state like
// menu labels. Mutation still goes through Apply/Undo/Redo.
func (s *Session) History() *history.History { return s.history }

// Load parses and resolves data, replacing the session's document. The new
// device is built completely before it is published: on parse or resolution
// failure, or when ctx is cancelled between stages, the previously loaded
// device and history are untouched.
func (s *Session) Load(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := svd.Parse(data)
	if err != nil {
		s.logError("load", err, "")
		return fmt.Errorf("parsing device: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	resolved, err := resolve.Resolve(raw)
	if err != nil {
		s.logError("resolve", err, raw.Name)
		return fmt.Errorf("resolving derivations: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	derived := 0
	for _, p := range resolved.Peripherals {
		if p.IsDerived() {
			derived++
		}
	}

	s.dev = resolved
	s.history.Clear()

	s.log(log.Event{
		Category: log.CategoryLoad,
		Load:     &log.LoadEvent{Bytes: len(data), Peripherals: len(resolved.Peripherals)},
	})
	s.log(log.Event{
		Category: log.CategoryResolve,
		Resolve:  &log.ResolveEvent{Derived: derived},
	})
	return nil
}

// Refresh re-resolves the loaded device so inherited copies in derived
// peripherals pick up edits made to their base peripherals. Materialized
// overrides are kept. The history survives a refresh: commands address
// their targets by name path, which re-resolution preserves. On failure
// the loaded device is untouched.
func (s *Session) Refresh() error {
	if s.dev == nil {
		return ErrNoDevice
	}
	resolved, err := resolve.Resolve(s.dev)
	if err != nil {
		s.logError("refresh", err, s.dev.Name)
		return fmt.Errorf("resolving derivations: %w", err)
	}

	derived := 0
	for _, p := range resolved.Peripherals {
		if p.IsDerived() {
			derived++
		}
	}

	s.dev = resolved
	s.log(log.Event{
		Category: log.CategoryResolve,
		Resolve:  &log.ResolveEvent{Derived: derived},
	})
	return nil
}

// Apply runs one edit command through the history.
func (s *Session) Apply(cmd history.Command) error {
	if s.dev == nil {
		return ErrNoDevice
	}
	if err := s.history.Apply(cmd, s.dev); err != nil {
		s.logError(cmd.Description(), err, s.dev.Name)
		return err
	}
	s.log(log.Event{
		Category: log.CategoryApply,
		Edit:     &log.EditEvent{Command: cmd.Description()},
	})
	return nil
}

// Undo reverts the most recent edit.
func (s *Session) Undo() error {
	if s.dev == nil {
		return ErrNoDevice
	}
	desc := s.history.UndoDescription()
	if err := s.history.Undo(s.dev); err != nil {
		return err
	}
	s.log(log.Event{
		Category: log.CategoryUndo,
		Edit:     &log.EditEvent{Command: desc},
	})
	return nil
}

// Redo reapplies the most recently undone edit.
func (s *Session) Redo() error {
	if s.dev == nil {
		return ErrNoDevice
	}
	desc := s.history.RedoDescription()
	if err := s.history.Redo(s.dev); err != nil {
		return err
	}
	s.log(log.Event{
		Category: log.CategoryRedo,
		Edit:     &log.EditEvent{Command: desc},
	})
	return nil
}

// Validate runs the default rule registry over the loaded device.
func (s *Session) Validate() ([]validate.Diagnostic, error) {
	if s.dev == nil {
		return nil, ErrNoDevice
	}
	diags := s.registry.Validate(s.dev)

	var counts log.ValidateEvent
	for _, d := range diags {
		switch d.Severity {
		case validate.SeverityError:
			counts.Errors++
		case validate.SeverityWarning:
			counts.Warnings++
		default:
			counts.Infos++
		}
	}
	s.log(log.Event{Category: log.CategoryValidate, Validate: &counts})
	return diags, nil
}

// Registry returns the session's validation registry so callers can
// disable rules or adjust severities.
func (s *Session) Registry() *validate.Registry { return s.registry }

// Save generates the document in current model order. Derived peripherals
// come out minimal: inherited registers and interrupts are not re-emitted.
func (s *Session) Save() ([]byte, error) {
	if s.dev == nil {
		return nil, ErrNoDevice
	}
	data := svd.Generate(s.dev)
	s.log(log.Event{
		Category: log.CategorySave,
		Save:     &log.SaveEvent{Bytes: len(data)},
	})
	return data, nil
}

func (s *Session) log(event log.Event) {
	event.Timestamp = time.Now()
	event.SessionID = s.id
	if event.Device == "" && s.dev != nil {
		event.Device = s.dev.Name
	}
	s.journal.Log(event)
}

func (s *Session) logError(context string, err error, device string) {
	s.journal.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: s.id,
		Category:  log.CategoryError,
		Device:    device,
		Error:     &log.ErrorEvent{Message: err.Error(), Context: context},
	})
}
