package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes journal events to an slog.Logger.
// Useful for development when you want to watch a session in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("category", event.Category.String()),
	}

	if event.Device != "" {
		attrs = append(attrs, slog.String("device", event.Device))
	}

	switch {
	case event.Load != nil:
		attrs = append(attrs,
			slog.Int("bytes", event.Load.Bytes),
			slog.Int("peripherals", event.Load.Peripherals),
		)
	case event.Resolve != nil:
		attrs = append(attrs, slog.Int("derived", event.Resolve.Derived))
	case event.Edit != nil:
		attrs = append(attrs, slog.String("command", event.Edit.Command))
	case event.Validate != nil:
		attrs = append(attrs,
			slog.Int("errors", event.Validate.Errors),
			slog.Int("warnings", event.Validate.Warnings),
			slog.Int("infos", event.Validate.Infos),
		)
	case event.Save != nil:
		attrs = append(attrs, slog.Int("bytes", event.Save.Bytes))
	case event.Error != nil:
		attrs = append(attrs, slog.String("error_msg", event.Error.Message))
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "session", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
