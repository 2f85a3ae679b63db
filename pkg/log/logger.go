package log

// Logger is the interface sessions use to journal edit events.
// Pass NoopLogger to disable journaling.
type Logger interface {
	// Log records an event. Implementations must be thread-safe.
	// The event should be processed quickly or queued; blocking stalls the
	// editing session.
	Log(event Event)
}

// NoopLogger discards all events. Use when journaling is disabled.
// NoopLogger is safe for concurrent use and usable as a zero value.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// Compile-time interface satisfaction check.
var _ Logger = NoopLogger{}
