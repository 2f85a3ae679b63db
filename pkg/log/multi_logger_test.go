package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type captureLogger struct {
	events []Event
}

func (c *captureLogger) Log(event Event) {
	c.events = append(c.events, event)
}

func TestMultiLoggerFansOut(t *testing.T) {
	a := &captureLogger{}
	b := &captureLogger{}
	m := NewMultiLogger(a, b, NoopLogger{})

	m.Log(journalEvent("s1", CategoryApply))
	m.Log(journalEvent("s1", CategoryUndo))

	if len(a.events) != 2 || len(b.events) != 2 {
		t.Errorf("fan-out counts = %d, %d, want 2, 2", len(a.events), len(b.events))
	}
	if a.events[1].Category != CategoryUndo {
		t.Errorf("second event category = %v, want UNDO", a.events[1].Category)
	}
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	NewSlogAdapter(logger).Log(Event{
		Timestamp: time.Now(),
		SessionID: "s1",
		Category:  CategoryApply,
		Device:    "STM32TEST",
		Edit:      &EditEvent{Command: "rename GPIOA to GPIOC"},
	})

	out := buf.String()
	for _, want := range []string{"session_id=s1", "category=APPLY", "device=STM32TEST", "rename GPIOA to GPIOC"} {
		if !strings.Contains(out, want) {
			t.Errorf("slog output missing %q:\n%s", want, out)
		}
	}
}
