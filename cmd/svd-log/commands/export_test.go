package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/svd-tools/svd-go/pkg/log"
)

func createTestJournal(t *testing.T, events []log.Event) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.svdlog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func TestExportToJSONL(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)
	events := []log.Event{
		{
			Timestamp: ts,
			SessionID: "abc12345",
			Category:  log.CategoryLoad,
			Device:    "SC32F1",
			Load:      &log.LoadEvent{Bytes: 2048, Peripherals: 3},
		},
		{
			Timestamp: ts.Add(time.Second),
			SessionID: "abc12345",
			Category:  log.CategoryApply,
			Device:    "SC32F1",
			Edit:      &log.EditEvent{Command: "rename GPIOA to GPIOC"},
		},
	}

	path := createTestJournal(t, events)

	outPath := filepath.Join(t.TempDir(), "out.jsonl")
	err := RunExport(path, "jsonl", outPath)
	if err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Errorf("expected 2 lines, got %d", len(lines))
	}

	// Parse first line
	var event1 map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &event1); err != nil {
		t.Errorf("failed to parse line 1: %v", err)
	}
	if event1["SessionID"] != "abc12345" {
		t.Errorf("expected SessionID abc12345, got %v", event1["SessionID"])
	}
}

func TestExportToCSV(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC)
	events := []log.Event{
		{
			Timestamp: ts,
			SessionID: "abc12345",
			Category:  log.CategoryApply,
			Device:    "SC32F1",
			Edit:      &log.EditEvent{Command: "remove GPIOA/irq:GPIOA_IRQ"},
		},
	}

	path := createTestJournal(t, events)

	outPath := filepath.Join(t.TempDir(), "out.csv")
	err := RunExport(path, "csv", outPath)
	if err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	// Check header
	if !strings.HasPrefix(string(data), "timestamp,session_id,category,device,detail") {
		t.Errorf("expected CSV header, got: %s", string(data[:50]))
	}

	// Check data row
	lines := strings.Split(string(data), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected header + data row, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "remove GPIOA/irq:GPIOA_IRQ") {
		t.Errorf("expected command in detail column, got: %s", lines[1])
	}
}

func TestExportWritesToStdout(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC)
	events := []log.Event{
		{
			Timestamp: ts,
			SessionID: "abc12345",
			Category:  log.CategorySave,
			Save:      &log.SaveEvent{Bytes: 4096},
		},
	}

	path := createTestJournal(t, events)

	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := RunExport(path, "jsonl", "") // empty output means stdout

	w.Close()
	os.Stdout = oldStdout

	if err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	var buf bytes.Buffer
	buf.ReadFrom(r)

	if buf.Len() == 0 {
		t.Error("expected output to stdout")
	}
}

func TestExportUnknownFormat(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC)
	events := []log.Event{
		{
			Timestamp: ts,
			SessionID: "abc12345",
			Category:  log.CategorySave,
			Save:      &log.SaveEvent{Bytes: 4096},
		},
	}

	path := createTestJournal(t, events)
	outPath := filepath.Join(t.TempDir(), "out.xml")

	err := RunExport(path, "xml", outPath)
	if err == nil {
		t.Error("expected error for unknown format")
	}
	if !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("expected 'unknown format' error, got: %v", err)
	}
}
