// Package commands implements the svd-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/svd-tools/svd-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	SessionID string
	Category  *log.Category
	Device    string
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [session:id] CATEGORY device
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	sessionID := shortenSessionID(event.SessionID)

	if event.Device != "" {
		fmt.Fprintf(w, "%s [session:%s] %-8s %s\n", ts, sessionID, event.Category.String(), event.Device)
	} else {
		fmt.Fprintf(w, "%s [session:%s] %-8s\n", ts, sessionID, event.Category.String())
	}

	// Type-specific details
	switch {
	case event.Load != nil:
		fmt.Fprintf(w, "  Size: %d bytes\n", event.Load.Bytes)
		fmt.Fprintf(w, "  Peripherals: %d\n", event.Load.Peripherals)
	case event.Resolve != nil:
		fmt.Fprintf(w, "  Derived: %d\n", event.Resolve.Derived)
	case event.Edit != nil:
		fmt.Fprintf(w, "  Command: %s\n", event.Edit.Command)
	case event.Validate != nil:
		fmt.Fprintf(w, "  Errors: %d  Warnings: %d  Infos: %d\n",
			event.Validate.Errors, event.Validate.Warnings, event.Validate.Infos)
	case event.Save != nil:
		fmt.Fprintf(w, "  Size: %d bytes\n", event.Save.Bytes)
	case event.Error != nil:
		fmt.Fprintf(w, "  Message: %s\n", event.Error.Message)
		if event.Error.Context != "" {
			fmt.Fprintf(w, "  Context: %s\n", event.Error.Context)
		}
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	return parseCategory(s)
}

// parseCategory parses a category string (case-insensitive).
func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "load":
		return log.CategoryLoad, nil
	case "resolve":
		return log.CategoryResolve, nil
	case "apply":
		return log.CategoryApply, nil
	case "undo":
		return log.CategoryUndo, nil
	case "redo":
		return log.CategoryRedo, nil
	case "validate":
		return log.CategoryValidate, nil
	case "save":
		return log.CategorySave, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be load, resolve, apply, undo, redo, validate, save, or error)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, log.Filter{
		SessionID: filter.SessionID,
		Category:  filter.Category,
		Device:    filter.Device,
	})
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		formatEvent(output, event)
	}

	return nil
}
