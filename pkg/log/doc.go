// Package log provides structured edit journaling for SVD sessions.
//
// This package defines the Logger interface and Event types for capturing
// session-level events: document loads, derivation resolution, applied and
// undone commands, validation runs and saves. It is separate from
// operational logging (slog) - the journal is a complete machine-readable
// trace of how a document was edited.
//
// # Basic Usage
//
// Sessions journal by being given a Logger implementation:
//
//	// For development: log to console via slog
//	journal := log.NewSlogAdapter(slog.Default())
//
//	// For auditing: write to binary file
//	journal, _ := log.NewFileLogger("device.svdlog")
//
//	// Both: use MultiLogger
//	journal := log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # File Format
//
// Journal files use CBOR encoding with integer map keys and the .svdlog
// extension. Reader streams them back, optionally filtered.
package log
