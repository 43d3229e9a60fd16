// Package log provides structured session event capture for the pairing
// orchestrator.
//
// This package defines the Logger interface and Event types for recording
// what happened during a pairing session: announcements observed on the
// network, pair invocations, connect attempts, and state transitions.
// It is separate from operational logging (slog) - session capture provides
// a complete machine-readable trace for debugging and analysis.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.SessionLogger = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.SessionLogger, _ = log.NewFileLogger("/var/log/adbee/session.alog")
//
//	// Both: use MultiLogger
//	cfg.SessionLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    log.NewFileLogger("/var/log/adbee/session.alog"),
//	)
//
// # File Format
//
// Log files use CBOR encoding with integer map keys. Reader streams events
// back with optional filtering by session, category, endpoint, or time.
package log
