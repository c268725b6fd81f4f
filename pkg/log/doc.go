// Package log provides structured link-event capture for the station
// lifecycle manager.
//
// This package defines the Logger interface and Event types for recording
// connection-state transitions, raw driver events and handler errors. It
// is separate from operational logging (slog) - link capture produces a
// complete machine-readable trace of what the link did, suitable for
// post-mortem analysis of flapping networks.
//
// # Basic Usage
//
// Applications configure capture by providing a Logger implementation:
//
//	// For development: log to console via slog
//	station.WithCapture(log.NewSlogAdapter(slog.Default()))
//
//	// For production: write to binary file
//	capture, _ := log.NewFileLogger("/var/log/wifista/link.wlog")
//	station.WithCapture(capture)
//
//	// Both: use MultiLogger
//	station.WithCapture(log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    capture,
//	))
//
// # Event Types
//
// Each Event carries exactly one payload:
//   - StateChange: the connected flag flipped (with the acquired address)
//   - Driver: a raw driver event as delivered by the event loop
//   - Drop: a notification was dropped because a receiver queue was full
//   - Error: a soft error absorbed inside the driver event handler
//
// # File Format
//
// Log files use CBOR encoding with .wlog extension. The wifista-log CLI
// tool provides viewing, filtering, and export capabilities.
package log
