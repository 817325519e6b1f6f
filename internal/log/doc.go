// Package log provides logging for llscan, built on top of the standard slog
// package, and the stdout diagnostic trace of the scan reporter.
//
// This package provides:
//   - Configurable log levels with verbose mode support
//   - Text and JSON handlers with consistent formatting
//   - PathHandler, which shows absolute input and output paths relative to
//     the working directory
//   - Tracer, the plain stdout trace of inputs, object names and curve points
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Debug("file processed", "file", "/data/scan/0.5.root", "phi", 0.5)
//	// file=scan/0.5.root when run from /data
//
// Logs go to stderr; the trace goes to stdout and can be silenced with
// --quiet without affecting logs.
package log
