// Package logging assembles the structured slog loggers used across
// cinelist.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers so ingestion code tags log lines
// with source names, line numbers, and run IDs in a consistent shape. The
// package also provides a no-op logger for tests and wiring code that
// cannot fail.
package logging
