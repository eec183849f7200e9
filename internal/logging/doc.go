// Package logging assembles the structured slog loggers used across the
// reconciler.
//
// It owns the console/JSON handler plumbing, exposes typed attribute helpers
// so components emit fields with consistent keys, and provides context-aware
// helpers that tag log lines with the record path and chunk/batch identifiers
// flowing through an operation. A no-op logger is available for tests and
// wiring code that cannot fail.
package logging
