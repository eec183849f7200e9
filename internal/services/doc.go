// Package services defines the shared error taxonomy and context annotations
// used across reconciliation and batch-write components.
//
// Errors carry a sentinel marker (validation, configuration, external tool,
// transient, ...) so callers can classify failures without string matching.
// Context helpers thread record/chunk/batch identifiers through blocking
// operations for structured logging.
package services
