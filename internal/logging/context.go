package logging

import (
	"context"
	"log/slog"

	"takeout/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRecordPath is the standardized structured logging key for the media record being reconciled.
	FieldRecordPath = "record_path"
	// FieldChunkID is the standardized structured logging key for batch chunk identifiers.
	FieldChunkID = "chunk_id"
	// FieldBatchID is the standardized structured logging key for write-batch identifiers.
	FieldBatchID = "batch_id"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if path, ok := services.RecordPathFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRecordPath, path))
	}
	if id, ok := services.ChunkIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldChunkID, id))
	}
	if id, ok := services.BatchIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldBatchID, id))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from
// the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
