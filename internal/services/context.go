package services

import "context"

type contextKey string

const (
	recordPathKey contextKey = "record_path"
	chunkIDKey    contextKey = "chunk_id"
	batchIDKey    contextKey = "batch_id"
)

// WithRecordPath annotates context with the media record currently being
// reconciled.
func WithRecordPath(ctx context.Context, path string) context.Context {
	if path == "" {
		return ctx
	}
	return context.WithValue(ctx, recordPathKey, path)
}

// RecordPathFromContext extracts the record path if present.
func RecordPathFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(recordPathKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithChunkID annotates context with the batch chunk identifier.
func WithChunkID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, chunkIDKey, id)
}

// ChunkIDFromContext extracts the chunk identifier if present.
func ChunkIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(chunkIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithBatchID annotates context with the write-batch identifier.
func WithBatchID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, batchIDKey, id)
}

// BatchIDFromContext extracts the batch identifier if present.
func BatchIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(batchIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
