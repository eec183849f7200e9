package writer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"takeout/internal/batch"
	"takeout/internal/config"
	"takeout/internal/diagnostics"
	"takeout/internal/logging"
	"takeout/internal/retry"
	"takeout/internal/services"
)

// Summary aggregates the outcome of one drain pass.
type Summary struct {
	ChunksCompleted  int
	ChunksFailed     int
	ChunksMismatched int
	WriteAttempts    int
}

// Store is the chunk persistence surface the runner depends on.
type Store interface {
	NewChunk(ctx context.Context, batchID string, members []string) (*batch.Chunk, error)
	NextPending(ctx context.Context, batchID string) (*batch.Chunk, error)
	Update(ctx context.Context, chunk *batch.Chunk) error
}

// Runner drains pending chunks through the write tool, extracts failure
// fingerprints from its diagnostics, and applies the retry coordinator's
// decision to each chunk.
type Runner struct {
	cfg    *config.Config
	store  Store
	client Client
	logger *slog.Logger
}

// NewRunner constructs a runner with the given collaborators.
func NewRunner(cfg *config.Config, store Store, client Client, logger *slog.Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		store:  store,
		client: client,
		logger: logging.NewComponentLogger(logger, "writer"),
	}
}

// Seed splits the given member paths into chunks of the configured size and
// persists them under a fresh batch identifier.
func (r *Runner) Seed(ctx context.Context, paths []string) (string, error) {
	if len(paths) == 0 {
		return "", services.Wrap(services.ErrValidation, "writing", "seed batch", "No files to enqueue", nil)
	}
	batchID := uuid.NewString()
	size := r.cfg.Exiftool.ChunkSize

	for start := 0; start < len(paths); start += size {
		end := start + size
		if end > len(paths) {
			end = len(paths)
		}
		if _, err := r.store.NewChunk(ctx, batchID, paths[start:end]); err != nil {
			return "", fmt.Errorf("seed chunk: %w", err)
		}
	}
	r.logger.Info("batch seeded",
		logging.String(logging.FieldBatchID, batchID),
		logging.Int("files", len(paths)),
		logging.Int("chunk_size", size),
	)
	return batchID, nil
}

// Run drains every pending chunk of the batch. Each chunk either completes,
// shrinks to its failed subset, or terminalizes (failed or mismatch), so the
// drain always terminates. One bad chunk never stops the batch, but a chunk
// whose state cannot be persisted does: without a durable attempt count the
// loop would re-read the same pending chunk and invoke the tool without bound.
func (r *Runner) Run(ctx context.Context, batchID string) (Summary, error) {
	ctx = services.WithBatchID(ctx, batchID)
	var summary Summary

	for {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		chunk, err := r.store.NextPending(ctx, batchID)
		if err != nil {
			return summary, fmt.Errorf("next pending chunk: %w", err)
		}
		if chunk == nil {
			return summary, nil
		}
		if err := r.processChunk(ctx, chunk, &summary); err != nil {
			return summary, err
		}
	}
}

func (r *Runner) processChunk(ctx context.Context, chunk *batch.Chunk, summary *Summary) error {
	ctx = services.WithChunkID(ctx, chunk.ID)
	logger := logging.WithContext(ctx, r.logger)

	// The attempt must be durable before the tool runs; otherwise a persist
	// failure would reset the count on the next read and retry forever.
	chunk.Status = batch.StatusWriting
	chunk.Attempts++
	if err := r.store.Update(ctx, chunk); err != nil {
		return fmt.Errorf("persist chunk state: %w", err)
	}
	summary.WriteAttempts++

	started := time.Now()
	output, err := r.client.Write(ctx, chunk.Members)
	if err != nil {
		logger.Warn("write tool invocation failed",
			logging.Error(err),
			logging.Int("attempt", chunk.Attempts),
		)
		chunk.LastError = err.Error()
		if services.Terminal(err) || chunk.Attempts >= r.cfg.Exiftool.MaxAttempts {
			chunk.Status = batch.StatusFailed
			summary.ChunksFailed++
		} else {
			chunk.Status = batch.StatusPending
		}
		return r.update(ctx, chunk)
	}

	decision := retry.Plan(chunk.Members, diagnostics.ExtractFailedPaths(output))
	switch decision.Kind {
	case retry.ChunkSucceeded:
		chunk.Status = batch.StatusCompleted
		chunk.LastError = ""
		summary.ChunksCompleted++
		logger.Info("chunk completed",
			logging.Int("files", len(chunk.Members)),
			logging.Duration("elapsed", time.Since(started)),
		)
	case retry.RetrySubset:
		if chunk.Attempts >= r.cfg.Exiftool.MaxAttempts {
			chunk.Status = batch.StatusFailed
			chunk.LastError = firstLines(output, 5)
			summary.ChunksFailed++
			logger.Warn("chunk failed: attempts exhausted",
				logging.Int("remaining_files", len(decision.Pending)),
				logging.Int("attempts", chunk.Attempts),
			)
		} else {
			chunk.Status = batch.StatusPending
			chunk.Members = decision.Pending
			chunk.LastError = firstLines(output, 5)
			logger.Info("chunk re-enqueued with failed subset",
				logging.Int("remaining_files", len(decision.Pending)),
				logging.Int("attempt", chunk.Attempts),
			)
		}
	case retry.DiagnosticMismatch:
		chunk.Status = batch.StatusMismatch
		chunk.LastError = firstLines(output, 5)
		summary.ChunksMismatched++
		logger.Warn("diagnostic mismatch: failures named outside this chunk, marking failed-terminal",
			logging.Int("files", len(chunk.Members)),
		)
	}
	return r.update(ctx, chunk)
}

func (r *Runner) update(ctx context.Context, chunk *batch.Chunk) error {
	if err := r.store.Update(ctx, chunk); err != nil {
		return fmt.Errorf("persist chunk state: %w", err)
	}
	return nil
}

// firstLines keeps diagnostic context in the store without dumping whole
// transcripts into a TEXT column.
func firstLines(text string, n int) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) <= n {
		return strings.TrimSpace(text)
	}
	return strings.Join(lines[:n], "\n")
}
