package renametx

import (
	"log/slog"

	"takeout/internal/fileutil"
	"takeout/internal/logging"
	"takeout/internal/media"
)

// renameFile is a seam for failure injection in tests. The exclusive rename
// re-checks the destination per step, so a target appearing between the
// transaction pre-check and the rename still refuses to overwrite.
var renameFile = fileutil.RenameExclusive

// Status reports the outcome of one paired rename.
type Status int

const (
	// StatusRenamed means media and sidecar were both renamed and the
	// owning record now reflects the new media path.
	StatusRenamed Status = iota
	// StatusTargetExists means a destination already existed and nothing
	// was touched.
	StatusTargetExists
	// StatusFailed means a rename step failed; completed steps were rolled
	// back (best effort) and the filesystem should match the pre-call state
	// unless a rollback failure was logged.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusRenamed:
		return "renamed"
	case StatusTargetExists:
		return "target-exists"
	case StatusFailed:
		return "rename-failed"
	default:
		return "unknown"
	}
}

// Transaction renames a media file and its sidecar as a unit. It is not safe
// for concurrent use against the same record; callers serialize per record.
type Transaction struct {
	logger *slog.Logger
}

// New constructs a transaction helper with the given logger.
func New(logger *slog.Logger) *Transaction {
	return &Transaction{logger: logging.NewComponentLogger(logger, "renametx")}
}

type step struct {
	from string
	to   string
}

// Apply renames mediaPath to newMediaPath and sidecarPath to newSidecarPath,
// then updates the record's primary path. Either destination already
// existing aborts before any mutation. A mid-transaction failure rolls back
// completed steps in reverse order; rollback failures are logged and never
// re-raised so the batch can continue.
func (t *Transaction) Apply(mediaPath, newMediaPath, sidecarPath, newSidecarPath string, rec *media.Record) Status {
	if fileutil.Exists(newMediaPath) || fileutil.Exists(newSidecarPath) {
		t.logger.Debug("rename refused: target exists",
			logging.String("new_media_path", newMediaPath),
			logging.String("new_sidecar_path", newSidecarPath),
		)
		return StatusTargetExists
	}

	var applied []step
	for _, s := range []step{
		{from: mediaPath, to: newMediaPath},
		{from: sidecarPath, to: newSidecarPath},
	} {
		if err := renameFile(s.from, s.to); err != nil {
			t.logger.Warn("rename step failed",
				logging.String("from", s.from),
				logging.String("to", s.to),
				logging.Error(err),
			)
			t.rollback(applied)
			return StatusFailed
		}
		if !fileutil.Exists(s.to) {
			t.logger.Warn("rename postcondition failed: target missing",
				logging.String("to", s.to),
			)
			t.rollback(applied)
			return StatusFailed
		}
		applied = append(applied, s)
	}

	rec.SetPrimaryPath(newMediaPath)
	t.logger.Info("renamed media and sidecar",
		logging.String("media_path", newMediaPath),
		logging.String("sidecar_path", newSidecarPath),
	)
	return StatusRenamed
}

// rollback undoes completed steps in reverse order. A failed undo leaves the
// pair inconsistent on disk, which only a human can resolve; it is reported
// at error level and processing continues.
func (t *Transaction) rollback(applied []step) {
	for i := len(applied) - 1; i >= 0; i-- {
		s := applied[i]
		if err := renameFile(s.to, s.from); err != nil {
			t.logger.Error("rollback failed: manual cleanup required",
				logging.String("stranded_path", s.to),
				logging.String("original_path", s.from),
				logging.Error(err),
			)
		}
	}
}
