package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gofrs/flock"

	"takeout/internal/config"
	"takeout/internal/logging"
	"takeout/internal/media"
	"takeout/internal/renametx"
	"takeout/internal/sidecar"
	"takeout/internal/truncation"
)

// ErrLocked reports that another reconcile run holds the archive lock.
var ErrLocked = errors.New("another reconcile run is already in progress")

// Summary aggregates per-record outcomes of one reconcile pass.
type Summary struct {
	Checked      int
	Renamed      int
	WouldRename  int
	NoSidecar    int
	NoTitle      int
	NotTruncated int
	TargetExists int
	Failed       int
}

// Option customizes a Reconciler.
type Option func(*Reconciler)

// WithObserver registers a callback invoked after each examined record with
// the number of records processed so far and the total.
func WithObserver(fn func(done, total int)) Option {
	return func(r *Reconciler) {
		r.observer = fn
	}
}

// Reconciler walks the archive, matches each media file to its JSON sidecar,
// and restores truncated filenames with an atomic paired rename.
type Reconciler struct {
	cfg      *config.Config
	logger   *slog.Logger
	tx       *renametx.Transaction
	lock     *flock.Flock
	observer func(done, total int)
}

// New constructs a reconciler for the configured archive.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Reconciler {
	component := logging.NewComponentLogger(logger, "reconcile")
	r := &Reconciler{
		cfg:    cfg,
		logger: component,
		tx:     renametx.New(component),
		lock:   flock.New(filepath.Join(cfg.Paths.LogDir, "reconcile.lock")),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run scans the archive and reconciles every media record. Only one run may
// mutate the archive at a time; a second concurrent run reports ErrLocked.
func (r *Reconciler) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	ok, err := r.lock.TryLock()
	if err != nil {
		return summary, fmt.Errorf("acquire reconcile lock: %w", err)
	}
	if !ok {
		return summary, ErrLocked
	}
	defer func() {
		if err := r.lock.Unlock(); err != nil {
			r.logger.Warn("failed to release reconcile lock", logging.Error(err))
		}
	}()

	records, err := media.Scan(r.cfg.Paths.TakeoutDir)
	if err != nil {
		return summary, fmt.Errorf("scan archive: %w", err)
	}
	r.logger.Info("archive scanned",
		logging.String("takeout_dir", r.cfg.Paths.TakeoutDir),
		logging.Int("records", len(records)),
		logging.Bool("dry_run", r.cfg.Reconcile.DryRun),
	)

	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		r.reconcileRecord(rec, &summary)
		if r.observer != nil {
			r.observer(i+1, len(records))
		}
	}

	r.logger.Info("reconcile pass finished",
		logging.Int("checked", summary.Checked),
		logging.Int("renamed", summary.Renamed),
		logging.Int("would_rename", summary.WouldRename),
		logging.Int("failed", summary.Failed),
	)
	return summary, nil
}

func (r *Reconciler) reconcileRecord(rec *media.Record, summary *Summary) {
	summary.Checked++
	mediaPath := rec.PrimaryPath()

	sidecarPath, found := sidecar.Find(mediaPath, r.cfg.Reconcile.Tryhard)
	if !found {
		summary.NoSidecar++
		r.logger.Debug("no sidecar found", logging.String(logging.FieldRecordPath, mediaPath))
		return
	}

	result := truncation.Resolve(mediaPath, sidecarPath)
	switch result.Outcome {
	case truncation.OutcomeNoTitle:
		summary.NoTitle++
		return
	case truncation.OutcomeNotTruncated:
		summary.NotTruncated++
		return
	}

	newMediaPath := filepath.Join(filepath.Dir(mediaPath), result.Corrected)
	newSidecarPath, ok := sidecar.RenamedPath(sidecarPath, result.Corrected)
	if !ok {
		summary.Failed++
		r.logger.Warn("cannot infer renamed sidecar path",
			logging.String(logging.FieldRecordPath, mediaPath),
			logging.String("sidecar_path", sidecarPath),
		)
		return
	}

	if r.cfg.Reconcile.DryRun {
		summary.WouldRename++
		r.logger.Info("dry run: would rename",
			logging.String(logging.FieldRecordPath, mediaPath),
			logging.String("corrected", result.Corrected),
		)
		return
	}

	switch r.tx.Apply(mediaPath, newMediaPath, sidecarPath, newSidecarPath, rec) {
	case renametx.StatusRenamed:
		summary.Renamed++
	case renametx.StatusTargetExists:
		summary.TargetExists++
	case renametx.StatusFailed:
		summary.Failed++
	}
}
