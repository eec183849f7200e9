package reconcile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"

	"takeout/internal/logging"
	"takeout/internal/testsupport"
)

func TestRunRenamesTruncatedPair(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	mediaPath := filepath.Join(cfg.Paths.TakeoutDir, "trip to par.jpg")
	sidecarPath := mediaPath + ".json"
	testsupport.WriteMedia(t, mediaPath)
	testsupport.WriteSidecar(t, sidecarPath, "trip to paris.jpg")

	summary, err := New(cfg, logging.NewNop()).Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if summary.Checked != 1 || summary.Renamed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	renamedMedia := filepath.Join(cfg.Paths.TakeoutDir, "trip to paris.jpg")
	if _, err := os.Stat(renamedMedia); err != nil {
		t.Fatalf("renamed media missing: %v", err)
	}
	if _, err := os.Stat(renamedMedia + ".json"); err != nil {
		t.Fatalf("renamed sidecar missing: %v", err)
	}
	if _, err := os.Stat(mediaPath); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("original media still present: %v", err)
	}
}

func TestRunDryRunLeavesFilesUntouched(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithDryRun())
	mediaPath := filepath.Join(cfg.Paths.TakeoutDir, "trip to par.jpg")
	testsupport.WriteMedia(t, mediaPath)
	testsupport.WriteSidecar(t, mediaPath+".json", "trip to paris.jpg")

	summary, err := New(cfg, logging.NewNop()).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if summary.WouldRename != 1 || summary.Renamed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if _, err := os.Stat(mediaPath); err != nil {
		t.Fatalf("dry run must not move files: %v", err)
	}
}

func TestRunCountsRecordsWithoutSidecar(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteMedia(t, filepath.Join(cfg.Paths.TakeoutDir, "orphan.jpg"))

	summary, err := New(cfg, logging.NewNop()).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if summary.NoSidecar != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRunSkipsFilesThatAreNotTruncated(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	mediaPath := filepath.Join(cfg.Paths.TakeoutDir, "sunset.jpg")
	testsupport.WriteMedia(t, mediaPath)
	testsupport.WriteSidecar(t, mediaPath+".json", "sunset.jpg")

	summary, err := New(cfg, logging.NewNop()).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if summary.NotTruncated != 1 || summary.Renamed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRunRefusesWhenTargetExists(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	mediaPath := filepath.Join(cfg.Paths.TakeoutDir, "trip to par.jpg")
	testsupport.WriteMedia(t, mediaPath)
	testsupport.WriteSidecar(t, mediaPath+".json", "trip to paris.jpg")
	testsupport.WriteMedia(t, filepath.Join(cfg.Paths.TakeoutDir, "trip to paris.jpg"))

	summary, err := New(cfg, logging.NewNop()).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if summary.TargetExists != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if _, err := os.Stat(mediaPath); err != nil {
		t.Fatalf("refused rename must leave the original in place: %v", err)
	}
}

func TestRunFindsSupplementalSidecar(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	mediaPath := filepath.Join(cfg.Paths.TakeoutDir, "holiday sna.jpg")
	sidecarPath := mediaPath + ".supplemental-metadata.json"
	testsupport.WriteMedia(t, mediaPath)
	testsupport.WriteSidecar(t, sidecarPath, "holiday snaps.jpg")

	summary, err := New(cfg, logging.NewNop()).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if summary.Renamed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	renamed := filepath.Join(cfg.Paths.TakeoutDir, "holiday snaps.jpg.supplemental-metadata.json")
	if _, err := os.Stat(renamed); err != nil {
		t.Fatalf("renamed supplemental sidecar missing: %v", err)
	}
}

func TestRunFailsWhenArchiveDirMissing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := os.RemoveAll(cfg.Paths.TakeoutDir); err != nil {
		t.Fatal(err)
	}
	if _, err := New(cfg, logging.NewNop()).Run(context.Background()); err == nil {
		t.Fatal("expected error for missing archive directory")
	}
}

func TestRunReportsLockedArchive(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	held := flock.New(filepath.Join(cfg.Paths.LogDir, "reconcile.lock"))
	locked, err := held.TryLock()
	if err != nil || !locked {
		t.Fatalf("failed to pre-acquire lock: %v", err)
	}
	defer func() { _ = held.Unlock() }()

	if _, err := New(cfg, logging.NewNop()).Run(context.Background()); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestRunNotifiesObserver(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteMedia(t, filepath.Join(cfg.Paths.TakeoutDir, "a.jpg"))
	testsupport.WriteMedia(t, filepath.Join(cfg.Paths.TakeoutDir, "b.jpg"))

	var calls []int
	r := New(cfg, logging.NewNop(), WithObserver(func(done, total int) {
		if total != 2 {
			t.Fatalf("expected total 2, got %d", total)
		}
		calls = append(calls, done)
	}))
	if _, err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(calls) != 2 || calls[0] != 1 || calls[1] != 2 {
		t.Fatalf("unexpected observer calls: %v", calls)
	}
}
