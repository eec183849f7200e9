package batch

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenPath(filepath.Join(t.TempDir(), "chunks.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewChunkAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	chunk, err := store.NewChunk(ctx, "batch-1", []string{"/t/a.jpg", "/t/b.jpg"})
	if err != nil {
		t.Fatalf("new chunk: %v", err)
	}
	if chunk.ID == "" {
		t.Fatal("expected generated chunk id")
	}
	if chunk.Status != StatusPending {
		t.Fatalf("expected pending, got %s", chunk.Status)
	}
	if len(chunk.Members) != 2 {
		t.Fatalf("expected 2 members, got %v", chunk.Members)
	}

	loaded, err := store.GetByID(ctx, chunk.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if loaded.BatchID != "batch-1" || loaded.Members[1] != "/t/b.jpg" {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
}

func TestNewChunkRejectsEmptyMembers(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.NewChunk(context.Background(), "batch-1", nil); err == nil {
		t.Fatal("expected error for empty members")
	}
}

func TestGetByIDNotFound(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.GetByID(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNextPendingOrderAndExhaustion(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first, err := store.NewChunk(ctx, "batch-1", []string{"/t/a.jpg"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.NewChunk(ctx, "batch-1", []string{"/t/b.jpg"}); err != nil {
		t.Fatal(err)
	}

	next, err := store.NextPending(ctx, "batch-1")
	if err != nil {
		t.Fatalf("next pending: %v", err)
	}
	if next == nil || next.ID != first.ID {
		t.Fatalf("expected oldest chunk first, got %+v", next)
	}

	next.Status = StatusCompleted
	if err := store.Update(ctx, next); err != nil {
		t.Fatalf("update: %v", err)
	}

	second, err := store.NextPending(ctx, "batch-1")
	if err != nil {
		t.Fatal(err)
	}
	if second == nil || second.ID == first.ID {
		t.Fatalf("expected second chunk, got %+v", second)
	}

	second.Status = StatusFailed
	if err := store.Update(ctx, second); err != nil {
		t.Fatal(err)
	}

	none, err := store.NextPending(ctx, "batch-1")
	if err != nil {
		t.Fatal(err)
	}
	if none != nil {
		t.Fatalf("expected no pending chunks, got %+v", none)
	}
}

func TestUpdateShrinksMembers(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	chunk, err := store.NewChunk(ctx, "batch-1", []string{"/t/a.jpg", "/t/b.jpg", "/t/c.jpg"})
	if err != nil {
		t.Fatal(err)
	}

	chunk.Members = []string{"/t/b.jpg"}
	chunk.Attempts = 1
	chunk.LastError = "Error: File not writable - /t/b.jpg"
	if err := store.Update(ctx, chunk); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.GetByID(ctx, chunk.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Members) != 1 || loaded.Members[0] != "/t/b.jpg" {
		t.Fatalf("members not shrunk: %v", loaded.Members)
	}
	if loaded.Attempts != 1 || loaded.LastError == "" {
		t.Fatalf("attempt bookkeeping lost: %+v", loaded)
	}
}

func TestUpdateRejectsInvalidStatus(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	chunk, err := store.NewChunk(ctx, "batch-1", []string{"/t/a.jpg"})
	if err != nil {
		t.Fatal(err)
	}
	chunk.Status = Status("bogus")
	if err := store.Update(ctx, chunk); err == nil {
		t.Fatal("expected rejection of invalid status")
	}
}

func TestCountsAndClear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	a, _ := store.NewChunk(ctx, "batch-1", []string{"/t/a.jpg"})
	if _, err := store.NewChunk(ctx, "batch-1", []string{"/t/b.jpg"}); err != nil {
		t.Fatal(err)
	}
	a.Status = StatusMismatch
	if err := store.Update(ctx, a); err != nil {
		t.Fatal(err)
	}

	counts, err := store.Counts(ctx, "batch-1")
	if err != nil {
		t.Fatal(err)
	}
	if counts[StatusPending] != 1 || counts[StatusMismatch] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}

	if err := store.Clear(ctx, "batch-1"); err != nil {
		t.Fatal(err)
	}
	chunks, err := store.List(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 0 {
		t.Fatalf("expected empty store after clear, got %d", len(chunks))
	}
}

func TestResetStuck(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	chunk, err := store.NewChunk(ctx, "batch-1", []string{"/t/a.jpg"})
	if err != nil {
		t.Fatal(err)
	}
	chunk.Status = StatusWriting
	if err := store.Update(ctx, chunk); err != nil {
		t.Fatal(err)
	}

	reset, err := store.ResetStuck(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if reset != 1 {
		t.Fatalf("expected 1 reset chunk, got %d", reset)
	}
	loaded, err := store.GetByID(ctx, chunk.ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Status != StatusPending {
		t.Fatalf("expected pending after reset, got %s", loaded.Status)
	}
}

func TestStatusHelpers(t *testing.T) {
	if !StatusMismatch.Terminal() || !StatusCompleted.Terminal() || !StatusFailed.Terminal() {
		t.Fatal("terminal statuses misclassified")
	}
	if StatusPending.Terminal() || StatusWriting.Terminal() {
		t.Fatal("non-terminal statuses misclassified")
	}
	if Status("bogus").Valid() {
		t.Fatal("unknown status must be invalid")
	}
}
