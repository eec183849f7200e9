package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present.txt")
	if err := os.WriteFile(present, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !Exists(present) {
		t.Fatal("expected existing file to be reported present")
	}
	if Exists(filepath.Join(dir, "absent.txt")) {
		t.Fatal("expected missing file to be reported absent")
	}
	if Exists("") {
		t.Fatal("expected empty path to be reported absent")
	}
}

func TestRenameExclusive(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	if err := os.WriteFile(src, []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := RenameExclusive(src, dst); err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if Exists(src) || !Exists(dst) {
		t.Fatal("rename did not move the file")
	}
}

func TestRenameExclusiveRefusesExistingTarget(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	for _, path := range []string{src, dst} {
		if err := os.WriteFile(path, []byte(path), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if err := RenameExclusive(src, dst); err == nil {
		t.Fatal("expected refusal when target exists")
	}
	data, err := os.ReadFile(dst)
	if err != nil || string(data) != dst {
		t.Fatalf("target was modified: %q, %v", data, err)
	}
}

func TestReadText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	if err := os.WriteFile(path, []byte("line one\nline two\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	text, err := ReadText(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if text != "line one\nline two\n" {
		t.Fatalf("unexpected content: %q", text)
	}

	if _, err := ReadText(filepath.Join(dir, "missing.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
