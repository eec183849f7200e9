package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates the target path with the given contents, creating parent
// directories as needed.
func WriteFile(t testing.TB, path string, contents []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteMedia creates a small placeholder media file at the given path.
func WriteMedia(t testing.TB, path string) {
	t.Helper()
	WriteFile(t, path, []byte("media"))
}

// WriteSidecar creates a JSON sidecar at the given path carrying the
// provided title.
func WriteSidecar(t testing.TB, path, title string) {
	t.Helper()

	payload, err := json.Marshal(map[string]string{"title": title})
	if err != nil {
		t.Fatalf("marshal sidecar: %v", err)
	}
	WriteFile(t, path, payload)
}
