// Package fileutil provides the small set of filesystem primitives the
// reconciliation layer depends on: existence probes, exclusive renames, and
// reading files as text.
package fileutil

import (
	"errors"
	"fmt"
	"os"
)

// Exists reports whether a filesystem entry is present at path. Stat errors
// other than "not exist" are treated as present, so callers that must never
// overwrite fail closed.
func Exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Lstat(path)
	if err == nil {
		return true
	}
	return !errors.Is(err, os.ErrNotExist)
}

// RenameExclusive renames src to dst, refusing to proceed when dst already
// exists. The existence probe and the rename are not atomic together; the
// rename itself is atomic on the underlying filesystem.
func RenameExclusive(src, dst string) error {
	if Exists(dst) {
		return fmt.Errorf("rename %s: target %s already exists", src, dst)
	}
	return os.Rename(src, dst)
}

// ReadText reads the file at path and returns its contents as a string.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
