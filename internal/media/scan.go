package media

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// mediaExtensions lists the file types Takeout exports alongside sidecars.
var mediaExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".bmp": {},
	".tif": {}, ".tiff": {}, ".webp": {}, ".heic": {}, ".heif": {},
	".mp4": {}, ".mov": {}, ".avi": {}, ".mkv": {}, ".wmv": {},
	".m4v": {}, ".3gp": {}, ".webm": {}, ".mts": {}, ".m2ts": {},
}

// IsMediaPath reports whether the path has a recognized media extension.
func IsMediaPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := mediaExtensions[ext]
	return ok
}

// Scan walks root and returns a record for every media file found, in
// deterministic path order. Sidecar JSON files and directories are skipped.
// A root that does not exist or is not a directory is an error; unreadable
// subtrees below it are skipped rather than failing the whole scan.
func Scan(root string) ([]*Record, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s: not a directory", root)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if IsMediaPath(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	records := make([]*Record, 0, len(paths))
	for _, path := range paths {
		records = append(records, NewRecord(path))
	}
	return records, nil
}
