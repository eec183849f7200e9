package diagnostics

import (
	"strings"

	"takeout/internal/pathident"
)

const (
	// failureMarker is the literal prefix exiftool prints on lines naming a
	// file it could not write.
	failureMarker = "Error:"
	// separator sits between the failure reason and the path. The same
	// token legitimately appears inside directory and album names, so it
	// must be located by first occurrence after the marker, never last.
	separator = " - "
)

// ExtractFailedPaths scans free-text diagnostic output and returns the set
// of canonical identities of files reported as failed. Lines without the
// failure marker contribute nothing; empty or unrecognizable input yields an
// empty set, which is a valid outcome and not an error.
func ExtractFailedPaths(text string) *pathident.Set {
	set := pathident.NewSet()
	for _, line := range strings.Split(text, "\n") {
		path, ok := failedPathFromLine(line)
		if !ok {
			continue
		}
		set.Add(pathident.Canonicalize(path))
	}
	return set
}

// failedPathFromLine recovers the path from one diagnostic line. The path is
// known to extend to the end of the line, so everything after the first
// marker-adjacent separator is the path regardless of how many further
// separator occurrences the path itself contains.
func failedPathFromLine(line string) (string, bool) {
	markerIdx := strings.Index(line, failureMarker)
	if markerIdx < 0 {
		return "", false
	}
	rest := line[markerIdx+len(failureMarker):]
	sepIdx := strings.Index(rest, separator)
	if sepIdx < 0 {
		return "", false
	}
	path := strings.TrimSpace(rest[sepIdx+len(separator):])
	if path == "" {
		return "", false
	}
	return path, true
}
