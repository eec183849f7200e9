package media

import (
	"takeout/internal/pathident"
)

// Record is one logical media item in the export. It owns exactly one
// primary path plus zero or more secondary paths (duplicates discovered in
// other albums that resolve to the same item). Paths are stored in canonical
// form; identity is derived on demand so it can never go stale against the
// stored path.
type Record struct {
	primaryPath    string
	secondaryPaths []string
}

// NewRecord creates a record for the given primary path. The path is
// canonicalized on assignment.
func NewRecord(primaryPath string) *Record {
	r := &Record{}
	r.SetPrimaryPath(primaryPath)
	return r
}

// PrimaryPath returns the canonical primary path.
func (r *Record) PrimaryPath() string { return r.primaryPath }

// SetPrimaryPath replaces the primary path, canonicalizing the input.
func (r *Record) SetPrimaryPath(path string) {
	r.primaryPath = pathident.Canonicalize(path).Path()
}

// Identity returns the identity of the primary path.
func (r *Record) Identity() pathident.Identity {
	return pathident.Canonicalize(r.primaryPath)
}

// AddSecondaryPath records an additional on-disk location for the same item.
func (r *Record) AddSecondaryPath(path string) {
	canonical := pathident.Canonicalize(path)
	for _, existing := range r.secondaryPaths {
		if pathident.Canonicalize(existing).Equal(canonical) {
			return
		}
	}
	r.secondaryPaths = append(r.secondaryPaths, canonical.Path())
}

// SecondaryPaths returns the canonical secondary paths.
func (r *Record) SecondaryPaths() []string {
	out := make([]string, len(r.secondaryPaths))
	copy(out, r.secondaryPaths)
	return out
}
