package pathident

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Identity is the canonical representation of one filesystem path. The
// zero value represents "no path".
type Identity struct {
	path string
	key  string
}

// Canonicalize converts a raw path string into an Identity. It is pure,
// total, and idempotent: canonicalizing an already-canonical path returns
// an equal Identity. The whole string is composed to NFC, not just the
// basename, because intermediate directory segments are decomposed too on
// platforms that store NFD.
func Canonicalize(raw string) Identity {
	composed := norm.NFC.String(raw)
	return Identity{path: composed, key: matchKey(composed)}
}

// Path returns the canonical path with original casing preserved. This is
// the authoritative storage form.
func (id Identity) Path() string { return id.path }

// Key returns the folded matching key: lowercase with backslash separators
// normalized to forward slashes. Two paths refer to the same entry for
// matching purposes exactly when their keys are equal.
func (id Identity) Key() string { return id.key }

// Equal reports whether two identities refer to the same entry under the
// matching rules. Storage-form case differences do not break equality.
func (id Identity) Equal(other Identity) bool { return id.key == other.key }

// IsZero reports whether the identity was derived from an empty path.
func (id Identity) IsZero() bool { return id.path == "" }

func matchKey(path string) string {
	return strings.ReplaceAll(strings.ToLower(path), `\`, "/")
}

// Set is a collection of identities with matching-key semantics. Insertion
// order is preserved for deterministic iteration.
type Set struct {
	members map[string]Identity
	order   []string
}

// NewSet returns an empty identity set.
func NewSet() *Set {
	return &Set{members: make(map[string]Identity)}
}

// Add inserts the identity unless an equal identity is already present.
// Zero identities are ignored.
func (s *Set) Add(id Identity) {
	if id.IsZero() {
		return
	}
	if _, ok := s.members[id.key]; ok {
		return
	}
	s.members[id.key] = id
	s.order = append(s.order, id.key)
}

// Contains reports whether an identity equal to id is in the set.
func (s *Set) Contains(id Identity) bool {
	if s == nil {
		return false
	}
	_, ok := s.members[id.key]
	return ok
}

// ContainsPath canonicalizes raw and reports membership.
func (s *Set) ContainsPath(raw string) bool {
	return s.Contains(Canonicalize(raw))
}

// Len returns the number of distinct identities in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.members)
}

// Identities returns the members in insertion order.
func (s *Set) Identities() []Identity {
	if s == nil {
		return nil
	}
	out := make([]Identity, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.members[key])
	}
	return out
}
