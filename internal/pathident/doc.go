// Package pathident derives comparison-stable identities from filesystem
// paths.
//
// Takeout archives unpacked on macOS store decomposed (NFD) Unicode in path
// names while the sidecar metadata and most other platforms use the composed
// (NFC) form. Every path-bearing field in this codebase goes through
// Canonicalize so equality checks never depend on which encoding a path
// arrived in. Identities carry two forms: the case-preserved canonical path
// used for storage and display-adjacent plumbing, and a folded matching key
// used for lookups, since the filesystems Takeout exports typically land on
// (macOS, Windows) compare names case-insensitively.
package pathident
