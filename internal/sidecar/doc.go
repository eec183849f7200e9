// Package sidecar locates and reads the JSON metadata files Takeout writes
// next to each media file.
//
// Two naming patterns are authoritative: <name>.<ext>.json and
// <name>.<ext>.supplemental-metadata.json. The tryhard probe additionally
// covers naming quirks observed across years of exports: numbered duplicates,
// sidecars keyed off the extension-less name, stripped trailing underscores,
// and length-truncated supplemental-metadata tokens.
package sidecar
