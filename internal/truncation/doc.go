// Package truncation detects media filenames shortened by the export
// relative to their sidecar title, and computes the corrected name.
//
// Detection is strict prefix matching after stem extraction and case folding.
// A wrong positive here renames two files destructively, so anything short of
// an exact prefix is reported as not truncated.
package truncation
