// Package writer drives the external metadata write tool over persisted
// batch chunks.
//
// The CLI client transports files to exiftool and hands its combined output
// back untouched; the runner owns the retry loop, feeding that output through
// the diagnostics extractor and the retry coordinator and persisting each
// decision. What metadata gets written is the caller's concern, configured
// through tag arguments.
package writer
