// Package reconcile drives the filename reconciliation pass: it scans the
// archive for media files, locates their JSON sidecars, detects truncated
// filenames against the sidecar title, and repairs each pair with an atomic
// rename. A file lock keeps concurrent runs from mutating the same archive.
package reconcile
