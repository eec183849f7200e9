// Package textutil provides filename sanitization helpers.
//
// SanitizeFileName keeps corrected filenames creatable on every platform the
// archive may be moved to.
package textutil
