// Package diagnostics recovers failed-file identities from the free-text
// output of the external metadata write tool.
//
// Only lines carrying the literal failure marker are significant. The
// marker-to-path separator is found at its first occurrence after the
// marker: the path runs to the end of the line, so repeated occurrences of
// the separator inside album or directory names cannot truncate it.
package diagnostics
