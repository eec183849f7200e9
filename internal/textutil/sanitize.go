package textutil

import (
	"strings"
	"unicode"
)

// fileNameReplacer maps characters that are illegal in portable filenames to
// underscores. The set covers Windows reserved characters; Unix forbids only
// the slash, but corrected names must survive a round trip across platforms.
var fileNameReplacer = strings.NewReplacer(
	"<", "_",
	">", "_",
	":", "_",
	"\"", "_",
	"/", "_",
	"\\", "_",
	"|", "_",
	"?", "_",
	"*", "_",
)

// SanitizeFileName rewrites name so it is safe to create on any platform.
// Illegal characters become underscores, control characters are stripped,
// and surrounding whitespace is trimmed.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	replaced := fileNameReplacer.Replace(name)
	var b strings.Builder
	b.Grow(len(replaced))
	for _, r := range replaced {
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
