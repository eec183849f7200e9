package truncation

import (
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"takeout/internal/sidecar"
	"takeout/internal/textutil"
)

// Outcome classifies one truncation check.
type Outcome int

const (
	// OutcomeNoTitle means the sidecar was unreadable or carried no usable
	// title. A skip, not an error.
	OutcomeNoTitle Outcome = iota
	// OutcomeNotTruncated means the current name already matches the title,
	// or failed the strict prefix test.
	OutcomeNotTruncated
	// OutcomeTruncated means the current name is a confirmed truncation of
	// the title and Corrected holds the repaired filename.
	OutcomeTruncated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoTitle:
		return "no-title"
	case OutcomeNotTruncated:
		return "not-truncated"
	case OutcomeTruncated:
		return "truncated"
	default:
		return "unknown"
	}
}

// Result carries the outcome of one check. Corrected is the full repaired
// filename (stem plus current extension) and is set only on OutcomeTruncated.
type Result struct {
	Outcome   Outcome
	Corrected string
}

var (
	// doubleExtension matches two consecutive dot-delimited alphanumeric
	// suffixes of 2-5 characters, e.g. ".heic.jpg" on a file whose format
	// was corrected after export.
	doubleExtension = regexp.MustCompile(`(\.[A-Za-z0-9]{2,5}\.[A-Za-z0-9]{2,5})$`)
	// singleExtension matches one trailing dot-delimited alphanumeric
	// suffix of 2-5 characters, as titles sometimes embed the original
	// extension.
	singleExtension = regexp.MustCompile(`\.[A-Za-z0-9]{2,5}$`)
)

// Resolve reads the sidecar at sidecarPath and decides whether the media
// filename was truncated by the export relative to the sidecar title.
//
// The truncation test is deliberately prefix-only: the current stem must be
// strictly shorter than the expected stem and a case-insensitive exact
// prefix of it. Similar-but-different names must never qualify because the
// consequence of a match is renaming both files.
func Resolve(mediaPath, sidecarPath string) Result {
	title, ok := sidecar.ReadTitle(sidecarPath)
	if !ok {
		return Result{Outcome: OutcomeNoTitle}
	}

	currentStem, currentExt := splitStem(filepath.Base(mediaPath))
	expectedStem := stemFromTitle(title)

	current := foldStem(currentStem)
	expected := foldStem(expectedStem)
	if current == expected {
		return Result{Outcome: OutcomeNotTruncated}
	}
	if len(current) >= len(expected) || !strings.HasPrefix(expected, current) {
		return Result{Outcome: OutcomeNotTruncated}
	}

	// The current extension is always kept: an upstream extension-fixing
	// pass may already have corrected it, while the title still carries the
	// original.
	corrected := textutil.SanitizeFileName(expectedStem) + currentExt
	return Result{Outcome: OutcomeTruncated, Corrected: corrected}
}

// splitStem separates a filename into stem and extension, treating a
// double-extension tail as one extension so both suffixes survive the
// rename.
func splitStem(base string) (stem, ext string) {
	if m := doubleExtension.FindString(base); m != "" {
		return strings.TrimSuffix(base, m), m
	}
	ext = filepath.Ext(base)
	return strings.TrimSuffix(base, ext), ext
}

// stemFromTitle strips a single embedded extension-like suffix from a
// sidecar title.
func stemFromTitle(title string) string {
	title = strings.TrimSpace(title)
	if m := singleExtension.FindString(title); m != "" {
		return strings.TrimSuffix(title, m)
	}
	return title
}

func foldStem(stem string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(stem)))
}
