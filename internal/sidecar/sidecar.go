package sidecar

import (
	"encoding/json"
	"path/filepath"
	"regexp"
	"strings"

	"takeout/internal/fileutil"
)

const (
	// SuffixPlain is the direct sidecar naming pattern: <name>.<ext>.json.
	SuffixPlain = ".json"
	// SuffixSupplemental is the newer Takeout pattern:
	// <name>.<ext>.supplemental-metadata.json.
	SuffixSupplemental = ".supplemental-metadata.json"
)

const supplementalToken = "supplemental-metadata"

// numberedStem matches duplicate-numbered media stems such as "IMG_001(1)".
var numberedStem = regexp.MustCompile(`^(.*)\((\d+)\)$`)

// Find locates the JSON sidecar for mediaPath. It probes the two documented
// naming patterns first; with tryhard it also probes historically observed
// export variants (numbered duplicates, extension-stripped names, stripped
// trailing underscores, and truncated supplemental-metadata spellings).
// The first existing candidate wins.
func Find(mediaPath string, tryhard bool) (string, bool) {
	for _, candidate := range candidates(mediaPath, tryhard) {
		if fileutil.Exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func candidates(mediaPath string, tryhard bool) []string {
	out := []string{
		mediaPath + SuffixPlain,
		mediaPath + SuffixSupplemental,
	}
	if !tryhard {
		return out
	}

	dir := filepath.Dir(mediaPath)
	base := filepath.Base(mediaPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	// Numbered duplicates: media "name(1).ext" pairs with sidecar
	// "name.ext(1).json" because the export numbers the media file but keys
	// the sidecar off the original name.
	if m := numberedStem.FindStringSubmatch(stem); m != nil {
		original := m[1] + ext + "(" + m[2] + ")"
		out = append(out,
			filepath.Join(dir, original+SuffixPlain),
			filepath.Join(dir, m[1]+ext+".supplemental-metadata("+m[2]+")"+SuffixPlain),
		)
	}

	// Extension-stripped sidecar: "name.json" instead of "name.ext.json".
	if stem != "" {
		out = append(out, filepath.Join(dir, stem+SuffixPlain))
	}

	// The export sometimes drops trailing underscores when deriving the
	// sidecar name.
	if trimmed := strings.TrimRight(stem, "_"); trimmed != "" && trimmed != stem {
		out = append(out,
			filepath.Join(dir, trimmed+ext+SuffixPlain),
			filepath.Join(dir, trimmed+SuffixPlain),
		)
	}

	// Sidecar filenames get length-truncated by the export, which chops the
	// supplemental-metadata token at an arbitrary point.
	for cut := len(supplementalToken) - 1; cut >= 1; cut-- {
		out = append(out, mediaPath+"."+supplementalToken[:cut]+SuffixPlain)
	}

	return out
}

// ReadTitle extracts the title string from the sidecar JSON document at
// path. Any failure to read or parse, a non-object document, or an empty
// title yields ("", false); parse problems never surface as errors.
func ReadTitle(path string) (string, bool) {
	text, err := fileutil.ReadText(path)
	if err != nil {
		return "", false
	}
	var doc struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return "", false
	}
	title := strings.TrimSpace(doc.Title)
	if title == "" {
		return "", false
	}
	return title, true
}

// RenamedPath computes the sidecar's new path when its media file is renamed
// to newMediaName. The naming pattern is inferred from the existing sidecar
// name; sidecars following neither documented pattern report false.
func RenamedPath(sidecarPath, newMediaName string) (string, bool) {
	dir := filepath.Dir(sidecarPath)
	base := filepath.Base(sidecarPath)
	switch {
	case strings.HasSuffix(base, SuffixSupplemental):
		return filepath.Join(dir, newMediaName+SuffixSupplemental), true
	case strings.HasSuffix(base, SuffixPlain):
		return filepath.Join(dir, newMediaName+SuffixPlain), true
	default:
		return "", false
	}
}
