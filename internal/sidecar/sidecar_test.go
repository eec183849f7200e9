package sidecar

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindPlainPattern(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "IMG_001.jpg")
	writeFile(t, media, "img")
	writeFile(t, media+".json", `{"title":"IMG_001.jpg"}`)

	got, ok := Find(media, false)
	if !ok || got != media+".json" {
		t.Fatalf("expected plain sidecar, got %q ok=%v", got, ok)
	}
}

func TestFindPrefersPlainOverSupplemental(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "IMG_002.jpg")
	writeFile(t, media, "img")
	writeFile(t, media+".json", `{}`)
	writeFile(t, media+".supplemental-metadata.json", `{}`)

	got, ok := Find(media, false)
	if !ok || got != media+".json" {
		t.Fatalf("expected plain pattern to win, got %q", got)
	}
}

func TestFindSupplementalPattern(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "IMG_003.jpg")
	writeFile(t, media, "img")
	writeFile(t, media+".supplemental-metadata.json", `{}`)

	got, ok := Find(media, false)
	if !ok || got != media+".supplemental-metadata.json" {
		t.Fatalf("expected supplemental sidecar, got %q", got)
	}
}

func TestFindTryhardVariants(t *testing.T) {
	cases := []struct {
		name    string
		media   string
		sidecar string
	}{
		{"numbered duplicate", "IMG_004(1).jpg", "IMG_004.jpg(1).json"},
		{"numbered supplemental", "IMG_005(2).jpg", "IMG_005.jpg.supplemental-metadata(2).json"},
		{"extension stripped", "IMG_006.jpg", "IMG_006.json"},
		{"trailing underscore", "IMG_007_.jpg", "IMG_007.jpg.json"},
		{"truncated supplemental token", "IMG_008.jpg", "IMG_008.jpg.supplemental-metad.json"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			media := filepath.Join(dir, tc.media)
			writeFile(t, media, "img")
			writeFile(t, filepath.Join(dir, tc.sidecar), `{}`)

			if _, ok := Find(media, false); ok {
				t.Fatal("variant should not match without tryhard")
			}
			got, ok := Find(media, true)
			if !ok || got != filepath.Join(dir, tc.sidecar) {
				t.Fatalf("expected %q, got %q ok=%v", tc.sidecar, got, ok)
			}
		})
	}
}

func TestFindReturnsFalseWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "IMG_009.jpg")
	writeFile(t, media, "img")

	if _, ok := Find(media, true); ok {
		t.Fatal("expected no sidecar")
	}
}

func TestReadTitle(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name    string
		content string
		want    string
		ok      bool
	}{
		{"valid", `{"title":"IMG_0100.jpg"}`, "IMG_0100.jpg", true},
		{"whitespace trimmed", `{"title":"  holiday  "}`, "holiday", true},
		{"empty title", `{"title":""}`, "", false},
		{"missing title", `{"photoTakenTime":{"timestamp":"0"}}`, "", false},
		{"malformed", `{not json`, "", false},
		{"wrong top-level type", `["title"]`, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".json")
			writeFile(t, path, tc.content)
			got, ok := ReadTitle(path)
			if got != tc.want || ok != tc.ok {
				t.Fatalf("ReadTitle = (%q, %v), want (%q, %v)", got, ok, tc.want, tc.ok)
			}
		})
	}

	if _, ok := ReadTitle(filepath.Join(dir, "missing.json")); ok {
		t.Fatal("missing sidecar must yield no title")
	}
}

func TestRenamedPath(t *testing.T) {
	cases := []struct {
		sidecar string
		newName string
		want    string
		ok      bool
	}{
		{"/t/a.jpg.json", "b.jpg", "/t/b.jpg.json", true},
		{"/t/a.jpg.supplemental-metadata.json", "b.jpg", "/t/b.jpg.supplemental-metadata.json", true},
		{"/t/a.jpg.xmp", "b.jpg", "", false},
	}
	for _, tc := range cases {
		got, ok := RenamedPath(tc.sidecar, tc.newName)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("RenamedPath(%q, %q) = (%q, %v), want (%q, %v)",
				tc.sidecar, tc.newName, got, ok, tc.want, tc.ok)
		}
	}
}
