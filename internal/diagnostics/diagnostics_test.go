package diagnostics

import (
	"testing"

	"takeout/internal/pathident"
)

func TestExtractSingleFailure(t *testing.T) {
	set := ExtractFailedPaths("Error: File not writable - /home/user/photos/img.jpg")
	if set.Len() != 1 {
		t.Fatalf("expected 1 identity, got %d", set.Len())
	}
	if !set.ContainsPath("/home/user/photos/img.jpg") {
		t.Fatal("expected extracted path in set")
	}
}

func TestExtractKeepsSeparatorInsidePath(t *testing.T) {
	text := "Error: File not writable - /home/user/Birthday Party - 16.42022/photo.jpg"
	set := ExtractFailedPaths(text)
	if set.Len() != 1 {
		t.Fatalf("expected 1 identity, got %d", set.Len())
	}
	if !set.ContainsPath("/home/user/Birthday Party - 16.42022/photo.jpg") {
		t.Fatal("full path with embedded separator must be kept")
	}
	if set.ContainsPath("16.42022/photo.jpg") {
		t.Fatal("trailing fragment must not be extracted")
	}
}

func TestExtractMultiLineMixedOutput(t *testing.T) {
	text := `exiftool batch starting
    1 image files updated
Error: Not a valid JPG (looks more like a PNG) - /t/a.jpg
progress: 50%
Error: File not found - C:\Takeout\Album - 2022\b.jpg
Warning: Minor issues - /t/ignored.jpg
Error: File not writable - relative/c.heic
Error: File not writable - /t/a.jpg
    2 files weren't updated due to errors`
	set := ExtractFailedPaths(text)

	if set.Len() != 3 {
		t.Fatalf("expected 3 distinct identities, got %d", set.Len())
	}
	for _, path := range []string{
		"/t/a.jpg",
		`C:\Takeout\Album - 2022\b.jpg`,
		"relative/c.heic",
	} {
		if !set.ContainsPath(path) {
			t.Fatalf("expected %q in set", path)
		}
	}
	if set.ContainsPath("/t/ignored.jpg") {
		t.Fatal("warning lines must not contribute")
	}
}

func TestExtractCanonicalizesPaths(t *testing.T) {
	set := ExtractFailedPaths("Error: File not writable - /t/cafe\u0301.jpg")
	if !set.Contains(pathident.Canonicalize("/t/café.jpg")) {
		t.Fatal("extracted identity must be canonical")
	}
}

func TestExtractUnrecognizableInputYieldsEmptySet(t *testing.T) {
	cases := []string{
		"",
		"all files updated successfully",
		"Error: something went wrong",
		"Error: trailing separator - ",
		" - /path/without/marker.jpg",
	}
	for _, text := range cases {
		set := ExtractFailedPaths(text)
		if set == nil {
			t.Fatalf("set must never be nil for %q", text)
		}
		if set.Len() != 0 {
			t.Fatalf("expected empty set for %q, got %d members", text, set.Len())
		}
	}
}
