package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"takeout/internal/services"
)

func TestConsoleHandlerIncludesComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger = NewComponentLogger(logger, "reconciler")
	logger.Info("record fixed", String("record_path", "/t/a.jpg"), Int("attempt", 1))

	line := buf.String()
	for _, fragment := range []string{"[reconciler]", "record fixed", "record_path=/t/a.jpg", "attempt=1"} {
		if !strings.Contains(line, fragment) {
			t.Fatalf("expected %q in output %q", fragment, line)
		}
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.Info("suppressed")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Fatalf("info line should have been filtered: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestWithContextAddsStandardFields(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	base := slog.New(newConsoleHandler(&buf, levelVar))

	ctx := services.WithRecordPath(context.Background(), "/t/b.jpg")
	ctx = services.WithChunkID(ctx, "chunk-7")
	ctx = services.WithBatchID(ctx, "batch-1")

	WithContext(ctx, base).Info("checking")

	line := buf.String()
	for _, fragment := range []string{"record_path=/t/b.jpg", "chunk_id=chunk-7", "batch_id=batch-1"} {
		if !strings.Contains(line, fragment) {
			t.Fatalf("expected %q in output %q", fragment, line)
		}
	}
}

func TestWithContextNilLoggerFallsBackToNop(t *testing.T) {
	logger := WithContext(context.Background(), nil)
	// Must not panic and must swallow output.
	logger.Info("discarded")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"unknown": slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}
