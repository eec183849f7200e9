// Package testsupport provides helpers shared across package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"takeout/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.TakeoutDir = filepath.Join(base, "takeout")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Exiftool.ChunkSize = 4
	cfg.Exiftool.MaxAttempts = 3

	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	if err := os.MkdirAll(cfg.Paths.TakeoutDir, 0o755); err != nil {
		t.Fatalf("create takeout dir: %v", err)
	}
	return &cfg
}

// WithTryhard enables the expanded sidecar candidate search on the test config.
func WithTryhard() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Reconcile.Tryhard = true
	}
}

// WithDryRun enables dry-run mode on the test config.
func WithDryRun() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Reconcile.DryRun = true
	}
}

// WithChunkSize overrides the write tool chunk size on the test config.
func WithChunkSize(size int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Exiftool.ChunkSize = size
	}
}
