package testsupport

import (
	"path/filepath"
	"testing"

	"cinelist/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.ListDir = filepath.Join(base, "lists")
	cfg.Paths.DatabasePath = filepath.Join(base, "cinelist.db")
	cfg.Paths.CacheDir = filepath.Join(base, "cache")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Ingest.CacheEnabled = true

	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithCacheOnly makes resolver misses final instead of falling back to the
// destination store.
func WithCacheOnly() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Ingest.CacheEnabled = true
		cfg.Ingest.CacheOnly = true
	}
}

// WithCommitEvery overrides the commit interval on the test config.
func WithCommitEvery(n int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Ingest.CommitEvery = n
	}
}
