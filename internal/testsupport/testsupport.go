// Package testsupport holds shared helpers for annconv tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"annconv/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with a unique temp run-log directory
// per test. It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.RunLog.Dir = filepath.Join(t.TempDir(), "runlog")
	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithRunLogDisabled turns off run-log recording on the test config.
func WithRunLogDisabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.RunLog.Enabled = false
	}
}

// WriteFile writes content to path, creating parent directories as needed.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
