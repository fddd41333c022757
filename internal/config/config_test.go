package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"annconv/internal/config"
	"annconv/internal/token"
)

func TestLoadDefaultsWhenNoFileExists(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if cfg.Annotations.Suffix != ".ann" {
		t.Fatalf("annotation suffix = %q", cfg.Annotations.Suffix)
	}
	if cfg.Output.Suffix != ".conll" {
		t.Fatalf("output suffix = %q", cfg.Output.Suffix)
	}
	if cfg.Strategy() != token.StrategyRegex {
		t.Fatalf("strategy = %q", cfg.Strategy())
	}
	if cfg.Segment.MaxEntities != 1000 {
		t.Fatalf("segment budget = %d", cfg.Segment.MaxEntities)
	}
	if !cfg.RunLog.Enabled {
		t.Fatal("run log should default to enabled")
	}
}

func TestLoadNormalizesSuffixes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "[annotations]\nsuffix = \"ann2\"\n[output]\nsuffix = \"tsv\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if cfg.Annotations.Suffix != ".ann2" || cfg.Output.Suffix != ".tsv" {
		t.Fatalf("suffixes = %q / %q", cfg.Annotations.Suffix, cfg.Output.Suffix)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{name: "strategy", content: "[tokenizer]\nstrategy = \"syntok\"\n"},
		{name: "segment", content: "[segment]\nmax_entities = 0\n"},
		{name: "colliding suffixes", content: "[annotations]\nsuffix = \"x\"\n[output]\nsuffix = \"x\"\n"},
		{name: "log format", content: "[logging]\nformat = \"yaml\"\n"},
		{name: "log level", content: "[logging]\nlevel = \"loud\"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, _, _, err := config.Load(path); err == nil {
				t.Fatalf("expected validation error for %s", tc.name)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("Load(sample): exists=%v err=%v", exists, err)
	}
}
