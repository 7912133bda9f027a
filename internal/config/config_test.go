package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.ArenaWidth != 40 || cfg.ArenaDepth != 40 {
		t.Errorf("arena bounds = (%v, %v), want (40, 40)", cfg.ArenaWidth, cfg.ArenaDepth)
	}
}

func TestLoadReadsOverrides(t *testing.T) {
	dir := t.TempDir()
	content := `{"logLevel": "debug", "arenaWidth": 80, "outputDir": "/tmp/exports"}`
	if err := os.WriteFile(filepath.Join(dir, "arenaforge.cfg.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.ArenaWidth != 80 {
		t.Errorf("ArenaWidth = %v, want 80", cfg.ArenaWidth)
	}
	if cfg.ArenaDepth != 40 {
		t.Errorf("ArenaDepth = %v, want default 40", cfg.ArenaDepth)
	}
	if cfg.OutputDir != "/tmp/exports" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
}

func TestLoadMalformedFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "arenaforge.cfg.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err == nil {
		t.Fatal("expected error for malformed config")
	}

	// Callers that only log the error keep using the returned settings, so
	// they must stay usable rather than collapse to the zero value.
	if cfg.ArenaWidth != 40 || cfg.ArenaDepth != 40 {
		t.Errorf("arena bounds = (%v, %v), want defaults (40, 40)", cfg.ArenaWidth, cfg.ArenaDepth)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.OutputDir != "." {
		t.Errorf("OutputDir = %q, want .", cfg.OutputDir)
	}
}
