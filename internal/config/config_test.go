package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load returned error for missing file: %v", err)
	}

	defaults := DefaultConfig()
	if cfg.DBPath != defaults.DBPath || cfg.OutputDir != defaults.OutputDir || cfg.LogLevel != defaults.LogLevel {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exhume.yaml")
	content := `db_path: /cases/42/catalog.db
output_dir: /cases/42/exported
log_level: debug
report_path: /cases/42/run.html
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DBPath != "/cases/42/catalog.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.OutputDir != "/cases/42/exported" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.ReportPath != "/cases/42/run.html" {
		t.Errorf("ReportPath = %q", cfg.ReportPath)
	}
}

func TestLoadPartialFileKeepsRemainingDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exhume.yaml")
	if err := os.WriteFile(path, []byte("log_level: warn\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.DBPath != DefaultConfig().DBPath {
		t.Errorf("DBPath = %q, expected default", cfg.DBPath)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exhume.yaml")
	if err := os.WriteFile(path, []byte("db_path: [unclosed"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed config")
	}
}
