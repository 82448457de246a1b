package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ffmonitor.yaml")
	content := `address: "127.0.0.1:8003"
format: pretty
dial_timeout: 3s
include_types:
  - chat
  - bcast
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Address != "127.0.0.1:8003" {
		t.Errorf("Address = %q", cfg.Address)
	}
	if cfg.Format != "pretty" {
		t.Errorf("Format = %q, want pretty", cfg.Format)
	}
	if cfg.DialTimeout != 3*time.Second {
		t.Errorf("DialTimeout = %v, want 3s", cfg.DialTimeout)
	}
	if len(cfg.IncludeTypes) != 2 {
		t.Errorf("IncludeTypes = %v", cfg.IncludeTypes)
	}
	// Unset values keep defaults.
	if cfg.PollInterval != 500*time.Millisecond {
		t.Errorf("PollInterval = %v, want default", cfg.PollInterval)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadConfig() expected error for missing file")
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("address: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() expected error for invalid YAML")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Format != "jsonl" {
		t.Errorf("Format = %q, want jsonl", cfg.Format)
	}
	if cfg.DialTimeout <= 0 || cfg.PollInterval <= 0 {
		t.Error("defaults must be positive")
	}
	if cfg.Address != "" {
		t.Errorf("Address = %q, want empty", cfg.Address)
	}
}
