package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SLIPPER_PASSWORD", "")
	t.Setenv("SLIPPER_STORE", "")
	t.Setenv("SLIPPER_LOG_LEVEL", "")
	os.Unsetenv("SLIPPER_STORE")
	os.Unsetenv("SLIPPER_LOG_LEVEL")

	cfg, err := LoadFiles(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadFiles failed: %v", err)
	}

	if cfg.Password != "" {
		t.Errorf("Password = %q, want empty", cfg.Password)
	}
	if cfg.StorePath != ".slipper" {
		t.Errorf("StorePath = %q, want .slipper", cfg.StorePath)
	}
	if cfg.NoKeyring {
		t.Error("NoKeyring should default to false")
	}

	level, err := cfg.Level()
	if err != nil {
		t.Fatalf("Level failed: %v", err)
	}
	if level != slog.LevelInfo {
		t.Errorf("Level = %v, want INFO", level)
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv("SLIPPER_STORE", "")
	os.Unsetenv("SLIPPER_STORE")
	t.Setenv("SLIPPER_LOG_LEVEL", "warn")

	dotenv := filepath.Join(t.TempDir(), ".env")
	data := []byte("SLIPPER_STORE=pages.db\nSLIPPER_LOG_LEVEL=debug\nSLIPPER_NO_KEYRING=true\n")
	if err := os.WriteFile(dotenv, data, 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	t.Cleanup(func() {
		os.Unsetenv("SLIPPER_NO_KEYRING")
	})

	cfg, err := LoadFiles(dotenv)
	if err != nil {
		t.Fatalf("LoadFiles failed: %v", err)
	}

	if cfg.StorePath != "pages.db" {
		t.Errorf("StorePath = %q, want pages.db", cfg.StorePath)
	}
	if !cfg.NoKeyring {
		t.Error("NoKeyring should be read from .env")
	}

	// process environment wins over .env
	level, err := cfg.Level()
	if err != nil {
		t.Fatalf("Level failed: %v", err)
	}
	if level != slog.LevelWarn {
		t.Errorf("Level = %v, want WARN", level)
	}
}

func TestLoadInvalidLevel(t *testing.T) {
	t.Setenv("SLIPPER_LOG_LEVEL", "loud")

	if _, err := LoadFiles(); err == nil {
		t.Error("expected error for invalid log level")
	}
}
