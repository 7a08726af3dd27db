package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.UI.Theme != "mocha" {
		t.Errorf("expected theme mocha, got %s", cfg.UI.Theme)
	}
	if !cfg.UI.Mouse {
		t.Error("expected mouse enabled by default")
	}
	if cfg.Keys.Reorder != "ctrl+r" {
		t.Errorf("expected reorder key ctrl+r, got %s", cfg.Keys.Reorder)
	}
	if cfg.Keys.Save != "ctrl+s" {
		t.Errorf("expected save key ctrl+s, got %s", cfg.Keys.Save)
	}
	if cfg.Keys.Discard != "ctrl+x" {
		t.Errorf("expected discard key ctrl+x, got %s", cfg.Keys.Discard)
	}
	if !strings.HasSuffix(cfg.Storage.DBPath, "tramo.db") {
		t.Errorf("expected db_path ending in tramo.db, got %s", cfg.Storage.DBPath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFrom_NoFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.UI.Theme != "mocha" {
		t.Errorf("expected default theme, got %s", cfg.UI.Theme)
	}
}

func TestLoadFrom_File(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[storage]
db_path = "/tmp/tramo-test.db"

[ui]
theme = "latte"
mouse = false

[keys]
reorder = "ctrl+o"

[log]
debug_path = "/tmp/tramo-test.log"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage.DBPath != "/tmp/tramo-test.db" {
		t.Errorf("expected db_path /tmp/tramo-test.db, got %s", cfg.Storage.DBPath)
	}
	if cfg.UI.Theme != "latte" {
		t.Errorf("expected theme latte, got %s", cfg.UI.Theme)
	}
	if cfg.UI.Mouse {
		t.Error("expected mouse disabled from file")
	}
	if cfg.Keys.Reorder != "ctrl+o" {
		t.Errorf("expected reorder key ctrl+o, got %s", cfg.Keys.Reorder)
	}
	// Unset keys keep their defaults
	if cfg.Keys.Save != "ctrl+s" {
		t.Errorf("expected save key ctrl+s, got %s", cfg.Keys.Save)
	}
	if cfg.Log.DebugPath != "/tmp/tramo-test.log" {
		t.Errorf("expected debug_path /tmp/tramo-test.log, got %s", cfg.Log.DebugPath)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[storage]
db_path = "/tmp/file.db"

[ui]
theme = "latte"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("TRAMO_DB_PATH", "/tmp/env.db")
	t.Setenv("TRAMO_UI_MOUSE", "false")
	t.Setenv("TRAMO_KEY_REORDER", "ctrl+g")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Env should override file
	if cfg.Storage.DBPath != "/tmp/env.db" {
		t.Errorf("expected db_path from env, got %s", cfg.Storage.DBPath)
	}
	// File value should be kept when no env override
	if cfg.UI.Theme != "latte" {
		t.Errorf("expected theme latte from file, got %s", cfg.UI.Theme)
	}
	if cfg.UI.Mouse {
		t.Error("expected mouse disabled from env")
	}
	if cfg.Keys.Reorder != "ctrl+g" {
		t.Errorf("expected reorder key from env, got %s", cfg.Keys.Reorder)
	}
}

func TestLoadFrom_InvalidMouseEnv(t *testing.T) {
	t.Setenv("TRAMO_UI_MOUSE", "sometimes")

	if _, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for invalid TRAMO_UI_MOUSE")
	}
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[ui\ntheme = "), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty db path", func(c *Config) { c.Storage.DBPath = "" }},
		{"unknown theme", func(c *Config) { c.UI.Theme = "solarized" }},
		{"empty reorder key", func(c *Config) { c.Keys.Reorder = " " }},
		{"empty save key", func(c *Config) { c.Keys.Save = "" }},
		{"duplicate keys", func(c *Config) { c.Keys.Discard = "ctrl+s" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/tramo.db", filepath.Join(home, "tramo.db")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative.db", "relative.db"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := expandPath(tc.input); got != tc.want {
				t.Errorf("expandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Storage.DBPath = "/tmp/saved.db"
	cfg.UI.Theme = "frappe"
	cfg.Keys.Reorder = "ctrl+o"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Storage.DBPath != "/tmp/saved.db" {
		t.Errorf("expected saved db_path, got %s", loaded.Storage.DBPath)
	}
	if loaded.UI.Theme != "frappe" {
		t.Errorf("expected saved theme, got %s", loaded.UI.Theme)
	}
	if loaded.Keys.Reorder != "ctrl+o" {
		t.Errorf("expected saved reorder key, got %s", loaded.Keys.Reorder)
	}
}
