// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/tramo/internal/tui/theme"
)

// Config holds the application configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
	Keys    KeysConfig    `toml:"keys"`
	Log     LogConfig     `toml:"log"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "frappe", "latte"
	Mouse bool   `toml:"mouse"` // Enable mouse drag
}

// KeysConfig holds TUI key bindings, in bubbletea key notation.
type KeysConfig struct {
	Reorder string `toml:"reorder"` // Enter keyboard reorder mode, e.g. "ctrl+r"
	Save    string `toml:"save"`    // Persist pending changes
	Discard string `toml:"discard"` // Drop pending changes
}

// LogConfig holds debug log settings.
type LogConfig struct {
	DebugPath string `toml:"debug_path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
			Mouse: true,
		},
		Keys: KeysConfig{
			Reorder: "ctrl+r",
			Save:    "ctrl+s",
			Discard: "ctrl+x",
		},
		Log: LogConfig{
			DebugPath: "tramo-debug.log",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "tramo.db"
	}
	return filepath.Join(home, ".local", "share", "tramo", "tramo.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "tramo", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Log.DebugPath = expandPath(cfg.Log.DebugPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("TRAMO_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("TRAMO_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("TRAMO_UI_MOUSE"); v != "" {
		mouse, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TRAMO_UI_MOUSE: %w", err)
		}
		cfg.UI.Mouse = mouse
	}
	if v := os.Getenv("TRAMO_KEY_REORDER"); v != "" {
		cfg.Keys.Reorder = v
	}
	if v := os.Getenv("TRAMO_DEBUG_LOG"); v != "" {
		cfg.Log.DebugPath = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if !theme.IsAvailable(c.UI.Theme) {
		return fmt.Errorf("unknown theme %q (available: %s)", c.UI.Theme, strings.Join(theme.Available(), ", "))
	}

	bindings := map[string]string{
		"reorder": c.Keys.Reorder,
		"save":    c.Keys.Save,
		"discard": c.Keys.Discard,
	}
	seen := make(map[string]string, len(bindings))
	for _, name := range []string{"reorder", "save", "discard"} {
		key := strings.TrimSpace(bindings[name])
		if key == "" {
			return fmt.Errorf("keys.%s must be set", name)
		}
		if other, ok := seen[key]; ok {
			return fmt.Errorf("keys.%s and keys.%s are both bound to %q", other, name, key)
		}
		seen[key] = name
	}
	return nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
