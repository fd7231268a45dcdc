// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/linkhist/internal/theme"
)

// Default configuration values.
const (
	DefaultFrontendURL = "http://localhost:3000"
	DefaultAPIURL      = "http://localhost:3000"
	DefaultStoreKey    = "urlList"
	DefaultTruncate    = 30
	DefaultTheme       = "system"
	DefaultAPITimeout  = "10s"
)

// Environment variables that override the file.
const (
	EnvFrontendURL = "LINKHIST_FRONTEND_URL"
	EnvAPIURL      = "LINKHIST_API_URL"
)

// Config represents the linkhist configuration.
type Config struct {
	FrontendURL string          `toml:"frontend_url"` // Base of preview links
	APIURL      string          `toml:"api_url"`      // Base of /api/deleteurl
	Store       StoreConfig     `toml:"store"`
	Display     DisplayConfig   `toml:"display"`
	API         APIConfig       `toml:"api"`
	Browser     BrowserConfig   `toml:"browser"`
	Clipboard   ClipboardConfig `toml:"clipboard"`
}

// StoreConfig locates the local key-value store.
type StoreConfig struct {
	Path string `toml:"path"` // Empty = DataPath()/localstorage.json
	Key  string `toml:"key"`
}

// DisplayConfig holds rendering options.
type DisplayConfig struct {
	Truncate int    `toml:"truncate"` // Original URL display budget (0 = no truncation)
	Theme    string `toml:"theme"`    // system, dark, light
}

// APIConfig holds backend request options.
type APIConfig struct {
	Timeout string `toml:"timeout"` // Go duration; "0" disables
}

// BrowserConfig holds the preview opener settings.
type BrowserConfig struct {
	Command string `toml:"command"` // Auto-detected if empty
}

// ClipboardConfig holds clipboard settings (TUI only).
type ClipboardConfig struct {
	Command string `toml:"command"` // Auto-detected if empty
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		FrontendURL: DefaultFrontendURL,
		APIURL:      DefaultAPIURL,
		Store: StoreConfig{
			Path: "",
			Key:  DefaultStoreKey,
		},
		Display: DisplayConfig{
			Truncate: DefaultTruncate,
			Theme:    DefaultTheme,
		},
		API: APIConfig{
			Timeout: DefaultAPITimeout,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "linkhist", "config.toml")
}

// DataPath returns the path to the data directory.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share.
func DataPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "linkhist")
}

// DefaultStorePath returns the default local store file.
func DefaultStorePath() string {
	return filepath.Join(DataPath(), "localstorage.json")
}

// LogPath returns the file the TUI logs to while it owns the terminal.
func LogPath() string {
	return filepath.Join(DataPath(), "linkhist.log")
}

// StorePath returns the configured store path or the default one.
func (c *Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	return DefaultStorePath()
}

// Timeout returns the parsed API timeout. Validate guarantees it parses.
func (c *Config) Timeout() time.Duration {
	if c.API.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// ThemePreference returns the parsed theme preference.
func (c *Config) ThemePreference() theme.Preference {
	p, err := theme.ParsePreference(c.Display.Theme)
	if err != nil {
		return theme.DefaultPreference
	}
	return p
}

// Validate checks values that cannot be corrected silently.
func (c *Config) Validate() error {
	if _, err := theme.ParsePreference(c.Display.Theme); err != nil {
		return err
	}
	if c.Display.Truncate < 0 {
		return fmt.Errorf("display.truncate must not be negative (got %d)", c.Display.Truncate)
	}
	if c.API.Timeout != "" {
		d, err := time.ParseDuration(c.API.Timeout)
		if err != nil {
			return fmt.Errorf("api.timeout: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("api.timeout must not be negative (got %s)", d)
		}
	}
	return nil
}

// applyEnv overrides values from the environment.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvFrontendURL); v != "" {
		c.FrontendURL = v
	}
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.APIURL = v
	}
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if cfg.Store.Key == "" {
		cfg.Store.Key = DefaultStoreKey
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	path := DataPath()
	if path == "" {
		return errors.New("unable to determine data directory")
	}
	return os.MkdirAll(path, 0755)
}
