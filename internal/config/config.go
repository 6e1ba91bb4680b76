// Package config handles global cohort configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the global cohort configuration.
type Config struct {
	// Server configures the extract API to talk to.
	Server ServerConfig `toml:"server"`

	// Output controls where extract archives are written.
	Output OutputConfig `toml:"output"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// ServerConfig identifies the extract API.
type ServerConfig struct {
	// URL is the server root, e.g. "https://opal.example.org".
	URL string `toml:"url"`

	// Token is an optional API token sent with every request.
	Token string `toml:"token"`
}

// OutputConfig controls archive output.
type OutputConfig struct {
	// Dir is the directory extract archives are written to.
	// Defaults to the current directory.
	Dir string `toml:"dir"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown
	// rendering: an ANSI code ("0" to "255") or a hex color ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme used for rendered markdown
	// code blocks, e.g. "monokai", "dracula", "github".
	CodeTheme string `toml:"code_theme"`
}

// OutputDir returns the configured archive directory, defaulting to ".".
func (c *Config) OutputDir() string {
	if c.Output.Dir != "" {
		return c.Output.Dir
	}
	return "."
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/cohort/config.toml first (XDG style),
// then falls back to the OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "cohort", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "cohort", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}
