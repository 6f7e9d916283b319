// Package config loads, normalizes, and validates uidmigrate configuration.
//
// Settings come from a TOML file (default ~/.config/uidmigrate/config.toml);
// a missing file yields the defaults so the tool works with zero setup.
// Always obtain settings through Load so downstream code receives expanded
// paths and canonical logging values.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

const (
	defaultJournalPath = "~/.local/share/uidmigrate/journal.db"
	defaultLogLevel    = "info"
	defaultLogFormat   = "console"
)

// Presets configures the Bitwig preset replication phase.
type Presets struct {
	// Dir overrides the plugin-states directory; empty means the
	// well-known location under the user's home.
	Dir string `toml:"dir"`
}

// Journal configures the migration run journal.
type Journal struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging configures diagnostic output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the full tool configuration.
type Config struct {
	Presets Presets `toml:"presets"`
	Journal Journal `toml:"journal"`
	Logging Logging `toml:"logging"`
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Journal: Journal{Enabled: true, Path: defaultJournalPath},
		Logging: Logging{Level: defaultLogLevel, Format: defaultLogFormat},
	}
}

// DefaultPath returns the default configuration file location.
func DefaultPath() string {
	if base, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "uidmigrate", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.config/uidmigrate/config.toml"
	}
	return filepath.Join(home, ".config", "uidmigrate", "config.toml")
}

// Load reads the configuration file at path, or the defaults when the file
// does not exist. An empty path means DefaultPath.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	expanded, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("config path: %w", err)
	}

	cfg := Default()
	data, err := os.ReadFile(expanded)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", expanded, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// Defaults apply.
	default:
		return nil, fmt.Errorf("read config %s: %w", expanded, err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// CreateSample writes the annotated sample configuration to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func (c *Config) normalize() error {
	var err error
	if c.Presets.Dir != "" {
		if c.Presets.Dir, err = expandPath(c.Presets.Dir); err != nil {
			return fmt.Errorf("presets.dir: %w", err)
		}
	}
	if strings.TrimSpace(c.Journal.Path) == "" {
		c.Journal.Path = defaultJournalPath
	}
	if c.Journal.Path, err = expandPath(c.Journal.Path); err != nil {
		return fmt.Errorf("journal.path: %w", err)
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	return nil
}

func (c *Config) validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

// ExpandPath expands a leading tilde to the user's home directory and
// makes the result absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("path is empty")
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if path == "~" {
			path = home
		} else {
			path = filepath.Join(home, path[2:])
		}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("absolute path: %w", err)
	}
	return abs, nil
}
