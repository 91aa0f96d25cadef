package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the process-level configuration read from config.yaml.
// User preferences edited in the app live in the database instead.
type Config struct {
	DBPath    string `yaml:"db_path"`
	LogLevel  string `yaml:"log_level"`  // debug | info | warn | error
	LogFile   string `yaml:"log_file"`   // "-" logs to stderr
	LogFormat string `yaml:"log_format"` // text | json
	Bell      bool   `yaml:"bell"`
}

// Dir returns ~/.config/pixeltrainer.
func Dir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "pixeltrainer"), nil
}

// DefaultPath returns ~/.config/pixeltrainer/config.yaml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Default returns the configuration used when no file exists. Paths are
// left empty and resolved by Resolve.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		Bell:      true,
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q", c.LogFormat)
	}
	return nil
}

// Resolve fills empty paths with their defaults under Dir.
func (c Config) Resolve() (Config, error) {
	if c.DBPath != "" && c.LogFile != "" {
		return c, nil
	}
	dir, err := Dir()
	if err != nil {
		return c, fmt.Errorf("resolve config dir: %w", err)
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(dir, "pixeltrainer.db")
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(dir, "pixeltrainer.log")
	}
	return c, nil
}

// Save writes c as YAML, creating the parent directory.
func Save(path string, c Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
