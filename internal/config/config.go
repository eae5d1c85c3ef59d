// Package config loads the asrdeploy YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-asrdeploy/pkg/script"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig   `yaml:"server"`
	LogLevel    string         `yaml:"log_level"`
	Theme       ThemeConfig    `yaml:"theme"`
	Defaults    DefaultsConfig `yaml:"defaults"`
	Demo        DemoConfig     `yaml:"demo"`
	PresetsFile string         `yaml:"presets_file"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr              string        `yaml:"addr"`
	BasePath          string        `yaml:"base_path"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

// ThemeConfig selects the go-theme manifest applied to HTML views.
type ThemeConfig struct {
	Name    string `yaml:"name"`
	Variant string `yaml:"variant"`
}

// DefaultsConfig is the initial script configuration in string form.
type DefaultsConfig struct {
	Mode     string `yaml:"mode"`
	Device   string `yaml:"device"`
	Model    string `yaml:"model"`
	Language string `yaml:"language"`
}

// DemoConfig tunes the prototype transcript stream.
type DemoConfig struct {
	Interval      time.Duration `yaml:"interval"`
	FinalizeDelay time.Duration `yaml:"finalize_delay"`
	Phrases       []string      `yaml:"phrases"`
}

// DefaultConfigDir returns the default config directory path.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "asrdeploy")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		LogLevel: "info",
		Theme: ThemeConfig{
			Name:    "slate",
			Variant: "dark",
		},
		Defaults: DefaultsConfig{
			Mode:     string(script.ModeFile),
			Device:   script.DeviceCPU,
			Model:    string(script.ModelSmall),
			Language: string(script.LanguageChinese),
		},
		Demo: DemoConfig{
			Interval:      2 * time.Second,
			FinalizeDelay: 1500 * time.Millisecond,
		},
		PresetsFile: ".asrdeploy.hcl",
	}
}

// Load reads and parses a YAML config file. Missing fields are filled
// with defaults. A leading ~ in presets_file is expanded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.PresetsFile = expandTilde(cfg.PresetsFile)
	return cfg, nil
}

// LoadOrDefault loads path when it exists and falls back to Default when it
// does not. An empty path checks DefaultConfigPath.
func LoadOrDefault(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !explicit && errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return nil, err
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if bp := c.Server.BasePath; bp != "" && !strings.HasPrefix(bp, "/") {
		return fmt.Errorf("server.base_path must start with \"/\", got %q", bp)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}

	if _, err := c.Script(); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}

	if c.Demo.Interval <= 0 {
		return fmt.Errorf("demo.interval must be > 0")
	}
	if c.Demo.FinalizeDelay <= 0 || c.Demo.FinalizeDelay >= c.Demo.Interval {
		return fmt.Errorf("demo.finalize_delay must be > 0 and shorter than demo.interval")
	}
	for i, phrase := range c.Demo.Phrases {
		if strings.TrimSpace(phrase) == "" {
			return fmt.Errorf("demo.phrases[%d] must not be empty", i)
		}
	}
	return nil
}

// Script parses Defaults into the initial script configuration.
func (c *Config) Script() (script.Config, error) {
	return script.Fields{
		Mode:     c.Defaults.Mode,
		Device:   c.Defaults.Device,
		Model:    c.Defaults.Model,
		Language: c.Defaults.Language,
	}.Apply(script.Default())
}

// ParseLogLevel maps a level name to slog. Unknown names map to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds a text logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLogLevel(c.LogLevel)}))
}

// expandTilde replaces a leading ~ with the user's home directory.
func expandTilde(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
