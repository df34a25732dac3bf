// Package config provides unified configuration loading for rateplot.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nvandessel/rateplot/internal/display"
	"github.com/nvandessel/rateplot/internal/logging"
	"github.com/nvandessel/rateplot/internal/scenario"
)

// DirName is the per-user configuration directory under $HOME.
const DirName = ".rateplot"

// Config contains all rateplot configuration settings.
type Config struct {
	// Paths locates input tables and output figures.
	Paths PathsConfig `json:"paths" yaml:"paths"`

	// Display controls how figures are shown and rasterised.
	Display DisplayConfig `json:"display" yaml:"display"`

	// Logging contains settings for operational logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// History controls the render history database.
	History HistoryConfig `json:"history" yaml:"history"`

	// Scenarios override built-in scenarios with the same name or add new
	// ones.
	Scenarios []scenario.Scenario `json:"scenarios,omitempty" yaml:"scenarios,omitempty"`
}

// PathsConfig holds the data and figure directories. Relative paths are
// resolved against the project root.
type PathsConfig struct {
	DataDir   string `json:"data_dir" yaml:"data_dir"`
	FigureDir string `json:"figure_dir" yaml:"figure_dir"`
}

// DisplayConfig configures figure display.
type DisplayConfig struct {
	// Viewer is "window" (default), "system", or "none".
	Viewer string `json:"viewer" yaml:"viewer"`

	// DPI is the raster resolution of saved figures.
	DPI float64 `json:"dpi" yaml:"dpi"`
}

// LoggingConfig configures rateplot's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" also writes render decisions to ~/.rateplot/render-trace.jsonl.
	Level string `json:"level" yaml:"level"`
}

// HistoryConfig configures the render history.
type HistoryConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path is the SQLite database file. Empty uses ~/.rateplot/history.db.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			DataDir:   "data",
			FigureDir: "figures",
		},
		Display: DisplayConfig{
			Viewer: display.NameWindow,
			DPI:    100,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		History: HistoryConfig{
			Enabled: true,
		},
	}
}

// Dir returns ~/.rateplot.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, DirName), nil
}

// DefaultPath returns ~/.rateplot/config.yaml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load loads configuration from the default locations and environment variables.
// Order: defaults -> ~/.rateplot/config.yaml -> environment variables
func Load() (*Config, error) {
	config := Default()

	if configPath, err := DefaultPath(); err == nil {
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadPath loads configuration from path when it is non-empty, otherwise
// from the default locations. Environment overrides apply in both cases.
func LoadPath(path string) (*Config, error) {
	if path == "" {
		return Load()
	}
	config, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(config)
	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	config.Paths.DataDir = expandEnvVars(config.Paths.DataDir)
	config.Paths.FigureDir = expandEnvVars(config.Paths.FigureDir)
	config.History.Path = expandEnvVars(config.History.Path)

	return config, nil
}

// Save writes the configuration to path, creating its directory.
func Save(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Paths.DataDir == "" {
		return fmt.Errorf("paths.data_dir must not be empty")
	}
	if c.Paths.FigureDir == "" {
		return fmt.Errorf("paths.figure_dir must not be empty")
	}

	if _, err := display.ParseName(c.Display.Viewer); err != nil {
		return fmt.Errorf("invalid display.viewer: %w", err)
	}
	if c.Display.DPI < 0 {
		return fmt.Errorf("display.dpi must be non-negative, got %g", c.Display.DPI)
	}

	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	seen := make(map[string]bool, len(c.Scenarios))
	for _, s := range c.Scenarios {
		if err := s.Validate(); err != nil {
			return err
		}
		if seen[s.Name] {
			return fmt.Errorf("scenario %s defined more than once", s.Name)
		}
		seen[s.Name] = true
	}

	return nil
}

// HistoryPath returns the configured history database path or the default
// ~/.rateplot/history.db.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// Catalog returns the built-in scenarios merged with the configured ones.
func (c *Config) Catalog() (*scenario.Catalog, error) {
	cat := scenario.BuiltinCatalog()
	if err := cat.Merge(c.Scenarios); err != nil {
		return nil, fmt.Errorf("config scenarios: %w", err)
	}
	return cat, nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("RATEPLOT_DATA_DIR"); v != "" {
		config.Paths.DataDir = v
	}
	if v := os.Getenv("RATEPLOT_FIGURE_DIR"); v != "" {
		config.Paths.FigureDir = v
	}
	if v := os.Getenv("RATEPLOT_VIEWER"); v != "" {
		config.Display.Viewer = v
	}
	if v := os.Getenv("RATEPLOT_DPI"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Display.DPI = f
		}
	}
	if v := os.Getenv("RATEPLOT_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("RATEPLOT_HISTORY"); v != "" {
		config.History.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv("RATEPLOT_HISTORY_PATH"); v != "" {
		config.History.Path = v
	}
}

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return os.Expand(s, os.Getenv)
}
