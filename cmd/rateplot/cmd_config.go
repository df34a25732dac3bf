package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nvandessel/rateplot/internal/config"
	"github.com/nvandessel/rateplot/internal/display"
	"github.com/nvandessel/rateplot/internal/logging"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage rateplot configuration",
		Long: `View and modify rateplot configuration settings.

Configuration is stored in ~/.rateplot/config.yaml unless --config names
another file. Environment variables (RATEPLOT_DATA_DIR, RATEPLOT_FIGURE_DIR,
RATEPLOT_VIEWER, RATEPLOT_DPI, RATEPLOT_LOG_LEVEL, RATEPLOT_HISTORY,
RATEPLOT_HISTORY_PATH) override the file.

Examples:
  rateplot config list                         # Show all settings
  rateplot config get paths.data_dir           # Get a specific setting
  rateplot config set display.viewer system    # Set a setting`,
	}

	cmd.AddCommand(
		newConfigListCmd(),
		newConfigGetCmd(),
		newConfigSetCmd(),
	)

	return cmd
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(out).Encode(cfg)
			}

			for _, key := range configKeys {
				value, _ := getConfigValue(cfg, key)
				fmt.Fprintf(out, "  %-18s %v\n", key+":", value)
			}
			if len(cfg.Scenarios) > 0 {
				fmt.Fprintf(out, "\n%d scenario override(s); run 'rateplot scenarios' to see them.\n", len(cfg.Scenarios))
			}
			return nil
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			key := args[0]

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			value, found := getConfigValue(cfg, key)
			if !found {
				return fmt.Errorf("unknown configuration key: %s", key)
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"key":   key,
					"value": value,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", key, value)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			key, value := args[0], args[1]

			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				var err error
				if path, err = config.DefaultPath(); err != nil {
					return err
				}
			}

			// Edit the file contents only, so environment overrides are not
			// written back.
			cfg, err := config.LoadFromFile(path)
			if errors.Is(err, fs.ErrNotExist) {
				cfg, err = config.Default(), nil
			}
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if err := setConfigValue(cfg, key, value); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			if err := config.Save(cfg, path); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"status": "updated",
					"key":    key,
					"value":  value,
					"path":   path,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
			return nil
		},
	}
}

var configKeys = []string{
	"paths.data_dir",
	"paths.figure_dir",
	"display.viewer",
	"display.dpi",
	"logging.level",
	"history.enabled",
	"history.path",
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (interface{}, bool) {
	switch key {
	case "paths.data_dir":
		return cfg.Paths.DataDir, true
	case "paths.figure_dir":
		return cfg.Paths.FigureDir, true
	case "display.viewer":
		return cfg.Display.Viewer, true
	case "display.dpi":
		return cfg.Display.DPI, true
	case "logging.level":
		return cfg.Logging.Level, true
	case "history.enabled":
		return cfg.History.Enabled, true
	case "history.path":
		if p, err := cfg.HistoryPath(); err == nil {
			return p, true
		}
		return cfg.History.Path, true
	default:
		return nil, false
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "paths.data_dir":
		cfg.Paths.DataDir = value
	case "paths.figure_dir":
		cfg.Paths.FigureDir = value
	case "display.viewer":
		name, err := display.ParseName(value)
		if err != nil {
			return err
		}
		cfg.Display.Viewer = name
	case "display.dpi":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("invalid dpi: %s (must be a positive number)", value)
		}
		cfg.Display.DPI = f
	case "logging.level":
		if !logging.ValidLevel(value) {
			return fmt.Errorf("invalid log level: %s (valid: info, debug, trace)", value)
		}
		cfg.Logging.Level = value
	case "history.enabled":
		cfg.History.Enabled = value == "true" || value == "1"
	case "history.path":
		cfg.History.Path = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
