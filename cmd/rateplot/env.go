package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nvandessel/rateplot/internal/catalog"
	"github.com/nvandessel/rateplot/internal/config"
	"github.com/nvandessel/rateplot/internal/display"
	"github.com/nvandessel/rateplot/internal/logging"
	"github.com/nvandessel/rateplot/internal/pathutil"
	"github.com/nvandessel/rateplot/internal/plotting"
	"github.com/nvandessel/rateplot/internal/scenario"
)

// appEnv is everything a rendering command needs, built from config and
// global flags.
type appEnv struct {
	cfg       *config.Config
	logger    *slog.Logger
	scenarios *scenario.Catalog
	history   *catalog.Store
	trace     *logging.RenderTrace
	renderer  *plotting.Renderer
}

// loadConfig loads the config file named by --config (or the default one)
// and applies --log-level, --viewer and --no-show.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadPath(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if viewer, _ := cmd.Flags().GetString("viewer"); viewer != "" {
		cfg.Display.Viewer = viewer
	}
	if noShow, _ := cmd.Flags().GetBool("no-show"); noShow {
		cfg.Display.Viewer = display.NameNone
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newAppEnv wires config, logger, history and renderer. Callers must Close it.
func newAppEnv(cmd *cobra.Command) (*appEnv, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	root, _ := cmd.Flags().GetString("root")

	env := &appEnv{
		cfg:    cfg,
		logger: logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr()),
	}

	env.scenarios, err = cfg.Catalog()
	if err != nil {
		return nil, err
	}

	if cfg.History.Enabled {
		path, err := cfg.HistoryPath()
		if err != nil {
			return nil, err
		}
		env.history, err = catalog.Open(path)
		if err != nil {
			// History is a convenience; rendering still works without it.
			env.logger.Warn("render history unavailable", "path", pathutil.RedactPath(path), "error", err)
			env.history = nil
		}
	}

	if dir, err := config.Dir(); err == nil {
		env.trace = logging.NewRenderTrace(dir, cfg.Logging.Level)
	}

	viewer, err := display.ByName(cfg.Display.Viewer)
	if err != nil {
		env.Close()
		return nil, err
	}

	opts := plotting.Options{
		DataDir:   pathutil.Resolve(root, cfg.Paths.DataDir),
		FigureDir: pathutil.Resolve(root, cfg.Paths.FigureDir),
		DPI:       cfg.Display.DPI,
		Viewer:    viewer,
		Logger:    env.logger,
		Trace:     env.trace,
	}
	if env.history != nil {
		opts.History = env.history
	}
	env.renderer = plotting.New(opts)

	env.logger.Debug("environment ready",
		"data_dir", opts.DataDir,
		"figure_dir", opts.FigureDir,
		"viewer", cfg.Display.Viewer,
		"history", env.history != nil)
	return env, nil
}

// Close releases the history database and trace file.
func (e *appEnv) Close() {
	if e.history != nil {
		if err := e.history.Close(); err != nil {
			e.logger.Warn("failed to close render history", "error", err)
		}
	}
	e.trace.Close()
}
