package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := newRootCmd()
	rootCmd.AddCommand(
		newVersionCmd(),
		newRenderCmd(),
		newHeatmapCmd(),
		newWeightsCmd(),
		newScenariosCmd(),
		newHistoryCmd(),
		newConfigCmd(),
	)

	ctx, stop := signalContext(context.Background())
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rateplot",
		Short: "Plot neuron firing rates and weight changes from simulation output",
		Long: `rateplot renders the CSV tables written by a ring-network simulation.

Rate tables (neurons x time steps) become heatmaps with a colour bar.
Weight tables (neurons x neurons) are compared against the initial weights,
and the change of the middle neuron's weights is drawn as a line.

Figures are described by named scenarios. Run 'rateplot scenarios' to list
them and 'rateplot render <name>' to draw one.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("root", ".", "Project root; relative data and figure dirs resolve against it")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.rateplot/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug, or trace")
	rootCmd.PersistentFlags().String("viewer", "", "Figure viewer: window, system, or none")
	rootCmd.PersistentFlags().Bool("no-show", false, "Save figures without displaying them")

	return rootCmd
}

// signalContext returns a context cancelled on SIGINT/SIGTERM so an open
// figure window is closed on Ctrl-C.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	notifySignals(sigCh)

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}
