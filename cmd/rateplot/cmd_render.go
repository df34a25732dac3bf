package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/nvandessel/rateplot/internal/plotting"
	"github.com/nvandessel/rateplot/internal/scenario"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [scenario...]",
		Short: "Render one or more named scenarios",
		Long: `Render named scenarios from the built-in catalogue or config file.

With no arguments the "custom" scenario is rendered. Several scenarios are
drawn first and then shown together in one window.

Examples:
  rateplot render                          # the custom scenario
  rateplot render weights-3s               # one figure
  rateplot render --all --no-show          # every saved figure, headless`,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			jsonOut, _ := cmd.Flags().GetBool("json")

			if all && len(args) > 0 {
				return fmt.Errorf("cannot specify scenario names with --all")
			}

			env, err := newAppEnv(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			scs, err := selectScenarios(env.scenarios, args, all)
			if err != nil {
				return err
			}

			var results []*plotting.Result
			if len(scs) == 1 {
				res, err := env.renderer.Render(cmd.Context(), scs[0])
				if res != nil {
					results = append(results, res)
				}
				if err != nil {
					return err
				}
			} else {
				results, err = env.renderer.RenderAll(cmd.Context(), scs)
				if err != nil {
					return err
				}
			}

			return printResults(cmd.OutOrStdout(), results, jsonOut)
		},
	}

	cmd.Flags().Bool("all", false, "Render every scenario that saves a figure")

	return cmd
}

// selectScenarios resolves names against the catalogue. No names selects the
// default scenario; all selects every saving scenario.
func selectScenarios(cat *scenario.Catalog, names []string, all bool) ([]scenario.Scenario, error) {
	if all {
		var scs []scenario.Scenario
		for _, sc := range cat.All() {
			if sc.Saves() {
				scs = append(scs, sc)
			}
		}
		if len(scs) == 0 {
			return nil, fmt.Errorf("no scenarios save a figure")
		}
		return scs, nil
	}

	if len(names) == 0 {
		names = []string{scenario.Default}
	}
	scs := make([]scenario.Scenario, 0, len(names))
	for _, name := range names {
		sc, err := cat.Get(name)
		if err != nil {
			return nil, fmt.Errorf("%w (run 'rateplot scenarios' to list them)", err)
		}
		scs = append(scs, sc)
	}
	return scs, nil
}

func printResults(w io.Writer, results []*plotting.Result, jsonOut bool) error {
	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"results": results,
			"count":   len(results),
		})
	}

	for _, res := range results {
		if res.Path != "" {
			fmt.Fprintf(w, "%s: %dx%d table, saved %s (%s)\n",
				res.Scenario, res.Rows, res.Cols, res.Path, res.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(w, "%s: %dx%d table, displayed only (%s)\n",
				res.Scenario, res.Rows, res.Cols, res.Duration.Round(time.Millisecond))
		}
	}
	return nil
}
