package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nvandessel/rateplot/internal/pathutil"
	"github.com/nvandessel/rateplot/internal/render"
	"github.com/nvandessel/rateplot/internal/scenario"
)

func newHeatmapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heatmap <rates.csv>",
		Short: "Render a rate table as a heatmap",
		Long: `Render any rate table (neurons x time steps) as a heatmap without
defining a scenario. The table path is relative to the data directory
unless absolute.

Examples:
  rateplot heatmap additional_eight_sec_neuron_rates.csv --scale log --time 4,8
  rateplot heatmap run3_rates.csv --output run3 --no-show`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			scale, _ := cmd.Flags().GetString("scale")
			timeSpec, _ := cmd.Flags().GetString("time")
			divisions, _ := cmd.Flags().GetInt("divisions")
			neuronStep, _ := cmd.Flags().GetInt("neuron-step")
			output, _ := cmd.Flags().GetString("output")
			width, _ := cmd.Flags().GetFloat64("width")
			height, _ := cmd.Flags().GetFloat64("height")

			name := adHocName(args[0], output)
			sc := scenario.Scenario{
				Name:           name,
				Kind:           scenario.KindRates,
				Rates:          args[0],
				Scale:          render.Scale(scale),
				NeuronTickStep: neuronStep,
				Output:         name,
				Size:           render.Size{Width: width, Height: height},
			}
			if timeSpec != "" {
				lim, err := parseLimits(timeSpec)
				if err != nil {
					return fmt.Errorf("invalid --time: %w", err)
				}
				sc.Time = &render.TimeAxis{Start: lim.Min, End: lim.Max, Divisions: divisions}
			}

			env, err := newAppEnv(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			res, err := env.renderer.RenderRates(cmd.Context(), sc)
			if err != nil {
				return err
			}
			return printResults(cmd.OutOrStdout(), oneResult(res), jsonOut)
		},
	}

	cmd.Flags().String("scale", "linear", "Colour scale: linear or log")
	cmd.Flags().String("time", "", "Time axis labels as start,end in seconds (e.g. 0,4)")
	cmd.Flags().Int("divisions", render.DefaultDivisions, "Number of time-axis intervals")
	cmd.Flags().Int("neuron-step", 100, "Neuron-axis tick spacing (0 for automatic)")
	cmd.Flags().StringP("output", "o", "", "Figure name to save under the figure dir (default: input file name)")
	cmd.Flags().Float64("width", render.DefaultSize.Width, "Figure width in inches")
	cmd.Flags().Float64("height", render.DefaultSize.Height, "Figure height in inches")

	return cmd
}

// adHocName names an ad hoc scenario after its output or input file.
func adHocName(input, output string) string {
	if output != "" {
		return output
	}
	base := filepath.Base(input)
	name := pathutil.SafeName(strings.TrimSuffix(base, filepath.Ext(base)))
	if name == "" {
		return "figure"
	}
	return name
}

// parseLimits parses "min,max".
func parseLimits(s string) (*render.Limits, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("expected min,max, got %q", s)
	}
	var lim render.Limits
	if _, err := fmt.Sscanf(strings.TrimSpace(parts[0]), "%g", &lim.Min); err != nil {
		return nil, fmt.Errorf("invalid minimum %q", parts[0])
	}
	if _, err := fmt.Sscanf(strings.TrimSpace(parts[1]), "%g", &lim.Max); err != nil {
		return nil, fmt.Errorf("invalid maximum %q", parts[1])
	}
	if lim.Max <= lim.Min {
		return nil, fmt.Errorf("maximum must exceed minimum, got %q", s)
	}
	return &lim, nil
}
