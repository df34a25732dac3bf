package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvandessel/rateplot/internal/plotting"
	"github.com/nvandessel/rateplot/internal/render"
	"github.com/nvandessel/rateplot/internal/scenario"
	"github.com/nvandessel/rateplot/internal/weights"
)

func newWeightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weights <snapshot.csv>",
		Short: "Plot the weight change of one neuron against the initial weights",
		Long: `Subtract the initial weight table from a snapshot, take the column of
the middle neuron and plot the change over a window of neighbours.

Examples:
  rateplot weights neuron_weights_4000.csv
  rateplot weights standard_sim_neuron_weights_3000.csv --xlim 200,300 --ylim 0,3 -o weights_3s`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			initial, _ := cmd.Flags().GetString("initial")
			middle, _ := cmd.Flags().GetInt("middle")
			from, _ := cmd.Flags().GetInt("from")
			to, _ := cmd.Flags().GetInt("to")
			xlim, _ := cmd.Flags().GetString("xlim")
			ylim, _ := cmd.Flags().GetString("ylim")
			color, _ := cmd.Flags().GetString("color")
			output, _ := cmd.Flags().GetString("output")
			width, _ := cmd.Flags().GetFloat64("width")
			height, _ := cmd.Flags().GetFloat64("height")

			sc := scenario.Scenario{
				Name:           adHocName(args[0], output),
				Kind:           scenario.KindWeights,
				Weights:        args[0],
				InitialWeights: initial,
				Middle:         middle,
				Window:         weights.Window{From: from, To: to},
				Color:          color,
				Output:         output,
				Size:           render.Size{Width: width, Height: height},
			}
			var err error
			if xlim != "" {
				if sc.XLim, err = parseLimits(xlim); err != nil {
					return fmt.Errorf("invalid --xlim: %w", err)
				}
			}
			if ylim != "" {
				if sc.YLim, err = parseLimits(ylim); err != nil {
					return fmt.Errorf("invalid --ylim: %w", err)
				}
			}

			env, err := newAppEnv(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			res, err := env.renderer.RenderWeights(cmd.Context(), sc)
			if err != nil {
				return err
			}
			return printResults(cmd.OutOrStdout(), oneResult(res), jsonOut)
		},
	}

	cmd.Flags().String("initial", "weights_initial.csv", "Initial weight table")
	cmd.Flags().Int("middle", 249, "Column of the neuron whose weights are compared")
	cmd.Flags().Int("from", 200, "First neuron of the plotted window")
	cmd.Flags().Int("to", 300, "Last neuron of the plotted window (inclusive)")
	cmd.Flags().String("xlim", "", "Fixed x range as min,max")
	cmd.Flags().String("ylim", "", "Fixed y range as min,max")
	cmd.Flags().String("color", "b", "Line colour: b, g, r, c, m, y, k, or #rrggbb")
	cmd.Flags().StringP("output", "o", "", "Figure name to save under the figure dir (empty: display only)")
	cmd.Flags().Float64("width", 10, "Figure width in inches")
	cmd.Flags().Float64("height", 2, "Figure height in inches")

	return cmd
}

func oneResult(res *plotting.Result) []*plotting.Result {
	return []*plotting.Result{res}
}
