package main

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/nvandessel/rateplot/internal/catalog"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [scenario]",
		Short: "Show recently rendered figures",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			limit, _ := cmd.Flags().GetInt("limit")
			out := cmd.OutOrStdout()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return fmt.Errorf("render history is disabled (set history.enabled or RATEPLOT_HISTORY)")
			}
			path, err := cfg.HistoryPath()
			if err != nil {
				return err
			}
			store, err := catalog.Open(path)
			if err != nil {
				return fmt.Errorf("open render history: %w", err)
			}
			defer store.Close()

			var entries []catalog.Entry
			if len(args) == 1 {
				entries, err = store.ForScenario(cmd.Context(), args[0], limit)
			} else {
				entries, err = store.Recent(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]interface{}{
					"entries": entries,
					"count":   len(entries),
				})
			}

			if len(entries) == 0 {
				fmt.Fprintln(out, "No renders recorded.")
				return nil
			}
			for _, e := range entries {
				output := e.OutputPath
				if output == "" {
					output = "(display only)"
				}
				fmt.Fprintf(out, "%4d  %s  %-28s %4dx%-5d [%s, %s]  %s\n",
					e.ID, e.RenderedAt.Local().Format(time.DateTime), e.Scenario,
					e.Rows, e.Cols, formatBound(e.Min), formatBound(e.Max), output)
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "Maximum entries to show (0 for all)")

	return cmd
}

func formatBound(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.4g", v)
}
