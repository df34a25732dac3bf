package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nvandessel/rateplot/internal/scenario"
)

func newScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios [name]",
		Short: "List scenarios, or show one in full",
		Long: `List the built-in scenarios together with any defined in the config
file. With a name, print that scenario as YAML; paste it under
'scenarios:' in the config file to adjust it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cat, err := cfg.Catalog()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				sc, err := cat.Get(args[0])
				if err != nil {
					return err
				}
				if jsonOut {
					enc := json.NewEncoder(out)
					enc.SetIndent("", "  ")
					return enc.Encode(sc)
				}
				data, err := yaml.Marshal(sc)
				if err != nil {
					return fmt.Errorf("marshal scenario: %w", err)
				}
				_, err = out.Write(data)
				return err
			}

			all := cat.All()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]interface{}{
					"scenarios": all,
					"default":   scenario.Default,
					"count":     len(all),
				})
			}

			for _, sc := range all {
				marker := " "
				if sc.Name == scenario.Default {
					marker = "*"
				}
				output := sc.Output
				if output == "" {
					output = "(display only)"
				}
				fmt.Fprintf(out, "%s %-28s %-8s %-45s %s\n",
					marker, sc.Name, sc.Kind, strings.Join(sc.Inputs(), " - "), output)
			}
			fmt.Fprintf(out, "\n%d scenarios (* = default)\n", len(all))
			return nil
		},
	}
}
