package main

import (
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rock/internal/diagfmt"
	"rock/internal/driver"
)

var hirCmd = &cobra.Command{
	Use:   "hir <snapshot>",
	Short: "Pretty-print the lowered HIR tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		result, _, err := runPipeline(path, driver.StageLower)
		if err != nil {
			return err
		}
		printDiagnostics(cmd.OutOrStdout(), result.Bag, path, !color.NoColor)
		if result.Bag.HasErrors() {
			return nil
		}
		keys := make([]string, 0, len(result.Roots))
		for k := range result.Roots {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if k != "" {
				cmd.Println("module " + k)
			}
			diagfmt.HIRTree(cmd.OutOrStdout(), result.Roots[k], nil)
		}
		return nil
	},
}
