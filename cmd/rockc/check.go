package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rock/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check <snapshot>",
	Short: "Run lowering, resolution and inference and report diagnostics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		result, _, err := runPipeline(path, driver.StageCheck)
		if err != nil {
			return err
		}
		printDiagnostics(cmd.OutOrStdout(), result.Bag, path, !color.NoColor)
		if result.Bag.HasErrors() {
			os.Exit(1)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "ok")
		return nil
	},
}
