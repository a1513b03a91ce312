package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"rock/internal/driver"
)

var emitMonoPath string

func init() {
	buildCmd.Flags().StringVar(&emitMonoPath, "emit-mono", "", "write the monomorphized program to this path as msgpack")
}

var buildCmd = &cobra.Command{
	Use:   "build <snapshot>",
	Short: "Run the full pipeline through monomorphization",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		result, _, err := runPipeline(path, driver.StageBuild)
		if err != nil {
			return err
		}
		printDiagnostics(cmd.OutOrStdout(), result.Bag, path, !color.NoColor)
		if result.Bag.HasErrors() {
			os.Exit(1)
		}
		if result.Mono == nil {
			return fmt.Errorf("build: monomorphization did not run")
		}
		if emitMonoPath != "" {
			encoded, err := msgpack.Marshal(result.Mono)
			if err != nil {
				return fmt.Errorf("encoding monomorphized program: %w", err)
			}
			if err := os.WriteFile(emitMonoPath, encoded, 0o644); err != nil { // #nosec G306 -- build artifact, not a secret
				return fmt.Errorf("writing %q: %w", emitMonoPath, err)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "built %d function(s)\n", len(result.Mono.Funcs))
		return nil
	},
}
