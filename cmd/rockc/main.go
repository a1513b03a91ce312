// Command rockc drives the mid-end pipeline (lowering, resolution,
// inference, monomorphization) over a pre-built AST snapshot, since no
// lexer/parser front end lives in this repository. Grounded on the
// teacher's cmd/surge (main.go's cobra root command and persistent
// --color flag, version.go's subcommand shape), trimmed to the
// check/build/hir/version surface this mid-end actually backs.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var colorMode string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rockc",
	Short: "Rock mid-end compiler driver",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		color.NoColor = !resolveColor(colorMode, os.Stdout)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "colorize output: auto|on|off")
	rootCmd.AddCommand(checkCmd, buildCmd, hirCmd, versionCmd)
}

// resolveColor mirrors the teacher's isatty-gated color decision: "on"/"off"
// are explicit overrides, "auto" colors only when stdout is a real
// terminal.
func resolveColor(mode string, out *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())
	}
}
