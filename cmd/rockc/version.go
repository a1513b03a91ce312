package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rock/internal/version"
)

var (
	versionShowHash bool
	commitColor     = color.New(color.FgRed, color.Bold)
	unknownColor    = color.New(color.FgMagenta)
)

func init() {
	versionCmd.Flags().BoolVar(&versionShowHash, "hash", false, "include the git commit hash")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show rockc's build fingerprint",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := strings.TrimSpace(version.Version)
		if v == "" {
			v = "dev"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "rockc %s\n", v)
		if versionShowHash {
			commit := strings.TrimSpace(version.GitCommit)
			if commit == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", unknownColor.Sprint("unknown"))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", commitColor.Sprint(commit))
			}
		}
		return nil
	},
}
