// Package main provides the entry point for the calheat CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/calheat/cmd/calheat/commands"
	"github.com/Sumatoshi-tech/calheat/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	err := newRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var global commands.GlobalOptions

	rootCmd := &cobra.Command{
		Use:   "calheat",
		Short: "Calheat - calendar heatmaps of time series",
		Long: `Calheat buckets time series by day and time of day and renders the result
as a colored grid.

Commands:
  render     Render a series as SVG, HTML or JSON
  grid       Print the bucketized grid as a table
  scale      Map values to colors with the configured palette
  palettes   List the built-in color schemes
  validate   Validate a config file`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&global.ConfigPath, "config", "c", "", "config file (default .calheat.yaml in . or $HOME)")
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&global.Quiet, "quiet", "q", false, "suppress output")
	rootCmd.PersistentFlags().BoolVar(&global.LogJSON, "log-json", false, "write logs as JSON")

	// Add commands.
	rootCmd.AddCommand(commands.NewRenderCommand(&global))
	rootCmd.AddCommand(commands.NewGridCommand(&global))
	rootCmd.AddCommand(commands.NewScaleCommand(&global))
	rootCmd.AddCommand(commands.NewPalettesCommand())
	rootCmd.AddCommand(commands.NewValidateCommand(&global))
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "calheat %s\n", version.String())
		},
	}
}
