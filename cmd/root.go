// Package cmd contains all CLI commands for the pricekit binary.
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/pricekit/cmd/aggregate"
	"github.com/klytics/pricekit/cmd/completion"
	cmdconfig "github.com/klytics/pricekit/cmd/config"
	"github.com/klytics/pricekit/cmd/search"
	cmdshell "github.com/klytics/pricekit/cmd/shell"
	"github.com/klytics/pricekit/cmd/shipping"
	"github.com/klytics/pricekit/cmd/version"
	cmdwatch "github.com/klytics/pricekit/cmd/watch"
)

var (
	jsonOutput bool
	verbose    bool
	noColor    bool
)

// NewRootCommand creates and returns the root cobra command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pricekit",
		Short: "Aggregate and search supplier price lists",
		Long: `pricekit — supplier price lists, one table away.

Aggregate every sheet of every spreadsheet price list in a directory
into one provenance-tagged table, then search it from your terminal.
Includes an example client for the Dellin shipping-cost API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	// Global persistent flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI color output")

	// Register subcommands
	rootCmd.AddCommand(aggregate.NewCommand())
	rootCmd.AddCommand(search.NewCommand())
	rootCmd.AddCommand(shipping.NewCommand())
	rootCmd.AddCommand(cmdwatch.NewCommand())
	rootCmd.AddCommand(cmdshell.NewCommand())
	rootCmd.AddCommand(cmdconfig.NewCommand())
	rootCmd.AddCommand(completion.NewCommand(rootCmd))
	rootCmd.AddCommand(version.NewCommand())

	return rootCmd
}

// Execute runs the root command and handles any returned errors.
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
