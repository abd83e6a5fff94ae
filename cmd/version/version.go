// Package version provides the version command for the pricekit CLI.
package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set at build time via -ldflags "-X .../cmd/version.Version=...".
var (
	Version = "dev"
	Commit  = ""
)

// NewCommand returns the version subcommand.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the pricekit version",
		Run: func(cmd *cobra.Command, args []string) {
			if Commit != "" {
				fmt.Printf("pricekit %s (%s)\n", Version, Commit)
				return
			}
			fmt.Printf("pricekit %s\n", Version)
		},
	}
}
