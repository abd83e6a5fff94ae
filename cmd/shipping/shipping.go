// Package shipping provides the example Dellin shipping-cost commands.
// This is a standalone integration: the aggregation and search
// commands do not depend on it.
package shipping

import "github.com/spf13/cobra"

// NewCommand returns the shipping subcommand group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shipping",
		Short: "Example Dellin shipping-cost API client",
		Long: `Example integration with the Dellin delivery cost calculator.

Requires a Dellin application key, via PRICEKIT_DELLIN_APPKEY or
'pricekit config set dellin.appkey <key>'.`,
	}

	cmd.AddCommand(newCityCommand())
	cmd.AddCommand(newCalcCommand())

	return cmd
}
