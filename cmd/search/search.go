// Package search provides the "pricekit search" command.
package search

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/klytics/pricekit/internal/config"
	"github.com/klytics/pricekit/internal/output"
	"github.com/klytics/pricekit/internal/pricelist"
)

// NewCommand returns the search subcommand.
func NewCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the aggregated price list",
		Long: `Scans every cell of the aggregated price list for the query as a
case-insensitive substring and prints each matching row with its
source file, sheet name, and original row number.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			query := args[0]

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("could not load config: %w", err)
			}
			if file == "" {
				file = cfg.OutputFile
			}

			if _, err := os.Stat(file); os.IsNotExist(err) {
				return fmt.Errorf("the aggregated price list %s was not found — run 'pricekit aggregate' first", file)
			}

			table, err := pricelist.LoadAggregated(file)
			if err != nil {
				return err
			}

			if !jsonFlag {
				fmt.Printf("Searching for %q in %s...\n", query, file)
			}

			result := table.Search(query)
			if jsonFlag {
				return output.NewWriter().WriteJSON(result)
			}

			output.PrintSearchResult(os.Stdout, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Aggregated .xlsx path (default from config)")

	return cmd
}
