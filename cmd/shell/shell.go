// Package shell provides the "pricekit shell" interactive REPL command.
package shell

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klytics/pricekit/internal/config"
	shellpkg "github.com/klytics/pricekit/internal/shell"
)

// NewCommand creates the "shell" command.
func NewCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive price search shell",
		Long: `Start an interactive REPL over the aggregated price list.

The table is loaded once, so repeated searches skip the file-load
cost. Type 'reload' after re-aggregating to pick up new data.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("could not load config: %w", err)
			}
			if file == "" {
				file = cfg.OutputFile
			}

			session, err := shellpkg.NewSession(file)
			if err != nil {
				return err
			}
			return session.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Aggregated .xlsx path (default from config)")
	return cmd
}
