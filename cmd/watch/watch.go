// Package watch provides the "pricekit watch" command.
package watch

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/klytics/pricekit/internal/config"
	"github.com/klytics/pricekit/internal/pricelist"
	"github.com/klytics/pricekit/internal/watch"
)

// NewCommand returns the watch subcommand.
func NewCommand() *cobra.Command {
	var (
		dir      string
		outFile  string
		debounce int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-aggregate automatically when price lists change",
		Long: `Watches the source directory and re-runs the full aggregation
whenever a spreadsheet is added or modified. Each trigger is a
complete re-aggregation of the directory. Stop with Ctrl+C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("could not load config: %w", err)
			}
			if dir == "" {
				dir = cfg.SourceDir
			}
			if outFile == "" {
				outFile = cfg.OutputFile
			}

			w, err := watch.New(watch.Config{Dir: dir, Debounce: debounce})
			if err != nil {
				return err
			}
			w.Handler = func() error {
				agg := &pricelist.Aggregator{SourceDir: dir, OutputFile: outFile}
				report, err := agg.Run()
				if err != nil {
					return err
				}
				if report.OutputWritten {
					w.Logger.Printf("Wrote %d rows to %s", report.RowsWritten, report.OutputFile)
				}
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return w.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Source directory with price lists (default from config)")
	cmd.Flags().StringVar(&outFile, "output", "", "Output .xlsx path (default from config)")
	cmd.Flags().IntVar(&debounce, "debounce", 500, "Milliseconds to wait after a change before re-aggregating")

	return cmd
}
