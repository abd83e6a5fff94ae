// Package aggregate provides the "pricekit aggregate" command.
package aggregate

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/klytics/pricekit/internal/config"
	"github.com/klytics/pricekit/internal/output"
	"github.com/klytics/pricekit/internal/pricelist"
	"github.com/klytics/pricekit/internal/progress"
)

// NewCommand returns the aggregate subcommand.
func NewCommand() *cobra.Command {
	var (
		dir     string
		outFile string
	)

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Combine all price lists in a directory into one spreadsheet",
		Long: `Reads every .xlsx and .xls file in the source directory, every sheet
within each, tags each row with its source file, sheet name, and
original row number, and writes one combined .xlsx.

A sheet or file that cannot be read is skipped with a warning; the run
always continues. An empty source directory is not an error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			verbose, _ := cmd.Flags().GetBool("verbose")

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

			agg := &pricelist.Aggregator{
				SourceDir:  dir,
				OutputFile: outFile,
			}
			if verbose && !jsonFlag {
				agg.Logf = func(format string, args ...interface{}) {
					fmt.Fprintf(os.Stderr, format+"\n", args...)
				}
			}
			var bar *progress.Bar
			if !jsonFlag {
				bar = progress.New("Aggregating", 0)
				agg.OnFileDone = func(done, total int, name string) {
					bar.Total = total
					bar.Set(done, name)
				}
			}

			report, err := agg.Run()
			if bar != nil && report != nil && len(report.Files) > 0 {
				bar.Finish(fmt.Sprintf("Processed %d files", len(report.Files)))
			}
			if err != nil {
				return err
			}

			if jsonFlag {
				return output.NewWriter().WriteJSON(report)
			}

			if len(report.Files) == 0 {
				fmt.Printf("No price list files found in directory: %s\n", dir)
				return nil
			}
			if !report.OutputWritten {
				output.PrintAggregateReport(os.Stdout, report)
				fmt.Println("No data was extracted from any of the files.")
				return nil
			}

			output.PrintAggregateReport(os.Stdout, report)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Source directory with price lists (default from config)")
	cmd.Flags().StringVar(&outFile, "output", "", "Output .xlsx path (default from config)")

	return cmd
}
