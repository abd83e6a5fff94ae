package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/klytics/pricekit/internal/pricelist"
)

const separator = "--------------------------------------------------"

// PrintSearchResult renders search matches in the per-row console
// format: separator, provenance header, one "column: value" line per
// display column with a value in that row, separator.
func PrintSearchResult(w io.Writer, res *pricelist.SearchResult) {
	if len(res.Matches) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	header := color.New(color.Bold, color.FgCyan)
	dim := color.New(color.FgHiBlack)

	matched := make(map[string]bool, len(res.DisplayColumns))
	for _, c := range res.DisplayColumns {
		matched[c] = true
	}

	fmt.Fprintf(w, "Found %d matching rows:\n", len(res.Matches))
	for _, m := range res.Matches {
		dim.Fprintln(w, separator)
		header.Fprintf(w, "Match found in: %s, Sheet: %q, Row: %d\n",
			m.Row.SourceFile, m.Row.SheetName, m.Row.RowNumber)
		fmt.Fprintln(w, "Details:")
		// Matched columns lead, alphabetically; the row's remaining
		// values follow in table order.
		for _, col := range res.DisplayColumns {
			if val := m.Row.Cell(col); val != "" {
				fmt.Fprintf(w, "  - %s: %s\n", col, val)
			}
		}
		for _, col := range res.Columns {
			if matched[col] {
				continue
			}
			if val := m.Row.Cell(col); val != "" {
				fmt.Fprintf(w, "  - %s: %s\n", col, val)
			}
		}
		dim.Fprintln(w, separator)
	}
}

// PrintAggregateReport renders a human-readable aggregation summary:
// skipped units with their causes, then the row count written.
func PrintAggregateReport(w io.Writer, report *pricelist.Report) {
	warn := color.New(color.FgYellow)
	ok := color.New(color.FgGreen)

	for _, f := range report.Files {
		if f.Err != nil {
			warn.Fprintf(w, "Skipped file %s: %v\n", f.Name, f.Err)
		}
		for _, s := range f.Sheets {
			if s.Err != nil {
				warn.Fprintf(w, "Skipped sheet %q in %s: %v\n", s.Name, f.Name, s.Err)
			}
		}
	}

	if !report.OutputWritten {
		return
	}
	ok.Fprintln(w, "Aggregation complete!")
	fmt.Fprintf(w, "A total of %d rows have been written to %s.\n",
		report.RowsWritten, report.OutputFile)
}
