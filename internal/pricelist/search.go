package pricelist

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klytics/pricekit/internal/formats/xlsx"
)

// Match is one row that contained the query, along with the data
// columns whose cells matched.
type Match struct {
	Row     Row      `json:"row"`
	Columns []string `json:"matchedColumns"`
}

// SearchResult holds all matches for one query. DisplayColumns is the
// union of matched data columns across all result rows, sorted
// alphabetically; these lead the per-row detail output. Columns keeps
// the table's full data column order so the remaining cells of a
// matching row can be printed after them. Provenance columns are
// always shown and never counted as matches.
type SearchResult struct {
	Query          string   `json:"query"`
	Matches        []Match  `json:"matches"`
	DisplayColumns []string `json:"displayColumns"`
	Columns        []string `json:"columns"`
}

// LoadAggregated reads a previously aggregated price list back into a
// table. The caller is expected to have checked that the file exists.
func LoadAggregated(path string) (*Table, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("aggregated price list %s not found", path)
	}

	wb, err := xlsx.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read aggregated file: %w", err)
	}

	return FromWorkbook(wb)
}

// Search scans every cell of every row for the query as a
// case-insensitive substring. Empty cells never match. Provenance
// fields are searched too, but only data columns are recorded as
// matched columns.
func (t *Table) Search(query string) *SearchResult {
	result := &SearchResult{Query: query, Columns: t.Columns()}
	q := strings.ToLower(query)

	display := make(map[string]bool)
	for _, row := range t.rows {
		matched := contains(row.SourceFile, q) ||
			contains(row.SheetName, q) ||
			contains(strconv.Itoa(row.RowNumber), q)

		var cols []string
		for _, col := range t.columns {
			if contains(row.Cells[col], q) {
				cols = append(cols, col)
				matched = true
			}
		}

		if !matched {
			continue
		}
		for _, c := range cols {
			display[c] = true
		}
		result.Matches = append(result.Matches, Match{Row: row, Columns: cols})
	}

	for c := range display {
		result.DisplayColumns = append(result.DisplayColumns, c)
	}
	sort.Strings(result.DisplayColumns)

	return result
}

func contains(cell, loweredQuery string) bool {
	if cell == "" {
		return false
	}
	return strings.Contains(strings.ToLower(cell), loweredQuery)
}
