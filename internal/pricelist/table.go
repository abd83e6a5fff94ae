// Package pricelist implements the price list aggregation pipeline:
// combining every sheet of every spreadsheet in a directory into one
// provenance-tagged table, and searching that table.
package pricelist

import (
	"fmt"
	"strconv"

	"github.com/klytics/pricekit/internal/formats"
)

// Provenance columns written first in every aggregated file, in this order.
const (
	ColSourceFile = "source_file"
	ColSheetName  = "sheet_name"
	ColRowNumber  = "row_number"
)

// ProvenanceColumns lists the provenance column names in output order.
var ProvenanceColumns = []string{ColSourceFile, ColSheetName, ColRowNumber}

// Row is one aggregated price list row: the original cells keyed by
// column name, plus where the row came from. An absent or empty cell
// means the source had no value there.
type Row struct {
	SourceFile string            `json:"source_file"`
	SheetName  string            `json:"sheet_name"`
	RowNumber  int               `json:"row_number"`
	Cells      map[string]string `json:"cells"`
}

// Cell returns the value of the named data column, or "" when unset.
func (r Row) Cell(col string) string {
	return r.Cells[col]
}

// Table is an ordered collection of rows with a dynamic column set:
// data columns appear in the order they were first seen across all
// source sheets, after the three provenance columns.
type Table struct {
	columns []string
	colIdx  map[string]int
	rows    []Row
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{colIdx: make(map[string]int)}
}

func (t *Table) addColumn(name string) {
	if _, ok := t.colIdx[name]; ok {
		return
	}
	t.colIdx[name] = len(t.columns)
	t.columns = append(t.columns, name)
}

// AddSheet appends every data row of one sheet. rows[0] is the header;
// data rows are numbered as they appear in the original file, with the
// header counting as row 1 (first data row = 2). Duplicate header
// names within one sheet get a numeric suffix (price, price_2) so no
// cell is lost. Returns the number of rows added. A sheet with only a
// header adds nothing.
func (t *Table) AddSheet(sourceFile, sheetName string, rows [][]string) int {
	if len(rows) < 2 {
		return 0
	}

	header := make([]string, len(rows[0]))
	seen := make(map[string]int, len(rows[0]))
	for j, name := range rows[0] {
		if name == "" {
			// Unnamed header cell: synthesize a stable column name.
			name = fmt.Sprintf("column_%d", j+1)
		}
		base := name
		for seen[name] > 0 {
			seen[base]++
			name = fmt.Sprintf("%s_%d", base, seen[base])
		}
		seen[name]++
		header[j] = name
		t.addColumn(name)
	}

	added := 0
	for i := 1; i < len(rows); i++ {
		row := Row{
			SourceFile: sourceFile,
			SheetName:  sheetName,
			RowNumber:  i + 1, // header is row 1
			Cells:      make(map[string]string),
		}
		for j, cell := range rows[i] {
			if cell == "" {
				continue
			}
			if j < len(header) {
				row.Cells[header[j]] = cell
			} else {
				// Data past the header width still gets a column.
				name := fmt.Sprintf("column_%d", j+1)
				t.addColumn(name)
				row.Cells[name] = cell
			}
		}
		t.rows = append(t.rows, row)
		added++
	}

	return added
}

// Columns returns the data column names in first-seen order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Header returns the full output header: provenance columns first,
// then data columns in first-seen order.
func (t *Table) Header() []string {
	return append(append([]string{}, ProvenanceColumns...), t.columns...)
}

// Rows returns the aggregated rows in insertion order.
func (t *Table) Rows() []Row {
	return t.rows
}

// Len returns the number of aggregated rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Workbook serializes the table into a single-sheet workbook ready to
// be written as the aggregated file.
func (t *Table) Workbook(sheetName string) *formats.Workbook {
	header := t.Header()
	sheet := formats.Sheet{Name: sheetName, Rows: [][]string{header}}

	for _, r := range t.rows {
		out := make([]string, len(header))
		out[0] = r.SourceFile
		out[1] = r.SheetName
		out[2] = strconv.Itoa(r.RowNumber)
		for j, col := range t.columns {
			out[3+j] = r.Cells[col]
		}
		sheet.Rows = append(sheet.Rows, out)
	}

	return &formats.Workbook{Sheets: []formats.Sheet{sheet}}
}

// FromWorkbook rebuilds a table from a previously aggregated workbook.
// The first readable sheet is used; its header must start with the
// three provenance columns.
func FromWorkbook(wb *formats.Workbook) (*Table, error) {
	var sheet *formats.Sheet
	for i := range wb.Sheets {
		if wb.Sheets[i].Err == nil {
			sheet = &wb.Sheets[i]
			break
		}
	}
	if sheet == nil || len(sheet.Rows) == 0 {
		return nil, fmt.Errorf("aggregated file has no readable data")
	}

	header := sheet.Rows[0]
	if len(header) < len(ProvenanceColumns) ||
		header[0] != ColSourceFile || header[1] != ColSheetName || header[2] != ColRowNumber {
		return nil, fmt.Errorf("unexpected header %v — not an aggregated price list", header)
	}

	t := NewTable()
	for _, name := range header[len(ProvenanceColumns):] {
		t.addColumn(name)
	}

	for _, raw := range sheet.Rows[1:] {
		row := Row{Cells: make(map[string]string)}
		if len(raw) > 0 {
			row.SourceFile = raw[0]
		}
		if len(raw) > 1 {
			row.SheetName = raw[1]
		}
		if len(raw) > 2 {
			row.RowNumber, _ = strconv.Atoi(raw[2])
		}
		for j := 3; j < len(raw); j++ {
			if raw[j] == "" {
				continue
			}
			if j-3 < len(t.columns) {
				row.Cells[t.columns[j-3]] = raw[j]
			}
		}
		t.rows = append(t.rows, row)
	}

	return t, nil
}
