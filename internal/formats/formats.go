// Package formats defines the in-memory representation of spreadsheet
// files shared by the per-format readers.
package formats

import (
	"path/filepath"
	"strings"
)

// SpreadsheetExtensions is the set of recognized price list extensions.
var SpreadsheetExtensions = map[string]string{
	".xlsx": "Excel",
	".xls":  "Excel (Legacy)",
}

// IsSpreadsheet reports whether path has a recognized spreadsheet
// extension. Matching is case-insensitive ("price.XLS" counts).
func IsSpreadsheet(path string) bool {
	_, ok := SpreadsheetExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Sheet represents a single worksheet's data. Rows includes the header
// row when present. Err is set when the sheet itself could not be read
// even though the containing file opened fine; such sheets carry no
// rows and are skipped by callers.
type Sheet struct {
	Name string     `json:"name"`
	Rows [][]string `json:"rows"`
	Err  error      `json:"-"`
}

// Workbook represents a parsed spreadsheet file with all its sheets.
type Workbook struct {
	Sheets []Sheet `json:"sheets"`
}

// GetSheet returns a specific sheet by name, or nil if not found.
func (wb *Workbook) GetSheet(name string) *Sheet {
	for i := range wb.Sheets {
		if wb.Sheets[i].Name == name {
			return &wb.Sheets[i]
		}
	}
	return nil
}

// DataRowCount returns the number of rows after the header across all
// readable sheets.
func (wb *Workbook) DataRowCount() int {
	count := 0
	for _, s := range wb.Sheets {
		if s.Err == nil && len(s.Rows) > 1 {
			count += len(s.Rows) - 1
		}
	}
	return count
}
