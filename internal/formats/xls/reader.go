// Package xls reads legacy binary .xls (BIFF) spreadsheets.
package xls

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/shakinm/xlsReader/xls/structure"

	"github.com/klytics/pricekit/internal/formats"
)

// ReadFile reads a legacy .xls file and returns its structured data in
// the same shape the .xlsx reader produces. A sheet that cannot be
// decoded is recorded with its error instead of failing the workbook.
func ReadFile(path string) (*formats.Workbook, error) {
	workbook, err := xls.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s — is this a valid .xls file? %w", path, err)
	}

	wb := &formats.Workbook{}
	for i := 0; i < workbook.GetNumberSheets(); i++ {
		sheet, err := workbook.GetSheet(i)
		if err != nil || sheet == nil {
			if err == nil {
				err = fmt.Errorf("sheet %d is missing", i+1)
			}
			wb.Sheets = append(wb.Sheets, formats.Sheet{
				Name: fmt.Sprintf("Sheet%d", i+1),
				Err:  fmt.Errorf("could not read sheet %d: %w", i+1, err),
			})
			continue
		}

		s := formats.Sheet{Name: sheet.GetName()}
		for _, row := range sheet.GetRows() {
			s.Rows = append(s.Rows, rowValues(row.GetCols()))
		}
		wb.Sheets = append(wb.Sheets, s)
	}

	return wb, nil
}

// cellValue is the part of the BIFF cell record surface the converter
// needs.
type cellValue interface {
	GetString() string
	GetFloat64() float64
	GetInt64() int64
}

func rowValues(cols []structure.CellData) []string {
	out := make([]string, 0, len(cols))
	for _, col := range cols {
		out = append(out, cellText(col))
	}
	return out
}

// cellText converts one BIFF cell to its text representation. Numeric
// records render their stored value even when it is zero; only blank
// records stay empty.
func cellText(c cellValue) string {
	if val := c.GetString(); val != "" {
		return val
	}
	if isNumericRecord(c) {
		if f := c.GetFloat64(); f != 0 {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		if n := c.GetInt64(); n != 0 {
			return strconv.FormatInt(n, 10)
		}
		return "0"
	}
	if f := c.GetFloat64(); f != 0 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	if n := c.GetInt64(); n != 0 {
		return strconv.FormatInt(n, 10)
	}
	return ""
}

// isNumericRecord reports whether the cell is a numeric BIFF record
// (NUMBER or RK), where an empty string form still carries a value.
func isNumericRecord(c cellValue) bool {
	name := fmt.Sprintf("%T", c)
	return strings.HasSuffix(name, "Number") ||
		strings.HasSuffix(name, "Rk") ||
		strings.HasSuffix(name, "RK")
}
