// Package xlsx provides reading and writing capabilities for .xlsx (Excel) files.
package xlsx

import (
	"bytes"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/klytics/pricekit/internal/formats"
)

// ReadFile reads an .xlsx file and returns its structured data.
// A sheet that fails to read does not fail the workbook; its error is
// recorded on the sheet so callers can skip it and keep going.
func ReadFile(path string) (*formats.Workbook, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s — check that the path is correct", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s — is this a valid .xlsx file? %w", path, err)
	}
	defer f.Close()

	return readWorkbook(f), nil
}

// ReadBytes reads an .xlsx file from a byte slice and returns its structured data.
func ReadBytes(data []byte) (*formats.Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not read Excel data: %w", err)
	}
	defer f.Close()

	return readWorkbook(f), nil
}

func readWorkbook(f *excelize.File) *formats.Workbook {
	wb := &formats.Workbook{}

	for _, name := range f.GetSheetList() {
		sheet := formats.Sheet{Name: name}
		rows, err := f.GetRows(name)
		if err != nil {
			sheet.Err = fmt.Errorf("could not read sheet %q: %w", name, err)
		} else {
			sheet.Rows = rows
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}

	return wb
}
