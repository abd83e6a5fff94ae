package pricelist

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klytics/pricekit/internal/formats"
	"github.com/klytics/pricekit/internal/formats/xls"
	"github.com/klytics/pricekit/internal/formats/xlsx"
)

// SheetReport records the outcome of reading one sheet. Error mirrors
// Err for JSON output.
type SheetReport struct {
	Name  string `json:"name"`
	Rows  int    `json:"rows"`
	Empty bool   `json:"empty,omitempty"`
	Error string `json:"error,omitempty"`
	Err   error  `json:"-"`
}

// FileReport records the outcome of processing one source file.
type FileReport struct {
	Name   string        `json:"name"`
	Path   string        `json:"path"`
	Sheets []SheetReport `json:"sheets,omitempty"`
	Error  string        `json:"error,omitempty"`
	Err    error         `json:"-"`
}

// Report summarizes a full aggregation run.
type Report struct {
	SourceDir     string       `json:"sourceDir"`
	OutputFile    string       `json:"outputFile,omitempty"`
	Files         []FileReport `json:"files"`
	RowsWritten   int          `json:"rowsWritten"`
	OutputWritten bool         `json:"outputWritten"`
}

// Aggregator combines every sheet of every spreadsheet in SourceDir
// into one provenance-tagged .xlsx at OutputFile. Failures are
// contained per sheet and per file: a broken unit is reported and
// skipped, never fatal to the run.
type Aggregator struct {
	SourceDir  string
	OutputFile string

	// Logf receives human-readable progress lines. Nil disables logging.
	Logf func(format string, args ...interface{})

	// OnFileDone is called after each source file, for progress display.
	OnFileDone func(done, total int, name string)
}

func (a *Aggregator) logf(format string, args ...interface{}) {
	if a.Logf != nil {
		a.Logf(format, args...)
	}
}

// Discover lists the spreadsheet files directly inside dir, sorted by
// name. Extension matching is case-insensitive.
func Discover(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("could not access price directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("could not read price directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if formats.IsSpreadsheet(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

// openWorkbook picks the reader matching the file extension.
func openWorkbook(path string) (*formats.Workbook, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return xlsx.ReadFile(path)
	case ".xls":
		return xls.ReadFile(path)
	default:
		return nil, fmt.Errorf("unsupported spreadsheet format: %s", path)
	}
}

// Run performs one full aggregation. It returns the per-unit report
// and an error only for run-level failures (missing source directory,
// output write failure). Empty input is a clean no-op: the report
// simply shows no files or no rows, and no output file is written.
func (a *Aggregator) Run() (*Report, error) {
	report := &Report{SourceDir: a.SourceDir}

	files, err := Discover(a.SourceDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return report, nil
	}

	a.logf("Found %d price list files to process...", len(files))

	table := NewTable()
	for i, path := range files {
		name := filepath.Base(path)
		fr := FileReport{Name: name, Path: path}
		a.logf("Processing file: %s...", name)

		wb, err := openWorkbook(path)
		if err != nil {
			fr.Err = err
			fr.Error = err.Error()
			a.logf("Could not process file %s. Error: %v", name, err)
		} else {
			for _, sheet := range wb.Sheets {
				sr := a.addSheet(table, name, sheet)
				fr.Sheets = append(fr.Sheets, sr)
			}
		}

		report.Files = append(report.Files, fr)
		if a.OnFileDone != nil {
			a.OnFileDone(i+1, len(files), name)
		}
	}

	if table.Len() == 0 {
		return report, nil
	}

	a.logf("Writing aggregated data to %s...", a.OutputFile)
	if err := xlsx.WriteFile(table.Workbook("Sheet1"), a.OutputFile); err != nil {
		return report, fmt.Errorf("failed to write aggregated file: %w", err)
	}

	report.OutputFile = a.OutputFile
	report.RowsWritten = table.Len()
	report.OutputWritten = true
	return report, nil
}

func (a *Aggregator) addSheet(table *Table, fileName string, sheet formats.Sheet) SheetReport {
	sr := SheetReport{Name: sheet.Name}
	a.logf("  - Reading sheet: %q", sheet.Name)

	switch {
	case sheet.Err != nil:
		sr.Err = sheet.Err
		sr.Error = sheet.Err.Error()
		a.logf("    ...Could not read sheet %q. Error: %v", sheet.Name, sheet.Err)
	case len(sheet.Rows) < 2:
		sr.Empty = true
		a.logf("    ...Sheet is empty. Skipping.")
	default:
		sr.Rows = table.AddSheet(fileName, sheet.Name, sheet.Rows)
	}

	return sr
}

// ExtractedRows returns how many data rows the run pulled out of all
// readable sheets.
func (r *Report) ExtractedRows() int {
	total := 0
	for _, f := range r.Files {
		for _, s := range f.Sheets {
			total += s.Rows
		}
	}
	return total
}

// SkippedUnits returns how many files and sheets were skipped due to
// read failures.
func (r *Report) SkippedUnits() (files, sheets int) {
	for _, f := range r.Files {
		if f.Err != nil {
			files++
		}
		for _, s := range f.Sheets {
			if s.Err != nil {
				sheets++
			}
		}
	}
	return files, sheets
}
