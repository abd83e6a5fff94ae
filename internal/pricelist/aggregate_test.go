package pricelist

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/klytics/pricekit/internal/formats"
	"github.com/klytics/pricekit/internal/formats/xlsx"
)

// writeFixture creates a real .xlsx file with the given sheets.
func writeFixture(t *testing.T, path string, sheets ...formats.Sheet) {
	t.Helper()
	if err := xlsx.WriteFile(&formats.Workbook{Sheets: sheets}, path); err != nil {
		t.Fatalf("could not write fixture %s: %v", path, err)
	}
}

func TestAggregateSingleFile(t *testing.T) {
	srcDir := t.TempDir()
	outFile := filepath.Join(t.TempDir(), "aggregated.xlsx")

	writeFixture(t, filepath.Join(srcDir, "A.xlsx"), formats.Sheet{
		Name: "Sheet1",
		Rows: [][]string{
			{"item", "price"},
			{"bolt", "10"},
		},
	})

	agg := &Aggregator{SourceDir: srcDir, OutputFile: outFile}
	report, err := agg.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !report.OutputWritten || report.RowsWritten != 1 {
		t.Fatalf("report = %+v, want 1 row written", report)
	}

	table, err := LoadAggregated(outFile)
	if err != nil {
		t.Fatalf("could not load aggregated output: %v", err)
	}

	wantHeader := []string{"source_file", "sheet_name", "row_number", "item", "price"}
	if !reflect.DeepEqual(table.Header(), wantHeader) {
		t.Errorf("header = %v, want %v", table.Header(), wantHeader)
	}

	row := table.Rows()[0]
	if row.SourceFile != "A.xlsx" || row.SheetName != "Sheet1" || row.RowNumber != 2 {
		t.Errorf("provenance = %q/%q/%d, want A.xlsx/Sheet1/2",
			row.SourceFile, row.SheetName, row.RowNumber)
	}
	if row.Cell("item") != "bolt" || row.Cell("price") != "10" {
		t.Errorf("cells = %v", row.Cells)
	}
}

func TestAggregateRowCountAcrossFiles(t *testing.T) {
	srcDir := t.TempDir()
	outFile := filepath.Join(t.TempDir(), "aggregated.xlsx")

	writeFixture(t, filepath.Join(srcDir, "A.xlsx"),
		formats.Sheet{Name: "Parts", Rows: [][]string{
			{"item", "price"},
			{"bolt", "10"},
			{"nut", "5"},
		}},
		formats.Sheet{Name: "Empty", Rows: [][]string{
			{"item", "price"},
		}},
	)
	writeFixture(t, filepath.Join(srcDir, "B.xlsx"),
		formats.Sheet{Name: "Sheet1", Rows: [][]string{
			{"sku", "item"},
			{"S-1", "washer"},
		}},
	)

	agg := &Aggregator{SourceDir: srcDir, OutputFile: outFile}
	report, err := agg.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.RowsWritten != 3 {
		t.Errorf("rows written = %d, want 3 (2 from A.xlsx + 1 from B.xlsx)", report.RowsWritten)
	}
	if report.ExtractedRows() != 3 {
		t.Errorf("extracted rows = %d, want 3", report.ExtractedRows())
	}

	// The empty sheet is reported as skipped, not an error.
	var emptySheet *SheetReport
	for i := range report.Files[0].Sheets {
		if report.Files[0].Sheets[i].Name == "Empty" {
			emptySheet = &report.Files[0].Sheets[i]
		}
	}
	if emptySheet == nil || !emptySheet.Empty || emptySheet.Err != nil {
		t.Errorf("empty sheet report = %+v, want Empty=true with no error", emptySheet)
	}

	// Provenance columns lead regardless of input column ordering.
	table, err := LoadAggregated(outFile)
	if err != nil {
		t.Fatalf("could not load aggregated output: %v", err)
	}
	header := table.Header()
	if header[0] != ColSourceFile || header[1] != ColSheetName || header[2] != ColRowNumber {
		t.Errorf("header starts with %v, want provenance columns first", header[:3])
	}
}

func TestAggregateEmptyDirectory(t *testing.T) {
	srcDir := t.TempDir()
	outFile := filepath.Join(t.TempDir(), "aggregated.xlsx")

	agg := &Aggregator{SourceDir: srcDir, OutputFile: outFile}
	report, err := agg.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(report.Files) != 0 || report.OutputWritten {
		t.Errorf("report = %+v, want no files and no output", report)
	}
	if _, err := os.Stat(outFile); !os.IsNotExist(err) {
		t.Error("no output file should be written for an empty directory")
	}
}

func TestAggregateMissingDirectory(t *testing.T) {
	agg := &Aggregator{
		SourceDir:  filepath.Join(t.TempDir(), "does-not-exist"),
		OutputFile: filepath.Join(t.TempDir(), "aggregated.xlsx"),
	}
	if _, err := agg.Run(); err == nil {
		t.Error("expected error for missing source directory")
	}
}

func TestAggregateSkipsUnreadableFile(t *testing.T) {
	srcDir := t.TempDir()
	outFile := filepath.Join(t.TempDir(), "aggregated.xlsx")

	writeFixture(t, filepath.Join(srcDir, "good.xlsx"), formats.Sheet{
		Name: "Sheet1",
		Rows: [][]string{
			{"item"},
			{"bolt"},
		},
	})
	if err := os.WriteFile(filepath.Join(srcDir, "broken.xlsx"), []byte("not a spreadsheet"), 0644); err != nil {
		t.Fatal(err)
	}

	agg := &Aggregator{SourceDir: srcDir, OutputFile: outFile}
	report, err := agg.Run()
	if err != nil {
		t.Fatalf("Run failed: %v — a broken file must never abort the run", err)
	}

	if report.RowsWritten != 1 {
		t.Errorf("rows written = %d, want 1 (only from the readable file)", report.RowsWritten)
	}

	skippedFiles, _ := report.SkippedUnits()
	if skippedFiles != 1 {
		t.Errorf("skipped files = %d, want 1", skippedFiles)
	}
}

func TestAggregateSkipsBrokenSheet(t *testing.T) {
	agg := &Aggregator{}
	table := NewTable()

	bad := formats.Sheet{Name: "Damaged", Err: errors.New("shared strings table missing")}
	sr := agg.addSheet(table, "A.xlsx", bad)
	if sr.Err == nil || sr.Error == "" {
		t.Errorf("broken sheet report = %+v, want its error recorded", sr)
	}
	if sr.Rows != 0 || table.Len() != 0 {
		t.Errorf("broken sheet contributed rows: report %+v, table len %d", sr, table.Len())
	}

	// A later sheet in the same file still lands in the table.
	good := formats.Sheet{
		Name: "Parts",
		Rows: [][]string{
			{"item"},
			{"bolt"},
		},
	}
	sr = agg.addSheet(table, "A.xlsx", good)
	if sr.Rows != 1 || table.Len() != 1 {
		t.Errorf("good sheet after broken one: report %+v, table len %d, want 1 row", sr, table.Len())
	}
}

func TestAggregateOutputWriteFailure(t *testing.T) {
	srcDir := t.TempDir()
	writeFixture(t, filepath.Join(srcDir, "A.xlsx"), formats.Sheet{
		Name: "Sheet1",
		Rows: [][]string{
			{"item"},
			{"bolt"},
		},
	})

	// A directory as the output path makes the save fail.
	agg := &Aggregator{SourceDir: srcDir, OutputFile: t.TempDir()}
	report, err := agg.Run()
	if err == nil {
		t.Fatal("expected error when the output file cannot be written")
	}
	if report == nil {
		t.Fatal("report must still be returned on write failure")
	}
	if report.OutputWritten {
		t.Error("report claims success after a failed write")
	}
	if report.ExtractedRows() != 1 {
		t.Errorf("extracted rows = %d, want 1 (extraction happened before the write)", report.ExtractedRows())
	}
}

func TestAggregateNoExtractableRows(t *testing.T) {
	srcDir := t.TempDir()
	outFile := filepath.Join(t.TempDir(), "aggregated.xlsx")

	writeFixture(t, filepath.Join(srcDir, "empty.xlsx"), formats.Sheet{
		Name: "Sheet1",
		Rows: [][]string{{"item", "price"}},
	})

	agg := &Aggregator{SourceDir: srcDir, OutputFile: outFile}
	report, err := agg.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.OutputWritten {
		t.Error("no output should be written when zero rows were extracted")
	}
	if _, err := os.Stat(outFile); !os.IsNotExist(err) {
		t.Error("output file must not exist after a zero-row run")
	}
}

func TestDiscoverCaseInsensitiveExtensions(t *testing.T) {
	srcDir := t.TempDir()
	for _, name := range []string{"a.xlsx", "b.XLS", "c.xls", "notes.txt", "d.XLSX"} {
		if err := os.WriteFile(filepath.Join(srcDir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := Discover(srcDir)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	if len(files) != 4 {
		t.Fatalf("discovered %d files, want 4 (txt excluded): %v", len(files), files)
	}
	for _, f := range files {
		if filepath.Ext(f) == ".txt" {
			t.Errorf("non-spreadsheet file discovered: %s", f)
		}
	}
}
