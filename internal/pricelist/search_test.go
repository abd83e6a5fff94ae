package pricelist

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/klytics/pricekit/internal/formats"
)

func buildSearchTable(t *testing.T) *Table {
	t.Helper()
	table := NewTable()
	table.AddSheet("A.xlsx", "Sheet1", [][]string{
		{"item", "price"},
		{"bolt", "10"},
		{"Steel Nut", "5"},
	})
	table.AddSheet("B.xlsx", "Catalog", [][]string{
		{"sku", "description"},
		{"S-1", "galvanized bolt, large"},
	})
	return table
}

func TestSearchCaseInsensitive(t *testing.T) {
	table := buildSearchTable(t)

	for _, query := range []string{"steel", "STEEL", "StEeL"} {
		res := table.Search(query)
		if len(res.Matches) != 1 {
			t.Fatalf("Search(%q) returned %d matches, want 1", query, len(res.Matches))
		}
		if res.Matches[0].Row.Cell("item") != "Steel Nut" {
			t.Errorf("Search(%q) matched wrong row: %v", query, res.Matches[0].Row.Cells)
		}
	}
}

func TestSearchNoResults(t *testing.T) {
	table := buildSearchTable(t)
	res := table.Search("titanium")
	if len(res.Matches) != 0 {
		t.Errorf("expected no matches, got %d", len(res.Matches))
	}
	if len(res.DisplayColumns) != 0 {
		t.Errorf("expected no display columns, got %v", res.DisplayColumns)
	}
}

func TestSearchDisplayColumnsUnion(t *testing.T) {
	table := buildSearchTable(t)

	// "bolt" matches item in A.xlsx and description in B.xlsx.
	res := table.Search("bolt")
	if len(res.Matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(res.Matches))
	}

	want := []string{"description", "item"}
	if !reflect.DeepEqual(res.DisplayColumns, want) {
		t.Errorf("display columns = %v, want %v (alphabetical)", res.DisplayColumns, want)
	}
}

func TestSearchProvenanceNeverAMatchColumn(t *testing.T) {
	table := buildSearchTable(t)

	// "A.xlsx" only appears in the source_file provenance field.
	res := table.Search("A.xlsx")
	if len(res.Matches) != 2 {
		t.Fatalf("got %d matches, want 2 (both rows from A.xlsx)", len(res.Matches))
	}
	if len(res.DisplayColumns) != 0 {
		t.Errorf("provenance columns listed as matches: %v", res.DisplayColumns)
	}
	for _, m := range res.Matches {
		if len(m.Columns) != 0 {
			t.Errorf("match reported data columns %v for a provenance-only hit", m.Columns)
		}
	}
}

func TestSearchEmptyCellsNeverMatch(t *testing.T) {
	table := buildSearchTable(t)

	// Rows from A.xlsx have no sku cell; searching for content unique
	// to B.xlsx must not pick them up.
	res := table.Search("S-1")
	if len(res.Matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(res.Matches))
	}
	if res.Matches[0].Row.SourceFile != "B.xlsx" {
		t.Errorf("matched row from %s, want B.xlsx", res.Matches[0].Row.SourceFile)
	}
}

func TestAggregateThenSearchRoundTrip(t *testing.T) {
	srcDir := t.TempDir()
	outFile := filepath.Join(t.TempDir(), "aggregated.xlsx")

	writeFixture(t, filepath.Join(srcDir, "A.xlsx"), formats.Sheet{
		Name: "Sheet1",
		Rows: [][]string{
			{"item", "price"},
			{"bolt", "10"},
			{"nut", "5"},
		},
	})
	writeFixture(t, filepath.Join(srcDir, "B.xlsx"), formats.Sheet{
		Name: "Sheet1",
		Rows: [][]string{
			{"item", "price"},
			{"washer", "2"},
		},
	})

	agg := &Aggregator{SourceDir: srcDir, OutputFile: outFile}
	if _, err := agg.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	table, err := LoadAggregated(outFile)
	if err != nil {
		t.Fatalf("could not load aggregated output: %v", err)
	}

	// "washer" appears in exactly one cell of one source file.
	res := table.Search("washer")
	if len(res.Matches) != 1 {
		t.Fatalf("got %d matches, want exactly 1", len(res.Matches))
	}

	row := res.Matches[0].Row
	if row.SourceFile != "B.xlsx" || row.SheetName != "Sheet1" || row.RowNumber != 2 {
		t.Errorf("provenance = %q/%q/%d, want B.xlsx/Sheet1/2",
			row.SourceFile, row.SheetName, row.RowNumber)
	}
	if !reflect.DeepEqual(res.Matches[0].Columns, []string{"item"}) {
		t.Errorf("matched columns = %v, want [item]", res.Matches[0].Columns)
	}
	if row.Cell("price") != "2" {
		t.Errorf("price cell = %q, want 2", row.Cell("price"))
	}
}

func TestLoadAggregatedMissingFile(t *testing.T) {
	if _, err := LoadAggregated(filepath.Join(t.TempDir(), "missing.xlsx")); err == nil {
		t.Error("expected error for missing aggregated file")
	}
}
