package search

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestSearchRequiresQuery(t *testing.T) {
	cmd := NewCommand()
	cmd.Flags().Bool("json", false, "")
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error when query argument is missing")
	}
}

func TestSearchMissingAggregatedFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cmd := NewCommand()
	cmd.Flags().Bool("json", false, "")
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"bolt", "--file", filepath.Join(t.TempDir(), "missing.xlsx")})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error when the aggregated file does not exist")
	}
	if !strings.Contains(err.Error(), "pricekit aggregate") {
		t.Errorf("error should tell the user to aggregate first, got: %v", err)
	}
}
