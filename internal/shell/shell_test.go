package shell

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewSessionHistoryFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	s, err := NewSession("aggregated.xlsx")
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if !strings.HasSuffix(s.HistoryFile, filepath.Join(".pricekit", "shell_history")) {
		t.Errorf("history file = %q", s.HistoryFile)
	}
	if _, err := os.Stat(filepath.Dir(s.HistoryFile)); err != nil {
		t.Errorf("history directory not created: %v", err)
	}
}

func TestNewSessionHistoryDirUnavailable(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	// A file where the config directory should be makes MkdirAll fail.
	if err := os.WriteFile(filepath.Join(home, ".pricekit"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := NewSession("aggregated.xlsx")
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if s.HistoryFile != "" {
		t.Errorf("history file = %q, want disabled when the directory cannot be created", s.HistoryFile)
	}
}
