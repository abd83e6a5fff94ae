// Package output provides formatting utilities for CLI output.
package output

import (
	"encoding/json"
	"io"
	"os"
)

// Writer handles formatted output to a destination.
type Writer struct {
	dest io.Writer
}

// NewWriter creates a new output writer targeting stdout.
func NewWriter() *Writer {
	return &Writer{dest: os.Stdout}
}

// WriteJSON encodes a value as pretty-printed JSON.
func (w *Writer) WriteJSON(v interface{}) error {
	enc := json.NewEncoder(w.dest)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
