// Package watch provides a file system watcher that re-runs the price
// list aggregation whenever a spreadsheet in the watched directory
// changes. Every trigger is a full re-aggregation, never incremental.
package watch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/klytics/pricekit/internal/formats"
)

// Config holds the watcher configuration.
type Config struct {
	Dir      string
	Debounce int // milliseconds to wait before re-aggregating
}

// Event records one handled file system event.
type Event struct {
	Time      time.Time `json:"time"`
	Path      string    `json:"path"`
	Operation string    `json:"operation"`
	Status    string    `json:"status"` // "aggregated", "error"
	Error     string    `json:"error,omitempty"`
}

// Handler re-runs the aggregation. Called after the debounce window.
type Handler func() error

// Watcher monitors the price directory and triggers re-aggregation.
type Watcher struct {
	Config  Config
	Logger  *log.Logger
	Handler Handler
	Events  []Event

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	debounce map[string]*time.Timer
}

// New creates a Watcher for the given configuration.
func New(config Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create file watcher: %w", err)
	}

	if config.Debounce <= 0 {
		config.Debounce = 500
	}

	return &Watcher{
		Config:   config,
		Logger:   log.New(os.Stderr, "[watch] ", log.LstdFlags),
		watcher:  fsw,
		debounce: make(map[string]*time.Timer),
	}, nil
}

// Start begins watching. It blocks until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	absDir, err := filepath.Abs(w.Config.Dir)
	if err != nil {
		return fmt.Errorf("could not resolve %s: %w", w.Config.Dir, err)
	}
	if err := w.watcher.Add(absDir); err != nil {
		return fmt.Errorf("could not watch %s: %w", absDir, err)
	}

	w.Logger.Printf("Watching %s for price list changes", absDir)

	for {
		select {
		case <-ctx.Done():
			w.Logger.Println("Stopping watcher")
			return w.watcher.Close()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.Logger.Printf("Error: %v", err)
		}
	}
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Only process create and write events
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	path := event.Name
	if !w.matches(path) {
		return
	}

	// Debounce: editors and copies fire bursts of events per file
	w.mu.Lock()
	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}
	w.debounce[path] = time.AfterFunc(time.Duration(w.Config.Debounce)*time.Millisecond, func() {
		w.process(path, event.Op.String())
	})
	w.mu.Unlock()
}

// matches reports whether path is a spreadsheet worth re-aggregating
// for. Office lock files (~$...) are ignored.
func (w *Watcher) matches(path string) bool {
	if !formats.IsSpreadsheet(path) {
		return false
	}
	base := filepath.Base(path)
	if strings.HasPrefix(base, "~$") || strings.HasPrefix(base, ".~") {
		return false
	}
	return true
}

func (w *Watcher) process(path, operation string) {
	evt := Event{
		Time:      time.Now(),
		Path:      path,
		Operation: operation,
	}

	if w.Handler != nil {
		if err := w.Handler(); err != nil {
			evt.Status = "error"
			evt.Error = err.Error()
			w.Logger.Printf("Re-aggregation after %s failed: %v", filepath.Base(path), err)
		} else {
			evt.Status = "aggregated"
			w.Logger.Printf("Re-aggregated after change to %s", filepath.Base(path))
		}
	} else {
		evt.Status = "aggregated"
		w.Logger.Printf("Change detected in %s [no handler]", filepath.Base(path))
	}

	w.mu.Lock()
	w.Events = append(w.Events, evt)
	w.mu.Unlock()
}
