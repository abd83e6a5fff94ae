// Package shell provides the interactive pricekit search REPL.
// The aggregated table is loaded once and queried repeatedly, so
// successive searches skip the file-load cost.
package shell

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/klytics/pricekit/internal/output"
	"github.com/klytics/pricekit/internal/pricelist"
)

// Session manages an interactive search session over one aggregated file.
type Session struct {
	AggregatedFile string
	HistoryFile    string
	StartTime      time.Time

	table   *pricelist.Table
	queries int
}

// NewSession creates a session for the given aggregated file.
func NewSession(aggregatedFile string) (*Session, error) {
	home, _ := os.UserHomeDir()
	histFile := filepath.Join(home, ".pricekit", "shell_history")

	// Without the directory, run with history disabled instead of
	// letting readline fail later.
	if err := os.MkdirAll(filepath.Dir(histFile), 0755); err != nil {
		histFile = ""
	}

	return &Session{
		AggregatedFile: aggregatedFile,
		HistoryFile:    histFile,
		StartTime:      time.Now(),
	}, nil
}

// load (re)reads the aggregated file into memory.
func (s *Session) load() error {
	table, err := pricelist.LoadAggregated(s.AggregatedFile)
	if err != nil {
		return err
	}
	s.table = table
	return nil
}

// Run starts the REPL loop. Blocks until 'exit' or Ctrl+D.
func (s *Session) Run(ctx context.Context) error {
	if err := s.load(); err != nil {
		return fmt.Errorf("%w — run 'pricekit aggregate' first", err)
	}

	completer := readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("reload"),
		readline.PcItem("exit"),
		readline.PcItem("quit"),
	)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "pricekit> ",
		HistoryFile:     s.HistoryFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Printf("pricekit — Interactive price search (%d rows loaded)\n", s.table.Len())
	fmt.Println("Type a query to search, 'reload' after re-aggregating, 'exit' to quit.")
	fmt.Println()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch line {
		case "exit", "quit":
			elapsed := time.Since(s.StartTime).Round(time.Second)
			fmt.Printf("\nSession ended. %d queries run in %s.\n", s.queries, elapsed)
			return nil
		case "help":
			s.printHelp()
		case "reload":
			if err := s.load(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
				continue
			}
			fmt.Printf("Reloaded %s (%d rows)\n", s.AggregatedFile, s.table.Len())
		default:
			s.queries++
			output.PrintSearchResult(os.Stdout, s.table.Search(line))
		}
	}

	return nil
}

func (s *Session) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  <query>   search all cells for the text (case-insensitive)")
	fmt.Println("  reload    re-read the aggregated file from disk")
	fmt.Println("  help      show this help")
	fmt.Println("  exit      leave the shell")
}
