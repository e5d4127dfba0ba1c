package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/funvibe/blisp/internal/config"
	"github.com/funvibe/blisp/internal/evaluator"
	"github.com/funvibe/blisp/internal/history"
)

// runREPL reads one program per line. Every line is a complete single
// expression with its own fresh environment, matching file semantics:
// bindings do not leak from one line to the next.
func runREPL(cfg *Config) {
	useColor := colorEnabled(cfg, os.Stdout)
	prompt := cfg.Prompt
	if useColor {
		prompt = ansiCyan + cfg.Prompt + ansiReset
	}

	store := openHistory(cfg)
	if store != nil {
		defer store.Close()
	}

	fmt.Printf("blisp %s (:quit to exit, :history for recent input)\n", config.Version)

	// One reader serves both the prompt lines and the read builtin: stdin
	// gets a single buffer for the whole session.
	in := evaluator.NewLineReader(os.Stdin)
	for {
		fmt.Print(prompt)
		raw, err := in.ReadLine()
		if err != nil {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch line {
		case ":quit", ":exit", ":q":
			return
		case ":history":
			showHistory(store)
			continue
		}

		if store != nil {
			// History write failure never interrupts the session.
			_ = store.Append(line)
		}

		result, errs := runSource(line, "<repl>", cfg, in)
		if len(errs) > 0 {
			printErrors(errs, cfg)
			continue
		}
		if result != nil && result.Type() != evaluator.UNIT_OBJ {
			fmt.Println(result.Inspect())
		}
	}
}

func openHistory(cfg *Config) *history.Store {
	path := cfg.History
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(home, ".blisp_history.db")
	}
	store, err := history.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: history disabled: %s\n", err)
		return nil
	}
	return store
}

func showHistory(store *history.Store) {
	if store == nil {
		fmt.Println("history is disabled")
		return
	}
	entries, err := store.Recent(20)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", err)
		return
	}
	for _, e := range entries {
		fmt.Println(e)
	}
}
