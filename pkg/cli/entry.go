// Package cli implements the blisp command line entry point: running
// source files, one-shot -e expressions, piped stdin and the interactive
// REPL.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/blisp/internal/backend"
	"github.com/funvibe/blisp/internal/config"
	"github.com/funvibe/blisp/internal/diagnostics"
	"github.com/funvibe/blisp/internal/evaluator"
	"github.com/funvibe/blisp/internal/lexer"
	"github.com/funvibe/blisp/internal/parser"
	"github.com/funvibe/blisp/internal/pipeline"
	"github.com/funvibe/blisp/internal/resolver"
)

const (
	ansiRed   = "\x1b[31m"
	ansiCyan  = "\x1b[36m"
	ansiReset = "\x1b[0m"
)

// isSourceFile checks if a file has a recognized source extension
func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// colorEnabled decides whether ANSI colors go to the given terminal fd.
func colorEnabled(cfg *Config, f *os.File) bool {
	switch cfg.Color {
	case "always":
		return true
	case "never":
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// runSource pushes one program through the full pipeline and returns the
// result value. All four phases report through the same diagnostic type;
// the first error stops the run. in supplies lines to the read builtin;
// nil means stdin. The REPL passes its own reader so stdin has a single
// buffer across lines.
func runSource(sourceCode, filePath string, cfg *Config, in evaluator.LineReader) (evaluator.Object, []*diagnostics.DiagnosticError) {
	initialContext := pipeline.NewPipelineContext(sourceCode)
	initialContext.FilePath = filePath

	env := evaluator.NewEnvironment()
	exec := backend.NewExecutionProcessor(&backend.TreeWalkBackend{MaxSteps: cfg.MaxSteps, In: in}, env)

	processingPipeline := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&resolver.ResolverProcessor{Env: env},
		exec,
	)

	finalContext := processingPipeline.Run(initialContext)
	if finalContext.Failed() {
		return nil, finalContext.Errors
	}
	return exec.Result, nil
}

func printErrors(errs []*diagnostics.DiagnosticError, cfg *Config) {
	useColor := colorEnabled(cfg, os.Stderr)
	for _, err := range errs {
		if useColor {
			fmt.Fprintf(os.Stderr, "%s- %s%s\n", ansiRed, err.Error(), ansiReset)
		} else {
			fmt.Fprintf(os.Stderr, "- %s\n", err.Error())
		}
	}
}

func loadConfig() *Config {
	cwd, err := os.Getwd()
	if err != nil {
		return DefaultConfig()
	}
	found, err := FindConfig(cwd)
	if err != nil || found == "" {
		return DefaultConfig()
	}
	cfg, err := LoadConfig(found)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", err)
		return DefaultConfig()
	}
	return cfg
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Printf("Usage: %s <file%s>          run a program\n", prog, config.SourceFileExt)
	fmt.Printf("       %s -e '<expr>'       evaluate one expression\n", prog)
	fmt.Printf("       %s                   start the REPL (or run piped stdin)\n", prog)
	fmt.Println()
	fmt.Println("A program is a single expression, e.g. (. (tostring (+ 1 2)))")
}

// handleEval handles -e flag for expression execution mode.
func handleEval(cfg *Config) bool {
	if len(os.Args) < 2 || (os.Args[1] != "-e" && os.Args[1] != "--eval") {
		return false
	}
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Error: -e requires an expression argument")
		os.Exit(1)
	}

	result, errs := runSource(os.Args[2], "<eval>", cfg, nil)
	if len(errs) > 0 {
		printErrors(errs, cfg)
		os.Exit(1)
	}
	// The value of the expression is the point of -e mode; Unit is noise.
	if result != nil && result.Type() != evaluator.UNIT_OBJ {
		fmt.Println(result.Inspect())
	}
	return true
}

// Run is the CLI entry point.
func Run() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			// Print stack trace for debugging
			if os.Getenv("DEBUG") == "1" {
				panic(r) // Re-panic to get stack trace
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	cfg := loadConfig()

	if len(os.Args) == 2 {
		switch os.Args[1] {
		case "-v", "-version", "--version":
			fmt.Println("blisp " + config.Version)
			return
		case "-help", "--help", "help":
			printUsage()
			return
		}
	}

	if handleEval(cfg) {
		return
	}

	if len(os.Args) >= 2 {
		path := os.Args[1]
		if !isSourceFile(path) {
			if _, err := os.Stat(path); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
				os.Exit(1)
			}
		}
		sourceCode, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input: %s\n", err)
			os.Exit(1)
		}
		absPath, err := filepath.Abs(path)
		if err != nil {
			absPath = path
		}
		if _, errs := runSource(string(sourceCode), absPath, cfg, nil); len(errs) > 0 {
			printErrors(errs, cfg)
			os.Exit(1)
		}
		return
	}

	// No arguments: interactive terminal gets the REPL, a pipe gets run as
	// one program.
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		runREPL(cfg)
		return
	}

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %s\n", err)
		os.Exit(1)
	}
	if strings.TrimSpace(string(input)) == "" {
		return // Nothing to do
	}
	if _, errs := runSource(string(input), "<stdin>", cfg, nil); len(errs) > 0 {
		printErrors(errs, cfg)
		os.Exit(1)
	}
}
