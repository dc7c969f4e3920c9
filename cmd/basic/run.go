package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/funvibe/basic/internal/backend"
	"github.com/funvibe/basic/internal/config"
	"github.com/funvibe/basic/internal/diagnostics"
	"github.com/funvibe/basic/internal/evaluator"
)

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }

// useColor decides whether w gets ANSI colours.
func useColor(cfg *config.Config, w io.Writer) bool {
	switch cfg.Repl.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	return os.Getenv("NO_COLOR") == "" && os.Getenv("TERM") != "dumb" && evaluator.IsTerminal(w)
}

func printError(cfg *config.Config, err *diagnostics.DiagnosticError) {
	msg := err.Render()
	if useColor(cfg, os.Stderr) {
		msg = red(msg)
	}
	fmt.Fprintln(os.Stderr, msg)
}

func newInterpreter(cfg *config.Config) *evaluator.Interpreter {
	interp := evaluator.New()
	interp.MaxDepth = cfg.Interpreter.MaxDepth
	return interp
}

func runFile(cfg *config.Config, path string) int {
	input, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %s\n", err)
		return 1
	}
	return execute(cfg, filepath.Base(path), string(input), false)
}

// runSource runs code given with -e or piped on stdin. echo prints the
// resulting value the way the REPL does.
func runSource(cfg *config.Config, name, code string, echo bool) int {
	return execute(cfg, name, code, echo)
}

func execute(cfg *config.Config, name, code string, echo bool) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	interp := newInterpreter(cfg)
	interp.Context = ctx

	_, value, err := backend.Run(name, code, interp, evaluator.NewRootContext())
	if err != nil {
		printError(cfg, err)
		return 1
	}
	if echo {
		fmt.Println(evaluator.ProgramValue(value).Inspect())
	}
	return 0
}
