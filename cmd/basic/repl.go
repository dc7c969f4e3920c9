package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/peterh/liner"

	"github.com/funvibe/basic/internal/ast"
	"github.com/funvibe/basic/internal/backend"
	"github.com/funvibe/basic/internal/config"
	"github.com/funvibe/basic/internal/diagnostics"
	"github.com/funvibe/basic/internal/evaluator"
	"github.com/funvibe/basic/internal/history"
	"github.com/funvibe/basic/internal/prettyprinter"
)

const helpText = `REPL commands:
  :quit    Exit the REPL
  :reset   Forget all variables
  :ast     Toggle printing the syntax tree of each input
  :help    Show this help
`

// replResult is what one input produced.
type replResult struct {
	Output string
	Value  string
	// Error is the rendered diagnostic; empty on success.
	Error string
}

// replBackend evaluates REPL inputs, locally or on a server.
type replBackend interface {
	Eval(ctx context.Context, code string) (replResult, error)
	Reset(ctx context.Context) error
	// Source is the name recorded in history.
	Source() string
}

type localBackend struct {
	cfg    *config.Config
	interp *evaluator.Interpreter
	root   *evaluator.Context
}

func newLocalBackend(cfg *config.Config) *localBackend {
	return &localBackend{cfg: cfg, interp: newInterpreter(cfg), root: evaluator.NewRootContext()}
}

func (b *localBackend) Eval(ctx context.Context, code string) (replResult, error) {
	b.interp.Context = ctx
	_, value, err := backend.Run(config.StdinSourceName, code, b.interp, b.root)
	if err != nil {
		return replResult{Error: err.Render()}, nil
	}
	return replResult{Value: evaluator.ProgramValue(value).Inspect()}, nil
}

func (b *localBackend) Reset(context.Context) error {
	b.root = evaluator.NewRootContext()
	return nil
}

func (b *localBackend) Source() string { return "repl" }

type repl struct {
	cfg     *config.Config
	ln      *liner.State
	backend replBackend
	store   *history.Store
	session string
	showAST bool
	out     io.Writer
}

func cmdRepl(cfg *config.Config) int {
	return runRepl(cfg, newLocalBackend(cfg), "BASIC REPL")
}

func runRepl(cfg *config.Config, b replBackend, title string) int {
	fmt.Printf("%s\nCtrl+C cancels input, Ctrl+D exits. Type :help for commands.\n", title)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetMultiLineMode(true)

	r := &repl{cfg: cfg, ln: ln, backend: b, session: history.NewSessionID(), out: os.Stdout}
	if cfg.HistoryEnabled() {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: history disabled: %s\n", err)
		} else {
			r.store = store
			defer r.closeHistory()
			r.loadHistory()
		}
	}

	for {
		code, ok := r.read()
		if !ok {
			fmt.Println()
			return 0
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if quit := r.command(trimmed); quit {
				return 0
			}
			continue
		}

		r.eval(code)
		ln.AppendHistory(historyLine(code))
	}
}

// read collects lines until they parse or fail somewhere other than the end
// of input.
func (r *repl) read() (string, bool) {
	var b strings.Builder
	for {
		prompt := r.cfg.Repl.Prompt
		if b.Len() > 0 {
			prompt = r.cfg.Repl.Continuation
		}
		line, err := r.ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !incomplete(src) {
			return src, true
		}
	}
}

// incomplete reports whether src only fails because it ends too early.
func incomplete(src string) bool {
	if strings.TrimSpace(src) == "" {
		return false
	}
	_, err := backend.ParseOnly(config.StdinSourceName, src)
	return err != nil && err.Code == diagnostics.ErrP001 && err.Start.Index >= len(src)
}

func (r *repl) command(cmd string) (quit bool) {
	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return true
	case ":reset":
		if err := r.backend.Reset(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		} else {
			fmt.Fprintln(r.out, "environment reset")
		}
	case ":ast":
		r.showAST = !r.showAST
		fmt.Fprintf(r.out, "syntax tree display %s\n", onOff(r.showAST))
	case ":help":
		fmt.Fprint(r.out, helpText)
	default:
		fmt.Fprintf(r.out, "unknown command %s. Type :help for commands.\n", cmd)
	}
	return false
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (r *repl) eval(code string) {
	if r.showAST {
		if root, err := backend.ParseOnly(config.StdinSourceName, code); err == nil {
			fmt.Fprint(r.out, treeString(root))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	res, err := r.backend.Eval(ctx, code)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return
	}

	fmt.Fprint(r.out, res.Output)
	if res.Error != "" {
		msg := res.Error
		if useColor(r.cfg, os.Stderr) {
			msg = red(msg)
		}
		fmt.Fprintln(os.Stderr, msg)
	} else {
		val := res.Value
		if useColor(r.cfg, os.Stdout) {
			val = green(val)
		}
		fmt.Fprintln(r.out, val)
	}
	r.record(code, res)
}

func treeString(root ast.Node) string {
	p := prettyprinter.NewTreePrinter()
	root.Accept(p)
	return p.String()
}

func (r *repl) record(code string, res replResult) {
	if r.store == nil {
		return
	}
	_, err := r.store.Record(context.Background(), history.Entry{
		Session: r.session,
		Source:  r.backend.Source(),
		Input:   code,
		Result:  res.Value,
		Error:   res.Error,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", err)
	}
}

func (r *repl) loadHistory() {
	entries, err := r.store.Recent(context.Background(), r.cfg.History.Limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", err)
		return
	}
	for _, e := range entries {
		r.ln.AppendHistory(historyLine(e.Input))
	}
}

func (r *repl) closeHistory() {
	if _, err := r.store.Prune(context.Background(), r.cfg.History.Limit); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", err)
	}
	_ = r.store.Close()
}

// historyLine folds a multi-line input onto one line; ';' separates
// statements just like a newline.
func historyLine(code string) string {
	return strings.ReplaceAll(code, "\n", "; ")
}
