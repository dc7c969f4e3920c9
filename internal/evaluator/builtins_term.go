package evaluator

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const clearScreenSeq = "\033[2J\033[H"

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// builtinClear clears the screen. Output that is not a terminal is left alone
// so redirected output stays free of escape sequences.
func builtinClear(in *Interpreter, ctx *Context) *RTResult {
	if IsTerminal(in.Out) && os.Getenv("TERM") != "dumb" {
		_, _ = io.WriteString(in.Out, clearScreenSeq)
	}
	return success(Null())
}
