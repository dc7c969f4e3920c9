package evaluator

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/funvibe/basic/internal/diagnostics"
)

func builtinPrint(in *Interpreter, ctx *Context) *RTResult {
	fmt.Fprintln(in.Out, arg(ctx, "value").String())
	return success(Null())
}

func builtinPrintRet(in *Interpreter, ctx *Context) *RTResult {
	return success(NewString(arg(ctx, "value").String()))
}

// readLine returns one line of input without its terminator. A final line
// without a newline is still returned; io.EOF is reported only when nothing
// was read.
func (in *Interpreter) readLine() (string, error) {
	line, err := in.input().ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func builtinInput(in *Interpreter, ctx *Context) *RTResult {
	line, err := in.readLine()
	if err != nil {
		return builtinError(diagnostics.ErrR001, ctx, "Could not read input: %v", err)
	}
	return success(NewString(line))
}

// builtinInputInt keeps asking until a whole number is entered.
func builtinInputInt(in *Interpreter, ctx *Context) *RTResult {
	for {
		line, err := in.readLine()
		if err != nil {
			return builtinError(diagnostics.ErrR001, ctx, "Could not read input: %v", err)
		}
		n, convErr := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if convErr == nil {
			return success(NewNumber(float64(n)))
		}
		fmt.Fprintf(in.Out, "'%s' must be an integer. Try again!\n", line)
	}
}
