package evaluator

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/funvibe/basic/internal/ast"
	"github.com/funvibe/basic/internal/diagnostics"
	"github.com/funvibe/basic/internal/token"
)

// DefaultMaxDepth is the default nesting limit for Eval calls.
const DefaultMaxDepth = 10000

type Interpreter struct {
	// Context for cancellation
	Context context.Context

	Out io.Writer
	In  io.Reader

	// MaxDepth bounds nested evaluation; 0 means DefaultMaxDepth.
	MaxDepth int

	reader    *bufio.Reader
	readerSrc io.Reader
	depth     int
}

func New() *Interpreter {
	return &Interpreter{
		Out:      os.Stdout,
		In:       os.Stdin,
		MaxDepth: DefaultMaxDepth,
	}
}

// input returns a buffered reader over In, rebuilt if In was swapped.
func (in *Interpreter) input() *bufio.Reader {
	if in.reader == nil || in.readerSrc != in.In {
		in.reader = bufio.NewReader(in.In)
		in.readerSrc = in.In
	}
	return in.reader
}

func (in *Interpreter) maxDepth() int {
	if in.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return in.MaxDepth
}

// cancelled returns a runtime error once the interpreter's context is done.
func (in *Interpreter) cancelled(node ast.Node, ctx *Context) *diagnostics.DiagnosticError {
	if in.Context == nil {
		return nil
	}
	select {
	case <-in.Context.Done():
		return runtimeError(diagnostics.ErrR008, node.Start(), node.End(), ctx, "Execution cancelled: %v", in.Context.Err())
	default:
		return nil
	}
}

func runtimeError(code diagnostics.ErrorCode, start, end token.Position, ctx *Context, format string, args ...interface{}) *diagnostics.DiagnosticError {
	var frame diagnostics.Traceable
	if ctx != nil {
		frame = ctx
	}
	return diagnostics.NewRuntimeError(code, start, end, frame, format, args...)
}

// Eval evaluates node in ctx.
func (in *Interpreter) Eval(node ast.Node, ctx *Context) *RTResult {
	in.depth++
	defer func() { in.depth-- }()
	if in.depth > in.maxDepth() {
		return failure(runtimeError(diagnostics.ErrR008, node.Start(), node.End(), ctx, "Maximum recursion depth exceeded"))
	}

	switch node := node.(type) {
	case *ast.NumberNode:
		return success(stamp(NewNumber(node.Value()), node.Start(), node.End(), ctx))
	case *ast.StringNode:
		return success(stamp(NewString(node.Value()), node.Start(), node.End(), ctx))
	case *ast.ListNode:
		return in.evalList(node, ctx)
	case *ast.VarAccessNode:
		return in.evalVarAccess(node, ctx)
	case *ast.VarAssignNode:
		return in.evalVarAssign(node, ctx)
	case *ast.BinOpNode:
		return in.evalBinOp(node, ctx)
	case *ast.UnaryOpNode:
		return in.evalUnaryOp(node, ctx)
	case *ast.IfNode:
		return in.evalIf(node, ctx)
	case *ast.ForNode:
		return in.evalFor(node, ctx)
	case *ast.WhileNode:
		return in.evalWhile(node, ctx)
	case *ast.FuncDefNode:
		return in.evalFuncDef(node, ctx)
	case *ast.CallNode:
		return in.evalCall(node, ctx)
	}
	return failure(runtimeError(diagnostics.ErrR001, node.Start(), node.End(), ctx, "Unknown node %T", node))
}
