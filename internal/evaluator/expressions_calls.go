package evaluator

import (
	"github.com/funvibe/basic/internal/ast"
	"github.com/funvibe/basic/internal/diagnostics"
	"github.com/funvibe/basic/internal/token"
)

func (in *Interpreter) evalFuncDef(node *ast.FuncDefNode, ctx *Context) *RTResult {
	name := AnonymousName
	if node.Name != nil {
		name = node.Name.Lexeme
	}
	fn := &Function{
		Name:    name,
		Params:  node.ParamNames(),
		Body:    node.Body,
		Defined: ctx,
	}
	val := stamp(fn, node.Start(), node.End(), ctx)
	if node.Name != nil {
		ctx.SymbolTable.Set(name, val)
	}
	return success(val)
}

func (in *Interpreter) evalCall(node *ast.CallNode, ctx *Context) *RTResult {
	res := &RTResult{}
	callee := res.Register(in.Eval(node.Callee, ctx))
	if res.Err != nil {
		return res
	}
	callee = callee.WithPos(node.Start(), node.End())

	args := make([]Object, 0, len(node.Args))
	for _, argNode := range node.Args {
		arg := res.Register(in.Eval(argNode, ctx))
		if res.Err != nil {
			return res
		}
		args = append(args, arg)
	}

	if err := in.cancelled(node, ctx); err != nil {
		return res.Failure(err)
	}

	ret := res.Register(in.apply(callee, args, node.Start(), node.End(), ctx))
	if res.Err != nil {
		return res
	}
	return res.Success(stamp(ret, node.Start(), node.End(), ctx))
}

// Apply calls fn with already evaluated arguments from ctx. Errors point at
// the span fn carries.
func (in *Interpreter) Apply(fn Object, args []Object, ctx *Context) *RTResult {
	return in.apply(fn, args, fn.Start(), fn.End(), ctx)
}

func (in *Interpreter) apply(callee Object, args []Object, start, end token.Position, ctx *Context) *RTResult {
	switch fn := callee.(type) {
	case *Function:
		return in.callFunction(fn, args, start, end, ctx)
	case *Builtin:
		return in.callBuiltin(fn, args, start, end, ctx)
	}
	return failure(runtimeError(diagnostics.ErrR002, start, end, ctx,
		"Illegal operation: %s is not callable", TypeName(callee)))
}

// callFunction runs fn in a fresh frame. The frame's traceback parent is the
// caller, while free names resolve through the defining frame.
func (in *Interpreter) callFunction(fn *Function, args []Object, start, end token.Position, caller *Context) *RTResult {
	exec := NewContext(fn.Name, caller, start)
	exec.entryEnd = end
	var parent *SymbolTable
	if fn.Defined != nil {
		parent = fn.Defined.SymbolTable
	}
	exec.SymbolTable = NewSymbolTable(parent)

	if err := checkArgs(fn.Name, fn.Params, args, start, end, caller); err != nil {
		return failure(err)
	}
	populateArgs(fn.Params, args, exec)

	res := &RTResult{}
	val := res.Register(in.Eval(fn.Body, exec))
	if res.Err != nil {
		return res
	}
	// a block body evaluates to the list of its statements; the call yields the last
	if list, ok := val.(*List); ok && isBlock(fn.Body) {
		if list.Len() == 0 {
			return res.Success(Null())
		}
		elems := list.Elements()
		val = elems[len(elems)-1]
	}
	return res.Success(val)
}

func isBlock(node ast.Node) bool {
	l, ok := node.(*ast.ListNode)
	return ok && l.Block
}

func (in *Interpreter) callBuiltin(b *Builtin, args []Object, start, end token.Position, caller *Context) *RTResult {
	exec := NewContext(b.Name, caller, start)
	exec.entryEnd = end
	exec.SymbolTable = NewSymbolTable(caller.SymbolTable)

	if err := checkArgs(b.Name, b.Params, args, start, end, caller); err != nil {
		return failure(err)
	}
	populateArgs(b.Params, args, exec)

	return b.Fn(in, exec)
}

func checkArgs(name string, params []string, args []Object, start, end token.Position, ctx *Context) *diagnostics.DiagnosticError {
	switch {
	case len(args) > len(params):
		return runtimeError(diagnostics.ErrR005, start, end, ctx,
			"%d too many args passed into '%s'", len(args)-len(params), name)
	case len(args) < len(params):
		return runtimeError(diagnostics.ErrR005, start, end, ctx,
			"%d too few args passed into '%s'", len(params)-len(args), name)
	}
	return nil
}

func populateArgs(params []string, args []Object, exec *Context) {
	for i, name := range params {
		exec.SymbolTable.Set(name, args[i].WithContext(exec))
	}
}

// builtinError raises an error spanning the call of the running built-in.
func builtinError(code diagnostics.ErrorCode, ctx *Context, format string, args ...interface{}) *RTResult {
	return failure(runtimeError(code, ctx.ParentEntryPos, ctx.entryEnd, ctx, format, args...))
}
