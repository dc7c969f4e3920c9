package evaluator

import (
	"github.com/funvibe/basic/internal/ast"
	"github.com/funvibe/basic/internal/diagnostics"
)

func (in *Interpreter) evalList(node *ast.ListNode, ctx *Context) *RTResult {
	res := &RTResult{}
	elements := make([]Object, 0, len(node.Elements))
	for _, el := range node.Elements {
		val := res.Register(in.Eval(el, ctx))
		if res.Err != nil {
			return res
		}
		elements = append(elements, val)
	}
	return res.Success(stamp(NewList(elements), node.Start(), node.End(), ctx))
}

func (in *Interpreter) evalVarAccess(node *ast.VarAccessNode, ctx *Context) *RTResult {
	name := node.Name.Lexeme
	val, ok := ctx.SymbolTable.Get(name)
	if !ok {
		return failure(runtimeError(diagnostics.ErrR006, node.Start(), node.End(), ctx, "%s is not defined", name))
	}
	return success(stamp(val, node.Start(), node.End(), ctx))
}

// evalVarAssign binds in the current frame only, never in an enclosing one.
func (in *Interpreter) evalVarAssign(node *ast.VarAssignNode, ctx *Context) *RTResult {
	res := &RTResult{}
	val := res.Register(in.Eval(node.Value, ctx))
	if res.Err != nil {
		return res
	}
	ctx.SymbolTable.Set(node.Name.Lexeme, val)
	return res.Success(val)
}
