package evaluator

import (
	"github.com/funvibe/basic/internal/ast"
	"github.com/funvibe/basic/internal/diagnostics"
)

// numberOperand evaluates node and insists on a Number.
func (in *Interpreter) numberOperand(node ast.Node, ctx *Context, what string) (*Number, *RTResult) {
	res := &RTResult{}
	val := res.Register(in.Eval(node, ctx))
	if res.Err != nil {
		return nil, res
	}
	n, ok := val.(*Number)
	if !ok {
		return nil, res.Failure(runtimeError(diagnostics.ErrR002, node.Start(), node.End(), ctx,
			"%s value must be a Number, got %s", what, TypeName(val)))
	}
	return n, nil
}

// evalFor yields the list of body results, one per iteration. The loop
// variable is rebound in the current frame before each pass.
func (in *Interpreter) evalFor(node *ast.ForNode, ctx *Context) *RTResult {
	from, failed := in.numberOperand(node.From, ctx, "Start")
	if failed != nil {
		return failed
	}
	to, failed := in.numberOperand(node.To, ctx, "End")
	if failed != nil {
		return failed
	}
	step := NewNumber(1)
	if node.Step != nil {
		step, failed = in.numberOperand(node.Step, ctx, "Step")
		if failed != nil {
			return failed
		}
	}

	res := &RTResult{}
	var elements []Object
	i := from.Value
	cond := func() bool {
		if step.Value >= 0 {
			return i < to.Value
		}
		return i > to.Value
	}

	for cond() {
		if err := in.cancelled(node, ctx); err != nil {
			return res.Failure(err)
		}
		ctx.SymbolTable.Set(node.Var.Lexeme, NewNumber(i).WithContext(ctx))
		i += step.Value

		val := res.Register(in.Eval(node.Body, ctx))
		if res.Err != nil {
			return res
		}
		elements = append(elements, val)
	}

	return res.Success(stamp(NewList(elements), node.Start(), node.End(), ctx))
}

func (in *Interpreter) evalWhile(node *ast.WhileNode, ctx *Context) *RTResult {
	res := &RTResult{}
	var elements []Object

	for {
		if err := in.cancelled(node, ctx); err != nil {
			return res.Failure(err)
		}
		cond := res.Register(in.Eval(node.Condition, ctx))
		if res.Err != nil {
			return res
		}
		if !cond.IsTrue() {
			break
		}

		val := res.Register(in.Eval(node.Body, ctx))
		if res.Err != nil {
			return res
		}
		elements = append(elements, val)
	}

	return res.Success(stamp(NewList(elements), node.Start(), node.End(), ctx))
}
