package evaluator

import (
	"math"
	"strings"

	"github.com/funvibe/basic/internal/ast"
	"github.com/funvibe/basic/internal/diagnostics"
	"github.com/funvibe/basic/internal/token"
)

func (in *Interpreter) evalBinOp(node *ast.BinOpNode, ctx *Context) *RTResult {
	res := &RTResult{}
	left := res.Register(in.Eval(node.Left, ctx))
	if res.Err != nil {
		return res
	}
	right := res.Register(in.Eval(node.Right, ctx))
	if res.Err != nil {
		return res
	}

	var result Object
	var err *diagnostics.DiagnosticError
	switch l := left.(type) {
	case *Number:
		result, err = numberBinOp(l, node.Op, right, ctx)
	case *String:
		result, err = stringBinOp(l, node.Op, right, ctx)
	case *List:
		result, err = listBinOp(l, node.Op, right, ctx)
	default:
		err = illegalOperation(left, node.Op, right, ctx)
	}
	if err != nil {
		return res.Failure(err)
	}
	return res.Success(result.WithPos(node.Start(), node.End()))
}

func illegalOperation(left Object, op token.Token, right Object, ctx *Context) *diagnostics.DiagnosticError {
	return runtimeError(diagnostics.ErrR002, left.Start(), right.End(), ctx,
		"Illegal operation: %s %s %s", TypeName(left), opSymbol(op), TypeName(right))
}

func opSymbol(op token.Token) string {
	if op.Lexeme != "" {
		return op.Lexeme
	}
	return string(op.Type)
}

func numberBinOp(l *Number, op token.Token, right Object, ctx *Context) (Object, *diagnostics.DiagnosticError) {
	r, ok := right.(*Number)
	if !ok {
		return nil, illegalOperation(l, op, right, ctx)
	}

	var v float64
	switch op.Type {
	case token.PLUS:
		v = l.Value + r.Value
	case token.MINUS:
		v = l.Value - r.Value
	case token.MUL:
		v = l.Value * r.Value
	case token.DIV:
		if r.Value == 0 {
			return nil, runtimeError(diagnostics.ErrR003, r.Start(), r.End(), ctx, "Division by zero")
		}
		v = l.Value / r.Value
	case token.POW:
		v = math.Pow(l.Value, r.Value)
	case token.EE:
		return withContext(Bool(l.Value == r.Value), ctx), nil
	case token.NE:
		return withContext(Bool(l.Value != r.Value), ctx), nil
	case token.LT:
		return withContext(Bool(l.Value < r.Value), ctx), nil
	case token.GT:
		return withContext(Bool(l.Value > r.Value), ctx), nil
	case token.LTE:
		return withContext(Bool(l.Value <= r.Value), ctx), nil
	case token.GTE:
		return withContext(Bool(l.Value >= r.Value), ctx), nil
	case token.KEYWORD:
		switch op.Lexeme {
		case token.AND:
			return withContext(Bool(l.IsTrue() && r.IsTrue()), ctx), nil
		case token.OR:
			return withContext(Bool(l.IsTrue() || r.IsTrue()), ctx), nil
		}
		return nil, illegalOperation(l, op, right, ctx)
	default:
		return nil, illegalOperation(l, op, right, ctx)
	}
	return withContext(NewNumber(v), ctx), nil
}

// maxStringLen caps the byte length a string repetition may produce.
const maxStringLen = 1 << 26

func stringBinOp(l *String, op token.Token, right Object, ctx *Context) (Object, *diagnostics.DiagnosticError) {
	switch r := right.(type) {
	case *String:
		switch op.Type {
		case token.PLUS:
			return withContext(NewString(l.Value+r.Value), ctx), nil
		case token.EE:
			return withContext(Bool(l.Value == r.Value), ctx), nil
		case token.NE:
			return withContext(Bool(l.Value != r.Value), ctx), nil
		}
	case *Number:
		if op.Type == token.MUL {
			if math.IsNaN(r.Value) || float64(len(l.Value))*r.Value > maxStringLen {
				return nil, runtimeError(diagnostics.ErrR001, l.Start(), right.End(), ctx, "String repetition too large")
			}
			n := int(r.Value)
			if n < 0 {
				n = 0
			}
			return withContext(NewString(strings.Repeat(l.Value, n)), ctx), nil
		}
	}
	return nil, illegalOperation(l, op, right, ctx)
}

// listBinOp never mutates l; every operator builds a new list.
func listBinOp(l *List, op token.Token, right Object, ctx *Context) (Object, *diagnostics.DiagnosticError) {
	switch op.Type {
	case token.PLUS:
		out := l.Copy()
		out.Append(right)
		return withContext(out, ctx), nil
	case token.MINUS:
		idx, ok := right.(*Number)
		if !ok {
			break
		}
		out := l.Copy()
		if _, ok := out.Remove(idx); !ok {
			return nil, runtimeError(diagnostics.ErrR004, right.Start(), right.End(), ctx,
				"Element at this index could not be removed from list because index is out of bounds")
		}
		return withContext(out, ctx), nil
	case token.MUL:
		other, ok := right.(*List)
		if !ok {
			break
		}
		out := l.Copy()
		out.Append(other.Elements()...)
		return withContext(out, ctx), nil
	case token.DIV:
		idx, ok := right.(*Number)
		if !ok {
			break
		}
		el, ok := l.Get(idx)
		if !ok {
			return nil, runtimeError(diagnostics.ErrR004, right.Start(), right.End(), ctx,
				"Element at this index could not be retrieved from list because index is out of bounds")
		}
		return el.WithContext(ctx), nil
	}
	return nil, illegalOperation(l, op, right, ctx)
}

func withContext(obj Object, ctx *Context) Object {
	return obj.WithContext(ctx)
}

func (in *Interpreter) evalUnaryOp(node *ast.UnaryOpNode, ctx *Context) *RTResult {
	res := &RTResult{}
	operand := res.Register(in.Eval(node.Operand, ctx))
	if res.Err != nil {
		return res
	}

	n, ok := operand.(*Number)
	if !ok {
		return res.Failure(runtimeError(diagnostics.ErrR002, node.Start(), node.End(), ctx,
			"Illegal operation: %s %s", opSymbol(node.Op), TypeName(operand)))
	}

	var out *Number
	switch {
	case node.Op.Type == token.MINUS:
		out = NewNumber(-n.Value)
	case node.Op.Type == token.PLUS:
		out = NewNumber(n.Value)
	case node.Op.IsKeyword(token.NOT):
		out = Bool(n.Value == 0)
	default:
		return res.Failure(runtimeError(diagnostics.ErrR002, node.Start(), node.End(), ctx,
			"Illegal operation: %s %s", opSymbol(node.Op), TypeName(operand)))
	}
	return res.Success(stamp(out, node.Start(), node.End(), ctx))
}
