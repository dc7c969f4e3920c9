package evaluator

import (
	"github.com/funvibe/basic/internal/ast"
)

// evalIf returns the value of the first branch whose condition holds, the
// ELSE branch, or Null when neither applies.
func (in *Interpreter) evalIf(node *ast.IfNode, ctx *Context) *RTResult {
	res := &RTResult{}
	for _, c := range node.Cases {
		cond := res.Register(in.Eval(c.Condition, ctx))
		if res.Err != nil {
			return res
		}
		if cond.IsTrue() {
			val := res.Register(in.Eval(c.Body, ctx))
			if res.Err != nil {
				return res
			}
			return res.Success(val)
		}
	}

	if node.Else != nil {
		val := res.Register(in.Eval(node.Else.Body, ctx))
		if res.Err != nil {
			return res
		}
		return res.Success(val)
	}

	return res.Success(stamp(Null(), node.Start(), node.End(), ctx))
}
