package ast

import (
	"github.com/funvibe/basic/internal/token"
)

// Node is the base interface for all AST nodes. The set of implementations
// is closed; consumers switch over the concrete types.
type Node interface {
	Start() token.Position
	End() token.Position
	Accept(v Visitor)
	String() string
	node()
}

// NumberNode is an INT or FLOAT literal.
type NumberNode struct {
	Token token.Token
}

func (n *NumberNode) Start() token.Position { return n.Token.Start }
func (n *NumberNode) End() token.Position   { return n.Token.End }
func (n *NumberNode) Accept(v Visitor)      { v.VisitNumber(n) }
func (n *NumberNode) node()                 {}

// Value returns the literal as a float64.
func (n *NumberNode) Value() float64 {
	switch lit := n.Token.Literal.(type) {
	case int64:
		return float64(lit)
	case float64:
		return lit
	}
	return 0
}

type StringNode struct {
	Token token.Token
}

func (n *StringNode) Start() token.Position { return n.Token.Start }
func (n *StringNode) End() token.Position   { return n.Token.End }
func (n *StringNode) Accept(v Visitor)      { v.VisitString(n) }
func (n *StringNode) node()                 {}

func (n *StringNode) Value() string {
	s, _ := n.Token.Literal.(string)
	return s
}

// ListNode is either a [a, b] literal or, with Block set, a statement list.
type ListNode struct {
	Elements []Node
	Block    bool
	StartPos token.Position
	EndPos   token.Position
}

func (n *ListNode) Start() token.Position { return n.StartPos }
func (n *ListNode) End() token.Position   { return n.EndPos }
func (n *ListNode) Accept(v Visitor)      { v.VisitList(n) }
func (n *ListNode) node()                 {}

type VarAccessNode struct {
	Name token.Token
}

func (n *VarAccessNode) Start() token.Position { return n.Name.Start }
func (n *VarAccessNode) End() token.Position   { return n.Name.End }
func (n *VarAccessNode) Accept(v Visitor)      { v.VisitVarAccess(n) }
func (n *VarAccessNode) node()                 {}

// VarAssignNode is VAR name = value.
type VarAssignNode struct {
	Keyword token.Token
	Name    token.Token
	Value   Node
}

func (n *VarAssignNode) Start() token.Position { return n.Keyword.Start }
func (n *VarAssignNode) End() token.Position   { return n.Value.End() }
func (n *VarAssignNode) Accept(v Visitor)      { v.VisitVarAssign(n) }
func (n *VarAssignNode) node()                 {}

type BinOpNode struct {
	Left  Node
	Op    token.Token
	Right Node
}

func (n *BinOpNode) Start() token.Position { return n.Left.Start() }
func (n *BinOpNode) End() token.Position   { return n.Right.End() }
func (n *BinOpNode) Accept(v Visitor)      { v.VisitBinOp(n) }
func (n *BinOpNode) node()                 {}

type UnaryOpNode struct {
	Op      token.Token
	Operand Node
}

func (n *UnaryOpNode) Start() token.Position { return n.Op.Start }
func (n *UnaryOpNode) End() token.Position   { return n.Operand.End() }
func (n *UnaryOpNode) Accept(v Visitor)      { v.VisitUnaryOp(n) }
func (n *UnaryOpNode) node()                 {}

// IfCase is one IF or ELIF arm. Block marks the multi-line form.
type IfCase struct {
	Condition Node
	Body      Node
	Block     bool
}

type ElseCase struct {
	Body  Node
	Block bool
}

type IfNode struct {
	Cases    []IfCase
	Else     *ElseCase
	StartPos token.Position
	EndPos   token.Position
}

func (n *IfNode) Start() token.Position { return n.StartPos }
func (n *IfNode) End() token.Position   { return n.EndPos }
func (n *IfNode) Accept(v Visitor)      { v.VisitIf(n) }
func (n *IfNode) node()                 {}

// ForNode is FOR var = start TO end (STEP step)? THEN body. Step may be nil.
type ForNode struct {
	Var      token.Token
	From     Node
	To       Node
	Step     Node
	Body     Node
	Block    bool
	StartPos token.Position
	EndPos   token.Position
}

func (n *ForNode) Start() token.Position { return n.StartPos }
func (n *ForNode) End() token.Position   { return n.EndPos }
func (n *ForNode) Accept(v Visitor)      { v.VisitFor(n) }
func (n *ForNode) node()                 {}

type WhileNode struct {
	Condition Node
	Body      Node
	Block     bool
	StartPos  token.Position
	EndPos    token.Position
}

func (n *WhileNode) Start() token.Position { return n.StartPos }
func (n *WhileNode) End() token.Position   { return n.EndPos }
func (n *WhileNode) Accept(v Visitor)      { v.VisitWhile(n) }
func (n *WhileNode) node()                 {}

// FuncDefNode defines a function. Name is nil for anonymous functions.
type FuncDefNode struct {
	Name     *token.Token
	Params   []token.Token
	Body     Node
	Block    bool
	StartPos token.Position
	EndPos   token.Position
}

func (n *FuncDefNode) Start() token.Position { return n.StartPos }
func (n *FuncDefNode) End() token.Position   { return n.EndPos }
func (n *FuncDefNode) Accept(v Visitor)      { v.VisitFuncDef(n) }
func (n *FuncDefNode) node()                 {}

// ParamNames returns the parameter identifiers in order.
func (n *FuncDefNode) ParamNames() []string {
	names := make([]string, len(n.Params))
	for i, p := range n.Params {
		names[i] = p.Lexeme
	}
	return names
}

type CallNode struct {
	Callee Node
	Args   []Node
	EndPos token.Position
}

func (n *CallNode) Start() token.Position { return n.Callee.Start() }
func (n *CallNode) End() token.Position   { return n.EndPos }
func (n *CallNode) Accept(v Visitor)      { v.VisitCall(n) }
func (n *CallNode) node()                 {}
