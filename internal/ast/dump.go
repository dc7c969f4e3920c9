package ast

import (
	"strconv"
	"strings"

	"github.com/funvibe/basic/internal/token"
)

// String methods give a span-free structural dump, used to compare trees
// parsed from different source texts.

func (n *NumberNode) String() string {
	return strconv.FormatFloat(n.Value(), 'g', -1, 64)
}

func (n *StringNode) String() string {
	return strconv.Quote(n.Value())
}

func (n *ListNode) String() string {
	open, close := "[", "]"
	if n.Block {
		open, close = "{", "}"
	}
	return open + joinNodes(n.Elements) + close
}

func (n *VarAccessNode) String() string {
	return n.Name.Lexeme
}

func (n *VarAssignNode) String() string {
	return "(VAR " + n.Name.Lexeme + " " + n.Value.String() + ")"
}

func (n *BinOpNode) String() string {
	return "(" + opText(n.Op) + " " + n.Left.String() + " " + n.Right.String() + ")"
}

func (n *UnaryOpNode) String() string {
	return "(" + opText(n.Op) + " " + n.Operand.String() + ")"
}

func (n *IfNode) String() string {
	var b strings.Builder
	b.WriteString("(IF")
	for _, c := range n.Cases {
		b.WriteString(" [" + c.Condition.String() + " " + c.Body.String() + "]")
	}
	if n.Else != nil {
		b.WriteString(" [ELSE " + n.Else.Body.String() + "]")
	}
	b.WriteString(")")
	return b.String()
}

func (n *ForNode) String() string {
	step := "nil"
	if n.Step != nil {
		step = n.Step.String()
	}
	return "(FOR " + n.Var.Lexeme + " " + n.From.String() + " " + n.To.String() + " " + step + " " + n.Body.String() + ")"
}

func (n *WhileNode) String() string {
	return "(WHILE " + n.Condition.String() + " " + n.Body.String() + ")"
}

func (n *FuncDefNode) String() string {
	name := "<anonymous>"
	if n.Name != nil {
		name = n.Name.Lexeme
	}
	return "(FUN " + name + " (" + strings.Join(n.ParamNames(), " ") + ") " + n.Body.String() + ")"
}

func (n *CallNode) String() string {
	return "(CALL " + n.Callee.String() + " [" + joinNodes(n.Args) + "])"
}

func joinNodes(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, el := range nodes {
		parts[i] = el.String()
	}
	return strings.Join(parts, ", ")
}

// opText is the operator's source text, keywords included.
func opText(tok token.Token) string {
	if tok.Lexeme != "" {
		return tok.Lexeme
	}
	return string(tok.Type)
}
