package prettyprinter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/basic/internal/ast"
)

// --- Tree Printer (Output shows AST structure) ---

type TreePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewTreePrinter() *TreePrinter {
	return &TreePrinter{}
}

func (p *TreePrinter) String() string {
	return p.buf.String()
}

func (p *TreePrinter) line(format string, args ...interface{}) {
	p.buf.WriteString(strings.Repeat("  ", p.indent))
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteString("\n")
}

func (p *TreePrinter) child(label string, node ast.Node) {
	p.indent++
	if label != "" {
		p.line("%s:", label)
		p.indent++
	}
	if node == nil {
		p.line("nil")
	} else {
		node.Accept(p)
	}
	if label != "" {
		p.indent--
	}
	p.indent--
}

func (p *TreePrinter) VisitNumber(n *ast.NumberNode) {
	p.line("Number %s", strconv.FormatFloat(n.Value(), 'g', -1, 64))
}

func (p *TreePrinter) VisitString(n *ast.StringNode) {
	p.line("String %s", strconv.Quote(n.Value()))
}

func (p *TreePrinter) VisitList(n *ast.ListNode) {
	if n.Block {
		p.line("Statements (%d)", len(n.Elements))
	} else {
		p.line("List (%d)", len(n.Elements))
	}
	for _, el := range n.Elements {
		p.child("", el)
	}
}

func (p *TreePrinter) VisitVarAccess(n *ast.VarAccessNode) {
	p.line("VarAccess %s", n.Name.Lexeme)
}

func (p *TreePrinter) VisitVarAssign(n *ast.VarAssignNode) {
	p.line("VarAssign %s", n.Name.Lexeme)
	p.child("", n.Value)
}

func (p *TreePrinter) VisitBinOp(n *ast.BinOpNode) {
	p.line("BinOp %s", opText(n.Op))
	p.child("", n.Left)
	p.child("", n.Right)
}

func (p *TreePrinter) VisitUnaryOp(n *ast.UnaryOpNode) {
	p.line("UnaryOp %s", opText(n.Op))
	p.child("", n.Operand)
}

func (p *TreePrinter) VisitIf(n *ast.IfNode) {
	p.line("If")
	for _, c := range n.Cases {
		p.child("Condition", c.Condition)
		p.child("Then", c.Body)
	}
	if n.Else != nil {
		p.child("Else", n.Else.Body)
	}
}

func (p *TreePrinter) VisitFor(n *ast.ForNode) {
	p.line("For %s", n.Var.Lexeme)
	p.child("From", n.From)
	p.child("To", n.To)
	if n.Step != nil {
		p.child("Step", n.Step)
	}
	p.child("Body", n.Body)
}

func (p *TreePrinter) VisitWhile(n *ast.WhileNode) {
	p.line("While")
	p.child("Condition", n.Condition)
	p.child("Body", n.Body)
}

func (p *TreePrinter) VisitFuncDef(n *ast.FuncDefNode) {
	name := "<anonymous>"
	if n.Name != nil {
		name = n.Name.Lexeme
	}
	p.line("FuncDef %s(%s)", name, strings.Join(n.ParamNames(), ", "))
	p.child("Body", n.Body)
}

func (p *TreePrinter) VisitCall(n *ast.CallNode) {
	p.line("Call")
	p.child("Callee", n.Callee)
	for _, arg := range n.Args {
		p.child("Arg", arg)
	}
}
