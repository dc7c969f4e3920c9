package prettyprinter

import (
	"bytes"
	"strings"

	"github.com/funvibe/basic/internal/ast"
	"github.com/funvibe/basic/internal/evaluator"
	"github.com/funvibe/basic/internal/token"
)

// --- Code Printer (Output looks like source code) ---

// Precedence levels, matching the grammar rule each node can appear in
// without parentheses. Higher binds tighter.
const (
	precExpr    = 0 // VAR, and statement positions
	precLogical = 1 // AND OR
	precNot     = 2 // NOT
	precCompare = 3 // == != < > <= >=
	precSum     = 4 // + -
	precProduct = 5 // * /
	precPrefix  = 6 // unary + -
	precPower   = 7 // ^
	precCall    = 8
	precAtom    = 9
)

func binaryPrecedence(op token.Token) int {
	switch op.Type {
	case token.KEYWORD:
		return precLogical
	case token.EE, token.NE, token.LT, token.GT, token.LTE, token.GTE:
		return precCompare
	case token.PLUS, token.MINUS:
		return precSum
	case token.MUL, token.DIV:
		return precProduct
	case token.POW:
		return precPower
	}
	return precAtom
}

// operandPrecedence gives the minimum precedence each side of a binary
// operator accepts. Power is right-associative; everything else is left.
func operandPrecedence(op token.Token) (left, right int) {
	prec := binaryPrecedence(op)
	switch prec {
	case precLogical:
		return precLogical, precNot
	case precPower:
		return precCall, precPrefix
	}
	return prec, prec + 1
}

func nodePrecedence(node ast.Node) int {
	switch n := node.(type) {
	case *ast.VarAssignNode:
		return precExpr
	case *ast.BinOpNode:
		return binaryPrecedence(n.Op)
	case *ast.UnaryOpNode:
		if n.Op.IsKeyword(token.NOT) {
			return precNot
		}
		return precPrefix
	case *ast.CallNode:
		return precCall
	case *ast.IfNode, *ast.ForNode, *ast.WhileNode, *ast.FuncDefNode:
		// atoms, but their trailing expression would swallow any operator
		// that follows, so they only stand bare in expression positions
		return precExpr
	}
	return precAtom
}

type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Format renders node as source text.
func Format(node ast.Node) string {
	p := NewCodePrinter()
	p.printExpr(node, precExpr)
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) newline() {
	p.buf.WriteString("\n")
	p.buf.WriteString(strings.Repeat("    ", p.indent))
}

func (p *CodePrinter) printExpr(node ast.Node, minPrec int) {
	if node == nil {
		p.write("<???>")
		return
	}
	needParens := nodePrecedence(node) < minPrec
	if needParens {
		p.write("(")
	}
	node.Accept(p)
	if needParens {
		p.write(")")
	}
}

// printBlock writes NEWLINE, the indented statements and a final NEWLINE at
// the outer indentation, ready for END, ELIF or ELSE.
func (p *CodePrinter) printBlock(body ast.Node) {
	p.indent++
	stmts := []ast.Node{body}
	if list, ok := body.(*ast.ListNode); ok && list.Block {
		stmts = list.Elements
	}
	for _, stmt := range stmts {
		p.newline()
		p.printExpr(stmt, precExpr)
	}
	p.indent--
	p.newline()
}

func (p *CodePrinter) VisitNumber(n *ast.NumberNode) {
	if n.Token.Lexeme != "" {
		p.write(n.Token.Lexeme)
		return
	}
	p.write(evaluator.FormatNumber(n.Value()))
}

var stringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`)

func (p *CodePrinter) VisitString(n *ast.StringNode) {
	p.write(`"` + stringEscaper.Replace(n.Value()) + `"`)
}

func (p *CodePrinter) VisitList(n *ast.ListNode) {
	if n.Block {
		// statement list: one statement per line
		for i, stmt := range n.Elements {
			if i > 0 {
				p.newline()
			}
			p.printExpr(stmt, precExpr)
		}
		return
	}
	p.write("[")
	for i, el := range n.Elements {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(el, precExpr)
	}
	p.write("]")
}

func (p *CodePrinter) VisitVarAccess(n *ast.VarAccessNode) {
	p.write(n.Name.Lexeme)
}

func (p *CodePrinter) VisitVarAssign(n *ast.VarAssignNode) {
	p.write("VAR " + n.Name.Lexeme + " = ")
	p.printExpr(n.Value, precExpr)
}

func (p *CodePrinter) VisitBinOp(n *ast.BinOpNode) {
	left, right := operandPrecedence(n.Op)
	p.printExpr(n.Left, left)
	p.write(" " + opText(n.Op) + " ")
	p.printExpr(n.Right, right)
}

func (p *CodePrinter) VisitUnaryOp(n *ast.UnaryOpNode) {
	if n.Op.IsKeyword(token.NOT) {
		p.write("NOT ")
		p.printExpr(n.Operand, precNot)
		return
	}
	p.write(opText(n.Op))
	p.printExpr(n.Operand, precPrefix)
}

func (p *CodePrinter) VisitIf(n *ast.IfNode) {
	lastBlock := false
	for i, c := range n.Cases {
		kw := token.IF
		if i > 0 {
			kw = token.ELIF
			if !n.Cases[i-1].Block {
				p.write(" ")
			}
		}
		p.write(kw + " ")
		p.printExpr(c.Condition, precExpr)
		p.write(" THEN")

		if c.Block {
			p.printBlock(c.Body)
		} else {
			p.write(" ")
			followed := i < len(n.Cases)-1 || n.Else != nil
			p.printCaseBody(c.Body, followed)
		}
		lastBlock = c.Block
	}

	if n.Else != nil {
		if !lastBlock {
			p.write(" ")
		}
		p.write("ELSE")
		if n.Else.Block {
			p.printBlock(n.Else.Body)
		} else {
			p.write(" ")
			p.printExpr(n.Else.Body, precExpr)
		}
		lastBlock = n.Else.Block
	}

	if lastBlock {
		p.write("END")
	}
}

// printCaseBody guards a single-line arm that is followed by ELIF or ELSE:
// a nested construct ending in an expression would claim that keyword.
func (p *CodePrinter) printCaseBody(body ast.Node, followed bool) {
	if followed && endsInExpression(body) {
		p.write("(")
		p.printExpr(body, precExpr)
		p.write(")")
		return
	}
	p.printExpr(body, precExpr)
}

func endsInExpression(node ast.Node) bool {
	switch n := node.(type) {
	case *ast.VarAssignNode:
		return true
	case *ast.IfNode:
		if n.Else != nil {
			return !n.Else.Block
		}
		return !n.Cases[len(n.Cases)-1].Block
	case *ast.ForNode:
		return !n.Block
	case *ast.WhileNode:
		return !n.Block
	case *ast.FuncDefNode:
		return !n.Block
	}
	return false
}

func (p *CodePrinter) VisitFor(n *ast.ForNode) {
	p.write("FOR " + n.Var.Lexeme + " = ")
	p.printExpr(n.From, precExpr)
	p.write(" TO ")
	p.printExpr(n.To, precExpr)
	if n.Step != nil {
		p.write(" STEP ")
		p.printExpr(n.Step, precExpr)
	}
	p.write(" THEN")
	p.printBody(n.Body, n.Block)
}

func (p *CodePrinter) VisitWhile(n *ast.WhileNode) {
	p.write("WHILE ")
	p.printExpr(n.Condition, precExpr)
	p.write(" THEN")
	p.printBody(n.Body, n.Block)
}

func (p *CodePrinter) printBody(body ast.Node, block bool) {
	if block {
		p.printBlock(body)
		p.write("END")
		return
	}
	p.write(" ")
	p.printExpr(body, precExpr)
}

func (p *CodePrinter) VisitFuncDef(n *ast.FuncDefNode) {
	p.write("FUN")
	if n.Name != nil {
		p.write(" " + n.Name.Lexeme)
	}
	p.write("(" + strings.Join(n.ParamNames(), ", ") + ")")
	if n.Block {
		p.printBlock(n.Body)
		p.write("END")
		return
	}
	p.write(" -> ")
	p.printExpr(n.Body, precExpr)
}

func (p *CodePrinter) VisitCall(n *ast.CallNode) {
	p.printExpr(n.Callee, precAtom)
	p.write("(")
	for i, arg := range n.Args {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(arg, precExpr)
	}
	p.write(")")
}

func opText(tok token.Token) string {
	if tok.Lexeme != "" {
		return tok.Lexeme
	}
	switch tok.Type {
	case token.PLUS:
		return "+"
	case token.MINUS:
		return "-"
	case token.MUL:
		return "*"
	case token.DIV:
		return "/"
	case token.POW:
		return "^"
	case token.EE:
		return "=="
	case token.NE:
		return "!="
	case token.LT:
		return "<"
	case token.GT:
		return ">"
	case token.LTE:
		return "<="
	case token.GTE:
		return ">="
	}
	return string(tok.Type)
}
