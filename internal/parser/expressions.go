package parser

import (
	"github.com/funvibe/basic/internal/ast"
	"github.com/funvibe/basic/internal/token"
)

const expectedExpr = "Expected 'VAR', 'IF', 'FOR', 'WHILE', 'FUN', int, float, identifier, '+', '-', '(', '[' or 'NOT'"

// operator matches a binary operator either by token type or, for AND/OR,
// by keyword text.
type operator struct {
	typ     token.TokenType
	keyword string
}

func (o operator) matches(tok token.Token) bool {
	if o.keyword != "" {
		return tok.IsKeyword(o.keyword)
	}
	return tok.Type == o.typ
}

func ops(types ...token.TokenType) []operator {
	out := make([]operator, len(types))
	for i, t := range types {
		out[i] = operator{typ: t}
	}
	return out
}

var (
	logicalOps    = []operator{{keyword: token.AND}, {keyword: token.OR}}
	comparisonOps = ops(token.EE, token.NE, token.LT, token.GT, token.LTE, token.GTE)
	additiveOps   = ops(token.PLUS, token.MINUS)
	productOps    = ops(token.MUL, token.DIV)
	powerOps      = ops(token.POW)
)

// binOp parses left-associative chains: left (op right)*.
func (p *Parser) binOp(left func() *ParseResult, operators []operator, right func() *ParseResult) *ParseResult {
	res := &ParseResult{}
	node := res.Register(left())
	if res.Err != nil {
		return res
	}

	for {
		matched := false
		for _, op := range operators {
			if op.matches(p.curToken) {
				matched = true
				break
			}
		}
		if !matched {
			break
		}
		opTok := p.curToken
		p.advance(res)
		rhs := res.Register(right())
		if res.Err != nil {
			return res
		}
		node = &ast.BinOpNode{Left: node, Op: opTok, Right: rhs}
	}
	return res.Success(node)
}

func (p *Parser) expr() *ParseResult {
	res := &ParseResult{}

	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxRecursionDepth {
		return res.Failure(p.syntaxError("Expression nested too deeply"))
	}

	if p.curKeywordIs(token.VAR) {
		keyword := p.curToken
		p.advance(res)
		if !p.curTokenIs(token.IDENTIFIER) {
			return res.Failure(p.syntaxError("Expected identifier"))
		}
		name := p.curToken
		p.advance(res)
		if !p.curTokenIs(token.EQ) {
			return res.Failure(p.syntaxError("Expected '='"))
		}
		p.advance(res)
		value := res.Register(p.expr())
		if res.Err != nil {
			return res
		}
		return res.Success(&ast.VarAssignNode{Keyword: keyword, Name: name, Value: value})
	}

	node := res.Register(p.binOp(p.compExpr, logicalOps, p.compExpr))
	if res.Err != nil {
		return res.Failure(p.syntaxError(expectedExpr))
	}
	return res.Success(node)
}

func (p *Parser) compExpr() *ParseResult {
	res := &ParseResult{}

	if p.curKeywordIs(token.NOT) {
		opTok := p.curToken
		p.advance(res)
		operand := res.Register(p.compExpr())
		if res.Err != nil {
			return res
		}
		return res.Success(&ast.UnaryOpNode{Op: opTok, Operand: operand})
	}

	node := res.Register(p.binOp(p.arithExpr, comparisonOps, p.arithExpr))
	if res.Err != nil {
		return res.Failure(p.syntaxError("Expected int, float, identifier, '+', '-', '(', '[' or 'NOT'"))
	}
	return res.Success(node)
}

func (p *Parser) arithExpr() *ParseResult {
	return p.binOp(p.term, additiveOps, p.term)
}

func (p *Parser) term() *ParseResult {
	return p.binOp(p.factor, productOps, p.factor)
}

func (p *Parser) factor() *ParseResult {
	res := &ParseResult{}
	if p.curTokenIs(token.PLUS) || p.curTokenIs(token.MINUS) {
		opTok := p.curToken
		p.advance(res)
		operand := res.Register(p.factor())
		if res.Err != nil {
			return res
		}
		return res.Success(&ast.UnaryOpNode{Op: opTok, Operand: operand})
	}
	return p.power()
}

// power is right-recursive through factor, so 2 ^ 3 ^ 2 is 2 ^ (3 ^ 2).
func (p *Parser) power() *ParseResult {
	return p.binOp(p.call, powerOps, p.factor)
}

func (p *Parser) call() *ParseResult {
	res := &ParseResult{}
	callee := res.Register(p.atom())
	if res.Err != nil {
		return res
	}
	if !p.curTokenIs(token.LPAREN) {
		return res.Success(callee)
	}

	p.advance(res)
	var args []ast.Node
	if p.curTokenIs(token.RPAREN) {
		end := p.curToken.End
		p.advance(res)
		return res.Success(&ast.CallNode{Callee: callee, Args: args, EndPos: end})
	}

	arg := res.Register(p.expr())
	if res.Err != nil {
		return res.Failure(p.syntaxError("Expected ')', 'VAR', 'IF', 'FOR', 'WHILE', 'FUN', int, float, identifier, '+', '-', '(', '[' or 'NOT'"))
	}
	args = append(args, arg)
	for p.curTokenIs(token.COMMA) {
		p.advance(res)
		arg = res.Register(p.expr())
		if res.Err != nil {
			return res
		}
		args = append(args, arg)
	}
	if !p.curTokenIs(token.RPAREN) {
		return res.Failure(p.syntaxError("Expected ',' or ')'"))
	}
	end := p.curToken.End
	p.advance(res)
	return res.Success(&ast.CallNode{Callee: callee, Args: args, EndPos: end})
}

func (p *Parser) atom() *ParseResult {
	res := &ParseResult{}
	tok := p.curToken

	switch {
	case tok.Type == token.INT || tok.Type == token.FLOAT:
		p.advance(res)
		return res.Success(&ast.NumberNode{Token: tok})
	case tok.Type == token.STRING:
		p.advance(res)
		return res.Success(&ast.StringNode{Token: tok})
	case tok.Type == token.IDENTIFIER:
		p.advance(res)
		return res.Success(&ast.VarAccessNode{Name: tok})
	case tok.Type == token.LPAREN:
		p.advance(res)
		inner := res.Register(p.expr())
		if res.Err != nil {
			return res
		}
		if !p.curTokenIs(token.RPAREN) {
			return res.Failure(p.syntaxError("Expected ')'"))
		}
		p.advance(res)
		return res.Success(inner)
	case tok.Type == token.LSQUARE:
		return p.wrap(res, p.listExpr())
	case tok.IsKeyword(token.IF):
		return p.wrap(res, p.ifExpr())
	case tok.IsKeyword(token.FOR):
		return p.wrap(res, p.forExpr())
	case tok.IsKeyword(token.WHILE):
		return p.wrap(res, p.whileExpr())
	case tok.IsKeyword(token.FUN):
		return p.wrap(res, p.funcDef())
	}

	return res.Failure(p.syntaxError("Expected int, float, identifier, '+', '-', '(', '[', 'IF', 'FOR', 'WHILE' or 'FUN'"))
}

// wrap registers a sub-rule on res and passes its outcome through.
func (p *Parser) wrap(res *ParseResult, sub *ParseResult) *ParseResult {
	node := res.Register(sub)
	if res.Err != nil {
		return res
	}
	return res.Success(node)
}

func (p *Parser) listExpr() *ParseResult {
	res := &ParseResult{}
	start := p.curToken.Start
	if !p.curTokenIs(token.LSQUARE) {
		return res.Failure(p.syntaxError("Expected '['"))
	}
	p.advance(res)

	var elements []ast.Node
	if p.curTokenIs(token.RSQUARE) {
		end := p.curToken.End
		p.advance(res)
		return res.Success(&ast.ListNode{Elements: elements, StartPos: start, EndPos: end})
	}

	el := res.Register(p.expr())
	if res.Err != nil {
		return res.Failure(p.syntaxError("Expected ']', 'VAR', 'IF', 'FOR', 'WHILE', 'FUN', int, float, identifier, '+', '-', '(', '[' or 'NOT'"))
	}
	elements = append(elements, el)
	for p.curTokenIs(token.COMMA) {
		p.advance(res)
		el = res.Register(p.expr())
		if res.Err != nil {
			return res
		}
		elements = append(elements, el)
	}
	if !p.curTokenIs(token.RSQUARE) {
		return res.Failure(p.syntaxError("Expected ',' or ']'"))
	}
	end := p.curToken.End
	p.advance(res)
	return res.Success(&ast.ListNode{Elements: elements, StartPos: start, EndPos: end})
}
