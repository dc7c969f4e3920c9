package parser

import (
	"github.com/funvibe/basic/internal/ast"
	"github.com/funvibe/basic/internal/token"
)

func (p *Parser) expectKeyword(res *ParseResult, kw string) bool {
	if !p.curKeywordIs(kw) {
		res.Failure(p.syntaxError("Expected '" + kw + "'"))
		return false
	}
	p.advance(res)
	return true
}

func (p *Parser) ifExpr() *ParseResult {
	res := &ParseResult{}
	start := p.curToken.Start
	node := &ast.IfNode{StartPos: start}
	if !p.ifCases(res, token.IF, node) {
		return res
	}
	node.EndPos = p.lastEnd(node)
	return res.Success(node)
}

// lastEnd is the end of the final branch body.
func (p *Parser) lastEnd(node *ast.IfNode) token.Position {
	if node.Else != nil {
		return node.Else.Body.End()
	}
	return node.Cases[len(node.Cases)-1].Body.End()
}

// ifCases parses "kw cond THEN body" and whatever ELIF/ELSE arms follow it,
// appending them to node. A block arm must be closed by END or continued by
// ELIF/ELSE.
func (p *Parser) ifCases(res *ParseResult, kw string, node *ast.IfNode) bool {
	if !p.expectKeyword(res, kw) {
		return false
	}
	condition := res.Register(p.expr())
	if res.Err != nil {
		return false
	}
	if !p.expectKeyword(res, token.THEN) {
		return false
	}

	if p.curTokenIs(token.NEWLINE) {
		p.advance(res)
		body := res.Register(p.statements())
		if res.Err != nil {
			return false
		}
		node.Cases = append(node.Cases, ast.IfCase{Condition: condition, Body: body, Block: true})

		switch {
		case p.curKeywordIs(token.END):
			p.advance(res)
			return true
		case p.curKeywordIs(token.ELIF):
			return p.ifCases(res, token.ELIF, node)
		case p.curKeywordIs(token.ELSE):
			return p.elseCase(res, node)
		}
		res.Failure(p.syntaxError("Expected 'END'"))
		return false
	}

	body := res.Register(p.expr())
	if res.Err != nil {
		return false
	}
	node.Cases = append(node.Cases, ast.IfCase{Condition: condition, Body: body})

	switch {
	case p.curKeywordIs(token.ELIF):
		return p.ifCases(res, token.ELIF, node)
	case p.curKeywordIs(token.ELSE):
		return p.elseCase(res, node)
	}
	return true
}

func (p *Parser) elseCase(res *ParseResult, node *ast.IfNode) bool {
	p.advance(res)

	if p.curTokenIs(token.NEWLINE) {
		p.advance(res)
		body := res.Register(p.statements())
		if res.Err != nil {
			return false
		}
		node.Else = &ast.ElseCase{Body: body, Block: true}
		return p.expectKeyword(res, token.END)
	}

	body := res.Register(p.expr())
	if res.Err != nil {
		return false
	}
	node.Else = &ast.ElseCase{Body: body}
	return true
}

// body parses a loop or function body: a single expression or
// NEWLINE statements END. It reports whether the block form was used.
func (p *Parser) body(res *ParseResult) (ast.Node, bool, token.Position) {
	if p.curTokenIs(token.NEWLINE) {
		p.advance(res)
		stmts := res.Register(p.statements())
		if res.Err != nil {
			return nil, true, token.Position{}
		}
		end := p.curToken.End
		if !p.expectKeyword(res, token.END) {
			return nil, true, token.Position{}
		}
		return stmts, true, end
	}

	expr := res.Register(p.expr())
	if res.Err != nil {
		return nil, false, token.Position{}
	}
	return expr, false, expr.End()
}

func (p *Parser) forExpr() *ParseResult {
	res := &ParseResult{}
	start := p.curToken.Start
	if !p.expectKeyword(res, token.FOR) {
		return res
	}

	if !p.curTokenIs(token.IDENTIFIER) {
		return res.Failure(p.syntaxError("Expected identifier"))
	}
	varName := p.curToken
	p.advance(res)

	if !p.curTokenIs(token.EQ) {
		return res.Failure(p.syntaxError("Expected '='"))
	}
	p.advance(res)

	from := res.Register(p.expr())
	if res.Err != nil {
		return res
	}
	if !p.expectKeyword(res, token.TO) {
		return res
	}
	to := res.Register(p.expr())
	if res.Err != nil {
		return res
	}

	var step ast.Node
	if p.curKeywordIs(token.STEP) {
		p.advance(res)
		step = res.Register(p.expr())
		if res.Err != nil {
			return res
		}
	}

	if !p.expectKeyword(res, token.THEN) {
		return res
	}

	body, block, end := p.body(res)
	if res.Err != nil {
		return res
	}
	return res.Success(&ast.ForNode{
		Var:      varName,
		From:     from,
		To:       to,
		Step:     step,
		Body:     body,
		Block:    block,
		StartPos: start,
		EndPos:   end,
	})
}

func (p *Parser) whileExpr() *ParseResult {
	res := &ParseResult{}
	start := p.curToken.Start
	if !p.expectKeyword(res, token.WHILE) {
		return res
	}

	condition := res.Register(p.expr())
	if res.Err != nil {
		return res
	}
	if !p.expectKeyword(res, token.THEN) {
		return res
	}

	body, block, end := p.body(res)
	if res.Err != nil {
		return res
	}
	return res.Success(&ast.WhileNode{
		Condition: condition,
		Body:      body,
		Block:     block,
		StartPos:  start,
		EndPos:    end,
	})
}
