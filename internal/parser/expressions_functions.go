package parser

import (
	"github.com/funvibe/basic/internal/ast"
	"github.com/funvibe/basic/internal/token"
)

// funcDef parses FUN name? (params) -> expr, or the block form
// FUN name? (params) NEWLINE statements END.
func (p *Parser) funcDef() *ParseResult {
	res := &ParseResult{}
	start := p.curToken.Start
	if !p.expectKeyword(res, token.FUN) {
		return res
	}

	var name *token.Token
	if p.curTokenIs(token.IDENTIFIER) {
		tok := p.curToken
		name = &tok
		p.advance(res)
		if !p.curTokenIs(token.LPAREN) {
			return res.Failure(p.syntaxError("Expected '('"))
		}
	} else if !p.curTokenIs(token.LPAREN) {
		return res.Failure(p.syntaxError("Expected identifier or '('"))
	}
	p.advance(res)

	var params []token.Token
	if p.curTokenIs(token.IDENTIFIER) {
		params = append(params, p.curToken)
		p.advance(res)
		for p.curTokenIs(token.COMMA) {
			p.advance(res)
			if !p.curTokenIs(token.IDENTIFIER) {
				return res.Failure(p.syntaxError("Expected identifier"))
			}
			params = append(params, p.curToken)
			p.advance(res)
		}
		if !p.curTokenIs(token.RPAREN) {
			return res.Failure(p.syntaxError("Expected ',' or ')'"))
		}
	} else if !p.curTokenIs(token.RPAREN) {
		return res.Failure(p.syntaxError("Expected identifier or ')'"))
	}
	p.advance(res)

	node := &ast.FuncDefNode{Name: name, Params: params, StartPos: start}
	switch {
	case p.curTokenIs(token.ARROW):
		p.advance(res)
		body := res.Register(p.expr())
		if res.Err != nil {
			return res
		}
		node.Body = body
		node.EndPos = body.End()
	case p.curTokenIs(token.NEWLINE):
		body, _, end := p.body(res)
		if res.Err != nil {
			return res
		}
		node.Body = body
		node.Block = true
		node.EndPos = end
	default:
		return res.Failure(p.syntaxError("Expected '->' or NEWLINE"))
	}
	return res.Success(node)
}
