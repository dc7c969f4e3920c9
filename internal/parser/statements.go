package parser

import (
	"github.com/funvibe/basic/internal/ast"
	"github.com/funvibe/basic/internal/token"
)

// statements parses NEWLINE* expr (NEWLINE+ expr)*. Each expression after a
// separator is parsed speculatively: when it fails, the cursor goes back to
// the separator and the list ends there, leaving the enclosing rule to check
// for its own terminator (END, ELIF, ELSE or EOF).
func (p *Parser) statements() *ParseResult {
	res := &ParseResult{}
	start := p.curToken.Start

	for p.curTokenIs(token.NEWLINE) {
		p.advance(res)
	}

	first := res.Register(p.expr())
	if res.Err != nil {
		return res
	}
	stmts := []ast.Node{first}

	for {
		newlines := 0
		for p.curTokenIs(token.NEWLINE) {
			p.advance(res)
			newlines++
		}
		if newlines == 0 {
			break
		}

		cp := p.checkpoint()
		stmt := res.TryRegister(p.expr())
		if stmt == nil {
			p.restore(cp)
			break
		}
		stmts = append(stmts, stmt)
	}

	return res.Success(&ast.ListNode{
		Elements: stmts,
		Block:    true,
		StartPos: start,
		EndPos:   stmts[len(stmts)-1].End(),
	})
}
