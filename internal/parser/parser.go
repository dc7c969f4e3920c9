package parser

import (
	"github.com/funvibe/basic/internal/ast"
	"github.com/funvibe/basic/internal/diagnostics"
	"github.com/funvibe/basic/internal/token"
)

// MaxRecursionDepth bounds expression nesting so deeply nested input fails
// with a syntax error instead of exhausting the Go stack.
const MaxRecursionDepth = 2000

type Parser struct {
	tokens   []token.Token
	idx      int
	curToken token.Token
	depth    int
}

// New expects tokens to end with EOF, as produced by the lexer.
func New(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens, idx: -1}
	p.nextToken()
	return p
}

// Parse builds the tree for a whole program. Every token up to EOF must be used.
func Parse(tokens []token.Token) (ast.Node, *diagnostics.DiagnosticError) {
	res := New(tokens).ParseProgram()
	if res.Err != nil {
		return nil, res.Err
	}
	return res.Node, nil
}

func (p *Parser) ParseProgram() *ParseResult {
	res := p.statements()
	if res.Err == nil && !p.curTokenIs(token.EOF) {
		return res.Failure(p.syntaxError("Token cannot appear after previous tokens"))
	}
	return res
}

func (p *Parser) nextToken() {
	p.idx++
	p.updateCurrent()
}

func (p *Parser) updateCurrent() {
	if p.idx >= 0 && p.idx < len(p.tokens) {
		p.curToken = p.tokens[p.idx]
	}
}

// advance moves past the current token and counts it on res.
func (p *Parser) advance(res *ParseResult) {
	res.RegisterAdvancement()
	p.nextToken()
}

// checkpoint and restore implement the speculative parse in statement lists.
func (p *Parser) checkpoint() int {
	return p.idx
}

func (p *Parser) restore(cp int) {
	p.idx = cp
	p.updateCurrent()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) curKeywordIs(kw string) bool {
	return p.curToken.IsKeyword(kw)
}

func (p *Parser) syntaxError(msg string) *diagnostics.DiagnosticError {
	return diagnostics.NewTokenError(diagnostics.ErrP001, p.curToken, "%s", msg)
}
