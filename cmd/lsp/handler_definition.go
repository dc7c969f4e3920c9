package main

import (
	"github.com/funvibe/basic/internal/token"
)

func (s *LanguageServer) handleDefinition(id interface{}, params TextDocumentPositionParams) error {
	uri := params.TextDocument.URI
	_, ctx, ok := s.snapshot(uri)
	if !ok {
		return s.sendResult(id, nil)
	}

	tok, ok := tokenAt(ctx.TokenStream, params.Position)
	if !ok || tok.Type != token.IDENTIFIER {
		return s.sendResult(id, nil)
	}
	d, ok := resolve(ctx.AstRoot, tok.Lexeme, params.Position)
	if !ok {
		return s.sendResult(id, nil)
	}
	return s.sendResult(id, Location{URI: uri, Range: toRange(d.Tok.Start, d.Tok.End)})
}
