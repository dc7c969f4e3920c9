package main

import (
	"strings"

	"github.com/funvibe/basic/internal/lexer"
	"github.com/funvibe/basic/internal/prettyprinter"
)

// handleFormatting replaces the whole document with its canonical form.
// Documents that do not parse, or that hold comments the tree cannot carry,
// are left alone.
func (s *LanguageServer) handleFormatting(id interface{}, params DocumentFormattingParams) error {
	content, ctx, ok := s.snapshot(params.TextDocument.URI)
	if !ok || ctx.AstRoot == nil || lexer.HasComments(content) {
		return s.sendResult(id, []TextEdit{})
	}

	formatted := prettyprinter.Format(ctx.AstRoot) + "\n"
	if formatted == content {
		return s.sendResult(id, []TextEdit{})
	}

	lines := strings.Split(content, "\n")
	edit := TextEdit{
		Range: Range{
			Start: Position{},
			End:   Position{Line: len(lines) - 1, Character: utf16Len(lines[len(lines)-1])},
		},
		NewText: formatted,
	}
	return s.sendResult(id, []TextEdit{edit})
}
