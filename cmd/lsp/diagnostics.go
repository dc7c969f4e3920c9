package main

import (
	"unicode/utf16"

	"github.com/funvibe/basic/internal/diagnostics"
	"github.com/funvibe/basic/internal/pipeline"
	"github.com/funvibe/basic/internal/token"
)

func (s *LanguageServer) publishDiagnostics(uri string, ctx *pipeline.PipelineContext) error {
	return s.sendNotification("textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: convertDiagnostics(ctx.Errors),
	})
}

func convertDiagnostics(errs []*diagnostics.DiagnosticError) []Diagnostic {
	result := make([]Diagnostic, 0, len(errs))
	for _, err := range errs {
		result = append(result, Diagnostic{
			Range:    toRange(err.Start, err.End),
			Severity: SeverityError,
			Code:     string(err.Code),
			Message:  err.Error(),
			Source:   "basic",
		})
	}
	return result
}

// toPosition converts a byte column into the UTF-16 code units LSP counts in.
func toPosition(p token.Position) Position {
	if p.Line < 0 {
		return Position{}
	}
	lineStart := p.Index - p.Column
	if p.Source == "" || p.Column < 0 || lineStart < 0 || lineStart > len(p.Source) {
		return Position{Line: p.Line, Character: p.Column}
	}
	end := min(p.Index, len(p.Source))
	return Position{Line: p.Line, Character: utf16Len(p.Source[lineStart:end]) + p.Index - end}
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

func toRange(start, end token.Position) Range {
	r := Range{Start: toPosition(start), End: toPosition(end)}
	if r.End.Line < r.Start.Line || (r.End.Line == r.Start.Line && r.End.Character < r.Start.Character) {
		r.End = r.Start
	}
	return r
}
