package diagnostics

import (
	"strings"

	"github.com/funvibe/basic/internal/token"
)

// RenderCaret prints every source line touched by [start, end) with a row of
// carets under the covered columns. Tabs are dropped from the output.
func RenderCaret(text string, start, end token.Position) string {
	if text == "" {
		return ""
	}
	idx := start.Index
	if idx > len(text) {
		idx = len(text)
	}
	if idx < 0 {
		idx = 0
	}
	lineStart := strings.LastIndexByte(text[:idx], '\n') + 1

	lineCount := end.Line - start.Line + 1
	endsAtLineBreak := end.Column == 0 && end.Line > start.Line
	if endsAtLineBreak {
		lineCount--
	}
	if lineCount < 1 {
		lineCount = 1
	}

	var b strings.Builder
	for i := 0; i < lineCount && lineStart <= len(text); i++ {
		lineEnd := strings.IndexByte(text[lineStart:], '\n')
		if lineEnd < 0 {
			lineEnd = len(text)
		} else {
			lineEnd += lineStart
		}
		line := text[lineStart:lineEnd]

		colStart := 0
		if i == 0 {
			colStart = start.Column
		}
		colEnd := len(line)
		if i == lineCount-1 && !endsAtLineBreak {
			colEnd = end.Column
		}
		if colStart > len(line) {
			colStart = len(line)
		}
		width := colEnd - colStart
		if width < 1 {
			width = 1
		}

		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", colStart))
		b.WriteString(strings.Repeat("^", width))

		lineStart = lineEnd + 1
	}
	return strings.ReplaceAll(b.String(), "\t", "")
}
