package token

// Position is a point in a source text. Line and Column are zero-based;
// rendering adds one to the line.
type Position struct {
	Index  int
	Line   int
	Column int
	File   string
	Source string
}

// NewPosition returns the position of the first character of source.
func NewPosition(file, source string) Position {
	return Position{Index: -1, Line: 0, Column: -1, File: file, Source: source}
}

// Advance moves past ch. A newline starts the next line.
func (p Position) Advance(ch byte) Position {
	p.Index++
	p.Column++
	if ch == '\n' {
		p.Line++
		p.Column = 0
	}
	return p
}
