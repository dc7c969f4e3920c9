package parser_test

import (
	"testing"

	"github.com/funvibe/basic/internal/lexer"
	"github.com/funvibe/basic/internal/parser"
)

// FuzzParser feeds arbitrary text through the lexer and parser. Neither may
// panic, and every error must point inside the source.
func FuzzParser(f *testing.F) {
	f.Add("VAR x = 1 + 2")
	f.Add("IF a THEN\n1\nELIF b THEN 2 ELSE\n3\nEND")
	f.Add("FUN (x) -> [x, FOR i = 0 TO x STEP 2 THEN i]")
	f.Add("WHILE NOT done THEN PRINT(\"tick\\n\")")
	f.Add("((((1")

	f.Fuzz(func(t *testing.T, input string) {
		tokens, err := lexer.Tokenize("<fuzz>", input)
		if err != nil {
			if err.Start.Index < 0 || err.Start.Index > len(input) {
				t.Fatalf("lexer error outside source: %d (len %d)", err.Start.Index, len(input))
			}
			return
		}

		root, err := parser.Parse(tokens)
		if err != nil {
			if root != nil {
				t.Fatalf("both tree and error returned for %q", input)
			}
			if err.Start.Index < 0 || err.Start.Index > len(input) {
				t.Fatalf("syntax error outside source: %d (len %d)", err.Start.Index, len(input))
			}
			return
		}
		if root.End().Index > len(input) {
			t.Fatalf("tree ends at %d beyond source of length %d", root.End().Index, len(input))
		}
	})
}
