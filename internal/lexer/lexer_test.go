package lexer_test

import (
	"testing"

	"github.com/go-test/deep"

	"github.com/funvibe/basic/internal/diagnostics"
	"github.com/funvibe/basic/internal/lexer"
	"github.com/funvibe/basic/internal/pipeline"
	"github.com/funvibe/basic/internal/token"
)

// tok is a token without its positions.
type tok struct {
	Type    token.TokenType
	Lexeme  string
	Literal interface{}
}

func lex(t *testing.T, input string) []tok {
	t.Helper()
	tokens, err := lexer.Tokenize("<test>", input)
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Render())
	}
	out := make([]tok, len(tokens))
	for i, tk := range tokens {
		out[i] = tok{tk.Type, tk.Lexeme, tk.Literal}
	}
	return out
}

func TestArithmeticExpression(t *testing.T) {
	expected := []tok{
		{token.INT, "1", int64(1)},
		{token.PLUS, "+", nil},
		{token.FLOAT, "2.5", 2.5},
		{token.MUL, "*", nil},
		{token.LPAREN, "(", nil},
		{token.INT, "3", int64(3)},
		{token.MINUS, "-", nil},
		{token.INT, "4", int64(4)},
		{token.RPAREN, ")", nil},
		{token.EOF, "", nil},
	}
	if diff := deep.Equal(lex(t, "1 + 2.5 * (3 - 4)"), expected); diff != nil {
		t.Error(diff)
	}
}

func TestTokenKinds(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tok
	}{
		{
			"keywords and identifiers",
			"VAR abc_1 = NOT x",
			[]tok{
				{token.KEYWORD, "VAR", "VAR"},
				{token.IDENTIFIER, "abc_1", "abc_1"},
				{token.EQ, "=", nil},
				{token.KEYWORD, "NOT", "NOT"},
				{token.IDENTIFIER, "x", "x"},
				{token.EOF, "", nil},
			},
		},
		{
			"comparisons",
			"== != < > <= >=",
			[]tok{
				{token.EE, "==", nil},
				{token.NE, "!=", nil},
				{token.LT, "<", nil},
				{token.GT, ">", nil},
				{token.LTE, "<=", nil},
				{token.GTE, ">=", nil},
				{token.EOF, "", nil},
			},
		},
		{
			"arrow and minus",
			"FUN f(a) -> -a",
			[]tok{
				{token.KEYWORD, "FUN", "FUN"},
				{token.IDENTIFIER, "f", "f"},
				{token.LPAREN, "(", nil},
				{token.IDENTIFIER, "a", "a"},
				{token.RPAREN, ")", nil},
				{token.ARROW, "->", nil},
				{token.MINUS, "-", nil},
				{token.IDENTIFIER, "a", "a"},
				{token.EOF, "", nil},
			},
		},
		{
			"string escapes",
			`"a\tb\n\"q\"\\"`,
			[]tok{
				{token.STRING, `"a\tb\n\"q\"\\"`, "a\tb\n\"q\"\\"},
				{token.EOF, "", nil},
			},
		},
		{
			"newlines and semicolons",
			"1;2\n3",
			[]tok{
				{token.INT, "1", int64(1)},
				{token.NEWLINE, ";", nil},
				{token.INT, "2", int64(2)},
				{token.NEWLINE, "\n", nil},
				{token.INT, "3", int64(3)},
				{token.EOF, "", nil},
			},
		},
		{
			"comment runs to end of line",
			"1 # ignored ^&$\n2",
			[]tok{
				{token.INT, "1", int64(1)},
				{token.NEWLINE, "\n", nil},
				{token.INT, "2", int64(2)},
				{token.EOF, "", nil},
			},
		},
		{
			"trailing dot",
			"7. 8",
			[]tok{
				{token.FLOAT, "7.", 7.0},
				{token.INT, "8", int64(8)},
				{token.EOF, "", nil},
			},
		},
		{
			"lists",
			"[1, 2]",
			[]tok{
				{token.LSQUARE, "[", nil},
				{token.INT, "1", int64(1)},
				{token.COMMA, ",", nil},
				{token.INT, "2", int64(2)},
				{token.RSQUARE, "]", nil},
				{token.EOF, "", nil},
			},
		},
		{
			"empty input",
			"",
			[]tok{{token.EOF, "", nil}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := deep.Equal(lex(t, tt.input), tt.expected); diff != nil {
				t.Error(diff)
			}
		})
	}
}

func TestPositions(t *testing.T) {
	tokens, err := lexer.Tokenize("<test>", "ab\n  cd")
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if len(tokens) != 4 {
		t.Fatalf("expected 4 tokens, got %d", len(tokens))
	}

	cd := tokens[2]
	if cd.Start.Index != 5 || cd.Start.Line != 1 || cd.Start.Column != 2 {
		t.Errorf("cd starts at %+v", cd.Start)
	}
	if cd.End.Index != 7 || cd.End.Column != 4 {
		t.Errorf("cd ends at %+v", cd.End)
	}

	eof := tokens[3]
	if eof.Start.Index != 7 || eof.End.Index != 8 {
		t.Errorf("EOF spans %d..%d, expected 7..8", eof.Start.Index, eof.End.Index)
	}
	if eof.Start.File != "<test>" {
		t.Errorf("expected file <test>, got %q", eof.Start.File)
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		input   string
		code    diagnostics.ErrorCode
		details string
		index   int
	}{
		{"1 + $", diagnostics.ErrL001, "'$'", 4},
		{"a ! b", diagnostics.ErrL002, "'=' (after '!')", 2},
		{`PRINT("abc`, diagnostics.ErrL002, `'"' (to close string)`, 6},
		// a second dot ends the number and cannot start another
		{"1.2.3", diagnostics.ErrL001, "'.'", 3},
		{"x = π", diagnostics.ErrL001, "'π'", 4},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := lexer.Tokenize("<test>", tt.input)
			if err == nil {
				t.Fatal("expected an error")
			}
			if err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, err.Code)
			}
			if err.Details != tt.details {
				t.Errorf("expected details %q, got %q", tt.details, err.Details)
			}
			if err.Start.Index != tt.index {
				t.Errorf("expected error at %d, got %d", tt.index, err.Start.Index)
			}
		})
	}
}

func TestIllegalRuneSpan(t *testing.T) {
	_, err := lexer.Tokenize("<test>", "1 + €")
	if err == nil {
		t.Fatal("expected an error")
	}
	if err.Details != "'€'" {
		t.Errorf("expected details %q, got %q", "'€'", err.Details)
	}
	if err.Start.Index != 4 || err.End.Index != 7 {
		t.Errorf("expected span 4..7, got %d..%d", err.Start.Index, err.End.Index)
	}
}

func TestLexerProcessor(t *testing.T) {
	ctx := pipeline.NewPipelineContext("<test>", "1 + 2")
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	if ctx.Failed() {
		t.Fatalf("unexpected error: %s", ctx.Err().Error())
	}
	if len(ctx.TokenStream) != 4 {
		t.Errorf("expected 4 tokens, got %d", len(ctx.TokenStream))
	}

	ctx = pipeline.NewPipelineContext("<test>", "1 @ 2")
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	if !ctx.Failed() || ctx.Err().Code != diagnostics.ErrL001 {
		t.Errorf("expected L001, got %v", ctx.Errors)
	}
}

func TestHasComments(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1 + 2", false},
		{"1 # note", true},
		{"# only a comment", true},
		{`"# inside a string"`, false},
	}
	for _, tt := range tests {
		if got := lexer.HasComments(tt.input); got != tt.want {
			t.Errorf("HasComments(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
