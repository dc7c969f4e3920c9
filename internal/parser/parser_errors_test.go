package parser_test

import (
	"strings"
	"testing"

	"github.com/funvibe/basic/internal/diagnostics"
	"github.com/funvibe/basic/internal/lexer"
	"github.com/funvibe/basic/internal/parser"
	"github.com/funvibe/basic/internal/pipeline"
	"github.com/funvibe/basic/internal/token"
)

// parseWithErrors runs the lexer+parser and returns all diagnostic errors.
func parseWithErrors(input string) []*diagnostics.DiagnosticError {
	ctx := pipeline.NewPipelineContext("<test>", input)
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	return ctx.Errors
}

// expectError asserts an error with the given code and returns it.
func expectError(t *testing.T, input string, code diagnostics.ErrorCode) *diagnostics.DiagnosticError {
	t.Helper()
	errs := parseWithErrors(input)
	if len(errs) == 0 {
		t.Fatalf("expected error %s, but got none\ninput: %s", code, input)
	}
	for _, e := range errs {
		if e.Code == code {
			return e
		}
	}
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	t.Fatalf("expected error %s, got:\n%s\ninput: %s", code, strings.Join(msgs, "\n"), input)
	return nil
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		details string
		index   int
	}{
		{"missing operand", "1 +", "Expected int, float, identifier, '+', '-', '(', '[', 'IF', 'FOR', 'WHILE' or 'FUN'", 3},
		{"empty program", "", "Expected 'VAR', 'IF', 'FOR', 'WHILE', 'FUN', int, float, identifier, '+', '-', '(', '[' or 'NOT'", 0},
		{"assignment without name", "VAR = 1", "Expected identifier", 4},
		{"assignment without equals", "VAR a 1", "Expected '='", 6},
		{"trailing token", "1 2", "Token cannot appear after previous tokens", 2},
		{"unclosed paren", "(1 + 2", "Expected ')'", 6},
		{"unclosed list", "[1, 2", "Expected ',' or ']'", 5},
		{"unclosed call", "f(1 2)", "Expected ',' or ')'", 4},
		{"missing TO", "FOR i = 0 10", "Expected 'TO'", 10},
		{"missing THEN", "WHILE 1 2", "Expected 'THEN'", 8},
		{"function without parens", "FUN f a", "Expected '('", 6},
		{"function without arrow", "FUN f(a) a", "Expected '->' or NEWLINE", 9},
		{"bad parameter", "FUN f(a, 1) -> a", "Expected identifier", 9},
		{"missing END", "IF 1 THEN\n1\n", "Expected 'END'", 12},
		{"loop missing END", "WHILE 1 THEN\n2", "Expected 'END'", 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := expectError(t, tt.input, diagnostics.ErrP001)
			if err.Details != tt.details {
				t.Errorf("expected %q, got %q", tt.details, err.Details)
			}
			if err.Start.Index != tt.index {
				t.Errorf("expected error at %d, got %d", tt.index, err.Start.Index)
			}
		})
	}
}

// An error at the end of input is how the REPL decides to keep reading.
func TestIncompleteInputErrorsAtEOF(t *testing.T) {
	for _, input := range []string{"FUN f()\n  1", "IF 1 THEN\n", "[1,", "FOR i = 0 TO"} {
		err := expectError(t, input, diagnostics.ErrP001)
		if err.Start.Index < len(input) {
			t.Errorf("%q: expected error at end of input, got %d", input, err.Start.Index)
		}
	}

	err := expectError(t, "1 +)\n", diagnostics.ErrP001)
	if err.Start.Index >= 4 {
		t.Errorf("expected error inside input, got %d", err.Start.Index)
	}
}

func TestNestingLimit(t *testing.T) {
	depth := parser.MaxRecursionDepth + 10
	input := strings.Repeat("(", depth) + "1" + strings.Repeat(")", depth)
	err := expectError(t, input, diagnostics.ErrP001)
	if err.Details != "Expression nested too deeply" {
		t.Errorf("unexpected details %q", err.Details)
	}
}

func TestLexerErrorStopsPipeline(t *testing.T) {
	errs := parseWithErrors("1 + ?")
	if len(errs) != 1 || errs[0].Code != diagnostics.ErrL001 {
		t.Fatalf("expected a single L001, got %v", errs)
	}
}

func TestParseRequiresEOF(t *testing.T) {
	// tokens without the final EOF still fail cleanly
	tokens := []token.Token{{Type: token.INT, Lexeme: "1", Literal: int64(1)}}
	_, err := parser.Parse(tokens)
	if err == nil {
		t.Fatal("expected an error")
	}
}
