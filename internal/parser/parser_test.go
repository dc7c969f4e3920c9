package parser_test

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/basic/internal/ast"
	"github.com/funvibe/basic/internal/lexer"
	"github.com/funvibe/basic/internal/parser"
	"github.com/funvibe/basic/internal/pipeline"
	"github.com/funvibe/basic/internal/prettyprinter"
)

var update = flag.Bool("update", false, "update snapshot files")

func TestParser(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"infix_expression", "VAR a = 5 + 2 * 10"},
		{"prefix_and_power", "-2 ^ 2"},
		{"grouping", "(1 + 2) * -x"},
		{"if_block", "IF x > 1 THEN\n  PRINT(x)\nELSE\n  0\nEND"},
		{"function_def", "FUN add(a, b) -> a + b\nadd(1, 2)"},
		{"for_step", "FOR i = 10 TO 0 STEP -2 THEN i"},
		{"logical_operators", "NOT a == b AND c OR d"},
		{"list_literal", `VAR l = [1, "a\tb", []]`},
		{"while_block", "WHILE i < 3 THEN\n  VAR i = i + 1\nEND"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := parse(t, tc.input)

			treePrinter := prettyprinter.NewTreePrinter()
			ctx.AstRoot.Accept(treePrinter)
			treeOutput := treePrinter.String()

			codePrinter := prettyprinter.NewCodePrinter()
			ctx.AstRoot.Accept(codePrinter)
			codeOutput := codePrinter.String()

			actual := "--- Input ---\n" + tc.input + "\n\n--- AST Tree ---\n" + treeOutput + "\n--- Source Code ---\n" + codeOutput

			snapshotFile := filepath.Join("testdata", tc.name+".snap")

			if *update {
				err := os.WriteFile(snapshotFile, []byte(actual), 0644)
				if err != nil {
					t.Fatalf("failed to update snapshot: %v", err)
				}
				return
			}

			expected, err := os.ReadFile(snapshotFile)
			if err != nil {
				t.Fatalf("failed to read snapshot file: %v. Run with -update flag to create it.", err)
			}

			if string(expected) != actual {
				t.Errorf("snapshot mismatch:\n--- expected\n%s\n--- actual\n%s", string(expected), actual)
			}
		})
	}
}

func parse(t *testing.T, input string) *pipeline.PipelineContext {
	t.Helper()
	ctx := pipeline.NewPipelineContext("<test>", input)
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	if len(ctx.Errors) > 0 {
		var errorMessages []string
		for _, err := range ctx.Errors {
			errorMessages = append(errorMessages, err.Error())
		}
		t.Fatalf("parsing failed with errors:\n%s", strings.Join(errorMessages, "\n"))
	}
	return ctx
}

func TestStructure(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "{(+ 1 (* 2 3))}"},
		{"1 - 2 - 3", "{(- (- 1 2) 3)}"},
		{"2 ^ 3 ^ 2", "{(^ 2 (^ 3 2))}"},
		{"-2 ^ 2", "{(- (^ 2 2))}"},
		{"2 ^ -1", "{(^ 2 (- 1))}"},
		{"NOT 1 == 2 AND 3", "{(AND (NOT (== 1 2)) 3)}"},
		{"1 < 2 == 1", "{(== (< 1 2) 1)}"},
		{"VAR a = VAR b = 1", "{(VAR a (VAR b 1))}"},
		{"f(1, g())", "{(CALL f [1, (CALL g [])])}"},
		{"[]", "{[]}"},
		{`[1, "a"]`, `{[1, "a"]}`},
		{"FOR i = 0 TO 10 STEP 2 THEN i", "{(FOR i 0 10 2 i)}"},
		{"FOR i = 0 TO 3 THEN i", "{(FOR i 0 3 nil i)}"},
		{"WHILE x THEN VAR x = x - 1", "{(WHILE x (VAR x (- x 1)))}"},
		{"IF a THEN 1 ELIF b THEN 2 ELSE 3", "{(IF [a 1] [b 2] [ELSE 3])}"},
		{"IF a THEN 1", "{(IF [a 1])}"},
		{"FUN add(a, b) -> a + b", "{(FUN add (a b) (+ a b))}"},
		{"FUN (x) -> x", "{(FUN <anonymous> (x) x)}"},
		{"FUN f()\n  1\n  2\nEND", "{(FUN f () {1, 2})}"},
		{";1;;2\n", "{1, 2}"},
		{"1 + 2.5", "{(+ 1 2.5)}"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ctx := parse(t, tt.input)
			if got := ctx.AstRoot.String(); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

// A failed statement after a separator is undone so the enclosing block can
// see its END.
func TestBlockBacktracking(t *testing.T) {
	ctx := parse(t, "IF TRUE THEN\n1\n2\nEND")
	root := ctx.AstRoot.(*ast.ListNode)
	if len(root.Elements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(root.Elements))
	}
	ifNode, ok := root.Elements[0].(*ast.IfNode)
	if !ok {
		t.Fatalf("expected *ast.IfNode, got %T", root.Elements[0])
	}
	if !ifNode.Cases[0].Block {
		t.Error("expected a block case")
	}
	body := ifNode.Cases[0].Body.(*ast.ListNode)
	if len(body.Elements) != 2 {
		t.Errorf("expected 2 statements in body, got %d", len(body.Elements))
	}
}

func TestNestedBlocks(t *testing.T) {
	input := `FUN outer(n)
    VAR total = 0
    FOR i = 0 TO n THEN
        IF i == 2 THEN
            VAR total = total + 10
        ELSE
            VAR total = total + 1
        END
    END
    total
END`
	ctx := parse(t, input)
	fn := ctx.AstRoot.(*ast.ListNode).Elements[0].(*ast.FuncDefNode)
	if !fn.Block {
		t.Fatal("expected block function")
	}
	stmts := fn.Body.(*ast.ListNode).Elements
	if len(stmts) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(stmts))
	}
	loop, ok := stmts[1].(*ast.ForNode)
	if !ok || !loop.Block {
		t.Fatalf("expected block FOR, got %T", stmts[1])
	}
	if _, ok := stmts[2].(*ast.VarAccessNode); !ok {
		t.Errorf("expected trailing variable access, got %T", stmts[2])
	}
}

func TestSpans(t *testing.T) {
	ctx := parse(t, "VAR x = 1 + 23")
	assign := ctx.AstRoot.(*ast.ListNode).Elements[0]
	if assign.Start().Index != 0 || assign.End().Index != 14 {
		t.Errorf("expected span 0..14, got %d..%d", assign.Start().Index, assign.End().Index)
	}

	ctx = parse(t, "f(1, 2)")
	call := ctx.AstRoot.(*ast.ListNode).Elements[0]
	if call.Start().Index != 0 || call.End().Index != 7 {
		t.Errorf("expected call span 0..7, got %d..%d", call.Start().Index, call.End().Index)
	}
}
