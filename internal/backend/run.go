package backend

import (
	"github.com/funvibe/basic/internal/ast"
	"github.com/funvibe/basic/internal/diagnostics"
	"github.com/funvibe/basic/internal/evaluator"
	"github.com/funvibe/basic/internal/lexer"
	"github.com/funvibe/basic/internal/parser"
	"github.com/funvibe/basic/internal/pipeline"
)

// Run lexes, parses and evaluates text against root. Exactly one of the
// value and the error is non-nil. The AST is returned whenever parsing
// succeeded, even if evaluation failed.
func Run(name, text string, interp *evaluator.Interpreter, root *evaluator.Context) (ast.Node, evaluator.Object, *diagnostics.DiagnosticError) {
	ctx := RunPipeline(name, text, NewTreeWalk(interp, root))
	if ctx.Failed() {
		return ctx.AstRoot, nil, ctx.Err()
	}
	return ctx.AstRoot, ctx.Result, nil
}

// RunPipeline runs the full lexer, parser and execution chain.
func RunPipeline(name, text string, b Backend) *pipeline.PipelineContext {
	processingPipeline := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		NewExecutionProcessor(b),
	)
	return processingPipeline.Run(pipeline.NewPipelineContext(name, text))
}

// ParseOnly stops after the parser; used for syntax checks and formatting.
func ParseOnly(name, text string) (ast.Node, *diagnostics.DiagnosticError) {
	ctx := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).
		Run(pipeline.NewPipelineContext(name, text))
	return ctx.AstRoot, ctx.Err()
}
