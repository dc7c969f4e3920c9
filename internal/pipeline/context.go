package pipeline

import (
	"github.com/funvibe/basic/internal/ast"
	"github.com/funvibe/basic/internal/diagnostics"
	"github.com/funvibe/basic/internal/evaluator"
	"github.com/funvibe/basic/internal/token"
)

type PipelineContext struct {
	SourceName string
	SourceCode string

	TokenStream []token.Token
	AstRoot     ast.Node
	Result      evaluator.Object

	Errors []*diagnostics.DiagnosticError
}

func NewPipelineContext(sourceName, sourceCode string) *PipelineContext {
	return &PipelineContext{SourceName: sourceName, SourceCode: sourceCode}
}

// Failed reports whether any stage recorded an error.
func (c *PipelineContext) Failed() bool {
	return len(c.Errors) > 0
}

// Err returns the first recorded error, or nil.
func (c *PipelineContext) Err() *diagnostics.DiagnosticError {
	if len(c.Errors) == 0 {
		return nil
	}
	return c.Errors[0]
}
