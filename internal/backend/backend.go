// Package backend runs parsed programs and exposes the single entry point
// used by the CLI, the REPL, the server and the embedding API.
package backend

import (
	"github.com/funvibe/basic/internal/diagnostics"
	"github.com/funvibe/basic/internal/evaluator"
	"github.com/funvibe/basic/internal/pipeline"
)

// Backend executes ctx.AstRoot. Exactly one of the returned value and error
// is non-nil.
type Backend interface {
	Run(ctx *pipeline.PipelineContext) (evaluator.Object, *diagnostics.DiagnosticError)
	Name() string
}
