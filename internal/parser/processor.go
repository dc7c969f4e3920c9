package parser

import (
	"github.com/funvibe/basic/internal/diagnostics"
	"github.com/funvibe/basic/internal/pipeline"
	"github.com/funvibe/basic/internal/token"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() {
		return ctx
	}
	if ctx.TokenStream == nil {
		pos := token.NewPosition(ctx.SourceName, ctx.SourceCode)
		ctx.Errors = append(ctx.Errors, diagnostics.NewError(diagnostics.ErrP001, pos, pos, "token stream is nil"))
		return ctx
	}

	root, err := Parse(ctx.TokenStream)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.AstRoot = root
	return ctx
}
