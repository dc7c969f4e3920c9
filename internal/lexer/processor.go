package lexer

import (
	"github.com/funvibe/basic/internal/pipeline"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() {
		return ctx
	}
	tokens, err := Tokenize(ctx.SourceName, ctx.SourceCode)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.TokenStream = tokens
	return ctx
}
