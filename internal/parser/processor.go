package parser

import (
	"github.com/funvibe/jott/internal/pipeline"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Name() string { return "parser" }

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	program, err := New(ctx.Tokens, ctx.FilePath).ParseProgram()
	if err != nil {
		ctx.AddError(err)
		return ctx
	}
	ctx.AstRoot = program
	return ctx
}
