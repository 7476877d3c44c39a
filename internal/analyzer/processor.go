package analyzer

import (
	"github.com/funvibe/jott/internal/pipeline"
)

type SemanticAnalyzerProcessor struct{}

func (sap *SemanticAnalyzerProcessor) Name() string { return "analyzer" }

func (sap *SemanticAnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil {
		return ctx
	}
	if err := New().Analyze(ctx.AstRoot); err != nil {
		ctx.AddError(err)
		return ctx
	}
	ctx.Validated = true
	return ctx
}
