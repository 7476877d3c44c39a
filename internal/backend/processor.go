package backend

import (
	"errors"
	"log/slog"

	"github.com/funvibe/jott/internal/diagnostics"
	"github.com/funvibe/jott/internal/pipeline"
	"github.com/funvibe/jott/internal/token"
)

// ExecutionProcessor is the pipeline stage that runs a Backend.
type ExecutionProcessor struct {
	Backend Backend
}

func NewExecutionProcessor(b Backend) *ExecutionProcessor {
	return &ExecutionProcessor{Backend: b}
}

func (p *ExecutionProcessor) Name() string { return "execute:" + p.Backend.Name() }

func (p *ExecutionProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	// If previous steps failed, don't run execution
	if ctx.AstRoot == nil || len(ctx.Errors) > 0 {
		return ctx
	}

	if err := p.Backend.Run(ctx); err != nil {
		p.handleError(ctx, err)
		return ctx
	}
	ctx.Executed = true
	return ctx
}

// handleError records err as a runtime diagnostic. Diagnostics from the
// evaluator pass through; anything else is an internal failure.
func (p *ExecutionProcessor) handleError(ctx *pipeline.PipelineContext, err error) {
	var de *diagnostics.DiagnosticError
	if errors.As(err, &de) {
		ctx.AddError(de)
		return
	}
	slog.Error("backend failed", "backend", p.Backend.Name(), "file", ctx.FilePath, "error", err)
	ctx.AddError(diagnostics.NewError(diagnostics.ErrInternal, token.Token{}, "Internal error: %v", err))
}
