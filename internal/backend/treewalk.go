package backend

import (
	"fmt"

	"github.com/funvibe/jott/internal/evaluator"
	"github.com/funvibe/jott/internal/pipeline"
)

// TreeWalkBackend runs programs on the recursive AST interpreter.
type TreeWalkBackend struct{}

func NewTreeWalk() *TreeWalkBackend {
	return &TreeWalkBackend{}
}

func (b *TreeWalkBackend) Name() string { return "treewalk" }

func (b *TreeWalkBackend) Run(ctx *pipeline.PipelineContext) error {
	if ctx.AstRoot == nil {
		return fmt.Errorf("no AST to execute")
	}
	if !ctx.Validated {
		return fmt.Errorf("program %s has not been validated", ctx.FilePath)
	}
	if len(ctx.Errors) > 0 {
		return ctx.Errors[0]
	}

	eval := evaluator.New(ctx.Out)
	eval.MaxCallDepth = ctx.MaxCallDepth
	return eval.Run(ctx.AstRoot)
}
