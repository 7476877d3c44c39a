package pipeline

import (
	"fmt"
	"log/slog"
	"time"
)

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Stages after the first failure are skipped:
// the first diagnostic aborts the run.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		if ctx.Failed() {
			break
		}
		start := time.Now()
		ctx = processor.Process(ctx)
		slog.Debug("pipeline stage finished",
			"stage", stageName(processor),
			"file", ctx.FilePath,
			"run", ctx.RunID,
			"duration", time.Since(start),
			"errors", len(ctx.Errors))
	}
	return ctx
}

func stageName(p Processor) string {
	if n, ok := p.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", p)
}
