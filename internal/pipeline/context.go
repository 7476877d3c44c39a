package pipeline

import (
	"io"

	"github.com/funvibe/jott/internal/ast"
	"github.com/funvibe/jott/internal/diagnostics"
	"github.com/funvibe/jott/internal/token"
)

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries a single run's state from stage to stage.
type PipelineContext struct {
	SourceCode string
	FilePath   string
	RunID      string

	Tokens  []token.Token
	AstRoot *ast.Program

	// Errors holds the diagnostics reported so far. Stages stop at the first one.
	Errors []*diagnostics.DiagnosticError

	// Out receives program output (print). Nil means os.Stdout.
	Out io.Writer

	// MaxCallDepth bounds nested calls during execution; 0 means the default.
	MaxCallDepth int

	// Validated is set once the semantic analyzer accepted the program.
	Validated bool
	// Executed is set once the program ran to completion.
	Executed bool
}

func NewContext(source, filePath string) *PipelineContext {
	return &PipelineContext{SourceCode: source, FilePath: filePath}
}

// Failed reports whether any stage recorded a diagnostic.
func (ctx *PipelineContext) Failed() bool {
	return len(ctx.Errors) > 0
}

// Err returns the first diagnostic or nil.
func (ctx *PipelineContext) Err() *diagnostics.DiagnosticError {
	if len(ctx.Errors) == 0 {
		return nil
	}
	return ctx.Errors[0]
}

func (ctx *PipelineContext) AddError(err *diagnostics.DiagnosticError) {
	if err.File == "" {
		err.File = ctx.FilePath
	}
	ctx.Errors = append(ctx.Errors, err)
}

// ExitCode maps the run outcome to the process exit status.
func (ctx *PipelineContext) ExitCode() int {
	if ctx.Failed() {
		return 1
	}
	return 0
}
