package backend_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/funvibe/jott/internal/analyzer"
	"github.com/funvibe/jott/internal/backend"
	"github.com/funvibe/jott/internal/diagnostics"
	"github.com/funvibe/jott/internal/lexer"
	"github.com/funvibe/jott/internal/parser"
	"github.com/funvibe/jott/internal/pipeline"
)

func runPipeline(src string, out *bytes.Buffer, b backend.Backend) *pipeline.PipelineContext {
	ctx := pipeline.NewContext(src, "prog.jott")
	ctx.Out = out
	p := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
		backend.NewExecutionProcessor(b),
	)
	return p.Run(ctx)
}

func TestPipeline_Success(t *testing.T) {
	var out bytes.Buffer
	ctx := runPipeline(`Def main[]:Void{ ::print[::concat["hello, ", "world"]]; }`, &out, backend.NewTreeWalk())
	if ctx.Failed() {
		t.Fatalf("unexpected error: %v", ctx.Err())
	}
	if !ctx.Validated || !ctx.Executed || ctx.ExitCode() != 0 {
		t.Errorf("unexpected state: validated=%v executed=%v exit=%d", ctx.Validated, ctx.Executed, ctx.ExitCode())
	}
	if out.String() != "hello, world\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestPipeline_SemanticErrorSkipsExecution(t *testing.T) {
	var out bytes.Buffer
	ctx := runPipeline(`Def main[]:Void{ ::print["side effect"]; Integer x; x = "bad"; }`, &out, backend.NewTreeWalk())
	if ctx.Err() == nil || ctx.Err().Code != diagnostics.ErrAssignmentTypeMismatch {
		t.Fatalf("expected assignment type mismatch, got %v", ctx.Err())
	}
	if ctx.Executed || out.Len() != 0 {
		t.Error("the evaluator must not run after a failed validation")
	}
	if ctx.ExitCode() != 1 {
		t.Errorf("expected exit code 1, got %d", ctx.ExitCode())
	}
}

func TestPipeline_SyntaxErrorStopsEarly(t *testing.T) {
	var out bytes.Buffer
	ctx := runPipeline("Def main[]:Void{ ::print[1] }", &out, backend.NewTreeWalk())
	if ctx.Err() == nil || ctx.Err().Phase != diagnostics.PhaseSyntax {
		t.Fatalf("expected a syntax error, got %v", ctx.Err())
	}
	if ctx.AstRoot != nil || ctx.Validated {
		t.Error("later stages must not run after a syntax error")
	}
}

func TestPipeline_RuntimeError(t *testing.T) {
	var out bytes.Buffer
	ctx := runPipeline("Def main[]:Void{\n    ::print[1.0 / 0.0];\n}", &out, backend.NewTreeWalk())
	err := ctx.Err()
	if err == nil || err.Code != diagnostics.ErrDivisionByZero {
		t.Fatalf("expected division by zero, got %v", err)
	}
	if err.Error() != "Runtime Error\nDivision by zero\nprog.jott:2" {
		t.Errorf("unexpected diagnostic:\n%s", err.Error())
	}
}

type failingBackend struct{}

func (failingBackend) Name() string                         { return "failing" }
func (failingBackend) Run(*pipeline.PipelineContext) error { return errors.New("boom") }

func TestExecutionProcessor_WrapsForeignErrors(t *testing.T) {
	var out bytes.Buffer
	ctx := runPipeline("Def main[]:Void{}", &out, failingBackend{})
	err := ctx.Err()
	if err == nil || err.Code != diagnostics.ErrInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
	if err.Message != "Internal error: boom" {
		t.Errorf("unexpected message %q", err.Message)
	}
}

func TestTreeWalk_RequiresValidation(t *testing.T) {
	ctx := pipeline.NewContext("Def main[]:Void{}", "x.jott")
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	if err := backend.NewTreeWalk().Run(ctx); err == nil {
		t.Fatal("expected an error for an unvalidated program")
	}
}
