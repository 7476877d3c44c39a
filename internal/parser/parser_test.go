package parser_test

import (
	"fmt"
	"testing"

	"github.com/funvibe/jott/internal/ast"
	"github.com/funvibe/jott/internal/diagnostics"
	"github.com/funvibe/jott/internal/lexer"
	"github.com/funvibe/jott/internal/parser"
	"github.com/funvibe/jott/internal/pipeline"
)

// parse is a test helper: lexes+parses input and fails on errors.
func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	ctx := pipeline.NewContext(input, "test.jott")
	lp := &lexer.LexerProcessor{}
	ctx = lp.Process(ctx)
	pp := &parser.ParserProcessor{}
	ctx = pp.Process(ctx)
	if len(ctx.Errors) > 0 {
		for _, e := range ctx.Errors {
			t.Errorf("parse error: %s", e)
		}
		t.FailNow()
	}
	return ctx.AstRoot
}

// parseErr lexes+parses input and returns the expected syntax error.
func parseErr(t *testing.T, input string) *diagnostics.DiagnosticError {
	t.Helper()
	ctx := pipeline.NewContext(input, "test.jott")
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	if !ctx.Failed() {
		t.Fatalf("expected syntax error for %q", input)
	}
	err := ctx.Err()
	if err.Phase != diagnostics.PhaseSyntax {
		t.Fatalf("expected Syntax Error, got %s", err.Phase)
	}
	return err
}

func mainBody(t *testing.T, prog *ast.Program) []ast.Statement {
	t.Helper()
	for _, fn := range prog.Functions {
		if fn.Name == "main" {
			return fn.Body.Statements
		}
	}
	t.Fatal("no main function")
	return nil
}

// ---------- functions ----------

func TestParse_FunctionDef(t *testing.T) {
	prog := parse(t, `Def add[x:Integer, y:Double]:Double{ Return y; }`)
	if len(prog.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(prog.Functions))
	}
	fn := prog.Functions[0]
	if fn.Name != "add" || fn.ReturnTypeName != "Double" {
		t.Fatalf("unexpected header: %s -> %s", fn.Name, fn.ReturnTypeName)
	}
	if len(fn.Params) != 2 || fn.Params[0].Name != "x" || fn.Params[0].TypeName != "Integer" ||
		fn.Params[1].Name != "y" || fn.Params[1].TypeName != "Double" {
		t.Fatalf("unexpected params: %+v", fn.Params)
	}
	ret, ok := fn.Body.TrailingReturn()
	if !ok {
		t.Fatal("expected trailing return")
	}
	if id, ok := ret.Value.(*ast.Identifier); !ok || id.Name != "y" {
		t.Fatalf("expected Return y, got %#v", ret.Value)
	}
	if prog.File != "test.jott" {
		t.Errorf("expected program file test.jott, got %q", prog.File)
	}
}

func TestParse_EmptyProgramAndEmptyParams(t *testing.T) {
	prog := parse(t, "")
	if len(prog.Functions) != 0 {
		t.Fatalf("expected empty program, got %d functions", len(prog.Functions))
	}

	prog = parse(t, "Def main[]:Void{}\nDef f[]:Void{ Return; }")
	if len(prog.Functions) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(prog.Functions))
	}
	if len(prog.Functions[0].Params) != 0 || len(prog.Functions[0].Body.Statements) != 0 {
		t.Fatal("expected main with no params and empty body")
	}
	ret, ok := prog.Functions[1].Body.TrailingReturn()
	if !ok || ret.Value != nil {
		t.Fatalf("expected bare return, got %#v", ret)
	}
}

// ---------- statements ----------

func TestParse_Statements(t *testing.T) {
	prog := parse(t, `Def main[]:Void{
    Integer x;
    x = 5;
    ::print[x];
    While[x > 0]{ x = x - 1; }
}`)
	stmts := mainBody(t, prog)
	if len(stmts) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(stmts))
	}
	decl, ok := stmts[0].(*ast.VarDecl)
	if !ok || decl.TypeName != "Integer" || decl.Name != "x" {
		t.Fatalf("statement 0: expected VarDecl Integer x, got %#v", stmts[0])
	}
	asg, ok := stmts[1].(*ast.Assignment)
	if !ok || asg.Name != "x" {
		t.Fatalf("statement 1: expected assignment to x, got %#v", stmts[1])
	}
	if lit, ok := asg.Value.(*ast.IntLiteral); !ok || lit.Value != 5 {
		t.Fatalf("expected literal 5, got %#v", asg.Value)
	}
	es, ok := stmts[2].(*ast.ExpressionStatement)
	if !ok || es.Call.Name != "print" || len(es.Call.Args) != 1 {
		t.Fatalf("statement 2: expected ::print[x], got %#v", stmts[2])
	}
	ws, ok := stmts[3].(*ast.WhileStatement)
	if !ok {
		t.Fatalf("statement 3: expected While, got %T", stmts[3])
	}
	if bin, ok := ws.Condition.(*ast.BinaryOp); !ok || bin.Operator != ">" {
		t.Fatalf("expected x > 0 condition, got %#v", ws.Condition)
	}
	if decl.GetToken().Line != 2 || ws.GetToken().Line != 5 {
		t.Errorf("unexpected lines: decl=%d while=%d", decl.GetToken().Line, ws.GetToken().Line)
	}
}

func TestParse_IfChain(t *testing.T) {
	prog := parse(t, `Def main[]:Void{
    If[True]{ ::print[1]; }
    Elseif[False]{ ::print[2]; }
    Elseif[1 == 2]{ ::print[3]; }
    Else{ ::print[4]; }
    If[True]{}
}`)
	stmts := mainBody(t, prog)
	ifs, ok := stmts[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected If, got %T", stmts[0])
	}
	if len(ifs.ElseIfs) != 2 || ifs.Else == nil {
		t.Fatalf("expected 2 Elseif and an Else, got %d / %v", len(ifs.ElseIfs), ifs.Else)
	}
	if b, ok := ifs.Condition.(*ast.BoolLiteral); !ok || !b.Value {
		t.Fatalf("expected True condition, got %#v", ifs.Condition)
	}
	plain := stmts[1].(*ast.IfStatement)
	if plain.Else != nil || len(plain.ElseIfs) != 0 {
		t.Fatal("expected bare If")
	}
}

// ---------- expressions ----------

func TestParse_Operands(t *testing.T) {
	prog := parse(t, `Def main[]:Void{
    a = -5;
    b = 3.25;
    c = -.5;
    d = "hi there";
    e = ::concat["a", "b"];
    f = x * -2;
}`)
	stmts := mainBody(t, prog)
	value := func(i int) ast.Expression { return stmts[i].(*ast.Assignment).Value }

	if lit, ok := value(0).(*ast.IntLiteral); !ok || lit.Value != -5 || lit.Literal != "-5" {
		t.Errorf("a: expected -5, got %#v", value(0))
	}
	if lit, ok := value(1).(*ast.DoubleLiteral); !ok || lit.Value != 3.25 {
		t.Errorf("b: expected 3.25, got %#v", value(1))
	}
	if lit, ok := value(2).(*ast.DoubleLiteral); !ok || lit.Value != -0.5 {
		t.Errorf("c: expected -0.5, got %#v", value(2))
	}
	if lit, ok := value(3).(*ast.StringLiteral); !ok || lit.Value != "hi there" {
		t.Errorf("d: expected string without quotes, got %#v", value(3))
	}
	if call, ok := value(4).(*ast.Call); !ok || call.Name != "concat" || len(call.Args) != 2 {
		t.Errorf("e: expected concat call, got %#v", value(4))
	}
	bin, ok := value(5).(*ast.BinaryOp)
	if !ok || bin.Operator != "*" {
		t.Fatalf("f: expected binary *, got %#v", value(5))
	}
	if lit, ok := bin.Right.(*ast.IntLiteral); !ok || lit.Value != -2 {
		t.Errorf("f: expected right operand -2, got %#v", bin.Right)
	}
}

func TestParse_NestedCallArguments(t *testing.T) {
	prog := parse(t, `Def main[]:Void{ ::print[::length[::concat["ab", "c"]]]; }`)
	call := mainBody(t, prog)[0].(*ast.ExpressionStatement).Call
	inner, ok := call.Args[0].(*ast.Call)
	if !ok || inner.Name != "length" {
		t.Fatalf("expected nested length call, got %#v", call.Args[0])
	}
	if innermost, ok := inner.Args[0].(*ast.Call); !ok || innermost.Name != "concat" {
		t.Fatalf("expected nested concat call, got %#v", inner.Args[0])
	}
}

// ---------- errors ----------

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		code  diagnostics.ErrorCode
		line  int
	}{
		{"missing semicolon", "Def main[]:Void{\n    x = 5\n}", diagnostics.ErrUnexpectedToken, 3},
		{"chained operators", "Def main[]:Void{\n    x = 1 + 2 + 3;\n}", diagnostics.ErrUnexpectedToken, 2},
		{"statement after return", "Def f[]:Integer{\n    Return 1;\n    x = 2;\n}", diagnostics.ErrUnexpectedToken, 3},
		{"dangling else", "Def main[]:Void{\n    Else{}\n}", diagnostics.ErrUnexpectedToken, 2},
		{"missing close brace", "Def main[]:Void{\n    x = 1;\n", diagnostics.ErrUnexpectedEOF, 3},
		{"missing return type", "Def main[]{}", diagnostics.ErrUnexpectedToken, 1},
		{"top level statement", "x = 1;", diagnostics.ErrUnexpectedToken, 1},
		{"keyword as function name", "Def While[]:Void{}", diagnostics.ErrUnexpectedToken, 1},
		{"missing operand", "Def main[]:Void{ x = 1 +; }", diagnostics.ErrUnexpectedToken, 1},
		{"integer overflow", "Def main[]:Void{ x = 99999999999999999999; }", diagnostics.ErrInvalidToken, 1},
		{"missing call brackets", "Def main[]:Void{ ::print; }", diagnostics.ErrUnexpectedToken, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := parseErr(t, tc.input)
			if err.Code != tc.code {
				t.Errorf("expected %s, got %s: %s", tc.code, err.Code, err.Message)
			}
			if err.Token.Line != tc.line {
				t.Errorf("expected line %d, got %d (%s)", tc.line, err.Token.Line, err.Message)
			}
			if err.Position() != fmt.Sprintf("test.jott:%d", tc.line) {
				t.Errorf("unexpected position %q", err.Position())
			}
		})
	}
}
