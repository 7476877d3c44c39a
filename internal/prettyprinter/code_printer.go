package prettyprinter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/funvibe/jott/internal/ast"
)

// --- Code Printer (Output looks like source code) ---

// CodePrinter renders an AST back to canonical Jott source: one statement
// per line, four-space indentation, single spaces around binary operators
// and after commas. Parsing the output yields an equivalent tree.
type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Print is a shortcut for NewCodePrinter().VisitProgram(program).String().
func Print(program *ast.Program) string {
	p := NewCodePrinter()
	p.VisitProgram(program)
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

func (p *CodePrinter) writeln() {
	p.buf.WriteString("\n")
}

func (p *CodePrinter) VisitProgram(n *ast.Program) {
	for i, fn := range n.Functions {
		if i > 0 {
			p.writeln()
		}
		p.VisitFunctionDef(fn)
	}
}

func (p *CodePrinter) VisitFunctionDef(n *ast.FunctionDef) {
	p.write("Def ")
	p.write(n.Name)
	p.write("[")
	for i, param := range n.Params {
		if i > 0 {
			p.write(", ")
		}
		p.write(param.Name)
		p.write(":")
		p.write(param.TypeName)
	}
	p.write("]:")
	p.write(n.ReturnTypeName)
	p.visitBlock(n.Body)
	p.writeln()
}

// visitBlock prints "{", the statements one level deeper, and "}" at the
// current level. The caller has already written the block's header.
func (p *CodePrinter) visitBlock(b *ast.Body) {
	p.write("{")
	p.writeln()
	p.indent++
	if b != nil {
		for _, stmt := range b.Statements {
			p.writeIndent()
			p.visitStatement(stmt)
			p.writeln()
		}
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) visitStatement(stmt ast.Statement) {
	switch n := stmt.(type) {
	case *ast.VarDecl:
		p.write(n.TypeName)
		p.write(" ")
		p.write(n.Name)
		p.write(";")
	case *ast.Assignment:
		p.write(n.Name)
		p.write(" = ")
		p.visitExpression(n.Value)
		p.write(";")
	case *ast.IfStatement:
		p.VisitIfStatement(n)
	case *ast.WhileStatement:
		p.write("While[")
		p.visitExpression(n.Condition)
		p.write("]")
		p.visitBlock(n.Body)
	case *ast.ExpressionStatement:
		p.VisitCall(n.Call)
		p.write(";")
	case *ast.ReturnStatement:
		p.write("Return")
		if n.Value != nil {
			p.write(" ")
			p.visitExpression(n.Value)
		}
		p.write(";")
	default:
		p.write("<???>")
	}
}

func (p *CodePrinter) VisitIfStatement(n *ast.IfStatement) {
	p.write("If[")
	p.visitExpression(n.Condition)
	p.write("]")
	p.visitBlock(n.Then)
	for _, elif := range n.ElseIfs {
		p.writeln()
		p.writeIndent()
		p.write("Elseif[")
		p.visitExpression(elif.Condition)
		p.write("]")
		p.visitBlock(elif.Body)
	}
	if n.Else != nil {
		p.writeln()
		p.writeIndent()
		p.write("Else")
		p.visitBlock(n.Else)
	}
}

func (p *CodePrinter) visitExpression(expr ast.Expression) {
	switch n := expr.(type) {
	case *ast.IntLiteral:
		if n.Literal != "" {
			p.write(n.Literal)
		} else {
			p.write(strconv.FormatInt(n.Value, 10))
		}
	case *ast.DoubleLiteral:
		p.write(doubleText(n))
	case *ast.StringLiteral:
		p.write("\"" + n.Value + "\"")
	case *ast.BoolLiteral:
		if n.Value {
			p.write("True")
		} else {
			p.write("False")
		}
	case *ast.Identifier:
		p.write(n.Name)
	case *ast.BinaryOp:
		p.visitExpression(n.Left)
		p.write(" " + n.Operator + " ")
		p.visitExpression(n.Right)
	case *ast.Call:
		p.VisitCall(n)
	default:
		p.write("<???>")
	}
}

func (p *CodePrinter) VisitCall(n *ast.Call) {
	p.write("::")
	p.write(n.Name)
	p.write("[")
	for i, arg := range n.Args {
		if i > 0 {
			p.write(", ")
		}
		p.visitExpression(arg)
	}
	p.write("]")
}

// doubleText keeps the source spelling when there is one. Synthesised
// literals always get a '.' so they re-lex as Double.
func doubleText(n *ast.DoubleLiteral) string {
	if n.Literal != "" {
		return n.Literal
	}
	s := strconv.FormatFloat(n.Value, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
