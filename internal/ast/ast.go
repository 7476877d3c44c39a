// Package ast defines the Jott syntax tree.
//
// Statement and Expression are closed sets: their marker methods are
// unexported, so only the node types in this package implement them and
// consumers can switch over them exhaustively.
package ast

import (
	"github.com/funvibe/jott/internal/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// GetToken returns the token used to position diagnostics for the node.
	GetToken() token.Token
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

// Program is the root node of every AST the parser produces.
type Program struct {
	File      string
	Functions []*FunctionDef
}

func (p *Program) GetToken() token.Token {
	if p == nil || len(p.Functions) == 0 {
		return token.Token{}
	}
	return p.Functions[0].Token
}

// Param is a single "name:Type" entry of a function definition.
type Param struct {
	NameToken token.Token
	Name      string
	TypeToken token.Token
	TypeName  string
}

// FunctionDef represents
//
//	Def name[a:Integer, b:String]:Boolean{ ... }
type FunctionDef struct {
	Token           token.Token // the 'Def' token
	NameToken       token.Token
	Name            string
	Params          []*Param
	ReturnTypeToken token.Token
	ReturnTypeName  string
	Body            *Body
}

func (fd *FunctionDef) GetToken() token.Token { return fd.NameToken }

// Body is a brace-delimited statement list. A ReturnStatement, when
// present, is the last element.
type Body struct {
	Token      token.Token // the opening '{'
	Statements []Statement
}

func (b *Body) GetToken() token.Token { return b.Token }

// TrailingReturn returns the body's final statement when it is a Return.
func (b *Body) TrailingReturn() (*ReturnStatement, bool) {
	if b == nil || len(b.Statements) == 0 {
		return nil, false
	}
	rs, ok := b.Statements[len(b.Statements)-1].(*ReturnStatement)
	return rs, ok
}

// Last returns the final statement or nil for an empty body.
func (b *Body) Last() Statement {
	if b == nil || len(b.Statements) == 0 {
		return nil
	}
	return b.Statements[len(b.Statements)-1]
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// VarDecl: Integer x;
type VarDecl struct {
	Token     token.Token // the type token
	TypeName  string
	NameToken token.Token
	Name      string
}

func (vd *VarDecl) statementNode()        {}
func (vd *VarDecl) GetToken() token.Token { return vd.NameToken }

// Assignment: x = expr;
type Assignment struct {
	Token token.Token // the identifier token
	Name  string
	Value Expression
}

func (as *Assignment) statementNode()        {}
func (as *Assignment) GetToken() token.Token { return as.Token }

type ElseIf struct {
	Token     token.Token // the 'Elseif' token
	Condition Expression
	Body      *Body
}

// IfStatement: If[c]{...} Elseif[c]{...}* Else{...}?
type IfStatement struct {
	Token     token.Token // the 'If' token
	Condition Expression
	Then      *Body
	ElseIfs   []*ElseIf
	Else      *Body // nil when there is no Else branch
}

func (is *IfStatement) statementNode()        {}
func (is *IfStatement) GetToken() token.Token { return is.Token }

// WhileStatement: While[c]{...}
type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      *Body
}

func (ws *WhileStatement) statementNode()        {}
func (ws *WhileStatement) GetToken() token.Token { return ws.Token }

// ExpressionStatement is a call evaluated for its side effects: ::f[x];
type ExpressionStatement struct {
	Call *Call
}

func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) GetToken() token.Token { return es.Call.Token }

// ReturnStatement: Return expr; or Return;
type ReturnStatement struct {
	Token token.Token
	Value Expression // nil for a bare Return;
}

func (rs *ReturnStatement) statementNode()        {}
func (rs *ReturnStatement) GetToken() token.Token { return rs.Token }

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

type IntLiteral struct {
	Token   token.Token
	Literal string // source spelling including a leading '-'
	Value   int64
}

func (il *IntLiteral) expressionNode()       {}
func (il *IntLiteral) GetToken() token.Token { return il.Token }

type DoubleLiteral struct {
	Token   token.Token
	Literal string
	Value   float64
}

func (dl *DoubleLiteral) expressionNode()       {}
func (dl *DoubleLiteral) GetToken() token.Token { return dl.Token }

type StringLiteral struct {
	Token token.Token
	Value string // without quotes
}

func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BoolLiteral) expressionNode()       {}
func (bl *BoolLiteral) GetToken() token.Token { return bl.Token }

type Identifier struct {
	Token token.Token
	Name  string
}

func (id *Identifier) expressionNode()       {}
func (id *Identifier) GetToken() token.Token { return id.Token }

// Binary operators
const (
	OpAdd = "+"
	OpSub = "-"
	OpMul = "*"
	OpDiv = "/"
	OpEq  = "=="
	OpNeq = "!="
	OpLt  = "<"
	OpGt  = ">"
	OpLte = "<="
	OpGte = ">="
)

type BinaryOp struct {
	Token    token.Token // the operator token
	Operator string
	Left     Expression
	Right    Expression
}

func (bo *BinaryOp) expressionNode()       {}
func (bo *BinaryOp) GetToken() token.Token { return bo.Token }

// IsArithmetic reports whether op is one of + - * /.
func IsArithmetic(op string) bool {
	return op == OpAdd || op == OpSub || op == OpMul || op == OpDiv
}

// IsOrdering reports whether op is one of < > <= >=.
func IsOrdering(op string) bool {
	return op == OpLt || op == OpGt || op == OpLte || op == OpGte
}

// IsEquality reports whether op is == or !=.
func IsEquality(op string) bool {
	return op == OpEq || op == OpNeq
}

// Call: ::name[arg, ...]
type Call struct {
	Token     token.Token // the '::' token
	NameToken token.Token
	Name      string
	Args      []Expression
}

func (c *Call) expressionNode()       {}
func (c *Call) GetToken() token.Token { return c.NameToken }
