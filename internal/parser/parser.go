// Package parser turns a token slice into an *ast.Program by recursive
// descent. It stops at the first syntax error.
package parser

import (
	"fmt"

	"github.com/funvibe/jott/internal/ast"
	"github.com/funvibe/jott/internal/config"
	"github.com/funvibe/jott/internal/diagnostics"
	"github.com/funvibe/jott/internal/token"
)

type Parser struct {
	tokens []token.Token
	pos    int
	file   string
}

// New creates a parser over tokens. A missing trailing EOF token is
// synthesised so callers may pass hand-built slices.
func New(tokens []token.Token, file string) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF {
		eof := token.Token{Type: token.EOF, File: file}
		if len(tokens) > 0 {
			last := tokens[len(tokens)-1]
			eof.Line, eof.Column = last.Line, last.Column+len(last.Lexeme)
		}
		tokens = append(tokens, eof)
	}
	return &Parser{tokens: tokens, file: file}
}

// ParseProgram parses function_def* EOF.
func (p *Parser) ParseProgram() (*ast.Program, *diagnostics.DiagnosticError) {
	program := &ast.Program{File: p.file}
	for p.cur().Is(token.ID_KEYWORD, token.DEF) {
		fn, err := p.parseFunctionDef()
		if err != nil {
			return nil, err
		}
		program.Functions = append(program.Functions, fn)
	}
	if p.cur().Type != token.EOF {
		return nil, p.unexpected("Unexpected tokens after function definitions")
	}
	return program, nil
}

func (p *Parser) cur() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) advance() token.Token {
	tok := p.tokens[p.pos]
	if tok.Type != token.EOF {
		p.pos++
	}
	return tok
}

// expect consumes a token of type tt or reports "Expected <what> <context>".
func (p *Parser) expect(tt token.TokenType, what, context string) (token.Token, *diagnostics.DiagnosticError) {
	if p.cur().Type != tt {
		return token.Token{}, p.unexpected(fmt.Sprintf("Expected %s %s", what, context))
	}
	return p.advance(), nil
}

func (p *Parser) expectKeyword(keyword, context string) (token.Token, *diagnostics.DiagnosticError) {
	if !p.cur().Is(token.ID_KEYWORD, keyword) {
		return token.Token{}, p.unexpected(fmt.Sprintf("Expected '%s' %s", keyword, context))
	}
	return p.advance(), nil
}

// expectIdentifier consumes a non-keyword identifier.
func (p *Parser) expectIdentifier(context string) (token.Token, *diagnostics.DiagnosticError) {
	tok := p.cur()
	if tok.Type != token.ID_KEYWORD || isStatementKeyword(tok.Lexeme) {
		return token.Token{}, p.unexpected("Expected identifier " + context)
	}
	return p.advance(), nil
}

// expectTypeName consumes a type name token. Whether the name denotes a
// usable type is decided by the semantic analyzer.
func (p *Parser) expectTypeName(context string) (token.Token, *diagnostics.DiagnosticError) {
	tok := p.cur()
	if tok.Type != token.ID_KEYWORD || isStatementKeyword(tok.Lexeme) {
		return token.Token{}, p.unexpected("Expected type " + context)
	}
	return p.advance(), nil
}

func (p *Parser) unexpected(msg string) *diagnostics.DiagnosticError {
	tok := p.cur()
	if tok.Type == token.EOF {
		return diagnostics.NewError(diagnostics.ErrUnexpectedEOF, tok, "%s, got end of file", msg)
	}
	return diagnostics.NewError(diagnostics.ErrUnexpectedToken, tok, "%s, got '%s'", msg, tok.Lexeme)
}

// isStatementKeyword reports keywords that can never name a variable,
// function or type. Boolean literals are handled by the expression parser.
func isStatementKeyword(s string) bool {
	switch s {
	case token.DEF, token.IF, token.ELSEIF, token.ELSE, token.WHILE, token.RETURN:
		return true
	}
	return false
}

// isTypeName reports the names that start a variable declaration.
func isTypeName(s string) bool {
	switch s {
	case config.IntegerTypeName, config.DoubleTypeName, config.StringTypeName,
		config.BooleanTypeName, config.VoidTypeName:
		return true
	}
	return false
}
