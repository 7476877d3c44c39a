package parser

import (
	"strconv"
	"strings"

	"github.com/funvibe/jott/internal/ast"
	"github.com/funvibe/jott/internal/diagnostics"
	"github.com/funvibe/jott/internal/token"
)

// parseExpression parses <operand> (<op> <operand>)?. Jott has no
// precedence and no chaining: a second operator is a syntax error
// reported by whichever production expected the terminator.
func (p *Parser) parseExpression() (ast.Expression, *diagnostics.DiagnosticError) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	opTok := p.cur()
	if opTok.Type != token.MATH_OP && opTok.Type != token.REL_OP {
		return left, nil
	}
	p.advance()
	right, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	return &ast.BinaryOp{Token: opTok, Operator: opTok.Lexeme, Left: left, Right: right}, nil
}

func (p *Parser) parseOperand() (ast.Expression, *diagnostics.DiagnosticError) {
	tok := p.cur()
	switch tok.Type {
	case token.NUMBER:
		p.advance()
		return numberLiteral(tok, tok.Lexeme)
	case token.MATH_OP:
		if tok.Lexeme == "-" && p.peek().Type == token.NUMBER {
			p.advance()
			num := p.advance()
			return numberLiteral(tok, "-"+num.Lexeme)
		}
	case token.STRING:
		p.advance()
		return &ast.StringLiteral{Token: tok, Value: strings.Trim(tok.Lexeme, `"`)}, nil
	case token.FC_HEADER:
		return p.parseCall()
	case token.ID_KEYWORD:
		switch {
		case tok.Lexeme == token.TRUE:
			p.advance()
			return &ast.BoolLiteral{Token: tok, Value: true}, nil
		case tok.Lexeme == token.FALSE:
			p.advance()
			return &ast.BoolLiteral{Token: tok, Value: false}, nil
		case !isStatementKeyword(tok.Lexeme):
			p.advance()
			return &ast.Identifier{Token: tok, Name: tok.Lexeme}, nil
		}
	}
	return nil, p.unexpected("Expected expression")
}

// numberLiteral builds an Integer literal when the text has no '.',
// otherwise a Double literal.
func numberLiteral(tok token.Token, text string) (ast.Expression, *diagnostics.DiagnosticError) {
	if strings.Contains(text, ".") {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, diagnostics.NewError(diagnostics.ErrInvalidToken, tok, "Invalid number '%s'", text)
		}
		return &ast.DoubleLiteral{Token: tok, Literal: text, Value: v}, nil
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, diagnostics.NewError(diagnostics.ErrInvalidToken, tok, "Integer literal '%s' out of range", text)
	}
	return &ast.IntLiteral{Token: tok, Literal: text, Value: v}, nil
}

// parseCall parses ::<id>[<args>].
func (p *Parser) parseCall() (*ast.Call, *diagnostics.DiagnosticError) {
	headerTok, err := p.expect(token.FC_HEADER, "'::'", "to start function call")
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expectIdentifier("after '::'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.L_BRACKET, "'['", "after function name in call"); err != nil {
		return nil, err
	}
	call := &ast.Call{Token: headerTok, NameToken: nameTok, Name: nameTok.Lexeme}
	if p.cur().Type != token.R_BRACKET {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
			if p.cur().Type != token.COMMA {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(token.R_BRACKET, "']'", "after function call arguments"); err != nil {
		return nil, err
	}
	return call, nil
}
