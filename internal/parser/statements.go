package parser

import (
	"github.com/funvibe/jott/internal/ast"
	"github.com/funvibe/jott/internal/diagnostics"
	"github.com/funvibe/jott/internal/token"
)

// parseFunctionDef parses
//
//	Def <id>[<params>]:<type>{<body>}
func (p *Parser) parseFunctionDef() (*ast.FunctionDef, *diagnostics.DiagnosticError) {
	defTok, err := p.expectKeyword(token.DEF, "to start a function definition")
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expectIdentifier("after 'Def'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.L_BRACKET, "'['", "after function name"); err != nil {
		return nil, err
	}

	fn := &ast.FunctionDef{Token: defTok, NameToken: nameTok, Name: nameTok.Lexeme}

	if p.cur().Type != token.R_BRACKET {
		for {
			param, err := p.parseParam()
			if err != nil {
				return nil, err
			}
			fn.Params = append(fn.Params, param)
			if p.cur().Type != token.COMMA {
				break
			}
			p.advance()
		}
	}

	if _, err := p.expect(token.R_BRACKET, "']'", "after function parameters"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON, "':'", "after function parameters"); err != nil {
		return nil, err
	}
	retTok, err := p.expectTypeName("after ':' in function definition")
	if err != nil {
		return nil, err
	}
	fn.ReturnTypeToken = retTok
	fn.ReturnTypeName = retTok.Lexeme

	body, err := p.parseBlock("function body")
	if err != nil {
		return nil, err
	}
	fn.Body = body
	return fn, nil
}

// parseParam parses <id>:<type>.
func (p *Parser) parseParam() (*ast.Param, *diagnostics.DiagnosticError) {
	nameTok, err := p.expectIdentifier("in function parameters")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON, "':'", "after parameter name"); err != nil {
		return nil, err
	}
	typeTok, err := p.expectTypeName("after ':' in function parameters")
	if err != nil {
		return nil, err
	}
	return &ast.Param{NameToken: nameTok, Name: nameTok.Lexeme, TypeToken: typeTok, TypeName: typeTok.Lexeme}, nil
}

// parseBlock parses {<body>}.
func (p *Parser) parseBlock(what string) (*ast.Body, *diagnostics.DiagnosticError) {
	open, err := p.expect(token.L_BRACE, "'{'", "to open "+what)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody(open)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.R_BRACE, "'}'", "to close "+what); err != nil {
		return nil, err
	}
	return body, nil
}

// parseBody parses <body_stmt>* <return_stmt>? up to, not including, '}'.
func (p *Parser) parseBody(open token.Token) (*ast.Body, *diagnostics.DiagnosticError) {
	body := &ast.Body{Token: open}
	for {
		tok := p.cur()
		switch {
		case tok.Type == token.R_BRACE || tok.Type == token.EOF:
			return body, nil
		case tok.Is(token.ID_KEYWORD, token.RETURN):
			ret, err := p.parseReturn()
			if err != nil {
				return nil, err
			}
			body.Statements = append(body.Statements, ret)
			return body, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body.Statements = append(body.Statements, stmt)
	}
}

func (p *Parser) parseStatement() (ast.Statement, *diagnostics.DiagnosticError) {
	tok := p.cur()
	switch {
	case tok.Is(token.ID_KEYWORD, token.IF):
		return p.parseIf()
	case tok.Is(token.ID_KEYWORD, token.WHILE):
		return p.parseWhile()
	case tok.Is(token.ID_KEYWORD, token.ELSEIF):
		return nil, diagnostics.NewError(diagnostics.ErrUnexpectedToken, tok, "Unexpected 'Elseif' without preceding 'If'")
	case tok.Is(token.ID_KEYWORD, token.ELSE):
		return nil, diagnostics.NewError(diagnostics.ErrUnexpectedToken, tok, "Unexpected 'Else' without preceding 'If'")
	case tok.Type == token.FC_HEADER:
		call, err := p.parseCall()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMICOLON, "';'", "after function call"); err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Call: call}, nil
	case tok.Type == token.ID_KEYWORD && isTypeName(tok.Lexeme) && p.peek().Type == token.ID_KEYWORD:
		return p.parseVarDecl()
	case tok.Type == token.ID_KEYWORD && !isStatementKeyword(tok.Lexeme):
		return p.parseAssignment()
	}
	return nil, p.unexpected("Expected statement")
}

// parseVarDecl parses <type> <id>;
func (p *Parser) parseVarDecl() (*ast.VarDecl, *diagnostics.DiagnosticError) {
	typeTok := p.advance()
	nameTok := p.cur()
	if nameTok.Type != token.ID_KEYWORD {
		return nil, p.unexpected("Expected identifier in variable declaration")
	}
	// Reserved words are rejected by the semantic analyzer, not here.
	p.advance()
	if _, err := p.expect(token.SEMICOLON, "';'", "after variable declaration"); err != nil {
		return nil, err
	}
	return &ast.VarDecl{Token: typeTok, TypeName: typeTok.Lexeme, NameToken: nameTok, Name: nameTok.Lexeme}, nil
}

// parseAssignment parses <id> = <expr>;
func (p *Parser) parseAssignment() (*ast.Assignment, *diagnostics.DiagnosticError) {
	nameTok := p.advance()
	if _, err := p.expect(token.ASSIGN, "'='", "in assignment"); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON, "';'", "after assignment"); err != nil {
		return nil, err
	}
	return &ast.Assignment{Token: nameTok, Name: nameTok.Lexeme, Value: value}, nil
}

// parseCondition parses [<expr>].
func (p *Parser) parseCondition(keyword string) (ast.Expression, *diagnostics.DiagnosticError) {
	if _, err := p.expect(token.L_BRACKET, "'['", "after '"+keyword+"'"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.R_BRACKET, "']'", "after condition"); err != nil {
		return nil, err
	}
	return cond, nil
}

func (p *Parser) parseIf() (*ast.IfStatement, *diagnostics.DiagnosticError) {
	ifTok := p.advance()
	cond, err := p.parseCondition(token.IF)
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock("'If' body")
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStatement{Token: ifTok, Condition: cond, Then: then}

	for p.cur().Is(token.ID_KEYWORD, token.ELSEIF) {
		elifTok := p.advance()
		cond, err := p.parseCondition(token.ELSEIF)
		if err != nil {
			return nil, err
		}
		body, err := p.parseBlock("'Elseif' body")
		if err != nil {
			return nil, err
		}
		stmt.ElseIfs = append(stmt.ElseIfs, &ast.ElseIf{Token: elifTok, Condition: cond, Body: body})
	}

	if p.cur().Is(token.ID_KEYWORD, token.ELSE) {
		p.advance()
		body, err := p.parseBlock("'Else' body")
		if err != nil {
			return nil, err
		}
		stmt.Else = body
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (*ast.WhileStatement, *diagnostics.DiagnosticError) {
	whileTok := p.advance()
	cond, err := p.parseCondition(token.WHILE)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock("'While' body")
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Token: whileTok, Condition: cond, Body: body}, nil
}

// parseReturn parses Return <expr>?;
func (p *Parser) parseReturn() (*ast.ReturnStatement, *diagnostics.DiagnosticError) {
	retTok := p.advance()
	stmt := &ast.ReturnStatement{Token: retTok}
	if p.cur().Type != token.SEMICOLON {
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}
	if _, err := p.expect(token.SEMICOLON, "';'", "after return statement"); err != nil {
		return nil, err
	}
	if p.cur().Type != token.R_BRACE {
		return nil, p.unexpected("Expected '}' after return statement")
	}
	return stmt, nil
}
