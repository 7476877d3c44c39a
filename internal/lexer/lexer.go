package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/jott/internal/diagnostics"
	"github.com/funvibe/jott/internal/token"
)

type Lexer struct {
	input        string
	file         string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input, file string) *Lexer {
	l := &Lexer{input: input, file: file, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
		l.readPosition = len(l.input) + 1
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

// Tokenize consumes the whole input. The returned slice always ends with an
// EOF token unless an error is reported.
func (l *Lexer) Tokenize() ([]token.Token, *diagnostics.DiagnosticError) {
	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) NextToken() (token.Token, *diagnostics.DiagnosticError) {
	l.skipWhitespaceAndComments()

	if l.atEnd() {
		return l.makeToken(token.EOF, "", l.line, l.column), nil
	}

	line, col := l.line, l.column

	switch l.ch {
	case ',':
		return l.single(token.COMMA), nil
	case '[':
		return l.single(token.L_BRACKET), nil
	case ']':
		return l.single(token.R_BRACKET), nil
	case '{':
		return l.single(token.L_BRACE), nil
	case '}':
		return l.single(token.R_BRACE), nil
	case ';':
		return l.single(token.SEMICOLON), nil
	case '+', '-', '*', '/':
		return l.single(token.MATH_OP), nil
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.makeToken(token.REL_OP, "==", line, col), nil
		}
		return l.single(token.ASSIGN), nil
	case '<', '>':
		ch := l.ch
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.makeToken(token.REL_OP, string(ch)+"=", line, col), nil
		}
		return l.single(token.REL_OP), nil
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.makeToken(token.REL_OP, "!=", line, col), nil
		}
		return token.Token{}, l.errorf(line, col, "Invalid token \"!\": expected \"!=\"")
	case ':':
		if l.peekChar() == ':' {
			l.readChar()
			l.readChar()
			return l.makeToken(token.FC_HEADER, "::", line, col), nil
		}
		return l.single(token.COLON), nil
	case '"':
		return l.readString()
	case '.':
		if isDigit(l.peekChar()) {
			return l.readNumber(), nil
		}
		return token.Token{}, l.errorf(line, col, "Invalid token \".\": expected a digit after decimal point")
	}

	switch {
	case isDigit(l.ch):
		return l.readNumber(), nil
	case isLetter(l.ch):
		return l.readIdentifier(), nil
	}

	return token.Token{}, l.errorf(line, col, "Invalid token %q", string(l.ch))
}

func (l *Lexer) single(tt token.TokenType) token.Token {
	tok := l.makeToken(tt, string(l.ch), l.line, l.column)
	l.readChar()
	return tok
}

func (l *Lexer) makeToken(tt token.TokenType, lexeme string, line, col int) token.Token {
	return token.Token{Type: tt, Lexeme: lexeme, File: l.file, Line: line, Column: col}
}

func (l *Lexer) errorf(line, col int, format string, args ...any) *diagnostics.DiagnosticError {
	return diagnostics.NewError(diagnostics.ErrInvalidToken, l.makeToken(token.ILLEGAL, "", line, col), format, args...)
}

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.atEnd() {
		switch {
		case l.ch == '#':
			for !l.atEnd() && l.ch != '\n' {
				l.readChar()
			}
		case unicode.IsSpace(l.ch):
			l.readChar()
		default:
			return
		}
	}
}

func (l *Lexer) readIdentifier() token.Token {
	line, col := l.line, l.column
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.makeToken(token.ID_KEYWORD, l.input[start:l.position], line, col)
}

// readNumber accepts digits, digits '.' digits? and '.' digits.
func (l *Lexer) readNumber() token.Token {
	line, col := l.line, l.column
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.makeToken(token.NUMBER, l.input[start:l.position], line, col)
}

func (l *Lexer) readString() (token.Token, *diagnostics.DiagnosticError) {
	line, col := l.line, l.column
	start := l.position
	for {
		l.readChar()
		if l.atEnd() || l.ch == '\n' {
			return token.Token{}, l.errorf(line, col, "Invalid token: unterminated string literal")
		}
		if l.ch == '"' {
			break
		}
	}
	l.readChar()
	return l.makeToken(token.STRING, l.input[start:l.position], line, col), nil
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
