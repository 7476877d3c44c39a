package token

import "fmt"

type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	ID_KEYWORD TokenType = "ID_KEYWORD"
	NUMBER     TokenType = "NUMBER"
	STRING     TokenType = "STRING"

	FC_HEADER TokenType = "FC_HEADER" // ::
	L_BRACKET TokenType = "L_BRACKET"
	R_BRACKET TokenType = "R_BRACKET"
	L_BRACE   TokenType = "L_BRACE"
	R_BRACE   TokenType = "R_BRACE"
	COMMA     TokenType = "COMMA"
	COLON     TokenType = "COLON"
	SEMICOLON TokenType = "SEMICOLON"
	ASSIGN    TokenType = "ASSIGN"
	MATH_OP   TokenType = "MATH_OP"
	REL_OP    TokenType = "REL_OP"
)

// Keywords recognised by the parser. They are lexed as ID_KEYWORD and
// told apart from identifiers by their lexeme.
const (
	DEF    = "Def"
	IF     = "If"
	ELSEIF = "Elseif"
	ELSE   = "Else"
	WHILE  = "While"
	RETURN = "Return"
	TRUE   = "True"
	FALSE  = "False"
)

type Token struct {
	Type   TokenType
	Lexeme string
	File   string
	Line   int
	Column int
}

// Position renders the token location the way diagnostics print it.
// It returns "" for the zero token.
func (t Token) Position() string {
	if t.Line == 0 {
		return ""
	}
	return fmt.Sprintf("%s:%d", t.File, t.Line)
}

func (t Token) Is(tt TokenType, lexeme string) bool {
	return t.Type == tt && t.Lexeme == lexeme
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at %d:%d", t.Type, t.Lexeme, t.Line, t.Column)
}
