package lexer

import (
	"testing"

	"github.com/funvibe/jott/internal/diagnostics"
	"github.com/funvibe/jott/internal/token"
)

type expectedToken struct {
	typ    token.TokenType
	lexeme string
}

func checkTokens(t *testing.T, input string, want []expectedToken) []token.Token {
	t.Helper()
	toks, err := New(input, "test.jott").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != len(want)+1 {
		t.Fatalf("expected %d tokens (+EOF), got %d: %v", len(want), len(toks), toks)
	}
	for i, w := range want {
		if toks[i].Type != w.typ || toks[i].Lexeme != w.lexeme {
			t.Errorf("token %d: expected %s(%q), got %s(%q)", i, w.typ, w.lexeme, toks[i].Type, toks[i].Lexeme)
		}
	}
	if toks[len(toks)-1].Type != token.EOF {
		t.Errorf("expected trailing EOF, got %v", toks[len(toks)-1])
	}
	return toks
}

func TestTokenize_FunctionDef(t *testing.T) {
	input := `Def add[x:Integer, y:Integer]:Integer{ Return x + y; }`
	checkTokens(t, input, []expectedToken{
		{token.ID_KEYWORD, "Def"},
		{token.ID_KEYWORD, "add"},
		{token.L_BRACKET, "["},
		{token.ID_KEYWORD, "x"},
		{token.COLON, ":"},
		{token.ID_KEYWORD, "Integer"},
		{token.COMMA, ","},
		{token.ID_KEYWORD, "y"},
		{token.COLON, ":"},
		{token.ID_KEYWORD, "Integer"},
		{token.R_BRACKET, "]"},
		{token.COLON, ":"},
		{token.ID_KEYWORD, "Integer"},
		{token.L_BRACE, "{"},
		{token.ID_KEYWORD, "Return"},
		{token.ID_KEYWORD, "x"},
		{token.MATH_OP, "+"},
		{token.ID_KEYWORD, "y"},
		{token.SEMICOLON, ";"},
		{token.R_BRACE, "}"},
	})
}

func TestTokenize_Operators(t *testing.T) {
	checkTokens(t, "= == != < <= > >= + - * / ::", []expectedToken{
		{token.ASSIGN, "="},
		{token.REL_OP, "=="},
		{token.REL_OP, "!="},
		{token.REL_OP, "<"},
		{token.REL_OP, "<="},
		{token.REL_OP, ">"},
		{token.REL_OP, ">="},
		{token.MATH_OP, "+"},
		{token.MATH_OP, "-"},
		{token.MATH_OP, "*"},
		{token.MATH_OP, "/"},
		{token.FC_HEADER, "::"},
	})
}

func TestTokenize_NumbersStringsComments(t *testing.T) {
	input := "12 3.5 .25 7. \"hello world\" # trailing comment\nx"
	checkTokens(t, input, []expectedToken{
		{token.NUMBER, "12"},
		{token.NUMBER, "3.5"},
		{token.NUMBER, ".25"},
		{token.NUMBER, "7."},
		{token.STRING, `"hello world"`},
		{token.ID_KEYWORD, "x"},
	})
}

func TestTokenize_LineNumbers(t *testing.T) {
	toks := checkTokens(t, "a\n\n  b\n# c\nd", []expectedToken{
		{token.ID_KEYWORD, "a"},
		{token.ID_KEYWORD, "b"},
		{token.ID_KEYWORD, "d"},
	})
	lines := []int{1, 3, 5}
	for i, line := range lines {
		if toks[i].Line != line {
			t.Errorf("token %q: expected line %d, got %d", toks[i].Lexeme, line, toks[i].Line)
		}
		if toks[i].File != "test.jott" {
			t.Errorf("token %q: expected file test.jott, got %q", toks[i].Lexeme, toks[i].File)
		}
	}
}

func TestTokenize_Errors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		line  int
	}{
		{"lone bang", "x\n!", 2},
		{"unterminated string", `"abc`, 1},
		{"newline in string", "\"ab\ncd\"", 1},
		{"stray dot", "x = .;", 1},
		{"unknown char", "x = 1 $ 2;", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.input, "bad.jott").Tokenize()
			if err == nil {
				t.Fatalf("expected error for %q", tc.input)
			}
			if err.Code != diagnostics.ErrInvalidToken || err.Phase != diagnostics.PhaseSyntax {
				t.Errorf("expected syntax error P003, got %s (%v)", err.Code, err.Phase)
			}
			if err.Token.Line != tc.line {
				t.Errorf("expected line %d, got %d", tc.line, err.Token.Line)
			}
		})
	}
}

func TestDecodeSource(t *testing.T) {
	utf8BOM := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Def")...)
	got, err := DecodeSource(utf8BOM)
	if err != nil || got != "Def" {
		t.Fatalf("UTF-8 BOM: got %q, %v", got, err)
	}

	utf16LE := []byte{0xFF, 0xFE, 'D', 0, 'e', 0, 'f', 0}
	got, err = DecodeSource(utf16LE)
	if err != nil || got != "Def" {
		t.Fatalf("UTF-16LE: got %q, %v", got, err)
	}

	got, err = DecodeSource([]byte("plain"))
	if err != nil || got != "plain" {
		t.Fatalf("plain: got %q, %v", got, err)
	}
}
