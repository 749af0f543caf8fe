package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `local x = 5;
local greeting = "hello";

if x > 1 then
  greeting
else
  null
`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{LOCAL, "local"},
		{IDENT, "x"},
		{OPERATOR, "="},
		{NUMBER, "5"},
		{SEMICOLON, ";"},
		{LOCAL, "local"},
		{IDENT, "greeting"},
		{OPERATOR, "="},
		{STRING, "hello"},
		{SEMICOLON, ";"},
		{IF, "if"},
		{IDENT, "x"},
		{OPERATOR, ">"},
		{NUMBER, "1"},
		{THEN, "then"},
		{IDENT, "greeting"},
		{ELSE, "else"},
		{NULL, "null"},
		{EOF, ""},
	}

	l := New("test.jsonnet", input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%s, got=%s (%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestOperators(t *testing.T) {
	input := "+ - * / % == != <= >= << >> && || ! ~ & | ^"

	tests := []string{
		"+", "-", "*", "/", "%", "==", "!=", "<=", ">=", "<<", ">>",
		"&&", "||", "!", "~", "&", "|", "^",
	}

	l := New("", input)

	for i, want := range tests {
		tok := l.NextToken()

		if tok.Type != OPERATOR {
			t.Fatalf("tests[%d] - expected OPERATOR, got=%s", i, tok.Type)
		}

		if tok.Literal != want {
			t.Fatalf("tests[%d] - expected=%q, got=%q", i, want, tok.Literal)
		}
	}
}

func TestFieldHideSymbols(t *testing.T) {
	input := `{ a: 1, b:: 2, c::: 3, d+: 4 }`

	l := New("", input)

	tests := []struct {
		typ TokenType
		lit string
	}{
		{LBRACE, "{"},
		{IDENT, "a"}, {COLON, ":"}, {NUMBER, "1"}, {COMMA, ","},
		{IDENT, "b"}, {COLONCOLON, "::"}, {NUMBER, "2"}, {COMMA, ","},
		{IDENT, "c"}, {COLONCOLONCOLON, ":::"}, {NUMBER, "3"}, {COMMA, ","},
		{IDENT, "d"}, {OPERATOR, "+"}, {COLON, ":"}, {NUMBER, "4"},
		{RBRACE, "}"},
		{EOF, ""},
	}

	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.typ || tok.Literal != tt.lit {
			t.Fatalf("tests[%d] - expected {%s %q}, got {%s %q}", i, tt.typ, tt.lit, tok.Type, tok.Literal)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	l := New("", `"a\nb\tcA"`)

	tok := l.NextToken()
	if tok.Type != STRING {
		t.Fatalf("expected STRING, got %s (%s)", tok.Type, tok.Literal)
	}

	want := "a\nb\tcA"
	if tok.Literal != want {
		t.Fatalf("expected %q, got %q", want, tok.Literal)
	}
}

func TestVerbatimString(t *testing.T) {
	l := New("", `@'it''s \n literal'`)

	tok := l.NextToken()
	if tok.Type != STRING {
		t.Fatalf("expected STRING, got %s", tok.Type)
	}

	want := `it's \n literal`
	if tok.Literal != want {
		t.Fatalf("expected %q, got %q", want, tok.Literal)
	}
}

func TestBlockString(t *testing.T) {
	input := "|||\n  hello\n    world\n|||"

	l := New("", input)

	tok := l.NextToken()
	if tok.Type != STRING {
		t.Fatalf("expected STRING, got %s (%q)", tok.Type, tok.Literal)
	}

	want := "hello\n  world\n"
	if tok.Literal != want {
		t.Fatalf("expected %q, got %q", want, tok.Literal)
	}
}

func TestComments(t *testing.T) {
	input := "1 // a comment\n+ 2 # also a comment\n* /* block */ 3"

	l := New("", input)

	tests := []struct {
		typ TokenType
		lit string
	}{
		{NUMBER, "1"}, {OPERATOR, "+"}, {NUMBER, "2"}, {OPERATOR, "*"}, {NUMBER, "3"}, {EOF, ""},
	}

	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.typ || tok.Literal != tt.lit {
			t.Fatalf("tests[%d] - expected {%s %q}, got {%s %q}", i, tt.typ, tt.lit, tok.Type, tok.Literal)
		}
	}
}

func TestIllegalUnterminatedString(t *testing.T) {
	l := New("", `"unterminated`)

	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %s", tok.Type)
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	input := "self super import importstr importbin error assert tailstrict true false notakeyword"

	tests := []TokenType{
		SELF, SUPER, IMPORT, IMPORTSTR, IMPORTBIN, ERROR, ASSERT, TAILSTRICT, TRUE, FALSE, IDENT,
	}

	l := New("", input)

	for i, want := range tests {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("tests[%d] - expected %s, got %s (%q)", i, want, tok.Type, tok.Literal)
		}
	}
}
