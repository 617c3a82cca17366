package lexer

import "testing"

func TestNextTokenCoreSyntax(t *testing.T) {
	input := `id : {A : U} -> A -> A
id = \{A} x. x

-- a comment
assume Nat : U
[elaborate]
n = _`

	want := []TokenType{
		IDENT, COLON, LBRACE, IDENT, COLON, U_KW, RBRACE, ARROW, IDENT, ARROW, IDENT,
		IDENT, ASSIGN, LAMBDA, LBRACE, IDENT, RBRACE, IDENT, DOT, IDENT,
		ASSUME, IDENT, COLON, U_KW,
		LBRACKET, IDENT, RBRACKET,
		IDENT, ASSIGN, UNDERSCORE,
		EOF,
	}

	l := New(input, "t.stt")
	for i, wantType := range want {
		tok := l.NextToken()
		if tok.Type != wantType {
			t.Fatalf("token %d: want %s, got %s (%q)", i, wantType, tok.Type, tok.Literal)
		}
	}
}

func TestNextTokenUnicodeArrowAndLambda(t *testing.T) {
	l := New("λx → x", "t.stt")
	want := []TokenType{LAMBDA, IDENT, ARROW, IDENT, EOF}
	for i, wantType := range want {
		tok := l.NextToken()
		if tok.Type != wantType {
			t.Fatalf("token %d: want %s, got %s", i, wantType, tok.Type)
		}
	}
}

func TestNextTokenHoleVsIdentUnderscorePrefix(t *testing.T) {
	l := New("_ _x", "t.stt")
	tok1 := l.NextToken()
	if tok1.Type != UNDERSCORE {
		t.Fatalf("want UNDERSCORE, got %s", tok1.Type)
	}
	tok2 := l.NextToken()
	if tok2.Type != IDENT || tok2.Literal != "_x" {
		t.Fatalf("want IDENT _x, got %s %q", tok2.Type, tok2.Literal)
	}
}

func TestNextTokenBangMarker(t *testing.T) {
	l := New("f! a", "t.stt")
	want := []TokenType{IDENT, BANG, IDENT, EOF}
	for i, wantType := range want {
		tok := l.NextToken()
		if tok.Type != wantType {
			t.Fatalf("token %d: want %s, got %s", i, wantType, tok.Type)
		}
	}
}
