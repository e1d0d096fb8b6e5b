package lexer

import (
	"testing"

	"github.com/cwbudde/luma/internal/token"
)

func collectTokens(t *testing.T, input string) []token.Token {
	t.Helper()
	l := New("test.luma", input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func TestNextTokenBasic(t *testing.T) {
	input := `class A { int x }`
	expected := []token.Type{
		token.CLASS, token.IDENT, token.LBRACE, token.INTK, token.IDENT, token.RBRACE, token.EOF,
	}
	toks := collectTokens(t, input)
	if len(toks) != len(expected) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(expected), toks)
	}
	for i, tt := range expected {
		if toks[i].Type != tt {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, tt)
		}
	}
}

func TestNextTokenOperators(t *testing.T) {
	input := `a != null a?.x a ?? b a == b << >> <= >=`
	toks := collectTokens(t, input)
	wantTypes := []token.Type{
		token.IDENT, token.NEQ, token.NULL,
		token.IDENT, token.QUESTION_DOT, token.IDENT,
		token.IDENT, token.QUESTION_QUESTION, token.IDENT,
		token.IDENT, token.EQ, token.IDENT,
		token.SHL, token.SHR, token.LTE, token.GTE,
		token.EOF,
	}
	if len(toks) != len(wantTypes) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(wantTypes), toks)
	}
	for i, tt := range wantTypes {
		if toks[i].Type != tt {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, tt)
		}
	}
}

func TestNextTokenNumbers(t *testing.T) {
	toks := collectTokens(t, "1 1.0 1.5e10 0")
	want := []struct {
		tt  token.Type
		lit string
	}{
		{token.INT, "1"},
		{token.FLOAT, "1.0"},
		{token.FLOAT, "1.5e10"},
		{token.INT, "0"},
		{token.EOF, ""},
	}
	for i, w := range want {
		if toks[i].Type != w.tt || toks[i].Literal != w.lit {
			t.Errorf("token %d: got %s(%q), want %s(%q)", i, toks[i].Type, toks[i].Literal, w.tt, w.lit)
		}
	}
}

func TestNextTokenStringAndComment(t *testing.T) {
	toks := collectTokens(t, "\"hi\" // trailing comment\nx")
	if toks[0].Type != token.STRING || toks[0].Literal != "hi" {
		t.Fatalf("got %v", toks[0])
	}
	if toks[1].Type != token.IDENT || toks[1].Literal != "x" {
		t.Fatalf("comment was not skipped: %v", toks[1])
	}
}

func TestPositionsTrackLineAndColumn(t *testing.T) {
	toks := collectTokens(t, "a\nbb")
	if toks[0].Pos.Line != 1 {
		t.Errorf("expected line 1, got %d", toks[0].Pos.Line)
	}
	if toks[1].Pos.Line != 2 {
		t.Errorf("expected line 2, got %d", toks[1].Pos.Line)
	}
}

func TestIllegalCharacterIsReported(t *testing.T) {
	l := New("test.luma", "$")
	l.NextToken()
	if len(l.Errors()) == 0 {
		t.Fatalf("expected a lexical error for '$'")
	}
}
