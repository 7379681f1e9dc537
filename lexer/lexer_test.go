package lexer_test

import (
	"testing"

	"github.com/Yemiez/ysen/lexer"
	"github.com/Yemiez/ysen/token"
)

type tk struct {
	kind    token.Kind
	content string
}

func lex(src string) []tk {
	toks := lexer.New(src, lexer.Ignore, lexer.Ignore).Lex()
	out := make([]tk, len(toks))
	for i, t := range toks {
		out[i] = tk{t.Kind, t.Content}
	}
	return out
}

func check(t *testing.T, src string, want []tk) {
	t.Helper()
	got := lex(src)
	if len(got) != len(want) {
		t.Fatalf("%q: got %d tokens %v, want %d %v", src, len(got), got, len(want), want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d = %v, want %v", src, i, got[i], want[i])
		}
	}
}

func TestIdentifiersAndKeywords(t *testing.T) {
	check(t, "var x fun", []tk{
		{token.Keyword, "var"},
		{token.Identifier, "x"},
		{token.Keyword, "fun"},
	})
}

func TestNumbers(t *testing.T) {
	check(t, "1 2.5 3..4", []tk{
		{token.Integer, "1"},
		{token.FloatingPointNumber, "2.5"},
		{token.Integer, "3"},
		{token.Dot, "."},
		{token.Dot, "."},
		{token.Integer, "4"},
	})
}

func TestStringEscapes(t *testing.T) {
	check(t, `'a\'b' "c\"d" "e\nf"`, []tk{
		{token.String, `a'b`},
		{token.String, `c"d`},
		{token.String, "e\nf"},
	})
}

func TestTwoCharOperators(t *testing.T) {
	check(t, "a += b >= c", []tk{
		{token.Identifier, "a"},
		{token.BinOp, "+="},
		{token.Identifier, "b"},
		{token.BinOp, ">="},
		{token.Identifier, "c"},
	})
}

func TestComments(t *testing.T) {
	check(t, "1 // trailing\n2 /* block */ 3", []tk{
		{token.Integer, "1"},
		{token.Integer, "2"},
		{token.Integer, "3"},
	})
}

func TestTriviaKept(t *testing.T) {
	toks := lexer.New("a b", lexer.Keep, lexer.Ignore).Lex()
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3 (identifier, whitespace, identifier)", len(toks))
	}
	if toks[1].Kind != token.Whitespace {
		t.Fatalf("token 1 = %v, want Whitespace", toks[1].Kind)
	}
}

func TestLexerIdempotence(t *testing.T) {
	src := "var a = 1 + 2; // comment\nfun f(x) { ret x; }"
	toks := lexer.New(src, lexer.Keep, lexer.Keep).Lex()
	var rebuilt string
	for _, tk := range toks {
		rebuilt += tk.Content
	}
	again := lexer.New(rebuilt, lexer.Keep, lexer.Keep).Lex()
	if len(again) != len(toks) {
		t.Fatalf("re-lex produced %d tokens, want %d", len(again), len(toks))
	}
	for i := range toks {
		if toks[i].Kind != again[i].Kind || toks[i].Content != again[i].Content {
			t.Fatalf("token %d mismatch: %v vs %v", i, toks[i], again[i])
		}
	}
}
