package lexer

import (
	"testing"

	"github.com/impala-lang/impala/internal/source"
	"github.com/impala-lang/impala/token"
)

func tokenize(t *testing.T, src string) []token.Token {
	t.Helper()
	f := &source.File{Name: "test.imp", Content: src}
	l := New(f)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks
}

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, tok := range toks {
		ks[i] = tok.Kind
	}
	return ks
}

func assertKinds(t *testing.T, src string, want []token.Kind) {
	t.Helper()
	got := kinds(tokenize(t, src))
	if len(got) != len(want) {
		t.Fatalf("tokenize(%q): got %d tokens %v, want %d %v", src, len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tokenize(%q): token %d = %v, want %v", src, i, got[i], want[i])
		}
	}
}

func TestLetBinding(t *testing.T) {
	assertKinds(t, "let x = 1", []token.Kind{
		token.LET, token.IDENT, token.ASSIGN, token.INT, token.EOF,
	})
}

func TestFnDeclWithBounds(t *testing.T) {
	assertKinds(t, "fn id<A: Eq>(a: A) -> A { a }", []token.Kind{
		token.FN, token.IDENT, token.LT, token.IDENT, token.COLON, token.IDENT, token.GT,
		token.LPAREN, token.IDENT, token.COLON, token.IDENT, token.RPAREN,
		token.ARROW, token.IDENT, token.LBRACE, token.IDENT, token.RBRACE, token.EOF,
	})
}

func TestOperatorsAndPunctuation(t *testing.T) {
	assertKinds(t, "a == b != c <= d >= e && f || !g", []token.Kind{
		token.IDENT, token.EQ, token.IDENT, token.NOT_EQ, token.IDENT, token.LE, token.IDENT,
		token.GE, token.IDENT, token.AND, token.IDENT, token.OR, token.BANG, token.IDENT, token.EOF,
	})
}

func TestMatchArrow(t *testing.T) {
	assertKinds(t, "match x { _ => 1 }", []token.Kind{
		token.MATCH, token.IDENT, token.LBRACE, token.UNDERSCORE, token.FAT_ARROW, token.INT, token.RBRACE, token.EOF,
	})
}

func TestFloatVsIntVsDot(t *testing.T) {
	assertKinds(t, "1.5 1 1.", []token.Kind{
		token.FLOAT, token.INT, token.INT, token.DOT, token.EOF,
	})
}

func TestStringEscapes(t *testing.T) {
	toks := tokenize(t, `"hi\n\"there\""`)
	if toks[0].Kind != token.STRING {
		t.Fatalf("expected STRING, got %v", toks[0].Kind)
	}
	want := "hi\n\"there\""
	if toks[0].Lexeme != want {
		t.Fatalf("got lexeme %q, want %q", toks[0].Lexeme, want)
	}
}

func TestLineComment(t *testing.T) {
	assertKinds(t, "let x = 1 # this is a comment\nlet y = 2", []token.Kind{
		token.LET, token.IDENT, token.ASSIGN, token.INT, token.NEWLINE,
		token.LET, token.IDENT, token.ASSIGN, token.INT, token.EOF,
	})
}

func TestColonColonPath(t *testing.T) {
	assertKinds(t, "Std::List::new", []token.Kind{
		token.IDENT, token.COLON_COLON, token.IDENT, token.COLON_COLON, token.IDENT, token.EOF,
	})
}

func TestSpanTracksLineAndColumn(t *testing.T) {
	toks := tokenize(t, "let\nx")
	// toks[0] = LET on line 1, toks[1] = NEWLINE, toks[2] = IDENT on line 2
	if toks[0].Span.Start.Line != 1 {
		t.Fatalf("expected LET on line 1, got %d", toks[0].Span.Start.Line)
	}
	if toks[2].Span.Start.Line != 2 {
		t.Fatalf("expected x on line 2, got %d", toks[2].Span.Start.Line)
	}
}

func TestIllegalCharacter(t *testing.T) {
	assertKinds(t, "let x = @", []token.Kind{
		token.LET, token.IDENT, token.ASSIGN, token.ILLEGAL, token.EOF,
	})
}
