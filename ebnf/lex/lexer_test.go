package lex

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/grammar"
)

const tokens = `
WhiteSpace = ( " " | "\t" | "\n" ) { " " | "\t" | "\n" } .
Identifier = letter { letter | digit } .
Number     = digit { digit } [ "." digit { digit } ] .
Assign     = "=" .
Equal      = "==" .
Keyword    = "if" | "else" .
Arrow      = "→" .
Greek      = "α" … "ω" .

letter = "a" … "z" | "A" … "Z" | "_" .
digit  = "0" … "9" .
`

func mustGrammar(t *testing.T, src string) grammar.Grammar {
	t.Helper()
	g, err := grammar.ParseString("test.ebnf", src)
	require.NoError(t, err)
	return g
}

func kinds(toks []Token) []string {
	var out []string
	for _, tok := range toks {
		out = append(out, tok.Kind+":"+tok.Literal)
	}
	return out
}

func TestTokenize(t *testing.T) {
	l, err := NewLexer(mustGrammar(t, tokens), []byte("x1 == 3.25\nif=y"), "in.txt")
	require.NoError(t, err)

	toks, err := l.Tokenize()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Identifier:x1", "WhiteSpace: ", "Equal:==", "WhiteSpace: ", "Number:3.25", "WhiteSpace:\n",
		"Identifier:if", "Assign:=", "Identifier:y", "EOF:",
	}, kinds(toks))
}

func TestLongestMatchAndTies(t *testing.T) {
	l, err := NewLexer(mustGrammar(t, tokens), []byte("else elsewhere"), "")
	require.NoError(t, err)

	toks, err := l.Tokenize()
	require.NoError(t, err)
	// "else" is both an Identifier and a Keyword; Identifier is declared first.
	assert.Equal(t, []string{"Identifier:else", "WhiteSpace: ", "Identifier:elsewhere", "EOF:"}, kinds(toks))
}

func TestExplicitTokens(t *testing.T) {
	l, err := NewLexer(mustGrammar(t, tokens), []byte("if x"), "", WithTokens("Keyword", "WhiteSpace", "Identifier"))
	require.NoError(t, err)

	toks, err := l.Tokenize()
	require.NoError(t, err)
	assert.Equal(t, []string{"Identifier:if", "WhiteSpace: ", "Identifier:x", "EOF:"}, kinds(toks))

	// Keyword wins once Identifier is left out.
	l, err = NewLexer(mustGrammar(t, tokens), []byte("if"), "", WithTokens("Keyword"))
	require.NoError(t, err)
	toks, err = l.Tokenize()
	require.NoError(t, err)
	assert.Equal(t, []string{"Keyword:if", "EOF:"}, kinds(toks))
}

func TestUnicodeRanges(t *testing.T) {
	l, err := NewLexer(mustGrammar(t, tokens), []byte("β→ö"), "")
	require.NoError(t, err)

	toks, err := l.Tokenize()
	require.NoError(t, err)
	assert.Equal(t, []string{"Greek:β", "Arrow:→", "ERROR:ö", "EOF:"}, kinds(toks))
}

func TestPositions(t *testing.T) {
	l, err := NewLexer(mustGrammar(t, tokens), []byte("a\n  bc"), "f")
	require.NoError(t, err)

	toks, err := l.Tokenize()
	require.NoError(t, err)
	require.Len(t, toks, 4)

	assert.Equal(t, Position{Filename: "f", Offset: 0, Line: 1, Column: 1}, toks[0].Position)
	assert.Equal(t, Position{Filename: "f", Offset: 4, Line: 2, Column: 3}, toks[2].Position)
	assert.Equal(t, "f:2:3", toks[2].Position.String())
	assert.Equal(t, Position{Filename: "f", Offset: 6, Line: 2, Column: 5}, toks[3].Position)
	assert.Equal(t, toks[3].Position, l.Position())
}

func TestNextTokenAtEOF(t *testing.T) {
	l, err := NewLexer(mustGrammar(t, tokens), nil, "")
	require.NoError(t, err)

	tok, err := l.NextToken()
	assert.True(t, errors.Is(err, io.EOF))
	assert.Equal(t, KindEOF, tok.Kind)
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		opts []Option
		want string
	}{
		{"recursive", "List = \"a\" [ List ] .", nil, "recursive token production List"},
		{"indirect", "A = \"a\" b .\nb = [ A ] .", nil, "recursive token production A"},
		{"undefined", "A = b .", nil, "undefined production b"},
		{"unknown token", "A = \"a\" .", []Option{WithTokens("B")}, "undefined token production B"},
		{"bad range", "A = \"ab\" … \"z\" .", nil, "range bound must be a single character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(mustGrammar(t, tt.src), tt.opts...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRepetitionOfOptionalBody(t *testing.T) {
	l, err := NewLexer(mustGrammar(t, `A = "x" { [ "y" ] } .`), []byte("xyyz"), "")
	require.NoError(t, err)

	toks, err := l.Tokenize()
	require.NoError(t, err)
	assert.Equal(t, []string{"A:xyy", "ERROR:z", "EOF:"}, kinds(toks))
}

func TestRulesKindsInDeclarationOrder(t *testing.T) {
	rules, err := Compile(mustGrammar(t, tokens))
	require.NoError(t, err)
	assert.Equal(t, []string{"WhiteSpace", "Identifier", "Number", "Assign", "Equal", "Keyword", "Arrow", "Greek"}, rules.Kinds())
}
