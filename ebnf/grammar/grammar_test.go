package grammar

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const arithmetic = `
// Expressions over integers.
expr   = term { ( "+" | "-" ) term } .
term   = factor { ( "*" | "/" ) factor } .
factor = Number | "(" expr ")" .

/* lexical */
Number = digit { digit } .
digit  = "0" … "9" .
`

func TestParseArithmetic(t *testing.T) {
	g, err := ParseString("arith.ebnf", arithmetic)
	require.NoError(t, err)
	assert.Equal(t, []string{"Number", "digit", "expr", "factor", "term"}, Names(g))
	require.NoError(t, Verify(g, "expr"))

	expr := g["expr"]
	assert.Equal(t, 3, expr.Name.StringPos.Line)
	assert.Equal(t, 1, expr.Name.StringPos.Column)
	assert.Equal(t, "arith.ebnf", expr.Name.StringPos.Filename)

	seq, ok := expr.Expr.(Sequence)
	require.True(t, ok, "got %T", expr.Expr)
	require.Len(t, seq, 2)
	assert.Equal(t, "term", seq[0].(*Name).String)

	rep, ok := seq[1].(*Repetition)
	require.True(t, ok)
	inner := rep.Body.(Sequence)
	group := inner[0].(*Group)
	alt := group.Body.(Alternative)
	require.Len(t, alt, 2)
	assert.Equal(t, "+", alt[0].(*Token).String)
	assert.Equal(t, "-", alt[1].(*Token).String)

	rng, ok := g["digit"].Expr.(*Range)
	require.True(t, ok)
	assert.Equal(t, "0", rng.Begin.String)
	assert.Equal(t, "9", rng.End.String)
	assert.Equal(t, 9, rng.Begin.StringPos.Line)
}

func TestParseLiterals(t *testing.T) {
	g, err := ParseString("", "a = \"\\n\" `raw\\` \"é\" .\nb = .\n")
	require.NoError(t, err)

	seq := g["a"].Expr.(Sequence)
	assert.Equal(t, "\n", seq[0].(*Token).String)
	assert.Equal(t, `raw\`, seq[1].(*Token).String)
	assert.Equal(t, "é", seq[2].(*Token).String)
	assert.Equal(t, 17, seq[2].(*Token).StringPos.Column)

	assert.Nil(t, g["b"].Expr, "empty production")
}

func TestParseOptionAndPositions(t *testing.T) {
	g, err := ParseString("opt", "x = [ \"a\" ] .")
	require.NoError(t, err)

	opt := g["x"].Expr.(*Option)
	assert.Equal(t, 5, opt.Lbrack.Column)
	assert.Equal(t, 4, opt.Lbrack.Offset)
	assert.Equal(t, 7, opt.Body.(*Token).StringPos.Column)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"missing period", `a = "x"`, []string{`1:8: expected '.', found EOF`}},
		{"missing equals", `a "x" .`, []string{`1:3: expected '=', found '"'`}},
		{"unclosed group", `a = ( "x" .`, []string{`1:11: expected ')', found '.'`}},
		{"empty group", `a = ( ) .`, []string{`1:7: expected term, found ')'`}},
		{"bad name", `1 = "x" .`, []string{`1:1: expected production name, found '1'`}},
		{"unterminated string", `a = "x .`, []string{`1:9: invalid string literal`}},
		{"range without end", `a = "a" … .`, []string{`1:11: expected token after '…', found '.'`}},
		{"unterminated comment", "a = \"x\" . /* open", []string{`1:13: comment not terminated`}},
		{
			"recovers after each error",
			"a = ( .\nb = \"ok\" .\nc \"x\" .\n",
			[]string{`1:7: expected term, found '.'`, `3:3: expected '=', found '"'`},
		},
		{"duplicate", "a = \"x\" .\na = \"y\" .", []string{`2:1: a declared already at 1:1`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString("", tt.src)
			require.Error(t, err)

			var list ErrorList
			require.True(t, errors.As(err, &list))
			var got []string
			for _, e := range list {
				got = append(got, e.Error())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEmptyAlternative(t *testing.T) {
	g, err := ParseString("", "a = \"x\" | .\nb = \"y\" | | \"z\" .\n")
	require.NoError(t, err)

	alt, ok := g["a"].Expr.(Alternative)
	require.True(t, ok, "got %T", g["a"].Expr)
	require.Len(t, alt, 2)
	assert.Equal(t, "x", alt[0].(*Token).String)
	assert.Nil(t, alt[1])

	alt = g["b"].Expr.(Alternative)
	require.Len(t, alt, 3)
	assert.Nil(t, alt[1])
	assert.Equal(t, "z", alt[2].(*Token).String)
}

func TestParseKeepsGoodProductions(t *testing.T) {
	g, err := ParseString("", "a = ( .\nb = \"ok\" .\n")
	require.Error(t, err)
	assert.Contains(t, g, "b")
	assert.NotContains(t, g, "a")
}

func TestParseReader(t *testing.T) {
	g, err := Parse("r", strings.NewReader(arithmetic))
	require.NoError(t, err)
	assert.Len(t, g, 5)
}

func TestVerify(t *testing.T) {
	g, err := ParseString("", "a = b | C .\nC = \"c\" .\n")
	require.NoError(t, err)

	err = Verify(g, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing production b")

	assert.Error(t, Verify(g, "a"))

	g, err = ParseString("", "a = C .\nC = \"c\" .\nunused = \"u\" .\n")
	require.NoError(t, err)
	assert.NoError(t, Verify(g, ""))
	err = Verify(g, "a")
	require.Error(t, err)
	assert.Equal(t, "3:1: unused is unreachable", err.Error())

	err = Verify(g, "nope")
	require.Error(t, err)
	assert.Equal(t, "no start production nope", err.Error())
}

func TestVerifyMixedCaseNames(t *testing.T) {
	g, err := ParseString("g.ebnf", "expr = Number { \"+\" Number } .\nNumber = digit { digit } .\ndigit = \"0\" … \"9\" .\n")
	require.NoError(t, err)
	assert.NoError(t, Verify(g, "expr"))

	g, err = ParseString("g.ebnf", "expr = Number .\nNumber = Digit .\n")
	require.NoError(t, err)
	err = Verify(g, "expr")
	require.Error(t, err)
	assert.Equal(t, "g.ebnf:2:10: missing production Digit", err.Error())
}

func TestIsTokenName(t *testing.T) {
	assert.True(t, IsTokenName("Identifier"))
	assert.False(t, IsTokenName("expr"))
	assert.False(t, IsTokenName(""))
}
