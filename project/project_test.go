package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
languages:
  - name: calc
    grammar: grammars/calc.ebnf
    start: expr
    extensions: [.calc]
    skip: [Blank]
  - name: ini
    grammar: /abs/ini.ebnf
    lexer: ini.tokens.ebnf
    start: file
    extensions: [.ini, .cfg]
    tokens: [Key, Value]
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestParse(t *testing.T) {
	p, err := Parse([]byte(sample), "/root")
	require.NoError(t, err)
	require.Len(t, p.Languages, 2)

	calc := p.Language("calc")
	require.NotNil(t, calc)
	assert.Equal(t, "expr", calc.Start)
	assert.Equal(t, []string{"Blank"}, calc.Skip)
	assert.Equal(t, filepath.Join("/root", "grammars/calc.ebnf"), calc.GrammarPath())
	assert.Equal(t, calc.GrammarPath(), calc.LexerPath())

	ini := p.Language("ini")
	require.NotNil(t, ini)
	assert.Equal(t, "/abs/ini.ebnf", ini.GrammarPath())
	assert.Equal(t, filepath.Join("/root", "ini.tokens.ebnf"), ini.LexerPath())
	assert.Equal(t, []string{"Key", "Value"}, ini.Tokens)

	assert.Nil(t, p.Language("missing"))
}

func TestLanguageFor(t *testing.T) {
	p, err := Parse([]byte(sample), "/root")
	require.NoError(t, err)

	l, ok := p.LanguageFor("src/a.cfg")
	require.True(t, ok)
	assert.Equal(t, "ini", l.Name)

	_, ok = p.LanguageFor("README")
	assert.False(t, ok)
	_, ok = p.LanguageFor("main.go")
	assert.False(t, ok)
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"no name", "languages:\n  - grammar: g.ebnf\n    start: s\n", "language 1: name is required"},
		{"no grammar", "languages:\n  - name: a\n    start: s\n", `language "a": grammar is required`},
		{"no start", "languages:\n  - name: a\n    grammar: g.ebnf\n", `language "a": start is required`},
		{
			"duplicate name",
			"languages:\n  - {name: a, grammar: g, start: s}\n  - {name: a, grammar: g, start: s}\n",
			`duplicate language "a"`,
		},
		{
			"bad extension",
			"languages:\n  - {name: a, grammar: g, start: s, extensions: [txt]}\n",
			`extension "txt" must start with '.'`,
		},
		{
			"shared extension",
			"languages:\n  - {name: a, grammar: g, start: s, extensions: [.x]}\n  - {name: b, grammar: g, start: s, extensions: [.x]}\n",
			`extension ".x" claimed by "a" and "b"`,
		},
		{"bad yaml", "languages: [", "parse project file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "/root")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "languages: []\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, err := Find(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, FileName), path)

	p, err := LoadFrom(nested)
	require.NoError(t, err)
	assert.Equal(t, root, p.RootDir)
	assert.Empty(t, p.Languages)
}

func TestFindNotFound(t *testing.T) {
	_, err := Find(t.TempDir())
	// A parent of the temp dir may carry a project file of its own.
	if err != nil {
		assert.True(t, errors.Is(err, ErrNotFound))
	}
}

func TestCompile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), `
languages:
  - name: sum
    grammar: sum.ebnf
    start: sum
    extensions: [.sum]
    skip: [Blank]
`)
	writeFile(t, filepath.Join(root, "sum.ebnf"), `
sum    = Number { "+" Number } .
Number = "0" … "9" { "0" … "9" } .
Plus   = "+" .
Blank  = " " { " " } .
`)

	p, err := LoadFile(filepath.Join(root, FileName))
	require.NoError(t, err)
	l, ok := p.LanguageFor("x.sum")
	require.True(t, ok)

	lang, err := l.Compile()
	require.NoError(t, err)
	node, _, err := lang.Parse([]byte("1 + 20"), "x.sum")
	require.NoError(t, err)
	assert.Equal(t, "1+20", node.Text())

	l.Start = "missing"
	_, err = l.Compile()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `language "sum"`)
}
