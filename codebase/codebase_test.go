package codebase

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vhotmar/mff-vector-drawing-sub001/project"
)

const sumGrammar = `sum    = Number { "+" Number } .
Number = "0" … "9" { "0" … "9" } .
Plus   = "+" .
Blank  = " " { " " } .
`

const projectFile = `
languages:
  - name: sum
    grammar: sum.ebnf
    start: sum
    extensions: [.sum]
    skip: [Blank]
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// setup creates a project with the sum language and returns a codebase for
// it.
func setup(t *testing.T) *Codebase {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, project.FileName), projectFile)
	writeFile(t, filepath.Join(root, "sum.ebnf"), sumGrammar)
	proj, err := project.LoadFrom(root)
	require.NoError(t, err)
	return New(root, proj)
}

func TestScanAll(t *testing.T) {
	c := setup(t)
	root := c.RootDir()
	writeFile(t, filepath.Join(root, "src", "ok.sum"), "1 + 2")
	writeFile(t, filepath.Join(root, "src", "notes.txt"), "ignored")
	writeFile(t, filepath.Join(root, ".git", "x.sum"), "1 +")
	writeFile(t, filepath.Join(root, "node_modules", "y.ebnf"), "broken")

	require.NoError(t, c.ScanAll())

	var paths []string
	for _, f := range c.Files() {
		rel, err := filepath.Rel(root, f.Path)
		require.NoError(t, err)
		paths = append(paths, rel)
	}
	assert.Equal(t, []string{filepath.Join("src", "ok.sum"), "sum.ebnf"}, paths)

	ok := c.GetFile(filepath.Join("src", "ok.sum"))
	require.NotNil(t, ok)
	assert.Equal(t, "sum", ok.Language)
	require.NotNil(t, ok.Tree)
	assert.Equal(t, "1+2", ok.Tree.Text())
	assert.Empty(t, ok.Diagnostics)
}

func TestSourceDiagnostics(t *testing.T) {
	c := setup(t)

	require.NoError(t, c.UpdateFile("a.sum", []byte("1 +")))
	f := c.GetFile("a.sum")
	require.NotNil(t, f)
	require.Len(t, f.Diagnostics, 1)
	assert.Equal(t, Diagnostic{Line: 1, Column: 4, Severity: SeverityError, Message: "unexpected end of input, expected Number"}, f.Diagnostics[0])

	require.NoError(t, c.UpdateFile("b.sum", []byte("1 ? 2")))
	f = c.GetFile("b.sum")
	require.NotEmpty(t, f.Diagnostics)
	assert.Equal(t, `unexpected character "?"`, f.Diagnostics[0].Message)
	assert.Equal(t, 3, f.Diagnostics[0].Column)
}

func TestGrammarDiagnostics(t *testing.T) {
	c := setup(t)

	require.NoError(t, c.UpdateFile("bad.ebnf", []byte("a = b .\nc = \"x\" .\nd = ( \"y\" .\n")))
	f := c.GetFile("bad.ebnf")
	require.NotNil(t, f)
	require.NotNil(t, f.Grammar)

	var got []string
	for _, d := range f.Diagnostics {
		got = append(got, d.String())
	}
	assert.Equal(t, []string{
		"3:11: error: expected ')', found '.'",
		"1:5: error: missing production b",
		"2:1: warning: production c is never used",
	}, got)
}

func TestGrammarChangeReparsesSources(t *testing.T) {
	c := setup(t)
	require.NoError(t, c.ScanAll())
	require.NoError(t, c.UpdateFile("a.sum", []byte("1 - 2")))
	require.NotEmpty(t, c.GetFile("a.sum").Diagnostics)

	grammarPath := filepath.Join(c.RootDir(), "sum.ebnf")
	updated := `sum    = Number { Op Number } .
Number = "0" … "9" { "0" … "9" } .
Op     = "+" | "-" .
Blank  = " " { " " } .
`
	writeFile(t, grammarPath, updated)
	require.NoError(t, c.ScanFile(grammarPath))

	f := c.GetFile("a.sum")
	assert.Empty(t, f.Diagnostics)
	assert.Equal(t, "1-2", f.Tree.Text())
}

func TestBrokenLanguage(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, project.FileName), projectFile)
	proj, err := project.LoadFrom(root)
	require.NoError(t, err)
	c := New(root, proj)

	require.NoError(t, c.UpdateFile("a.sum", []byte("1")))
	f := c.GetFile("a.sum")
	require.Len(t, f.Diagnostics, 1)
	assert.Contains(t, f.Diagnostics[0].Message, "open grammar")
}

func TestCompletionsAtPoint(t *testing.T) {
	c := setup(t)
	require.NoError(t, c.UpdateFile("g.ebnf", []byte("expr = te .\nterm = Number .\ntext = \"t\" .\nNumber = \"1\" .\n")))

	items := c.CompletionsAtPoint("g.ebnf", 1, 10)
	var labels []string
	for _, it := range items {
		labels = append(labels, it.Label)
	}
	assert.Equal(t, []string{"term", "text"}, labels)

	items = c.CompletionsAtPoint("g.ebnf", 2, 8)
	require.Len(t, items, 4)
	assert.Equal(t, "Number", items[0].Label)
	assert.Equal(t, CompletionKindToken, items[0].Kind)

	assert.Nil(t, c.CompletionsAtPoint("missing.ebnf", 1, 1))
}

func TestDefinitionAt(t *testing.T) {
	c := setup(t)
	require.NoError(t, c.UpdateFile("g.ebnf", []byte("expr = term .\n\nterm = \"x\" .\n")))

	loc, ok := c.DefinitionAt("g.ebnf", 1, 9)
	require.True(t, ok)
	assert.Equal(t, 3, loc.Line)
	assert.Equal(t, 1, loc.Column)

	// Right after the name still counts.
	_, ok = c.DefinitionAt("g.ebnf", 1, 12)
	assert.True(t, ok)

	_, ok = c.DefinitionAt("g.ebnf", 1, 6)
	assert.False(t, ok)
}

func TestSymbols(t *testing.T) {
	c := setup(t)
	require.NoError(t, c.UpdateFile("g.ebnf", []byte("z = a .\na = Tok .\nTok = \"t\" .\n")))

	symbols := c.Symbols("g.ebnf")
	require.Len(t, symbols, 3)
	assert.Equal(t, "z", symbols[0].Name)
	assert.Equal(t, "a", symbols[1].Name)
	assert.Equal(t, "Tok", symbols[2].Name)
	assert.True(t, symbols[2].Token)
	assert.Equal(t, 3, symbols[2].Location.Line)
}

func TestWordAt(t *testing.T) {
	content := []byte("abc de_f\nπρ x")
	assert.Equal(t, "abc", wordAt(content, 1, 1))
	assert.Equal(t, "abc", wordAt(content, 1, 4))
	assert.Equal(t, "de_f", wordAt(content, 1, 7))
	assert.Equal(t, "πρ", wordAt(content, 2, 2))
	assert.Equal(t, "", wordAt(content, 3, 1))
	assert.Equal(t, "de", wordBefore(content, 1, 7))
	assert.Equal(t, "", wordBefore(content, 1, 5))
}

func TestFileWatcher(t *testing.T) {
	c := setup(t)
	require.NoError(t, c.ScanAll())

	var mu sync.Mutex
	changed := make(map[string]*FileInfo)
	w, err := NewFileWatcher(c, func(path string, f *FileInfo) {
		mu.Lock()
		defer mu.Unlock()
		changed[path] = f
	})
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	path := filepath.Join(c.RootDir(), "new.sum")
	writeFile(t, path, "4 + 5")

	require.Eventually(t, func() bool {
		f := c.GetFile(path)
		return f != nil && f.Tree != nil && f.Tree.Text() == "4+5"
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.Remove(path))
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		f, seen := changed[path]
		return seen && f == nil
	}, 5*time.Second, 20*time.Millisecond)
	assert.Nil(t, c.GetFile(path))

	for i := range 5 {
		writeFile(t, filepath.Join(c.RootDir(), fmt.Sprintf("f%d.sum", i)), "1")
	}
	require.Eventually(t, func() bool {
		return len(c.Files()) == 6 && w.pendingCount() == 0
	}, 5*time.Second, 20*time.Millisecond, "handled paths leave the pending set")

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}
