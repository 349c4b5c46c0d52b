package codebase

import (
	"slices"
	"strings"
	"unicode"

	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/grammar"
)

type CompletionKind int

const (
	CompletionKindProduction CompletionKind = iota
	CompletionKindToken
)

type CompletionItem struct {
	Label      string
	Kind       CompletionKind
	Detail     string
	InsertText string
}

// Location is a 1-based position in a file.
type Location struct {
	Path   string
	Line   int
	Column int
}

// Symbol is a production declared in a grammar file.
type Symbol struct {
	Name     string
	Token    bool
	Location Location
}

// CompletionsAtPoint returns the productions of a grammar file whose names
// start with the word before line and column.
func (c *Codebase) CompletionsAtPoint(path string, line, column int) []CompletionItem {
	f := c.GetFile(path)
	if f == nil || f.Grammar == nil {
		return nil
	}

	prefix := wordBefore(f.Content, line, column)
	var items []CompletionItem
	for _, name := range grammar.Names(f.Grammar) {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		item := CompletionItem{
			Label:      name,
			Kind:       CompletionKindProduction,
			Detail:     "production",
			InsertText: name,
		}
		if grammar.IsTokenName(name) {
			item.Kind = CompletionKindToken
			item.Detail = "token"
		}
		items = append(items, item)
	}
	return items
}

// DefinitionAt returns where the production named at line and column of a
// grammar file is declared.
func (c *Codebase) DefinitionAt(path string, line, column int) (Location, bool) {
	f := c.GetFile(path)
	if f == nil || f.Grammar == nil {
		return Location{}, false
	}
	name := wordAt(f.Content, line, column)
	prod, ok := f.Grammar[name]
	if name == "" || !ok {
		return Location{}, false
	}
	pos := prod.Name.StringPos
	return Location{Path: f.Path, Line: pos.Line, Column: pos.Column}, true
}

// Symbols returns the productions of a grammar file in declaration order.
func (c *Codebase) Symbols(path string) []Symbol {
	f := c.GetFile(path)
	if f == nil || f.Grammar == nil {
		return nil
	}
	var symbols []Symbol
	for _, name := range grammar.Names(f.Grammar) {
		pos := f.Grammar[name].Name.StringPos
		symbols = append(symbols, Symbol{
			Name:     name,
			Token:    grammar.IsTokenName(name),
			Location: Location{Path: f.Path, Line: pos.Line, Column: pos.Column},
		})
	}
	slices.SortFunc(symbols, func(a, b Symbol) int {
		if a.Location.Line != b.Location.Line {
			return a.Location.Line - b.Location.Line
		}
		return a.Location.Column - b.Location.Column
	})
	return symbols
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// lineRunes returns the runes of the 1-based line, or nil.
func lineRunes(content []byte, line int) []rune {
	lines := strings.Split(string(content), "\n")
	if line <= 0 || line > len(lines) {
		return nil
	}
	return []rune(lines[line-1])
}

// wordBefore returns the identifier characters immediately before the
// 1-based column.
func wordBefore(content []byte, line, column int) string {
	runes := lineRunes(content, line)
	end := min(column-1, len(runes))
	start := end
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}

// wordAt returns the identifier containing the 1-based column, or the one
// ending right before it.
func wordAt(content []byte, line, column int) string {
	runes := lineRunes(content, line)
	i := column - 1
	if i < 0 || i > len(runes) {
		return ""
	}
	if i == len(runes) || !isWordRune(runes[i]) {
		if i == 0 || !isWordRune(runes[i-1]) {
			return ""
		}
		i--
	}
	start, end := i, i+1
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	for end < len(runes) && isWordRune(runes[end]) {
		end++
	}
	return string(runes[start:end])
}
