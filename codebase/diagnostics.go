package codebase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/grammar"
	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/lex"
	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/parse"
)

type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Diagnostic is a problem found in a file. Line and Column are 1-based.
type Diagnostic struct {
	Line     int
	Column   int
	Severity Severity
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Line, d.Column, d.Severity, d.Message)
}

func (c *Codebase) analyzeGrammar(f *FileInfo) {
	g, err := grammar.ParseString(f.Path, string(f.Content))
	f.Grammar = g
	if err != nil {
		f.Diagnostics = append(f.Diagnostics, grammarDiagnostics(err, SeverityError)...)
	}
	if g == nil {
		return
	}
	if err := grammar.Verify(g, ""); err != nil {
		f.Diagnostics = append(f.Diagnostics, grammarDiagnostics(err, SeverityError)...)
	}
	for _, name := range unused(g) {
		pos := g[name].Name.StringPos
		f.Diagnostics = append(f.Diagnostics, Diagnostic{
			Line:     pos.Line,
			Column:   pos.Column,
			Severity: SeverityWarning,
			Message:  "production " + name + " is never used",
		})
	}
}

// unused returns the non-terminal productions no other production refers to,
// except the first one declared, which is taken to be the start.
func unused(g grammar.Grammar) []string {
	used := make(map[string]bool)
	first, firstOffset := "", -1
	for name, prod := range g {
		if !grammar.IsTokenName(name) && (firstOffset < 0 || prod.Name.StringPos.Offset < firstOffset) {
			first, firstOffset = name, prod.Name.StringPos.Offset
		}
		grammar.Walk(prod.Expr, func(e grammar.Expression) {
			if n, ok := e.(*grammar.Name); ok && n.String != name {
				used[n.String] = true
			}
		})
	}
	var names []string
	for _, name := range grammar.Names(g) {
		if name != first && !used[name] && !grammar.IsTokenName(name) {
			names = append(names, name)
		}
	}
	return names
}

func grammarDiagnostics(err error, severity Severity) []Diagnostic {
	var list grammar.ErrorList
	if errors.As(err, &list) {
		diags := make([]Diagnostic, 0, len(list))
		for _, e := range list {
			diags = append(diags, grammarDiagnostic(e, severity))
		}
		return diags
	}
	var one *grammar.Error
	if errors.As(err, &one) {
		return []Diagnostic{grammarDiagnostic(one, severity)}
	}
	return []Diagnostic{{Line: 1, Column: 1, Severity: severity, Message: err.Error()}}
}

func grammarDiagnostic(e *grammar.Error, severity Severity) Diagnostic {
	d := Diagnostic{Line: 1, Column: 1, Severity: severity, Message: e.Msg}
	if e.Pos.IsValid() {
		d.Line, d.Column = e.Pos.Line, e.Pos.Column
	}
	return d
}

func (c *Codebase) analyzeSource(f *FileInfo, cl *compiled) {
	if cl.err != nil {
		f.Diagnostics = append(f.Diagnostics, Diagnostic{
			Line: 1, Column: 1, Severity: SeverityError,
			Message: strings.TrimPrefix(cl.err.Error(), fmt.Sprintf("language %q: ", f.Language)),
		})
		return
	}

	tree, tokens, err := cl.lang.Parse(f.Content, f.Path)
	f.Tree, f.Tokens = tree, tokens
	for _, tok := range tokens {
		if tok.Kind == lex.KindError {
			f.Diagnostics = append(f.Diagnostics, Diagnostic{
				Line:     tok.Position.Line,
				Column:   tok.Position.Column,
				Severity: SeverityError,
				Message:  fmt.Sprintf("unexpected character %q", tok.Literal),
			})
		}
	}
	if err == nil {
		return
	}

	var serr *parse.SyntaxError
	if errors.As(err, &serr) {
		f.Diagnostics = append(f.Diagnostics, Diagnostic{
			Line:     serr.Pos.Line,
			Column:   serr.Pos.Column,
			Severity: SeverityError,
			Message:  serr.Message(),
		})
		return
	}
	// Grammar problems such as left recursion have no position in f.
	f.Diagnostics = append(f.Diagnostics, Diagnostic{Line: 1, Column: 1, Severity: SeverityError, Message: err.Error()})
}
