// Package grammar reads EBNF grammars in the notation of golang.org/x/exp/ebnf.
//
// The reader itself is written with the parse package and produces the
// golang.org/x/exp/ebnf syntax tree, so grammars read here can be consumed
// by ebnf/lex and ebnf/parse.
package grammar

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/tliron/commonlog"
	"golang.org/x/exp/ebnf"
)

var log = commonlog.GetLogger("ahi.grammar")

type (
	Grammar     = ebnf.Grammar
	Production  = ebnf.Production
	Expression  = ebnf.Expression
	Name        = ebnf.Name
	Token       = ebnf.Token
	Range       = ebnf.Range
	Group       = ebnf.Group
	Option      = ebnf.Option
	Repetition  = ebnf.Repetition
	Sequence    = ebnf.Sequence
	Alternative = ebnf.Alternative
)

// Parse reads a grammar from r. On syntax errors it returns the productions
// that were read successfully together with an ErrorList.
func Parse(filename string, r io.Reader) (Grammar, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read grammar: %w", err)
	}
	return ParseString(filename, string(src))
}

// ParseString reads a grammar from src.
func ParseString(filename, src string) (Grammar, error) {
	return newReader(filename, src).read()
}

// ParseFile reads the grammar stored in filename.
func ParseFile(filename string) (Grammar, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	return ParseString(filename, string(src))
}

// Verify checks that every name used in g is defined. With a non-empty
// start it also checks that start exists and reaches every production.
// Unlike ebnf.Verify it places no restriction on which names a token
// production may reference.
func Verify(g Grammar, start string) error {
	var errs ErrorList
	for _, name := range Names(g) {
		Walk(g[name].Expr, func(e Expression) {
			if n, ok := e.(*Name); ok && g[n.String] == nil {
				errs = append(errs, &Error{Pos: n.StringPos, Msg: "missing production " + n.String})
			}
		})
	}
	if start == "" {
		return errs.Err()
	}

	if g[start] == nil {
		errs = append(errs, &Error{Msg: "no start production " + start})
		return errs.Err()
	}
	reached := map[string]bool{}
	queue := []string{start}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if reached[name] {
			continue
		}
		reached[name] = true
		Walk(g[name].Expr, func(e Expression) {
			if n, ok := e.(*Name); ok && g[n.String] != nil && !reached[n.String] {
				queue = append(queue, n.String)
			}
		})
	}
	for _, name := range Names(g) {
		if !reached[name] {
			errs = append(errs, &Error{Pos: g[name].Name.StringPos, Msg: name + " is unreachable"})
		}
	}
	return errs.Err()
}

// Names returns the production names of g in sorted order.
func Names(g Grammar) []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsTokenName reports whether name denotes a token production, which by
// convention starts with an upper-case letter.
func IsTokenName(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}

// Walk calls fn for e and every expression nested inside it.
func Walk(e Expression, fn func(Expression)) {
	if e == nil {
		return
	}
	fn(e)
	switch e := e.(type) {
	case Alternative:
		for _, x := range e {
			Walk(x, fn)
		}
	case Sequence:
		for _, x := range e {
			Walk(x, fn)
		}
	case *Group:
		Walk(e.Body, fn)
	case *Option:
		Walk(e.Body, fn)
	case *Repetition:
		Walk(e.Body, fn)
	case *Range:
		Walk(e.Begin, fn)
		Walk(e.End, fn)
	}
}
