package parse

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/grammar"
	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/lex"
	"github.com/vhotmar/mff-vector-drawing-sub001/input"
	pc "github.com/vhotmar/mff-vector-drawing-sub001/parse"
	"github.com/vhotmar/mff-vector-drawing-sub001/parse/complete"
)

type tokens = input.Slice[lex.Token]

type nodes = pc.Parser[tokens, []*Node]

// compiler turns productions into parsers over the filtered token stream.
// Upper-case names match tokens by kind, token literals match by literal,
// and every other name is a non-terminal that produces one Node.
//
// It also records the farthest position where a terminal failed to match
// and what was expected there, which makes for better messages than the
// error of the last alternative tried.
type compiler struct {
	g     grammar.Grammar
	rules map[string]nodes

	far      tokens
	farSet   bool
	expected []string
}

func newCompiler(g grammar.Grammar) *compiler {
	return &compiler{g: g, rules: make(map[string]nodes)}
}

func (c *compiler) nonterminal(name string) (nodes, error) {
	if r, ok := c.rules[name]; ok {
		return r, nil
	}
	prod, ok := c.g[name]
	if !ok {
		return nil, fmt.Errorf("production %q not found in grammar", name)
	}

	var body nodes
	c.rules[name] = pc.Lazy(func() nodes { return body })

	children, err := c.expr(prod.Expr)
	if err != nil {
		return nil, err
	}
	body = pc.Trace(name, pc.Map(children, func(children []*Node) []*Node {
		n := NewNonTerminal(name)
		for _, child := range children {
			n.AddChild(child)
		}
		return []*Node{n}
	}), log)
	return c.rules[name], nil
}

func (c *compiler) expr(e grammar.Expression) (nodes, error) {
	switch e := e.(type) {
	case nil:
		return pc.Constant[tokens]([]*Node(nil)), nil
	case *grammar.Token:
		lit := e.String
		if lit == "" {
			return pc.Constant[tokens]([]*Node(nil)), nil
		}
		return c.terminal(strconv.Quote(lit), func(t lex.Token) bool { return t.Literal == lit }), nil
	case *grammar.Range:
		lo, hi := firstRune(e.Begin.String), firstRune(e.End.String)
		desc := fmt.Sprintf("%q … %q", e.Begin.String, e.End.String)
		return c.terminal(desc, func(t lex.Token) bool {
			r, size := utf8.DecodeRuneInString(t.Literal)
			return size == len(t.Literal) && size > 0 && r >= lo && r <= hi
		}), nil
	case *grammar.Name:
		name := e.String
		if grammar.IsTokenName(name) {
			return c.terminal(name, func(t lex.Token) bool { return t.Kind == name }), nil
		}
		if _, ok := c.g[name]; !ok {
			return nil, &grammar.Error{Pos: e.StringPos, Msg: "undefined production " + name}
		}
		return c.nonterminal(name)
	case *grammar.Group:
		return c.expr(e.Body)
	case *grammar.Option:
		body, err := c.expr(e.Body)
		if err != nil {
			return nil, err
		}
		return pc.Map(pc.Opt(body), func(m pc.Maybe[[]*Node]) []*Node { return m.Value }), nil
	case *grammar.Repetition:
		body, err := c.expr(e.Body)
		if err != nil {
			return nil, err
		}
		return pc.Map(pc.Many0(nonEmpty(body)), func(lists [][]*Node) []*Node { return slices.Concat(lists...) }), nil
	case grammar.Sequence:
		ps, err := c.list(e)
		if err != nil {
			return nil, err
		}
		seq := ps[0]
		for _, p := range ps[1:] {
			seq = concat(seq, p)
		}
		return seq, nil
	case grammar.Alternative:
		ps, err := c.list(e)
		if err != nil {
			return nil, err
		}
		return pc.Alt(ps...), nil
	default:
		return nil, &grammar.Error{Pos: e.Pos(), Msg: fmt.Sprintf("unsupported expression %T", e)}
	}
}

func (c *compiler) list(es []grammar.Expression) ([]nodes, error) {
	ps := make([]nodes, 0, len(es))
	for _, e := range es {
		p, err := c.expr(e)
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, nil
}

func (c *compiler) terminal(desc string, match func(lex.Token) bool) nodes {
	tok := complete.Satisfy[tokens](match)
	return func(in tokens) pc.Result[tokens, []*Node] {
		r := tok(in)
		if r.Err != nil {
			c.miss(in, desc)
			return pc.Fail[tokens, []*Node](r.Err)
		}
		return pc.Ok(r.Rest, []*Node{NewTerminal(r.Output)})
	}
}

// miss records that desc was expected at in.
func (c *compiler) miss(in tokens, desc string) {
	switch {
	case !c.farSet || in.Len() < c.far.Len():
		c.far, c.farSet = in, true
		c.expected = append(c.expected[:0], desc)
	case in.Len() == c.far.Len() && !slices.Contains(c.expected, desc):
		c.expected = append(c.expected, desc)
	}
}

func concat(a, b nodes) nodes {
	return pc.Map(pc.Pair(a, b), func(t pc.Tuple[[]*Node, []*Node]) []*Node {
		return slices.Concat(t.First, t.Second)
	})
}

// nonEmpty fails recoverably where p matches without consuming a token, so
// that a repetition of p ends there.
func nonEmpty(p nodes) nodes {
	return pc.Map(
		pc.Verify(pc.Consumed(p), func(t pc.Tuple[tokens, []*Node]) bool { return t.First.Len() > 0 }),
		func(t pc.Tuple[tokens, []*Node]) []*Node { return t.Second },
	)
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

// checkLeftRecursion reports a cycle of non-terminals reachable from start
// that can reach themselves without consuming a token.
func checkLeftRecursion(g grammar.Grammar, start string) error {
	nullable := nullableSet(g)
	const (
		active = 1
		done   = 2
	)
	state := make(map[string]int)
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case active:
			i := slices.Index(path, name)
			cycle := append(slices.Clone(path[i:]), name)
			return &grammar.Error{
				Pos: g[name].Name.StringPos,
				Msg: "left recursion: " + strings.Join(cycle, " → "),
			}
		case done:
			return nil
		}
		state[name] = active
		path = append(path, name)
		for _, next := range leftNames(g, g[name].Expr, nullable) {
			if err := visit(next); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		state[name] = done
		return nil
	}
	return visit(start)
}

func isNonterminal(g grammar.Grammar, name string) bool {
	_, ok := g[name]
	return ok && !grammar.IsTokenName(name)
}

// leftNames returns the non-terminals that may be entered before e consumes
// a token.
func leftNames(g grammar.Grammar, e grammar.Expression, nullable map[string]bool) []string {
	switch e := e.(type) {
	case *grammar.Name:
		if isNonterminal(g, e.String) {
			return []string{e.String}
		}
	case *grammar.Group:
		return leftNames(g, e.Body, nullable)
	case *grammar.Option:
		return leftNames(g, e.Body, nullable)
	case *grammar.Repetition:
		return leftNames(g, e.Body, nullable)
	case grammar.Alternative:
		var names []string
		for _, x := range e {
			names = append(names, leftNames(g, x, nullable)...)
		}
		return names
	case grammar.Sequence:
		var names []string
		for _, x := range e {
			names = append(names, leftNames(g, x, nullable)...)
			if !isNullable(g, x, nullable) {
				break
			}
		}
		return names
	}
	return nil
}

// nullableSet computes which non-terminals can match no tokens at all.
func nullableSet(g grammar.Grammar) map[string]bool {
	nullable := make(map[string]bool)
	for changed := true; changed; {
		changed = false
		for name, prod := range g {
			if nullable[name] || !isNonterminal(g, name) {
				continue
			}
			if isNullable(g, prod.Expr, nullable) {
				nullable[name] = true
				changed = true
			}
		}
	}
	return nullable
}

func isNullable(g grammar.Grammar, e grammar.Expression, nullable map[string]bool) bool {
	switch e := e.(type) {
	case nil:
		return true
	case *grammar.Token:
		return e.String == ""
	case *grammar.Name:
		return nullable[e.String]
	case *grammar.Group:
		return isNullable(g, e.Body, nullable)
	case *grammar.Option, *grammar.Repetition:
		return true
	case grammar.Sequence:
		for _, x := range e {
			if !isNullable(g, x, nullable) {
				return false
			}
		}
		return true
	case grammar.Alternative:
		for _, x := range e {
			if isNullable(g, x, nullable) {
				return true
			}
		}
	}
	return false
}
