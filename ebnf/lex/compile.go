package lex

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/grammar"
	"github.com/vhotmar/mff-vector-drawing-sub001/input"
	"github.com/vhotmar/mff-vector-drawing-sub001/parse"
	"github.com/vhotmar/mff-vector-drawing-sub001/parse/complete"
)

type matcher = parse.Parser[input.Bytes, parse.Unit]

// Rules is a compiled set of token productions.
type Rules struct {
	rules []rule
}

type rule struct {
	kind  string
	match parse.Parser[input.Bytes, input.Bytes]
}

// Kinds returns the token kinds in the order used to break ties between
// matches of equal length.
func (r *Rules) Kinds() []string {
	kinds := make([]string, len(r.rules))
	for i, rl := range r.rules {
		kinds[i] = rl.kind
	}
	return kinds
}

// Option configures Compile.
type Option func(*options)

type options struct {
	tokens []string
}

// WithTokens selects the token productions explicitly instead of taking
// every production with an upper-case initial.
func WithTokens(names ...string) Option {
	return func(o *options) {
		o.tokens = append(o.tokens, names...)
	}
}

// Compile turns the token productions of g into matchers. Productions they
// refer to are inlined; a token production that refers to itself, directly
// or not, is rejected.
func Compile(g grammar.Grammar, opts ...Option) (*Rules, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.tokens == nil {
		for _, name := range grammar.Names(g) {
			if grammar.IsTokenName(name) {
				o.tokens = append(o.tokens, name)
			}
		}
	}

	c := &compiler{g: g, done: make(map[string]matcher), active: make(map[string]bool)}
	var errs grammar.ErrorList
	rules := &Rules{}
	for _, name := range o.tokens {
		prod, ok := g[name]
		if !ok {
			errs = append(errs, &grammar.Error{Msg: "undefined token production " + name})
			continue
		}
		m, err := c.name(prod.Name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		rules.rules = append(rules.rules, rule{kind: name, match: parse.Recognize(m)})
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	// Declaration order breaks ties.
	slices.SortStableFunc(rules.rules, func(a, b rule) int {
		return g[a.kind].Name.StringPos.Offset - g[b.kind].Name.StringPos.Offset
	})
	log.Debugf("compiled %d token kinds", len(rules.rules))
	return rules, nil
}

type compiler struct {
	g      grammar.Grammar
	done   map[string]matcher
	active map[string]bool
}

func (c *compiler) name(n *grammar.Name) (matcher, *grammar.Error) {
	if m, ok := c.done[n.String]; ok {
		return m, nil
	}
	if c.active[n.String] {
		return nil, &grammar.Error{Pos: n.StringPos, Msg: "recursive token production " + n.String}
	}
	prod, ok := c.g[n.String]
	if !ok {
		return nil, &grammar.Error{Pos: n.StringPos, Msg: "undefined production " + n.String}
	}
	c.active[n.String] = true
	defer delete(c.active, n.String)

	m, err := c.expr(prod.Expr)
	if err != nil {
		return nil, err
	}
	c.done[n.String] = m
	return m, nil
}

func (c *compiler) expr(e grammar.Expression) (matcher, *grammar.Error) {
	switch e := e.(type) {
	case nil:
		return parse.Constant[input.Bytes](parse.Unit{}), nil
	case *grammar.Name:
		return c.name(e)
	case *grammar.Token:
		return parse.Ignore(complete.Tag(input.Bytes(e.String))), nil
	case *grammar.Range:
		return charRange(e)
	case *grammar.Group:
		return c.expr(e.Body)
	case *grammar.Option:
		body, err := c.expr(e.Body)
		if err != nil {
			return nil, err
		}
		return parse.Ignore(parse.Opt(body)), nil
	case *grammar.Repetition:
		body, err := c.expr(e.Body)
		if err != nil {
			return nil, err
		}
		return parse.Ignore(parse.Many0(nonEmpty(body))), nil
	case grammar.Sequence:
		ms, err := c.list(e)
		if err != nil {
			return nil, err
		}
		seq := ms[0]
		for _, m := range ms[1:] {
			seq = parse.Preceded(seq, m)
		}
		return seq, nil
	case grammar.Alternative:
		ms, err := c.list(e)
		if err != nil {
			return nil, err
		}
		return longest(ms...), nil
	default:
		return nil, &grammar.Error{Pos: e.Pos(), Msg: fmt.Sprintf("unsupported expression %T", e)}
	}
}

func (c *compiler) list(es []grammar.Expression) ([]matcher, *grammar.Error) {
	ms := make([]matcher, 0, len(es))
	for _, e := range es {
		m, err := c.expr(e)
		if err != nil {
			return nil, err
		}
		ms = append(ms, m)
	}
	return ms, nil
}

func charRange(r *grammar.Range) (matcher, *grammar.Error) {
	lo, n := utf8.DecodeRuneInString(r.Begin.String)
	if n == 0 || n != len(r.Begin.String) {
		return nil, &grammar.Error{Pos: r.Begin.StringPos, Msg: "range bound must be a single character"}
	}
	hi, n := utf8.DecodeRuneInString(r.End.String)
	if n == 0 || n != len(r.End.String) {
		return nil, &grammar.Error{Pos: r.End.StringPos, Msg: "range bound must be a single character"}
	}
	if hi < utf8.RuneSelf {
		return parse.Ignore(complete.Satisfy[input.Bytes](func(c byte) bool {
			return rune(c) >= lo && rune(c) <= hi
		})), nil
	}
	return func(in input.Bytes) parse.Result[input.Bytes, parse.Unit] {
		c, size := utf8.DecodeRune(in)
		if size == 0 || c == utf8.RuneError || c < lo || c > hi {
			return parse.Fail[input.Bytes, parse.Unit](parse.NewError(in, parse.KindSatisfy))
		}
		rest, _ := in.TakeSplit(size)
		return parse.Ok(rest, parse.Unit{})
	}, nil
}

// nonEmpty fails recoverably where m matches without consuming, so that a
// repetition of m ends there.
func nonEmpty(m matcher) matcher {
	return parse.Ignore(parse.Verify(parse.Recognize(m), func(b input.Bytes) bool { return len(b) > 0 }))
}

// longest runs every alternative and keeps the longest match. Lexical
// alternatives are unordered, unlike parse.Alt.
func longest(ms ...matcher) matcher {
	return func(in input.Bytes) parse.Result[input.Bytes, parse.Unit] {
		var best parse.Result[input.Bytes, parse.Unit]
		found := false
		var last *parse.Error[input.Bytes]
		for _, m := range ms {
			r := m(in)
			if r.Err != nil {
				if !r.Err.Recoverable() {
					return r
				}
				last = r.Err
				continue
			}
			if !found || r.Rest.Len() < best.Rest.Len() {
				best, found = r, true
			}
		}
		if !found {
			return parse.Fail[input.Bytes, parse.Unit](last)
		}
		return best
	}
}
