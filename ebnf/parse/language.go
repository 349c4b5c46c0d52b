package parse

import (
	"fmt"

	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/grammar"
	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/lex"
)

// Language bundles a grammar with its compiled token rules, so that source
// files can be parsed without recompiling the lexer each time.
type Language struct {
	Grammar   grammar.Grammar
	Rules     *lex.Rules
	Start     string
	SkipKinds []string
}

// NewLanguage compiles the token rules of lexer and checks that start is a
// production of g. A nil skip list keeps DefaultSkipKinds.
func NewLanguage(lexer, g grammar.Grammar, start string, skip []string, opts ...lex.Option) (*Language, error) {
	rules, err := lex.Compile(lexer, opts...)
	if err != nil {
		return nil, fmt.Errorf("compile tokens: %w", err)
	}
	if _, ok := g[start]; !ok {
		return nil, fmt.Errorf("production %q not found in grammar", start)
	}
	if skip == nil {
		skip = DefaultSkipKinds
	}
	return &Language{Grammar: g, Rules: rules, Start: start, SkipKinds: skip}, nil
}

// Parse tokenizes src and parses it from the start production. The tokens
// are returned even when parsing fails.
func (l *Language) Parse(src []byte, filename string) (*Node, []lex.Token, error) {
	tokens, err := l.Rules.NewLexer(src, filename).Tokenize()
	if err != nil {
		return nil, tokens, fmt.Errorf("tokenize: %w", err)
	}
	p := NewParser(l.Grammar, tokens)
	p.SetSkipKinds(l.SkipKinds...)
	node, err := p.Parse(l.Start)
	return node, tokens, err
}
