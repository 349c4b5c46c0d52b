package parse

import (
	"fmt"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/grammar"
	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/lex"
	pc "github.com/vhotmar/mff-vector-drawing-sub001/parse"
)

var log = commonlog.GetLogger("ahi.parse")

// DefaultSkipKinds are the token kinds dropped before parsing unless
// SetSkipKinds says otherwise.
var DefaultSkipKinds = []string{"WhiteSpace", "Comment"}

// Parser parses a token stream with the non-terminal productions of a
// grammar. Alternatives are tried in order and the first one that matches
// is kept; left-recursive grammars are rejected.
type Parser struct {
	g         grammar.Grammar
	tokens    []lex.Token
	skipKinds map[string]bool
}

// NewParser creates a parser over tokens.
func NewParser(g grammar.Grammar, tokens []lex.Token) *Parser {
	p := &Parser{g: g, tokens: tokens}
	p.SetSkipKinds(DefaultSkipKinds...)
	return p
}

// SetSkipKinds sets which token kinds to skip between terminals.
func (p *Parser) SetSkipKinds(kinds ...string) {
	p.skipKinds = make(map[string]bool)
	for _, k := range kinds {
		p.skipKinds[k] = true
	}
}

// SyntaxError reports the farthest token the parser could not get past.
type SyntaxError struct {
	Pos      lex.Position
	Found    lex.Token
	Expected []string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("parse error at %s: %s", e.Pos, e.Message())
}

// Message describes the error without its position.
func (e *SyntaxError) Message() string {
	var b strings.Builder
	if e.Found.Kind == lex.KindEOF {
		b.WriteString("unexpected end of input")
	} else {
		fmt.Fprintf(&b, "unexpected %s %q", e.Found.Kind, e.Found.Literal)
	}
	switch len(e.Expected) {
	case 0:
	case 1:
		fmt.Fprintf(&b, ", expected %s", e.Expected[0])
	default:
		fmt.Fprintf(&b, ", expected one of %s", strings.Join(e.Expected, ", "))
	}
	return b.String()
}

// Parse parses starting from the given production and returns its tree.
// All tokens up to EOF must be consumed.
func (p *Parser) Parse(startProduction string) (*Node, error) {
	if _, ok := p.g[startProduction]; !ok {
		return nil, fmt.Errorf("production %q not found in grammar", startProduction)
	}
	if err := checkLeftRecursion(p.g, startProduction); err != nil {
		return nil, err
	}

	c := newCompiler(p.g)
	root, err := c.nonterminal(startProduction)
	if err != nil {
		return nil, err
	}

	filtered, eof := p.filter()
	in := tokens(filtered)
	r := pc.AllConsuming(root)(in)
	if r.Err != nil {
		if r.Err.Kind == pc.KindEof {
			c.miss(r.Err.Input, "end of input")
		}
		return nil, p.syntaxError(c, eof)
	}
	return r.Output[0], nil
}

// filter drops skipped kinds and EOF, and returns the EOF token, made up
// from the last token when the stream has none.
func (p *Parser) filter() ([]lex.Token, lex.Token) {
	filtered := make([]lex.Token, 0, len(p.tokens))
	eof := lex.Token{Kind: lex.KindEOF, Position: lex.Position{Line: 1, Column: 1}}
	for _, tok := range p.tokens {
		if tok.Kind == lex.KindEOF {
			eof = tok
			break
		}
		eof.Position = tok.End()
		if !p.skipKinds[tok.Kind] {
			filtered = append(filtered, tok)
		}
	}
	return filtered, eof
}

func (p *Parser) syntaxError(c *compiler, eof lex.Token) *SyntaxError {
	found := eof
	if c.farSet && c.far.Len() > 0 {
		found = c.far[0]
	}
	return &SyntaxError{Pos: found.Position, Found: found, Expected: c.expected}
}

// ParseTokens is a convenience function to parse tokens with a grammar.
func ParseTokens(g grammar.Grammar, tokens []lex.Token, start string) (*Node, error) {
	return NewParser(g, tokens).Parse(start)
}

// ParseFile parses a file using a lexer grammar and parser grammar.
func ParseFile(lexerGrammar, parserGrammar grammar.Grammar, input []byte, filename, start string) (*Node, error) {
	lexer, err := lex.NewLexer(lexerGrammar, input, filename)
	if err != nil {
		return nil, fmt.Errorf("compile tokens: %w", err)
	}
	tokens, err := lexer.Tokenize()
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	return ParseTokens(parserGrammar, tokens, start)
}
