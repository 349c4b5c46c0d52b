// Package lex provides lexical scanning based on EBNF grammars.
package lex

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/tliron/commonlog"

	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/grammar"
	"github.com/vhotmar/mff-vector-drawing-sub001/input"
)

var log = commonlog.GetLogger("ahi.lex")

// Token kinds produced by the lexer itself.
const (
	KindEOF   = "EOF"
	KindError = "ERROR"
)

// Position represents a location in source code.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Advance returns the position after text.
func (p Position) Advance(text string) Position {
	for i := 0; i < len(text); i++ {
		p.Offset++
		if text[i] == '\n' {
			p.Line++
			p.Column = 1
		} else {
			p.Column++
		}
	}
	return p
}

// Token represents a lexical token with its position.
type Token struct {
	Kind     string
	Literal  string
	Position Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Position, t.Kind, t.Literal)
}

// End returns the position just after the token.
func (t Token) End() Position {
	return t.Position.Advance(t.Literal)
}

// Lexer tokenizes input with compiled token rules.
type Lexer struct {
	rules *Rules
	rest  input.Bytes
	pos   Position
}

// NewLexer compiles the token productions of g and returns a lexer over src.
func NewLexer(g grammar.Grammar, src []byte, filename string, opts ...Option) (*Lexer, error) {
	rules, err := Compile(g, opts...)
	if err != nil {
		return nil, err
	}
	return rules.NewLexer(src, filename), nil
}

// NewLexer returns a lexer over src.
func (r *Rules) NewLexer(src []byte, filename string) *Lexer {
	return &Lexer{
		rules: r,
		rest:  input.Bytes(src),
		pos:   Position{Filename: filename, Line: 1, Column: 1},
	}
}

// LoadGrammar loads an EBNF grammar from a file.
func LoadGrammar(filename string) (grammar.Grammar, error) {
	g, err := grammar.ParseFile(filename)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// Position returns the current position in the input.
func (l *Lexer) Position() Position {
	return l.pos
}

// NextToken returns the next token. Every rule is tried at the current
// position and the longest match wins; on equal length the rule declared
// first wins. A byte sequence no rule matches becomes a single-character
// ERROR token. At the end of input it returns an EOF token and io.EOF.
func (l *Lexer) NextToken() (Token, error) {
	start := l.pos
	if l.rest.Len() == 0 {
		return Token{Kind: KindEOF, Position: start}, io.EOF
	}

	var bestKind string
	var best input.Bytes
	for _, rl := range l.rules.rules {
		r := rl.match(l.rest)
		if r.Err != nil {
			if !r.Err.Recoverable() {
				return Token{}, fmt.Errorf("%s: match %s: %w", start, rl.kind, r.Err)
			}
			continue
		}
		if r.Output.Len() > best.Len() {
			bestKind, best = rl.kind, r.Output
		}
	}

	if best.Len() == 0 {
		_, size := utf8.DecodeRune(l.rest)
		bestKind, best = KindError, l.rest.Take(size)
	}

	l.rest, _ = l.rest.TakeSplit(best.Len())
	tok := Token{Kind: bestKind, Literal: string(best), Position: start}
	l.pos = tok.End()
	return tok, nil
}

// Tokenize reads all tokens from input. The last token is EOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err == io.EOF {
			tokens = append(tokens, tok)
			break
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
