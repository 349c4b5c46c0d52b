package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/grammar"
	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/lex"
)

func mustGrammar(t *testing.T, src string) grammar.Grammar {
	t.Helper()
	g, err := grammar.Parse("test", strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	return g
}

// shape renders a tree as Kind(children...) with terminals as their literal.
func shape(n *Node) string {
	if n.IsTerminal() {
		return n.Token.Literal
	}
	parts := make([]string, len(n.Children))
	for i, c := range n.Children {
		parts[i] = shape(c)
	}
	return n.Kind + "(" + strings.Join(parts, " ") + ")"
}

func TestParser_AlternativeItems(t *testing.T) {
	g := mustGrammar(t, `
		classModifier = annotation | "public" | "private" .
		annotation = "@" Identifier .
		Identifier = letter { letter } .
		letter = "a" … "z" .
	`)

	tokens := []lex.Token{
		{Kind: "Identifier", Literal: "public"},
	}

	parser := NewParser(g, tokens)
	parser.SetSkipKinds("WhiteSpace")

	node, err := parser.Parse("classModifier")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := shape(node); got != "classModifier(public)" {
		t.Errorf("got %s", got)
	}

	node, err = ParseTokens(g, []lex.Token{
		{Kind: "AT", Literal: "@"},
		{Kind: "Identifier", Literal: "deprecated"},
	}, "classModifier")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := shape(node); got != "classModifier(annotation(@ deprecated))" {
		t.Errorf("got %s", got)
	}
}

func TestParser_MultipleRepetitions(t *testing.T) {
	g := mustGrammar(t, `
		methodDeclaration = { methodModifier } result methodDeclarator .
		methodModifier = "public" | "static" | "final" .
		result = "void" | "int" .
		methodDeclarator = Identifier "(" ")" .
		Identifier = "a" … "z" { "a" … "z" } .
	`)

	tokens := []lex.Token{
		{Kind: "Identifier", Literal: "public"},
		{Kind: "WhiteSpace", Literal: " "},
		{Kind: "Identifier", Literal: "static"},
		{Kind: "Identifier", Literal: "void"},
		{Kind: "Identifier", Literal: "main"},
		{Kind: "LPAREN", Literal: "("},
		{Kind: "RPAREN", Literal: ")"},
		{Kind: "EOF"},
	}

	parser := NewParser(g, tokens)
	parser.SetSkipKinds("WhiteSpace")

	node, err := parser.Parse("methodDeclaration")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := "methodDeclaration(methodModifier(public) methodModifier(static) result(void) methodDeclarator(main ( )))"
	if got := shape(node); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestParser_NestedRepetitions(t *testing.T) {
	g := mustGrammar(t, `
		packageDeclaration = "package" Identifier { "." Identifier } ";" .
		Identifier = "a" … "z" { "a" … "z" } .
	`)

	tokens := []lex.Token{
		{Kind: "Identifier", Literal: "package"},
		{Kind: "Identifier", Literal: "com"},
		{Kind: "DOT", Literal: "."},
		{Kind: "Identifier", Literal: "example"},
		{Kind: "DOT", Literal: "."},
		{Kind: "Identifier", Literal: "foo"},
		{Kind: "SEMI", Literal: ";"},
	}

	node, err := NewParser(g, tokens).Parse("packageDeclaration")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := node.Text(); got != "packagecom.example.foo;" {
		t.Errorf("text = %q", got)
	}
	if len(node.Children) != 7 {
		t.Errorf("expected 7 children, got %d", len(node.Children))
	}
}

func TestParser_SyntaxError(t *testing.T) {
	g := mustGrammar(t, `
		stmt = "let" Identifier "=" ( Number | Identifier ) ";" .
		Identifier = "x" .
		Number = "1" .
	`)

	tests := []struct {
		name   string
		tokens []lex.Token
		want   string
	}{
		{
			name: "wrong token",
			tokens: []lex.Token{
				{Kind: "Identifier", Literal: "let", Position: lex.Position{Line: 1, Column: 1}},
				{Kind: "Identifier", Literal: "x", Position: lex.Position{Line: 1, Column: 5}},
				{Kind: "EQ", Literal: "=", Position: lex.Position{Line: 1, Column: 7}},
				{Kind: "SEMI", Literal: ";", Position: lex.Position{Line: 1, Column: 9}},
			},
			want: `parse error at 1:9: unexpected SEMI ";", expected one of Number, Identifier`,
		},
		{
			name: "truncated",
			tokens: []lex.Token{
				{Kind: "Identifier", Literal: "let", Position: lex.Position{Line: 1, Column: 1}},
				{Kind: "Identifier", Literal: "x", Position: lex.Position{Line: 1, Column: 5}},
				{Kind: "EOF", Position: lex.Position{Line: 1, Column: 6}},
			},
			want: `parse error at 1:6: unexpected end of input, expected "="`,
		},
		{
			name: "trailing tokens",
			tokens: []lex.Token{
				{Kind: "Identifier", Literal: "let", Position: lex.Position{Line: 1, Column: 1}},
				{Kind: "Identifier", Literal: "x", Position: lex.Position{Line: 1, Column: 5}},
				{Kind: "EQ", Literal: "=", Position: lex.Position{Line: 1, Column: 7}},
				{Kind: "Number", Literal: "1", Position: lex.Position{Line: 1, Column: 9}},
				{Kind: "SEMI", Literal: ";", Position: lex.Position{Line: 1, Column: 10}},
				{Kind: "SEMI", Literal: ";", Position: lex.Position{Line: 1, Column: 11}},
			},
			want: `parse error at 1:11: unexpected SEMI ";", expected end of input`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser(g, tt.tokens).Parse("stmt")
			if err == nil {
				t.Fatal("expected an error")
			}
			var serr *SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("expected *SyntaxError, got %T", err)
			}
			if err.Error() != tt.want {
				t.Errorf("got  %s\nwant %s", err, tt.want)
			}
		})
	}
}

func TestParser_RejectsLeftRecursion(t *testing.T) {
	g := mustGrammar(t, `
		expr = [ sign ] term .
		sign = .
		term = expr "+" Number | Number .
		Number = "1" .
	`)

	_, err := NewParser(g, nil).Parse("expr")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "left recursion: expr → term → expr") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParser_UnknownStart(t *testing.T) {
	g := mustGrammar(t, `a = "x" .`)
	if _, err := NewParser(g, nil).Parse("b"); err == nil {
		t.Fatal("expected an error")
	}
}

func TestParser_OptionalBodyInRepetition(t *testing.T) {
	g := mustGrammar(t, `list = "[" { [ Item ] "," } "]" .`)

	tokens := []lex.Token{
		{Kind: "LBRACK", Literal: "["},
		{Kind: "Item", Literal: "a"},
		{Kind: "COMMA", Literal: ","},
		{Kind: "COMMA", Literal: ","},
		{Kind: "RBRACK", Literal: "]"},
	}
	node, err := NewParser(g, tokens).Parse("list")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := shape(node); got != "list([ a , , ])" {
		t.Errorf("got %s", got)
	}
}

func TestParseFile(t *testing.T) {
	lexer := mustGrammar(t, `
		WhiteSpace = " " { " " } .
		Identifier = "a" … "z" { "a" … "z" } .
		Punct = "(" | ")" | "," .
	`)
	parser := mustGrammar(t, `
		call = Identifier "(" [ Identifier { "," Identifier } ] ")" .
	`)

	node, err := ParseFile(lexer, parser, []byte("f(a, b)"), "call.txt", "call")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := shape(node); got != "call(f ( a , b ))" {
		t.Errorf("got %s", got)
	}
	if node.Span.Start.Column != 1 || node.Span.End.Column != 8 {
		t.Errorf("span = %v", node.Span)
	}
	if node.Span.End.Filename != "call.txt" {
		t.Errorf("filename = %q", node.Span.End.Filename)
	}
}

func TestLanguage(t *testing.T) {
	g := mustGrammar(t, `
		list = Number { "," Number } .
		Number = "0" … "9" { "0" … "9" } .
		Punct = "," .
		Blank = " " { " " } .
	`)

	lang, err := NewLanguage(g, g, "list", []string{"Blank"})
	if err != nil {
		t.Fatalf("new language: %v", err)
	}

	node, tokens, err := lang.Parse([]byte("1, 22 ,3"), "nums")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(tokens) != 8 {
		t.Errorf("expected 8 tokens including EOF, got %d", len(tokens))
	}
	if got := shape(node); got != "list(1 , 22 , 3)" {
		t.Errorf("got %s", got)
	}

	_, _, err = lang.Parse([]byte("1,"), "nums")
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *SyntaxError, got %v", err)
	}
	if serr.Found.Kind != "EOF" || serr.Pos.Column != 3 {
		t.Errorf("unexpected error position: %v", err)
	}

	if _, err := NewLanguage(g, g, "missing", nil); err == nil {
		t.Error("expected an error for an unknown start production")
	}
}
