// Package parse provides parsing based on EBNF grammars, producing concrete syntax trees.
package parse

import (
	"strings"

	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/lex"
)

// Span represents a range in source code.
type Span struct {
	Start lex.Position
	End   lex.Position
}

// Node represents a node in the concrete syntax tree.
// Leaf nodes have a non-nil Token; interior nodes have Children.
type Node struct {
	Kind     string     // Production name or token kind
	Children []*Node    // Child nodes (nil for terminals)
	Token    *lex.Token // The token (non-nil for terminals)
	Span     Span       // Source span covering this node
}

// IsTerminal returns true if this is a leaf node (token).
func (n *Node) IsTerminal() bool {
	return n.Token != nil
}

// Text returns the source text of this node.
// For terminals, returns the token literal.
// For non-terminals, returns the concatenated literals of its tokens,
// without the skipped tokens between them.
func (n *Node) Text() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	var b strings.Builder
	n.Walk(func(c *Node) bool {
		if c.Token != nil {
			b.WriteString(c.Token.Literal)
		}
		return true
	})
	return b.String()
}

// Walk calls fn for n and its descendants in document order. Returning
// false from fn skips the children of that node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// AddChild appends a child node and updates the span.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	n.Children = append(n.Children, child)
	// Update span
	if len(n.Children) == 1 {
		n.Span.Start = child.Span.Start
	}
	n.Span.End = child.Span.End
}

// NewTerminal creates a terminal node from a token.
func NewTerminal(tok lex.Token) *Node {
	return &Node{
		Kind:  tok.Kind,
		Token: &tok,
		Span: Span{
			Start: tok.Position,
			End:   tok.End(),
		},
	}
}

// NewNonTerminal creates a non-terminal node.
func NewNonTerminal(kind string) *Node {
	return &Node{
		Kind:     kind,
		Children: make([]*Node, 0),
	}
}
