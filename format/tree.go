package format

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/lex"
	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/parse"
)

// TreeEncoder writes one line per node, indented by depth:
//
//	call 1:1-1:8
//	  Identifier "f" 1:1
type TreeEncoder struct {
	w      io.Writer
	Indent string
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w, Indent: "  "}
}

func (e *TreeEncoder) Encode(node *parse.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText(node *parse.Node) ([]byte, error) {
	var buf bytes.Buffer
	e.write(&buf, node, 0)
	return buf.Bytes(), nil
}

func (e *TreeEncoder) write(buf *bytes.Buffer, n *parse.Node, depth int) {
	buf.WriteString(strings.Repeat(e.Indent, depth))
	if n.IsTerminal() {
		fmt.Fprintf(buf, "%s %q %d:%d\n", n.Kind, n.Token.Literal, n.Span.Start.Line, n.Span.Start.Column)
		return
	}
	fmt.Fprintf(buf, "%s %d:%d-%d:%d\n", n.Kind,
		n.Span.Start.Line, n.Span.Start.Column, n.Span.End.Line, n.Span.End.Column)
	for _, c := range n.Children {
		e.write(buf, c, depth+1)
	}
}

// EncodeTokens writes one token per line.
func EncodeTokens(w io.Writer, tokens []lex.Token) error {
	var buf bytes.Buffer
	for _, tok := range tokens {
		buf.WriteString(tok.String())
		buf.WriteByte('\n')
	}
	_, err := w.Write(buf.Bytes())
	return err
}
