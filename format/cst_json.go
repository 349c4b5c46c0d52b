package format

import (
	"encoding/json"
	"io"

	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/parse"
)

type CSTJSONEncoder struct {
	w io.Writer
}

func NewCSTJSONEncoder(w io.Writer) *CSTJSONEncoder {
	return &CSTJSONEncoder{w: w}
}

func (e *CSTJSONEncoder) Encode(node *parse.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *CSTJSONEncoder) MarshalText(node *parse.Node) ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(node), "", "  ")
}

type cstJSONNode struct {
	Kind     string         `json:"kind"`
	Span     *cstJSONSpan   `json:"span,omitempty"`
	Token    string         `json:"token,omitempty"`
	Children []*cstJSONNode `json:"children,omitempty"`
}

type cstJSONSpan struct {
	Start cstJSONPosition `json:"start"`
	End   cstJSONPosition `json:"end"`
}

type cstJSONPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func nodeToJSON(n *parse.Node) *cstJSONNode {
	jn := &cstJSONNode{
		Kind: n.Kind,
	}

	if n.Span.Start.Line != 0 || n.Span.End.Line != 0 {
		jn.Span = &cstJSONSpan{
			Start: cstJSONPosition{Offset: n.Span.Start.Offset, Line: n.Span.Start.Line, Column: n.Span.Start.Column},
			End:   cstJSONPosition{Offset: n.Span.End.Offset, Line: n.Span.End.Line, Column: n.Span.End.Column},
		}
	}

	if n.Token != nil {
		jn.Token = n.Token.Literal
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*cstJSONNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = nodeToJSON(child)
		}
	}

	return jn
}
