// Package format renders concrete syntax trees and token streams.
package format

import (
	"fmt"
	"io"

	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/parse"
)

// Encoder writes a syntax tree.
type Encoder interface {
	Encode(node *parse.Node) error
	MarshalText(node *parse.Node) ([]byte, error)
}

// Names lists the formats accepted by New.
var Names = []string{"json", "tree"}

// New returns the encoder for the named format.
func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewCSTJSONEncoder(w), nil
	case "tree":
		return NewTreeEncoder(w), nil
	default:
		return nil, fmt.Errorf("unknown format %q", name)
	}
}
