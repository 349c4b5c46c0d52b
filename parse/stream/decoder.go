// Package stream drives streaming parsers over an io.Reader.
package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/vhotmar/mff-vector-drawing-sub001/input"
	"github.com/vhotmar/mff-vector-drawing-sub001/parse"
)

const defaultChunkSize = 4096

// ErrNoProgress is returned when the parser succeeds without consuming input,
// which would make Decode return the same value forever.
var ErrNoProgress = errors.New("stream: parser consumed no input")

// Decoder reads values from a reader with a parser built from package
// streaming. On an Incomplete result it reads more data and runs the parser
// again over the whole retained buffer.
type Decoder[O any] struct {
	r      io.Reader
	p      parse.Parser[input.Bytes, O]
	buf    []byte
	chunk  int
	eof    bool
	offset int64
}

// Option configures a Decoder.
type Option func(*options)

type options struct {
	chunk int
}

// WithChunkSize sets the minimum number of bytes requested per read.
func WithChunkSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.chunk = n
		}
	}
}

// NewDecoder returns a decoder reading from r.
func NewDecoder[O any](r io.Reader, p parse.Parser[input.Bytes, O], opts ...Option) *Decoder[O] {
	o := options{chunk: defaultChunkSize}
	for _, opt := range opts {
		opt(&o)
	}
	return &Decoder[O]{r: r, p: p, chunk: o.chunk}
}

// InputOffset returns the number of bytes consumed by decoded values so far.
func (d *Decoder[O]) InputOffset() int64 {
	return d.offset
}

// Buffered returns the bytes read but not yet consumed.
func (d *Decoder[O]) Buffered() []byte {
	return d.buf
}

// Decode returns the next value. It returns io.EOF when the reader is
// exhausted between values, and an error wrapping io.ErrUnexpectedEOF when
// it ends in the middle of one. Parse failures are returned as
// *parse.Error[input.Bytes].
func (d *Decoder[O]) Decode() (O, error) {
	var zero O
	need := 0
	for {
		if len(d.buf) > 0 {
			r := d.p(input.Bytes(d.buf))
			if r.Err == nil {
				n := len(d.buf) - len(r.Rest)
				if n == 0 {
					return zero, ErrNoProgress
				}
				d.buf = d.buf[n:]
				d.offset += int64(n)
				return r.Output, nil
			}
			if r.Err.Severity != parse.Incomplete {
				return zero, r.Err
			}
			need = int(r.Err.Needed)
		}
		if d.eof {
			if len(d.buf) == 0 {
				return zero, io.EOF
			}
			return zero, fmt.Errorf("decode at offset %d: %w", d.offset, io.ErrUnexpectedEOF)
		}
		if err := d.fill(need); err != nil {
			return zero, err
		}
	}
}

// fill reads at least one more chunk, growing the buffer so that need more
// bytes fit.
func (d *Decoder[O]) fill(need int) error {
	want := max(need, d.chunk)
	if cap(d.buf)-len(d.buf) < want {
		grown := make([]byte, len(d.buf), len(d.buf)+want)
		copy(grown, d.buf)
		d.buf = grown
	}
	n, err := d.r.Read(d.buf[len(d.buf):cap(d.buf)])
	d.buf = d.buf[:len(d.buf)+n]
	if err == io.EOF {
		d.eof = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	return nil
}
