// Package parse provides generic parser combinators.
//
// A Parser is a plain function from an input to a Result. Grammars are built
// by composing parsers with the combinators in this package and the
// primitives in parse/complete and parse/streaming:
//
//	key := complete.IsNot(input.String("=\n"))
//	pair := parse.SeparatedPair(key, complete.Char[input.String]('='), complete.TakeTill[input.String](isNewline))
//
// Parsers never mutate their input and keep no state between calls, so the
// same grammar value may be used concurrently on independent inputs.
//
// Failures carry a Severity. Recoverable errors are ordinary mismatches that
// Opt, Alt and the repetition combinators may backtrack over. Fatal errors
// and Incomplete errors (streaming mode only) always propagate.
package parse

// Parser parses a prefix of an input of type I into a value of type O.
type Parser[I, O any] func(in I) Result[I, O]

// Result is the outcome of running a Parser. It is Ok when Err is nil, in
// which case Rest is the unconsumed input and Output the parsed value.
type Result[I, O any] struct {
	Rest   I
	Output O
	Err    *Error[I]
}

// Ok returns a successful result.
func Ok[I, O any](rest I, out O) Result[I, O] {
	return Result[I, O]{Rest: rest, Output: out}
}

// Fail returns a failed result.
func Fail[I, O any](err *Error[I]) Result[I, O] {
	return Result[I, O]{Err: err}
}

// IsOk reports whether the parser succeeded.
func (r Result[I, O]) IsOk() bool {
	return r.Err == nil
}

// Unit is the output of parsers whose value is irrelevant.
type Unit struct{}

// Maybe is the output of Opt.
type Maybe[O any] struct {
	Value O
	Valid bool
}

// Some returns a present Maybe.
func Some[O any](v O) Maybe[O] {
	return Maybe[O]{Value: v, Valid: true}
}

// Or returns the value if present and def otherwise.
func (m Maybe[O]) Or(def O) O {
	if m.Valid {
		return m.Value
	}
	return def
}

// Tuple is the output of Pair and SeparatedPair.
type Tuple[A, B any] struct {
	First  A
	Second B
}

// Parse runs p on in and converts the result to Go's error convention. The
// returned error is a *Error[I] or nil.
func Parse[I, O any](p Parser[I, O], in I) (out O, rest I, err error) {
	r := p(in)
	if r.Err != nil {
		return out, in, r.Err
	}
	return r.Output, r.Rest, nil
}
