package parse

import "github.com/vhotmar/mff-vector-drawing-sub001/input"

// Map applies f to the output of p. Failures are returned unchanged.
func Map[I, O, P any](p Parser[I, O], f func(O) P) Parser[I, P] {
	return func(in I) Result[I, P] {
		r := p(in)
		if r.Err != nil {
			return Fail[I, P](r.Err)
		}
		return Ok(r.Rest, f(r.Output))
	}
}

// MapRes is Map for fallible conversions. An error from f becomes a
// Recoverable MapRes error at the position where p started.
func MapRes[I, O, P any](p Parser[I, O], f func(O) (P, error)) Parser[I, P] {
	return func(in I) Result[I, P] {
		r := p(in)
		if r.Err != nil {
			return Fail[I, P](r.Err)
		}
		v, err := f(r.Output)
		if err != nil {
			return Fail[I, P](NewError(in, KindMapRes))
		}
		return Ok(r.Rest, v)
	}
}

// Constant consumes nothing and returns v.
func Constant[I, O any](v O) Parser[I, O] {
	return func(in I) Result[I, O] {
		return Ok(in, v)
	}
}

// Ignore discards the output of p.
func Ignore[I, O any](p Parser[I, O]) Parser[I, Unit] {
	return Value(Unit{}, p)
}

// Value returns v in place of the output of p.
func Value[I, O, V any](v V, p Parser[I, O]) Parser[I, V] {
	return Map(p, func(O) V { return v })
}

// Opt makes p optional. A Recoverable failure of p yields an empty Maybe and
// consumes nothing; Fatal and Incomplete failures propagate.
func Opt[I, O any](p Parser[I, O]) Parser[I, Maybe[O]] {
	return func(in I) Result[I, Maybe[O]] {
		r := p(in)
		if r.Err != nil {
			if r.Err.Recoverable() {
				return Ok(in, Maybe[O]{})
			}
			return Fail[I, Maybe[O]](r.Err)
		}
		return Ok(r.Rest, Some(r.Output))
	}
}

// Recognize returns the slice of the input consumed by p instead of its
// output. The span is derived from offsets, so input consumed by parsers
// whose output p discarded is included.
func Recognize[I input.Sliceable[I], O any](p Parser[I, O]) Parser[I, I] {
	return func(in I) Result[I, I] {
		r := p(in)
		if r.Err != nil {
			return Fail[I, I](r.Err)
		}
		return Ok(r.Rest, in.Take(in.Offset(r.Rest)))
	}
}

// Consumed returns both the consumed slice and the output of p.
func Consumed[I input.Sliceable[I], O any](p Parser[I, O]) Parser[I, Tuple[I, O]] {
	return func(in I) Result[I, Tuple[I, O]] {
		r := p(in)
		if r.Err != nil {
			return Fail[I, Tuple[I, O]](r.Err)
		}
		return Ok(r.Rest, Tuple[I, O]{First: in.Take(in.Offset(r.Rest)), Second: r.Output})
	}
}

// Verify succeeds only if pred accepts the output of p.
func Verify[I, O any](p Parser[I, O], pred func(O) bool) Parser[I, O] {
	return func(in I) Result[I, O] {
		r := p(in)
		if r.Err != nil {
			return r
		}
		if !pred(r.Output) {
			return Fail[I, O](NewError(in, KindVerify))
		}
		return r
	}
}

// Peek runs p without consuming input.
func Peek[I, O any](p Parser[I, O]) Parser[I, O] {
	return func(in I) Result[I, O] {
		r := p(in)
		if r.Err != nil {
			return r
		}
		return Ok(in, r.Output)
	}
}

// Not succeeds, consuming nothing, when p fails recoverably. It fails with a
// Recoverable Not error when p succeeds.
func Not[I, O any](p Parser[I, O]) Parser[I, Unit] {
	return func(in I) Result[I, Unit] {
		r := p(in)
		if r.Err == nil {
			return Fail[I, Unit](NewError(in, KindNot))
		}
		if r.Err.Recoverable() {
			return Ok(in, Unit{})
		}
		return Fail[I, Unit](r.Err)
	}
}

// Cut turns Recoverable failures of p into Fatal ones. Use it after the point
// where a construct is unambiguous so that alternatives are not tried.
func Cut[I, O any](p Parser[I, O]) Parser[I, O] {
	return func(in I) Result[I, O] {
		r := p(in)
		if r.Err != nil && r.Err.Recoverable() {
			return Fail[I, O](r.Err.WithSeverity(Fatal))
		}
		return r
	}
}

// Complete turns an Incomplete failure of p into a Recoverable Complete
// error, for streaming parsers used on input known to be whole.
func Complete[I, O any](p Parser[I, O]) Parser[I, O] {
	return func(in I) Result[I, O] {
		r := p(in)
		if r.Err != nil && r.Err.Severity == Incomplete {
			return Fail[I, O](NewError(in, KindComplete))
		}
		return r
	}
}

// Eof succeeds on empty input and returns it.
func Eof[I input.Sliceable[I]](in I) Result[I, I] {
	if in.Len() != 0 {
		return Fail[I, I](NewError(in, KindEof))
	}
	return Ok(in, in)
}

// AllConsuming runs p and requires it to consume the whole input.
func AllConsuming[I input.Sliceable[I], O any](p Parser[I, O]) Parser[I, O] {
	return func(in I) Result[I, O] {
		r := p(in)
		if r.Err != nil {
			return r
		}
		if r.Rest.Len() != 0 {
			return Fail[I, O](NewError(r.Rest, KindEof))
		}
		return r
	}
}

// Lazy defers obtaining a parser until it runs, which allows recursive
// grammars. f is called on every invocation and should return a parser that
// was built beforehand.
func Lazy[I, O any](f func() Parser[I, O]) Parser[I, O] {
	return func(in I) Result[I, O] {
		return f()(in)
	}
}
