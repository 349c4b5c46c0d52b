package parse

import "github.com/vhotmar/mff-vector-drawing-sub001/input"

// Many0 applies p until it fails recoverably and returns the outputs in
// order. It succeeds with an empty slice when p never matches. A success of
// p that consumes nothing would repeat forever and is reported as a Fatal
// Many0 error. Fatal and Incomplete failures of p propagate.
func Many0[I input.Sliceable[I], O any](p Parser[I, O]) Parser[I, []O] {
	return func(in I) Result[I, []O] {
		return many(p, in, nil)
	}
}

// Many1 is Many0 but requires at least one match. When p does not match at
// all the result is a Recoverable Many0 error.
func Many1[I input.Sliceable[I], O any](p Parser[I, O]) Parser[I, []O] {
	return func(in I) Result[I, []O] {
		r := p(in)
		if r.Err != nil {
			if r.Err.Recoverable() {
				return Fail[I, []O](NewError(in, KindMany0))
			}
			return Fail[I, []O](r.Err)
		}
		if r.Rest.Len() == in.Len() {
			return Fail[I, []O](NewFailure(in, KindMany0))
		}
		return many(p, r.Rest, []O{r.Output})
	}
}

func many[I input.Sliceable[I], O any](p Parser[I, O], in I, acc []O) Result[I, []O] {
	if acc == nil {
		acc = make([]O, 0, 4)
	}
	for {
		r := p(in)
		if r.Err != nil {
			if r.Err.Recoverable() {
				return Ok(in, acc)
			}
			return Fail[I, []O](r.Err)
		}
		if r.Rest.Len() == in.Len() {
			return Fail[I, []O](NewFailure(in, KindMany0))
		}
		acc = append(acc, r.Output)
		in = r.Rest
	}
}

// Fold0 is Many0 that folds outputs into an accumulator instead of
// collecting them. init is called once per invocation.
func Fold0[I input.Sliceable[I], O, R any](p Parser[I, O], init func() R, f func(R, O) R) Parser[I, R] {
	return func(in I) Result[I, R] {
		acc := init()
		for {
			r := p(in)
			if r.Err != nil {
				if r.Err.Recoverable() {
					return Ok(in, acc)
				}
				return Fail[I, R](r.Err)
			}
			if r.Rest.Len() == in.Len() {
				return Fail[I, R](NewFailure(in, KindMany0))
			}
			acc = f(acc, r.Output)
			in = r.Rest
		}
	}
}

// SeparatedList0 parses zero or more elements separated by sep. A separator
// not followed by an element is left unconsumed.
func SeparatedList0[I input.Sliceable[I], S, O any](sep Parser[I, S], elem Parser[I, O]) Parser[I, []O] {
	return func(in I) Result[I, []O] {
		r := elem(in)
		if r.Err != nil {
			if r.Err.Recoverable() {
				return Ok(in, []O{})
			}
			return Fail[I, []O](r.Err)
		}
		return separated(sep, elem, r.Rest, []O{r.Output})
	}
}

// SeparatedList1 parses one or more elements separated by sep.
func SeparatedList1[I input.Sliceable[I], S, O any](sep Parser[I, S], elem Parser[I, O]) Parser[I, []O] {
	return func(in I) Result[I, []O] {
		r := elem(in)
		if r.Err != nil {
			return Fail[I, []O](r.Err)
		}
		return separated(sep, elem, r.Rest, []O{r.Output})
	}
}

func separated[I input.Sliceable[I], S, O any](sep Parser[I, S], elem Parser[I, O], in I, acc []O) Result[I, []O] {
	for {
		s := sep(in)
		if s.Err != nil {
			if s.Err.Recoverable() {
				return Ok(in, acc)
			}
			return Fail[I, []O](s.Err)
		}
		e := elem(s.Rest)
		if e.Err != nil {
			if e.Err.Recoverable() {
				return Ok(in, acc)
			}
			return Fail[I, []O](e.Err)
		}
		if e.Rest.Len() == in.Len() {
			return Fail[I, []O](NewFailure(in, KindSeparatedList))
		}
		acc = append(acc, e.Output)
		in = e.Rest
	}
}

// Count applies p exactly n times. A negative n fails with KindCount.
func Count[I, O any](p Parser[I, O], n int) Parser[I, []O] {
	return func(in I) Result[I, []O] {
		if n < 0 {
			return Fail[I, []O](NewError(in, KindCount))
		}
		out := make([]O, 0, n)
		rest := in
		for range n {
			r := p(rest)
			if r.Err != nil {
				return Fail[I, []O](r.Err)
			}
			out = append(out, r.Output)
			rest = r.Rest
		}
		return Ok(rest, out)
	}
}

// ManyTill applies p until end matches and returns the outputs of p together
// with the output of end. A Recoverable failure of p before end matched is
// returned as is.
func ManyTill[I input.Sliceable[I], O, E any](p Parser[I, O], end Parser[I, E]) Parser[I, Tuple[[]O, E]] {
	return func(in I) Result[I, Tuple[[]O, E]] {
		var acc []O
		for {
			e := end(in)
			if e.Err == nil {
				return Ok(e.Rest, Tuple[[]O, E]{First: acc, Second: e.Output})
			}
			if !e.Err.Recoverable() {
				return Fail[I, Tuple[[]O, E]](e.Err)
			}
			r := p(in)
			if r.Err != nil {
				return Fail[I, Tuple[[]O, E]](r.Err)
			}
			if r.Rest.Len() == in.Len() {
				return Fail[I, Tuple[[]O, E]](NewFailure(in, KindMany0))
			}
			acc = append(acc, r.Output)
			in = r.Rest
		}
	}
}
