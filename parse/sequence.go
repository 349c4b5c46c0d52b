package parse

// Preceded runs first then second and returns the result of second.
func Preceded[I, A, B any](first Parser[I, A], second Parser[I, B]) Parser[I, B] {
	return func(in I) Result[I, B] {
		r := first(in)
		if r.Err != nil {
			return Fail[I, B](r.Err)
		}
		return second(r.Rest)
	}
}

// Terminated runs first then second and keeps the output of first. The input
// consumed by second is still consumed.
func Terminated[I, A, B any](first Parser[I, A], second Parser[I, B]) Parser[I, A] {
	return func(in I) Result[I, A] {
		r := first(in)
		if r.Err != nil {
			return r
		}
		s := second(r.Rest)
		if s.Err != nil {
			return Fail[I, A](s.Err)
		}
		return Ok(s.Rest, r.Output)
	}
}

// Delimited runs open, middle and closing in order and keeps the output of
// middle.
func Delimited[I, A, B, C any](open Parser[I, A], middle Parser[I, B], closing Parser[I, C]) Parser[I, B] {
	return Terminated(Preceded(open, middle), closing)
}

// Between is Delimited with the same parser on both sides, as in quoted
// strings or fenced blocks.
func Between[I, A, B any](parser Parser[I, A], separator Parser[I, B]) Parser[I, B] {
	return Delimited(parser, separator, parser)
}

// Pair runs first then second and returns both outputs.
func Pair[I, A, B any](first Parser[I, A], second Parser[I, B]) Parser[I, Tuple[A, B]] {
	return func(in I) Result[I, Tuple[A, B]] {
		r := first(in)
		if r.Err != nil {
			return Fail[I, Tuple[A, B]](r.Err)
		}
		s := second(r.Rest)
		if s.Err != nil {
			return Fail[I, Tuple[A, B]](s.Err)
		}
		return Ok(s.Rest, Tuple[A, B]{First: r.Output, Second: s.Output})
	}
}

// SeparatedPair is Pair with a separator whose output is discarded.
func SeparatedPair[I, A, S, B any](first Parser[I, A], sep Parser[I, S], second Parser[I, B]) Parser[I, Tuple[A, B]] {
	return Pair(first, Preceded(sep, second))
}
