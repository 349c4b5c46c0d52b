package parse

// Alt tries each parser in order on the same input and returns the first
// success. Only Recoverable failures move on to the next parser. When all
// parsers fail, the error of the last one is returned.
func Alt[I, O any](parsers ...Parser[I, O]) Parser[I, O] {
	return func(in I) Result[I, O] {
		if len(parsers) == 0 {
			return Fail[I, O](NewError(in, KindAlt))
		}
		var r Result[I, O]
		for _, p := range parsers {
			r = p(in)
			if r.Err == nil || !r.Err.Recoverable() {
				return r
			}
		}
		return r
	}
}
