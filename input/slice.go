package input

import "slices"

// Slice is an input over arbitrary comparable elements, typically the token
// stream produced by a lexer.
type Slice[T comparable] []T

func (s Slice[T]) Len() int {
	return len(s)
}

func (s Slice[T]) Offset(to Slice[T]) int {
	return len(s) - len(to)
}

func (s Slice[T]) Take(n int) Slice[T] {
	return s[:n:n]
}

func (s Slice[T]) TakeSplit(n int) (rest, taken Slice[T]) {
	return s[n:], s[:n:n]
}

func (s Slice[T]) SplitAtPosition(pred func(T) bool) (rest, taken Slice[T], ok bool) {
	i := slices.IndexFunc(s, pred)
	if i < 0 {
		return s[len(s):], s, false
	}
	return s[i:], s[:i:i], true
}

func (s Slice[T]) FindToken(token T) bool {
	return slices.Contains(s, token)
}

func (s Slice[T]) Next() (token T, rest Slice[T], ok bool) {
	if len(s) == 0 {
		var zero T
		return zero, s, false
	}
	return s[0], s[1:], true
}

func (s Slice[T]) Compare(tag Slice[T]) CompareResult {
	n := min(len(s), len(tag))
	if !slices.Equal(s[:n], tag[:n]) {
		return CompareError
	}
	if n < len(tag) {
		return CompareIncomplete
	}
	return CompareOK
}

var _ Input[Slice[int], int] = Slice[int](nil)
