package parse

import "github.com/vhotmar/mff-vector-drawing-sub001/input"

// The split helpers implement the end-of-input rules shared by the
// complete and streaming primitives. Each splits in at the first element
// satisfying pred and returns the prefix before it.

// SplitAtPositionComplete treats the end of input as the end of the match.
func SplitAtPositionComplete[I input.Input[I, T], T comparable](in I, pred func(T) bool) Result[I, I] {
	rest, taken, _ := in.SplitAtPosition(pred)
	return Ok(rest, taken)
}

// SplitAtPosition1Complete is SplitAtPositionComplete that rejects an empty
// match with a Recoverable error of the given kind.
func SplitAtPosition1Complete[I input.Input[I, T], T comparable](in I, pred func(T) bool, kind ErrorKind) Result[I, I] {
	rest, taken, _ := in.SplitAtPosition(pred)
	if taken.Len() == 0 {
		return Fail[I, I](NewError(in, kind))
	}
	return Ok(rest, taken)
}

// SplitAtPositionStreaming reports Incomplete when no element satisfies
// pred, since more input could still end the match earlier.
func SplitAtPositionStreaming[I input.Input[I, T], T comparable](in I, pred func(T) bool) Result[I, I] {
	rest, taken, ok := in.SplitAtPosition(pred)
	if !ok {
		return Fail[I, I](NewIncomplete(in, KindEof, 1))
	}
	return Ok(rest, taken)
}

// SplitAtPosition1Streaming is SplitAtPositionStreaming that rejects an
// empty match with a Recoverable error of the given kind.
func SplitAtPosition1Streaming[I input.Input[I, T], T comparable](in I, pred func(T) bool, kind ErrorKind) Result[I, I] {
	rest, taken, ok := in.SplitAtPosition(pred)
	if !ok {
		return Fail[I, I](NewIncomplete(in, kind, 1))
	}
	if taken.Len() == 0 {
		return Fail[I, I](NewError(in, kind))
	}
	return Ok(rest, taken)
}
