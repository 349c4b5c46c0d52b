// Package streaming holds the primitive parsers for input that may still
// grow. Whenever a decision depends on elements past the end of the current
// buffer, the parsers fail with an Incomplete error, carrying the number of
// missing elements when it is known. The caller appends more input and runs
// the grammar again from the start.
package streaming

import (
	"github.com/vhotmar/mff-vector-drawing-sub001/input"
	"github.com/vhotmar/mff-vector-drawing-sub001/parse"
)

// Tag matches the literal tag. A buffer that is a strict prefix of tag is
// Incomplete.
func Tag[I input.Input[I, T], T comparable](tag I) parse.Parser[I, I] {
	n := tag.Len()
	return func(in I) parse.Result[I, I] {
		switch in.Compare(tag) {
		case input.CompareOK:
			rest, taken := in.TakeSplit(n)
			return parse.Ok(rest, taken)
		case input.CompareIncomplete:
			return parse.Fail[I, I](parse.NewIncomplete(in, parse.KindTag, parse.Needed(n-in.Len())))
		default:
			return parse.Fail[I, I](parse.NewError(in, parse.KindTag))
		}
	}
}

// IsNot returns the longest non-empty prefix containing no element of set.
// Reaching the end of the buffer without meeting an element of set is
// Incomplete, because more input could end the match earlier.
func IsNot[I input.Input[I, T], T comparable](set I) parse.Parser[I, I] {
	return func(in I) parse.Result[I, I] {
		return parse.SplitAtPosition1Streaming(in, set.FindToken, parse.KindIsA)
	}
}

// IsA returns the longest non-empty prefix made only of elements of set.
func IsA[I input.Input[I, T], T comparable](set I) parse.Parser[I, I] {
	return func(in I) parse.Result[I, I] {
		return parse.SplitAtPosition1Streaming(in, func(c T) bool { return !set.FindToken(c) }, parse.KindIsA)
	}
}

// TakeWhile returns the longest, possibly empty, prefix satisfying pred.
func TakeWhile[I input.Input[I, T], T comparable](pred func(T) bool) parse.Parser[I, I] {
	return func(in I) parse.Result[I, I] {
		return parse.SplitAtPositionStreaming(in, func(c T) bool { return !pred(c) })
	}
}

// TakeWhile1 is TakeWhile that rejects an empty match.
func TakeWhile1[I input.Input[I, T], T comparable](pred func(T) bool) parse.Parser[I, I] {
	return func(in I) parse.Result[I, I] {
		return parse.SplitAtPosition1Streaming(in, func(c T) bool { return !pred(c) }, parse.KindTakeWhile1)
	}
}

// TakeWhileMN returns the longest prefix of at most n elements satisfying
// pred, and fails if it is shorter than m elements. Running out of input
// before n elements or a rejected element is Incomplete.
func TakeWhileMN[I input.Input[I, T], T comparable](m, n int, pred func(T) bool) parse.Parser[I, I] {
	return func(in I) parse.Result[I, I] {
		count, rest := 0, in
		for count < n {
			tok, next, ok := rest.Next()
			if !ok {
				return parse.Fail[I, I](parse.NewIncomplete(in, parse.KindTakeWhileMN, parse.Needed(n-count)))
			}
			if !pred(tok) {
				break
			}
			count++
			rest = next
		}
		if count < m {
			return parse.Fail[I, I](parse.NewError(in, parse.KindTakeWhileMN))
		}
		return parse.Ok(rest, in.Take(in.Offset(rest)))
	}
}

// TakeTill returns the longest, possibly empty, prefix up to the first
// element satisfying pred.
func TakeTill[I input.Input[I, T], T comparable](pred func(T) bool) parse.Parser[I, I] {
	return func(in I) parse.Result[I, I] {
		return parse.SplitAtPositionStreaming(in, pred)
	}
}

// Take returns the first n elements. It fails with KindEof when n would
// split a String inside a rune.
func Take[I input.Sliceable[I]](n int) parse.Parser[I, I] {
	return func(in I) parse.Result[I, I] {
		if in.Len() < n {
			return parse.Fail[I, I](parse.NewIncomplete(in, parse.KindEof, parse.Needed(n-in.Len())))
		}
		if !input.CanSplit(in, n) {
			return parse.Fail[I, I](parse.NewError(in, parse.KindEof))
		}
		rest, taken := in.TakeSplit(n)
		return parse.Ok(rest, taken)
	}
}
