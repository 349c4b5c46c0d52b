// Package complete holds the primitive parsers for input that is known to be
// whole: reaching the end of the input ends a match.
//
// Package streaming has the same parsers with streaming semantics.
package complete

import (
	"github.com/vhotmar/mff-vector-drawing-sub001/input"
	"github.com/vhotmar/mff-vector-drawing-sub001/parse"
)

// Tag matches the literal tag.
func Tag[I input.Input[I, T], T comparable](tag I) parse.Parser[I, I] {
	n := tag.Len()
	return func(in I) parse.Result[I, I] {
		if in.Compare(tag) != input.CompareOK {
			return parse.Fail[I, I](parse.NewError(in, parse.KindTag))
		}
		rest, taken := in.TakeSplit(n)
		return parse.Ok(rest, taken)
	}
}

// IsNot returns the longest non-empty prefix containing no element of set.
// Input without any element of set is matched entirely.
func IsNot[I input.Input[I, T], T comparable](set I) parse.Parser[I, I] {
	return func(in I) parse.Result[I, I] {
		return parse.SplitAtPosition1Complete(in, set.FindToken, parse.KindIsA)
	}
}

// IsA returns the longest non-empty prefix made only of elements of set.
func IsA[I input.Input[I, T], T comparable](set I) parse.Parser[I, I] {
	return func(in I) parse.Result[I, I] {
		return parse.SplitAtPosition1Complete(in, func(c T) bool { return !set.FindToken(c) }, parse.KindIsA)
	}
}

// TakeWhile returns the longest, possibly empty, prefix satisfying pred.
func TakeWhile[I input.Input[I, T], T comparable](pred func(T) bool) parse.Parser[I, I] {
	return func(in I) parse.Result[I, I] {
		return parse.SplitAtPositionComplete(in, func(c T) bool { return !pred(c) })
	}
}

// TakeWhile1 is TakeWhile that rejects an empty match.
func TakeWhile1[I input.Input[I, T], T comparable](pred func(T) bool) parse.Parser[I, I] {
	return func(in I) parse.Result[I, I] {
		return parse.SplitAtPosition1Complete(in, func(c T) bool { return !pred(c) }, parse.KindTakeWhile1)
	}
}

// TakeWhileMN returns the longest prefix of at most n elements satisfying
// pred, and fails if it is shorter than m elements.
func TakeWhileMN[I input.Input[I, T], T comparable](m, n int, pred func(T) bool) parse.Parser[I, I] {
	return func(in I) parse.Result[I, I] {
		count, rest := 0, in
		for count < n {
			tok, next, ok := rest.Next()
			if !ok || !pred(tok) {
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
		return parse.SplitAtPositionComplete(in, pred)
	}
}

// Take returns the first n elements. It fails with KindEof when n would
// split a String inside a rune.
func Take[I input.Sliceable[I]](n int) parse.Parser[I, I] {
	return func(in I) parse.Result[I, I] {
		if in.Len() < n {
			return parse.Fail[I, I](parse.NewError(in, parse.KindEof))
		}
		if !input.CanSplit(in, n) {
			return parse.Fail[I, I](parse.NewError(in, parse.KindEof))
		}
		rest, taken := in.TakeSplit(n)
		return parse.Ok(rest, taken)
	}
}
