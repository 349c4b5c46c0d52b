package streaming

import (
	"github.com/vhotmar/mff-vector-drawing-sub001/input"
	"github.com/vhotmar/mff-vector-drawing-sub001/parse"
)

// Satisfy matches one element accepted by pred.
func Satisfy[I input.Input[I, T], T comparable](pred func(T) bool) parse.Parser[I, T] {
	return token[I](pred, parse.KindSatisfy)
}

// Char matches the element c.
func Char[I input.Input[I, T], T comparable](c T) parse.Parser[I, T] {
	return token[I](func(t T) bool { return t == c }, parse.KindChar)
}

// OneOf matches one element of set.
func OneOf[I input.Input[I, T], T comparable](set I) parse.Parser[I, T] {
	return token[I](set.FindToken, parse.KindOneOf)
}

// NoneOf matches one element that is not in set.
func NoneOf[I input.Input[I, T], T comparable](set I) parse.Parser[I, T] {
	return token[I](func(t T) bool { return !set.FindToken(t) }, parse.KindNoneOf)
}

// AnyToken matches any single element.
func AnyToken[I input.Input[I, T], T comparable](in I) parse.Result[I, T] {
	tok, rest, ok := in.Next()
	if !ok {
		return parse.Fail[I, T](parse.NewIncomplete(in, parse.KindEof, 1))
	}
	return parse.Ok(rest, tok)
}

func token[I input.Input[I, T], T comparable](pred func(T) bool, kind parse.ErrorKind) parse.Parser[I, T] {
	return func(in I) parse.Result[I, T] {
		tok, rest, ok := in.Next()
		if !ok {
			return parse.Fail[I, T](parse.NewIncomplete(in, kind, 1))
		}
		if !pred(tok) {
			return parse.Fail[I, T](parse.NewError(in, kind))
		}
		return parse.Ok(rest, tok)
	}
}

// Alpha0 matches zero or more ASCII letters.
func Alpha0[I input.Input[I, T], T parse.Char](in I) parse.Result[I, I] {
	return parse.SplitAtPositionStreaming(in, not(parse.IsAlpha[T]))
}

// Alpha1 matches one or more ASCII letters.
func Alpha1[I input.Input[I, T], T parse.Char](in I) parse.Result[I, I] {
	return parse.SplitAtPosition1Streaming(in, not(parse.IsAlpha[T]), parse.KindAlpha)
}

// Digit0 matches zero or more ASCII digits.
func Digit0[I input.Input[I, T], T parse.Char](in I) parse.Result[I, I] {
	return parse.SplitAtPositionStreaming(in, not(parse.IsDigit[T]))
}

// Digit1 matches one or more ASCII digits.
func Digit1[I input.Input[I, T], T parse.Char](in I) parse.Result[I, I] {
	return parse.SplitAtPosition1Streaming(in, not(parse.IsDigit[T]), parse.KindDigit)
}

func HexDigit0[I input.Input[I, T], T parse.Char](in I) parse.Result[I, I] {
	return parse.SplitAtPositionStreaming(in, not(parse.IsHexDigit[T]))
}

func HexDigit1[I input.Input[I, T], T parse.Char](in I) parse.Result[I, I] {
	return parse.SplitAtPosition1Streaming(in, not(parse.IsHexDigit[T]), parse.KindHexDigit)
}

func AlphaNumeric0[I input.Input[I, T], T parse.Char](in I) parse.Result[I, I] {
	return parse.SplitAtPositionStreaming(in, not(parse.IsAlphaNumeric[T]))
}

func AlphaNumeric1[I input.Input[I, T], T parse.Char](in I) parse.Result[I, I] {
	return parse.SplitAtPosition1Streaming(in, not(parse.IsAlphaNumeric[T]), parse.KindAlphaNumeric)
}

// Space0 matches zero or more spaces and tabs.
func Space0[I input.Input[I, T], T parse.Char](in I) parse.Result[I, I] {
	return parse.SplitAtPositionStreaming(in, not(parse.IsSpace[T]))
}

// Space1 matches one or more spaces and tabs.
func Space1[I input.Input[I, T], T parse.Char](in I) parse.Result[I, I] {
	return parse.SplitAtPosition1Streaming(in, not(parse.IsSpace[T]), parse.KindSpace)
}

// MultiSpace0 matches zero or more spaces, tabs and line breaks.
func MultiSpace0[I input.Input[I, T], T parse.Char](in I) parse.Result[I, I] {
	return parse.SplitAtPositionStreaming(in, not(parse.IsMultiSpace[T]))
}

// MultiSpace1 matches one or more spaces, tabs and line breaks.
func MultiSpace1[I input.Input[I, T], T parse.Char](in I) parse.Result[I, I] {
	return parse.SplitAtPosition1Streaming(in, not(parse.IsMultiSpace[T]), parse.KindMultiSpace)
}

func not[T any](pred func(T) bool) func(T) bool {
	return func(c T) bool { return !pred(c) }
}
