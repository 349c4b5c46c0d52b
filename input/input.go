// Package input defines the capabilities a value must provide to be parsed
// by the combinators in package parse, together with the stock input kinds:
// String, Bytes and Slice.
//
// Inputs are immutable views. Every operation that consumes part of an input
// returns a new value and leaves the receiver untouched, so a parser can
// backtrack by simply reusing the value it was given.
package input

// Sliceable is the part of the capability set needed by combinators that only
// move through an input without looking at its elements.
type Sliceable[I any] interface {
	// Len returns the number of remaining elements.
	Len() int
	// Offset returns the distance from the receiver to to, which must be a
	// suffix obtained by slicing the receiver.
	Offset(to I) int
	// Take returns the first n elements.
	Take(n int) I
	// TakeSplit splits the input after n elements.
	TakeSplit(n int) (rest, taken I)
}

// Splitter is implemented by inputs on which not every length is a valid
// split point.
type Splitter interface {
	// CanSplit reports whether the input may be split after n elements.
	CanSplit(n int) bool
}

// CanSplit reports whether in may be split after n elements. n must lie
// within the input.
func CanSplit[I Sliceable[I]](in I, n int) bool {
	if n < 0 || n > in.Len() {
		return false
	}
	if s, ok := any(in).(Splitter); ok {
		return s.CanSplit(n)
	}
	return true
}

// Input is the full capability set. T is the element type produced when
// iterating the input: rune for String, byte for Bytes.
type Input[I any, T comparable] interface {
	Sliceable[I]

	// SplitAtPosition splits the input at the first element for which pred
	// returns true. ok is false when no element satisfies pred; rest and
	// taken are then the empty remainder and the whole input.
	SplitAtPosition(pred func(T) bool) (rest, taken I, ok bool)
	// FindToken reports whether token occurs in the input. It is called on
	// token sets, such as the argument to IsNot.
	FindToken(token T) bool
	// Next splits off the first element.
	Next() (token T, rest I, ok bool)
	// Compare compares the start of the input against tag.
	Compare(tag I) CompareResult
}

// CompareResult is the outcome of Input.Compare.
type CompareResult int

const (
	// CompareOK means the input starts with the tag.
	CompareOK CompareResult = iota
	// CompareIncomplete means the input is a strict prefix of the tag.
	CompareIncomplete
	// CompareError means the input and the tag differ.
	CompareError
)

func (c CompareResult) String() string {
	switch c {
	case CompareOK:
		return "ok"
	case CompareIncomplete:
		return "incomplete"
	default:
		return "error"
	}
}
