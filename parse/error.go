package parse

import (
	"errors"
	"fmt"
)

// Severity tells combinators what they may do with a failure.
type Severity int

const (
	// Recoverable is an ordinary mismatch. Alternation and optional
	// combinators may backtrack over it.
	Recoverable Severity = iota
	// Fatal aborts the whole parse attempt. No combinator absorbs it.
	Fatal
	// Incomplete means a streaming parser ran out of input before it could
	// decide. The caller must supply more input and start again.
	Incomplete
)

func (s Severity) String() string {
	switch s {
	case Recoverable:
		return "recoverable"
	case Fatal:
		return "fatal"
	case Incomplete:
		return "incomplete"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Needed is the number of additional elements an Incomplete parser asked
// for. Unknown means the parser cannot tell.
type Needed int

// Unknown is the Needed value of a parser that cannot size the shortfall.
const Unknown Needed = 0

// Known reports whether the size of the shortfall is known.
func (n Needed) Known() bool {
	return n > 0
}

func (n Needed) String() string {
	if !n.Known() {
		return "unknown"
	}
	return fmt.Sprintf("%d", int(n))
}

// ErrorKind identifies the primitive or combinator that produced an error.
// It is meant for diagnostics and tests; combinators branch on Severity only.
type ErrorKind int

const (
	KindTag ErrorKind = iota + 1
	KindChar
	KindIsA
	KindAlpha
	KindDigit
	KindAlt
	KindMany0
	KindSeparatedList
	KindTakeWhile1
	KindTakeWhileMN
	KindEof
	KindHexDigit
	KindAlphaNumeric
	KindSpace
	KindMultiSpace
	KindOneOf
	KindNoneOf
	KindSatisfy
	KindVerify
	KindMapRes
	KindComplete
	KindNot
	KindCount

	userBase ErrorKind = 1 << 16
)

var kindNames = map[ErrorKind]string{
	KindTag:           "Tag",
	KindChar:          "Char",
	KindIsA:           "IsA",
	KindAlpha:         "Alpha",
	KindDigit:         "Digit",
	KindAlt:           "Alt",
	KindMany0:         "Many0",
	KindSeparatedList: "SeparatedList",
	KindTakeWhile1:    "TakeWhile1",
	KindTakeWhileMN:   "TakeWhileMN",
	KindEof:           "Eof",
	KindHexDigit:      "HexDigit",
	KindAlphaNumeric:  "AlphaNumeric",
	KindSpace:         "Space",
	KindMultiSpace:    "MultiSpace",
	KindOneOf:         "OneOf",
	KindNoneOf:        "NoneOf",
	KindSatisfy:       "Satisfy",
	KindVerify:        "Verify",
	KindMapRes:        "MapRes",
	KindComplete:      "Complete",
	KindNot:           "Not",
	KindCount:         "Count",
}

// UserKind returns the kind for an application defined error code.
func UserKind(code int) ErrorKind {
	return userBase + ErrorKind(code)
}

// User reports whether k was built with UserKind, and its code.
func (k ErrorKind) User() (code int, ok bool) {
	if k < userBase {
		return 0, false
	}
	return int(k - userBase), true
}

func (k ErrorKind) String() string {
	if code, ok := k.User(); ok {
		return fmt.Sprintf("User(%d)", code)
	}
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a parse failure at the input position Input.
type Error[I any] struct {
	Input    I
	Kind     ErrorKind
	Severity Severity
	// Needed is only meaningful when Severity is Incomplete.
	Needed Needed
}

// NewError returns a Recoverable error.
func NewError[I any](in I, kind ErrorKind) *Error[I] {
	return &Error[I]{Input: in, Kind: kind, Severity: Recoverable}
}

// NewFailure returns a Fatal error.
func NewFailure[I any](in I, kind ErrorKind) *Error[I] {
	return &Error[I]{Input: in, Kind: kind, Severity: Fatal}
}

// NewIncomplete returns an Incomplete error asking for needed more elements.
func NewIncomplete[I any](in I, kind ErrorKind, needed Needed) *Error[I] {
	return &Error[I]{Input: in, Kind: kind, Severity: Incomplete, Needed: needed}
}

// Recoverable reports whether backtracking over e is allowed.
func (e *Error[I]) Recoverable() bool {
	return e.Severity == Recoverable
}

// WithSeverity returns a copy of e with a different severity.
func (e *Error[I]) WithSeverity(s Severity) *Error[I] {
	c := *e
	c.Severity = s
	if s != Incomplete {
		c.Needed = Unknown
	}
	return &c
}

// Remaining returns the number of elements left at the error position, or
// -1 when the position does not report its length.
func (e *Error[I]) Remaining() int {
	if l, ok := any(e.Input).(interface{ Len() int }); ok {
		return l.Len()
	}
	return -1
}

func (e *Error[I]) Error() string {
	switch e.Severity {
	case Incomplete:
		return fmt.Sprintf("%s: incomplete input, needed %s", e.Kind, e.Needed)
	case Fatal:
		return fmt.Sprintf("%s: fatal error with %d remaining", e.Kind, e.Remaining())
	default:
		return fmt.Sprintf("%s: error with %d remaining", e.Kind, e.Remaining())
	}
}

// Is compares errors structurally: same kind at the same position. Positions
// are compared by remaining length, which identifies a position within one
// input.
func (e *Error[I]) Is(target error) bool {
	var t *Error[I]
	if !errors.As(target, &t) || t == nil {
		return false
	}
	return e.Kind == t.Kind && e.Remaining() == t.Remaining()
}
