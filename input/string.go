package input

import (
	"strings"
	"unicode/utf8"
)

// String is a text input. Lengths and offsets are measured in bytes and
// tokens are the runes of the UTF-8 encoding. Parsers only split a String
// on rune boundaries, see CanSplit.
type String string

func (s String) Len() int {
	return len(s)
}

func (s String) Offset(to String) int {
	return len(s) - len(to)
}

func (s String) Take(n int) String {
	return s[:n]
}

func (s String) TakeSplit(n int) (rest, taken String) {
	return s[n:], s[:n]
}

// CanSplit reports whether n falls on a rune boundary.
func (s String) CanSplit(n int) bool {
	return n == len(s) || utf8.RuneStart(s[n])
}

func (s String) SplitAtPosition(pred func(rune) bool) (rest, taken String, ok bool) {
	i := strings.IndexFunc(string(s), pred)
	if i < 0 {
		return s[len(s):], s, false
	}
	return s[i:], s[:i], true
}

func (s String) FindToken(token rune) bool {
	return strings.ContainsRune(string(s), token)
}

func (s String) Next() (token rune, rest String, ok bool) {
	if len(s) == 0 {
		return 0, s, false
	}
	r, size := utf8.DecodeRuneInString(string(s))
	return r, s[size:], true
}

func (s String) Compare(tag String) CompareResult {
	if len(s) < len(tag) {
		if strings.HasPrefix(string(tag), string(s)) {
			return CompareIncomplete
		}
		return CompareError
	}
	if strings.HasPrefix(string(s), string(tag)) {
		return CompareOK
	}
	return CompareError
}

var (
	_ Input[String, rune] = String("")
	_ Splitter            = String("")
)
