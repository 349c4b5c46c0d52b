package input

import "bytes"

// Bytes is a binary input whose tokens are single bytes.
type Bytes []byte

func (b Bytes) Len() int {
	return len(b)
}

func (b Bytes) Offset(to Bytes) int {
	return len(b) - len(to)
}

func (b Bytes) Take(n int) Bytes {
	return b[:n:n]
}

func (b Bytes) TakeSplit(n int) (rest, taken Bytes) {
	return b[n:], b[:n:n]
}

func (b Bytes) SplitAtPosition(pred func(byte) bool) (rest, taken Bytes, ok bool) {
	for i, c := range b {
		if pred(c) {
			return b[i:], b[:i:i], true
		}
	}
	return b[len(b):], b, false
}

func (b Bytes) FindToken(token byte) bool {
	return bytes.IndexByte(b, token) >= 0
}

func (b Bytes) Next() (token byte, rest Bytes, ok bool) {
	if len(b) == 0 {
		return 0, b, false
	}
	return b[0], b[1:], true
}

func (b Bytes) Compare(tag Bytes) CompareResult {
	if len(b) < len(tag) {
		if bytes.HasPrefix(tag, b) {
			return CompareIncomplete
		}
		return CompareError
	}
	if bytes.HasPrefix(b, tag) {
		return CompareOK
	}
	return CompareError
}

var _ Input[Bytes, byte] = Bytes(nil)
