package complete

import (
	"encoding/binary"

	"github.com/vhotmar/mff-vector-drawing-sub001/input"
	"github.com/vhotmar/mff-vector-drawing-sub001/parse"
)

func BeU8(in input.Bytes) parse.Result[input.Bytes, uint8] {
	return number(in, 1, func(b []byte) uint8 { return b[0] })
}

func BeU16(in input.Bytes) parse.Result[input.Bytes, uint16] {
	return number(in, 2, binary.BigEndian.Uint16)
}

func BeU32(in input.Bytes) parse.Result[input.Bytes, uint32] {
	return number(in, 4, binary.BigEndian.Uint32)
}

func BeU64(in input.Bytes) parse.Result[input.Bytes, uint64] {
	return number(in, 8, binary.BigEndian.Uint64)
}

func LeU16(in input.Bytes) parse.Result[input.Bytes, uint16] {
	return number(in, 2, binary.LittleEndian.Uint16)
}

func LeU32(in input.Bytes) parse.Result[input.Bytes, uint32] {
	return number(in, 4, binary.LittleEndian.Uint32)
}

func LeU64(in input.Bytes) parse.Result[input.Bytes, uint64] {
	return number(in, 8, binary.LittleEndian.Uint64)
}

func number[O any](in input.Bytes, size int, decode func([]byte) O) parse.Result[input.Bytes, O] {
	if len(in) < size {
		return parse.Fail[input.Bytes, O](parse.NewError(in, parse.KindEof))
	}
	rest, taken := in.TakeSplit(size)
	return parse.Ok(rest, decode(taken))
}
