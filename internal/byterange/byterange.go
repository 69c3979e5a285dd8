// Package byterange implements the non-owning byte view used as the station
// table's key type. A Range never copies the bytes it points at; it borrows
// a slice of the file mapping and is only ever compared or hashed, never
// mutated.
package byterange

import (
	"bytes"
	"encoding/binary"
)

// hashMultiplier is a happy prime containing the digits of the challenge
// year. Its only property that matters is that it is odd and large enough
// to spread lengths across the low bits of the hash.
const hashMultiplier = 820243

// Range is a borrowed view into a larger byte buffer, typically the file
// mapping owned by the caller. The zero value is the empty range and is
// used as the station table's sentinel for an unoccupied slot.
type Range []byte

// Of wraps b without copying it.
func Of(b []byte) Range {
	return Range(b)
}

// Len returns the number of bytes in the range.
func (r Range) Len() int {
	return len(r)
}

// Empty reports whether r is the zero value, the table's empty-slot
// sentinel.
func (r Range) Empty() bool {
	return r == nil
}

// Slice returns the sub-range starting at off, sharing the backing array.
func (r Range) Slice(off int) Range {
	return r[off:]
}

// Equal reports whether r and other hold byte-identical contents. It
// defers to bytes.Equal, which the runtime vectorizes on platforms that
// support it, rather than hand-rolling a byte loop.
func (r Range) Equal(other Range) bool {
	return bytes.Equal(r, other)
}

// Hash computes the station table's key hash: a weak but fast mix of the
// range's length with its first few bytes, read little-endian. It is
// deliberately cheap — see the design notes on hash quality versus speed —
// and its exact bit pattern is not part of the table's contract, only its
// determinism and its property of rarely colliding on real station names.
func (r Range) Hash() int32 {
	n := len(r)
	switch {
	case n > 3:
		return int32(uint32(n)*hashMultiplier) ^ int32(binary.LittleEndian.Uint32(r[:4]))
	case n > 1:
		return int32(binary.LittleEndian.Uint16(r[:2]))
	case n == 1:
		return int32(r[0])
	default:
		return 0
	}
}
