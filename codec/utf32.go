package codec

import (
	"github.com/wippyai/textbuf"
	"github.com/wippyai/textbuf/errors"
)

// ValidateUTF32 checks that every unit of b is a Unicode scalar value
// under the given byte order. The returned error carries the unit offset
// of the first offending unit.
func ValidateUTF32(b []byte, endian textbuf.Endianness) (Counts, error) {
	if len(b)%4 != 0 {
		return Counts{}, errors.Content(errors.PhaseValidate, len(b)/4,
			"UTF-32 data is %d bytes, not a whole number of units", len(b))
	}
	order := endian.ByteOrder()

	units := len(b) / 4
	for i := 0; i < units; i++ {
		u := order.Uint32(b[i*4:])
		if !IsScalar(rune(u)) {
			return Counts{}, errors.Content(errors.PhaseValidate, i,
				"unit %#08x is not a Unicode scalar value", u)
		}
	}
	return Counts{Units: units, Symbols: units}, nil
}

// DecodeUTF32 appends the code points of b to dst. The input must
// already be valid UTF-32 in the given byte order.
func DecodeUTF32(dst []rune, b []byte, endian textbuf.Endianness) []rune {
	order := endian.ByteOrder()
	units := len(b) / 4
	for i := 0; i < units; i++ {
		dst = append(dst, rune(order.Uint32(b[i*4:])))
	}
	return dst
}

// PutUTF32 writes r at the start of dst in the given byte order and
// returns the number of bytes written. dst must have room for 4 bytes.
func PutUTF32(dst []byte, r rune, endian textbuf.Endianness) int {
	endian.ByteOrder().PutUint32(dst, uint32(r))
	return 4
}
