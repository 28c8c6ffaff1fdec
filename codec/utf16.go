package codec

import (
	"github.com/wippyai/textbuf"
	"github.com/wippyai/textbuf/errors"
)

// ValidateUTF16 checks that b holds well-formed UTF-16 units in the given
// byte order and counts its units and symbols. A high surrogate must be
// immediately followed by a low surrogate; the pair counts as one symbol.
// The returned error carries the unit offset of the first offending unit.
func ValidateUTF16(b []byte, endian textbuf.Endianness) (Counts, error) {
	if len(b)%2 != 0 {
		return Counts{}, errors.Content(errors.PhaseValidate, len(b)/2,
			"UTF-16 data is %d bytes, not a whole number of units", len(b))
	}
	order := endian.ByteOrder()

	var n Counts
	units := len(b) / 2
	for i := 0; i < units; i++ {
		u := order.Uint16(b[i*2:])
		switch {
		case isHighSurrogate(u):
			if i+1 >= units {
				return Counts{}, errors.Content(errors.PhaseValidate, i,
					"high surrogate %#04x at end of data", u)
			}
			lo := order.Uint16(b[(i+1)*2:])
			if !isLowSurrogate(lo) {
				return Counts{}, errors.Content(errors.PhaseValidate, i,
					"high surrogate %#04x followed by %#04x", u, lo)
			}
			i++
			n.Units += 2
		case isLowSurrogate(u):
			return Counts{}, errors.Content(errors.PhaseValidate, i,
				"unpaired low surrogate %#04x", u)
		default:
			n.Units++
		}
		n.Symbols++
	}
	return n, nil
}

// DecodeUTF16 appends the code points of b to dst. The input must
// already be valid UTF-16 in the given byte order.
func DecodeUTF16(dst []rune, b []byte, endian textbuf.Endianness) []rune {
	order := endian.ByteOrder()
	units := len(b) / 2
	for i := 0; i < units; i++ {
		u := order.Uint16(b[i*2:])
		if isHighSurrogate(u) && i+1 < units {
			dst = append(dst, combineSurrogates(u, order.Uint16(b[(i+1)*2:])))
			i++
			continue
		}
		dst = append(dst, rune(u))
	}
	return dst
}

// UnitsUTF16 returns the number of UTF-16 units r occupies: two for
// supplementary-plane code points, one otherwise.
func UnitsUTF16(r rune) int {
	if r > maxBMP {
		return 2
	}
	return 1
}

// PutUTF16 writes r at the start of dst in the given byte order and
// returns the number of bytes written. dst must have room for
// UnitsUTF16(r)*2 bytes.
func PutUTF16(dst []byte, r rune, endian textbuf.Endianness) int {
	order := endian.ByteOrder()
	if r <= maxBMP {
		order.PutUint16(dst, uint16(r))
		return 2
	}
	r -= 0x10000
	order.PutUint16(dst, uint16(surrMin+(r>>10)))
	order.PutUint16(dst[2:], uint16(surrMid+(r&0x3FF)))
	return 4
}

// SymbolIndexUTF16 returns the unit offset of the sym-th symbol in valid
// UTF-16 data. sym equal to the symbol count maps to the unit count.
func SymbolIndexUTF16(b []byte, endian textbuf.Endianness, sym int) int {
	order := endian.ByteOrder()
	unit := 0
	for ; sym > 0; sym-- {
		if isHighSurrogate(order.Uint16(b[unit*2:])) {
			unit += 2
		} else {
			unit++
		}
	}
	return unit
}
