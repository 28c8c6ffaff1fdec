package codec

import (
	"unicode/utf8"

	"github.com/wippyai/textbuf/errors"
)

// ValidateUTF8 checks that b is well-formed UTF-8 and counts its units
// and symbols. The returned error carries the byte offset of the first
// offending unit.
func ValidateUTF8(b []byte) (Counts, error) {
	var n Counts
	for off := 0; off < len(b); {
		r, size := utf8.DecodeRune(b[off:])
		if r == utf8.RuneError && size <= 1 {
			return Counts{}, errors.Content(errors.PhaseValidate, off,
				"invalid UTF-8 sequence starting with %#02x", b[off])
		}
		off += size
		n.Units += size
		n.Symbols++
	}
	return n, nil
}

// DecodeUTF8 appends the code points of b to dst. The input must already
// be valid UTF-8; malformed bytes decode to U+FFFD.
func DecodeUTF8(dst []rune, b []byte) []rune {
	for off := 0; off < len(b); {
		r, size := utf8.DecodeRune(b[off:])
		dst = append(dst, r)
		off += size
	}
	return dst
}

// UnitsUTF8 returns the number of bytes r occupies in UTF-8.
func UnitsUTF8(r rune) int {
	return utf8.RuneLen(r)
}

// PutUTF8 writes r at the start of dst and returns the number of bytes
// written. dst must have room for UnitsUTF8(r) bytes.
func PutUTF8(dst []byte, r rune) int {
	return utf8.EncodeRune(dst, r)
}

// SymbolIndexUTF8 returns the byte offset of the sym-th symbol in valid
// UTF-8 data. sym equal to the symbol count maps to len(b).
func SymbolIndexUTF8(b []byte, sym int) int {
	off := 0
	for ; sym > 0; sym-- {
		_, size := utf8.DecodeRune(b[off:])
		off += size
	}
	return off
}
