package codec

import (
	"golang.org/x/text/encoding/charmap"
)

// ANSI bytes carry no self-describing structure: every byte is one unit
// and one symbol, and no validation applies. The meaning of bytes above
// 0x7F is the caller's code page; by default they map 1:1 to the same
// code points (Latin-1). A charmap from golang.org/x/text may be supplied
// to decode under a specific single-byte code page instead.

// DecodeANSI appends the code points of b to dst under the given code
// page. A nil charmap selects the identity (Latin-1) mapping.
func DecodeANSI(dst []rune, b []byte, cm *charmap.Charmap) []rune {
	if cm == nil {
		for _, c := range b {
			dst = append(dst, rune(c))
		}
		return dst
	}
	for _, c := range b {
		dst = append(dst, cm.DecodeByte(c))
	}
	return dst
}

// CanEncodeANSI reports whether r fits in a single ANSI byte under the
// identity mapping.
func CanEncodeANSI(r rune) bool { return r >= 0 && r <= 0xFF }
