package codec

import (
	"github.com/wippyai/textbuf"
	"github.com/wippyai/textbuf/errors"
)

// Wide characters behave as UTF-16 when the unit width is 2 bytes and as
// UTF-32 when it is 4. The width is explicit per call, independent of the
// platform's native wide-character width, so externally supplied data of
// either width can be handled on any host. Wide data is stored and read
// in host byte order.

// ValidWideWidth reports whether w is a supported wide unit width.
func ValidWideWidth(w int) bool { return w == 2 || w == 4 }

// ValidateWide checks b as wide-character data of the given unit width.
func ValidateWide(b []byte, width int) (Counts, error) {
	switch width {
	case 2:
		return ValidateUTF16(b, textbuf.HostEndianness())
	case 4:
		return ValidateUTF32(b, textbuf.HostEndianness())
	default:
		return Counts{}, errors.WideWidth(errors.PhaseValidate, width)
	}
}

// DecodeWide appends the code points of b to dst. The input must already
// be valid wide data of the given unit width.
func DecodeWide(dst []rune, b []byte, width int) []rune {
	if width == 2 {
		return DecodeUTF16(dst, b, textbuf.HostEndianness())
	}
	return DecodeUTF32(dst, b, textbuf.HostEndianness())
}

// UnitsWide returns the number of wide units r occupies at the given
// unit width.
func UnitsWide(r rune, width int) int {
	if width == 2 {
		return UnitsUTF16(r)
	}
	return 1
}

// PutWide writes r at the start of dst as a wide character of the given
// unit width and returns the number of bytes written.
func PutWide(dst []byte, r rune, width int) int {
	if width == 2 {
		return PutUTF16(dst, r, textbuf.HostEndianness())
	}
	return PutUTF32(dst, r, textbuf.HostEndianness())
}

// SymbolIndexWide returns the unit offset of the sym-th symbol in valid
// wide data of the given unit width.
func SymbolIndexWide(b []byte, width, sym int) int {
	if width == 2 {
		return SymbolIndexUTF16(b, textbuf.HostEndianness(), sym)
	}
	return sym
}
