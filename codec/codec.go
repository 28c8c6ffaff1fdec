package codec

const (
	surrMin = 0xD800 // first high surrogate
	surrMid = 0xDC00 // first low surrogate
	surrMax = 0xE000 // one past the last low surrogate

	maxRune = 0x10FFFF
	maxBMP  = 0xFFFF
)

// Counts reports what a validated unit sequence contains.
type Counts struct {
	Units   int // code units consumed
	Symbols int // symbols (code points) they decode to
}

// IsScalar reports whether r is a Unicode scalar value: at most U+10FFFF
// and not a surrogate code point.
func IsScalar(r rune) bool {
	return r >= 0 && r <= maxRune && (r < surrMin || r >= surrMax)
}

func isHighSurrogate(u uint16) bool { return u >= surrMin && u < surrMid }
func isLowSurrogate(u uint16) bool  { return u >= surrMid && u < surrMax }

// combineSurrogates assembles a supplementary-plane code point from a
// high/low surrogate pair.
func combineSurrogates(hi, lo uint16) rune {
	return 0x10000 + (rune(hi)-surrMin)<<10 + (rune(lo) - surrMid)
}

// ScanTerminator returns the number of leading units in b before the
// first all-zero unit of the given width, or the full unit count when no
// terminator is present. A zero unit is zero in every byte, so the byte
// order does not matter.
func ScanTerminator(b []byte, width int) int {
	units := len(b) / width
	for i := 0; i < units; i++ {
		zero := true
		for j := 0; j < width; j++ {
			if b[i*width+j] != 0 {
				zero = false
				break
			}
		}
		if zero {
			return i
		}
	}
	return units
}
