// Package codec provides validation and transcoding between the unit
// kinds the textbuf library stores: ANSI bytes, UTF-8, UTF-16, UTF-32,
// and platform wide characters of 2 or 4 bytes.
//
// All functions are pure and operate on raw byte slices; multi-byte
// units are read and written under an explicit byte order. Nothing here
// touches container state.
//
// # Validation Rules
//
//	UTF-8   standard well-formedness: correct continuation bytes, no
//	        overlong forms, no surrogate code points, max U+10FFFF
//	UTF-16  a high surrogate must be immediately followed by a low
//	        surrogate; unpaired surrogates are invalid
//	UTF-32  each unit must be a Unicode scalar value (<= U+10FFFF and
//	        outside the surrogate range)
//	wide    UTF-16 rules when the unit width is 2, UTF-32 rules when 4;
//	        the width is explicit per call, independent of the platform
//	ANSI    no validation; every byte is one symbol
//
// # Symbols
//
// Validation and decoding count symbols: one decoded code point is one
// symbol, so a UTF-16 surrogate pair counts once. Combining marks are
// not folded into their base character.
package codec
