package codec

import (
	"testing"

	"golang.org/x/text/encoding/charmap"

	"github.com/wippyai/textbuf"
	"github.com/wippyai/textbuf/errors"
	xerrors "errors"
)

func u16le(units ...uint16) []byte {
	b := make([]byte, 0, len(units)*2)
	for _, u := range units {
		b = append(b, byte(u), byte(u>>8))
	}
	return b
}

func u16be(units ...uint16) []byte {
	b := make([]byte, 0, len(units)*2)
	for _, u := range units {
		b = append(b, byte(u>>8), byte(u))
	}
	return b
}

func u32le(units ...uint32) []byte {
	b := make([]byte, 0, len(units)*4)
	for _, u := range units {
		b = append(b, byte(u), byte(u>>8), byte(u>>16), byte(u>>24))
	}
	return b
}

func TestValidateUTF8(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		units   int
		symbols int
		wantErr bool
	}{
		{"empty", nil, 0, 0, false},
		{"ascii", []byte("abc"), 3, 3, false},
		{"two byte", []byte("grüße"), 7, 5, false},
		{"three byte", []byte("€"), 3, 1, false},
		{"four byte", []byte("\U0001F600"), 4, 1, false},
		{"combining mark counts separately", []byte("é"), 3, 2, false},
		{"overlong two byte", []byte{0xC0, 0x80}, 0, 0, true},
		{"overlong three byte", []byte{0xE0, 0x80, 0xAF}, 0, 0, true},
		{"encoded surrogate", []byte{0xED, 0xA0, 0x80}, 0, 0, true},
		{"beyond max scalar", []byte{0xF4, 0x90, 0x80, 0x80}, 0, 0, true},
		{"truncated sequence", []byte{0xE2, 0x82}, 0, 0, true},
		{"stray continuation", []byte{0x80}, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ValidateUTF8(tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if errors.CodeOf(err) != errors.CodeContent {
					t.Errorf("code = %q, want %q", errors.CodeOf(err), errors.CodeContent)
				}
				return
			}
			if n.Units != tt.units || n.Symbols != tt.symbols {
				t.Errorf("counts = %+v, want {%d %d}", n, tt.units, tt.symbols)
			}
		})
	}
}

func TestValidateUTF16(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		endian  textbuf.Endianness
		units   int
		symbols int
		wantErr bool
	}{
		{"empty", nil, textbuf.EndianLittle, 0, 0, false},
		{"bmp little", u16le('a', 0x20AC), textbuf.EndianLittle, 2, 2, false},
		{"bmp big", u16be('a', 0x20AC), textbuf.EndianBig, 2, 2, false},
		{"surrogate pair is one symbol", u16le(0xD83D, 0xDE00), textbuf.EndianLittle, 2, 1, false},
		{"pair big endian", u16be(0xD83D, 0xDE00), textbuf.EndianBig, 2, 1, false},
		{"unpaired high at end", u16le('a', 0xD83D), textbuf.EndianLittle, 0, 0, true},
		{"high followed by non-low", u16le(0xD83D, 'a'), textbuf.EndianLittle, 0, 0, true},
		{"unpaired low", u16le(0xDE00), textbuf.EndianLittle, 0, 0, true},
		{"odd byte count", []byte{0x41}, textbuf.EndianLittle, 0, 0, true},
		{"reversed pair", u16le(0xDE00, 0xD83D), textbuf.EndianLittle, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ValidateUTF16(tt.data, tt.endian)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && (n.Units != tt.units || n.Symbols != tt.symbols) {
				t.Errorf("counts = %+v, want {%d %d}", n, tt.units, tt.symbols)
			}
		})
	}
}

func TestValidateUTF32(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		endian  textbuf.Endianness
		wantErr bool
	}{
		{"scalars", u32le('a', 0x1F600), textbuf.EndianLittle, false},
		{"max scalar", u32le(0x10FFFF), textbuf.EndianLittle, false},
		{"beyond max", u32le(0x110000), textbuf.EndianLittle, true},
		{"surrogate value", u32le(0xD800), textbuf.EndianLittle, true},
		{"ragged length", []byte{0, 0, 0}, textbuf.EndianLittle, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateUTF32(tt.data, tt.endian)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateWide(t *testing.T) {
	host := textbuf.HostEndianness()

	pair := make([]byte, 4)
	PutUTF16(pair, 0x1F600, host)
	if n, err := ValidateWide(pair, 2); err != nil || n.Symbols != 1 || n.Units != 2 {
		t.Errorf("width 2: counts %+v err %v", n, err)
	}

	quad := make([]byte, 4)
	PutUTF32(quad, 0x1F600, host)
	if n, err := ValidateWide(quad, 4); err != nil || n.Symbols != 1 || n.Units != 1 {
		t.Errorf("width 4: counts %+v err %v", n, err)
	}

	_, err := ValidateWide(pair, 3)
	if !xerrors.Is(err, &errors.Error{Code: errors.CodeWideWidth}) {
		t.Errorf("width 3: err = %v, want wide-width error", err)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	const text = "a€é\U0001F600"
	want := []rune(text)

	utf8Runes := DecodeUTF8(nil, []byte(text))
	if string(utf8Runes) != text {
		t.Errorf("DecodeUTF8 = %q", string(utf8Runes))
	}

	// Re-encode as UTF-16 both orders and decode back.
	for _, endian := range []textbuf.Endianness{textbuf.EndianLittle, textbuf.EndianBig} {
		var enc []byte
		for _, r := range want {
			buf := make([]byte, 4)
			enc = append(enc, buf[:PutUTF16(buf, r, endian)]...)
		}
		got := DecodeUTF16(nil, enc, endian)
		if string(got) != text {
			t.Errorf("UTF-16 %v round trip = %q", endian, string(got))
		}
	}

	// Same through UTF-32.
	var enc32 []byte
	for _, r := range want {
		buf := make([]byte, 4)
		enc32 = append(enc32, buf[:PutUTF32(buf, r, textbuf.EndianBig)]...)
	}
	if got := DecodeUTF32(nil, enc32, textbuf.EndianBig); string(got) != text {
		t.Errorf("UTF-32 round trip = %q", string(got))
	}
}

func TestSymbolIndex(t *testing.T) {
	// "a", euro sign, emoji: symbol boundaries at bytes 0,1,4 in UTF-8
	// and at units 0,1,2 in UTF-16 (emoji is a pair).
	utf8Data := []byte("a€\U0001F600")
	for sym, want := range []int{0, 1, 4, 8} {
		if got := SymbolIndexUTF8(utf8Data, sym); got != want {
			t.Errorf("SymbolIndexUTF8(%d) = %d, want %d", sym, got, want)
		}
	}

	utf16Data := u16le('a', 0x20AC, 0xD83D, 0xDE00)
	for sym, want := range []int{0, 1, 2, 4} {
		if got := SymbolIndexUTF16(utf16Data, textbuf.EndianLittle, sym); got != want {
			t.Errorf("SymbolIndexUTF16(%d) = %d, want %d", sym, got, want)
		}
	}
}

func TestScanTerminator(t *testing.T) {
	if got := ScanTerminator([]byte("abc\x00def"), 1); got != 3 {
		t.Errorf("width 1: %d, want 3", got)
	}
	if got := ScanTerminator([]byte("abc"), 1); got != 3 {
		t.Errorf("no terminator: %d, want 3", got)
	}
	// 'a' in UTF-16LE is 0x61 0x00; the zero byte must not terminate.
	if got := ScanTerminator(u16le('a', 'b', 0, 'c'), 2); got != 2 {
		t.Errorf("width 2: %d, want 2", got)
	}
	if got := ScanTerminator(u32le('a', 0, 'b'), 4); got != 1 {
		t.Errorf("width 4: %d, want 1", got)
	}
}

func TestDecodeANSI(t *testing.T) {
	// Identity mapping: bytes above 0x7F become the same code points.
	got := DecodeANSI(nil, []byte{0x41, 0xE9}, nil)
	if string(got) != "Aé" {
		t.Errorf("identity = %q", string(got))
	}

	// Windows-1252 maps 0x80 to the euro sign.
	got = DecodeANSI(nil, []byte{0x80}, charmap.Windows1252)
	if string(got) != "€" {
		t.Errorf("cp1252 = %q", string(got))
	}
}

func TestCanEncodeANSI(t *testing.T) {
	if !CanEncodeANSI('A') || !CanEncodeANSI(0xFF) {
		t.Error("bytes must be encodable")
	}
	if CanEncodeANSI(0x100) || CanEncodeANSI(-1) {
		t.Error("out-of-range runes must not be encodable")
	}
}

func BenchmarkValidateUTF8(b *testing.B) {
	data := []byte("Grüße, 世界! \U0001F600 mixed ascii tail for realism.")
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		if _, err := ValidateUTF8(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkValidateUTF16(b *testing.B) {
	var data []byte
	for _, r := range "Grüße, 世界! \U0001F600" {
		buf := make([]byte, 4)
		data = append(data, buf[:PutUTF16(buf, r, textbuf.EndianLittle)]...)
	}
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		if _, err := ValidateUTF16(data, textbuf.EndianLittle); err != nil {
			b.Fatal(err)
		}
	}
}
