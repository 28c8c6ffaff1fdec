package buffer

import (
	"math"
	"testing"

	"github.com/wippyai/textbuf"
	"github.com/wippyai/textbuf/errors"
	"github.com/wippyai/textbuf/gate"
)

func TestNewContainers(t *testing.T) {
	tests := []struct {
		name   string
		make   func() *Container
		kind   textbuf.Kind
		width  int
		endian textbuf.Endianness
	}{
		{"ansi", func() *Container { return NewAnsi(8) }, textbuf.KindAnsi, 1, textbuf.EndianUndefined},
		{"utf8", func() *Container { return NewUTF8(8) }, textbuf.KindUTF8, 1, textbuf.EndianUndefined},
		{"utf16le", func() *Container { return NewUTF16(8, textbuf.EndianLittle) }, textbuf.KindUTF16, 2, textbuf.EndianLittle},
		{"utf16host", func() *Container { return NewUTF16(8, textbuf.EndianUndefined) }, textbuf.KindUTF16, 2, textbuf.HostEndianness()},
		{"utf32be", func() *Container { return NewUTF32(8, textbuf.EndianBig) }, textbuf.KindUTF32, 4, textbuf.EndianBig},
		{"wide2", func() *Container { return NewWide(8, 2) }, textbuf.KindWide, 2, textbuf.HostEndianness()},
		{"wide4", func() *Container { return NewWide(8, 4) }, textbuf.KindWide, 4, textbuf.HostEndianness()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.make()
			if c == nil {
				t.Fatal("constructor returned nil")
			}
			if c.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", c.Kind(), tt.kind)
			}
			if c.UnitWidth() != tt.width {
				t.Errorf("UnitWidth() = %d, want %d", c.UnitWidth(), tt.width)
			}
			if c.Endianness() != tt.endian {
				t.Errorf("Endianness() = %v, want %v", c.Endianness(), tt.endian)
			}
			if c.Size() != 0 || c.Length() != 0 {
				t.Errorf("new container not empty: size %d length %d", c.Size(), c.Length())
			}
			if c.Capacity() != 8 {
				t.Errorf("Capacity() = %d, want 8", c.Capacity())
			}
			if c.EmbedSize() != 8 {
				t.Errorf("EmbedSize() = %d, want 8", c.EmbedSize())
			}
			if got := c.Bytes(); len(got) != 0 {
				t.Errorf("Bytes() on empty container has %d bytes", len(got))
			}
		})
	}
}

func TestNewWithoutEmbed(t *testing.T) {
	c := NewUTF8(0)
	if c == nil {
		t.Fatal("NewUTF8(0) returned nil")
	}
	if c.Capacity() != 1 {
		t.Errorf("Capacity() = %d, want 1 (terminator slot)", c.Capacity())
	}
	if c.EmbedSize() != 0 {
		t.Errorf("EmbedSize() = %d, want 0", c.EmbedSize())
	}
}

func TestNewRejectsBadArguments(t *testing.T) {
	if c := NewWide(4, 3); c != nil {
		t.Error("NewWide accepted unit width 3")
	}
	if c := NewUTF16(4, textbuf.Endianness(99)); c != nil {
		t.Error("NewUTF16 accepted unknown endianness")
	}
}

func TestGateDown(t *testing.T) {
	gate.Uninit()
	defer func() {
		if !openGate() {
			t.Fatal("could not reopen gate")
		}
	}()

	if c := NewUTF8(4); c != nil {
		t.Error("NewUTF8 succeeded with the gate down")
	}
}

func TestGateDownMidLifetime(t *testing.T) {
	c := NewUTF8(8)
	if err := c.InsertUTF8(0, []byte("hi"), 2, false); err != nil {
		t.Fatalf("InsertUTF8: %v", err)
	}

	gate.Uninit()
	defer func() {
		if !openGate() {
			t.Fatal("could not reopen gate")
		}
	}()

	if got := c.Size(); got != math.MaxInt {
		t.Errorf("Size() with gate down = %d, want MaxInt", got)
	}
	if got := c.LastError(); got != errors.CodeNotInitialized {
		t.Errorf("LastError() with gate down = %v, want CodeNotInitialized", got)
	}
	err := c.InsertUTF8(0, []byte("x"), 1, false)
	if errors.CodeOf(err) != errors.CodeNotInitialized {
		t.Errorf("insert with gate down: %v", err)
	}
}

func TestReserve(t *testing.T) {
	c := NewUTF8(0)
	if err := c.InsertUTF8(0, []byte("ab"), 2, true); err != nil {
		t.Fatalf("InsertUTF8: %v", err)
	}

	if err := c.Reserve(64); err != nil {
		t.Fatalf("Reserve(64): %v", err)
	}
	if c.Capacity() < 64 {
		t.Errorf("Capacity() = %d after Reserve(64)", c.Capacity())
	}
	if c.String() != "ab" {
		t.Errorf("content lost on reserve: %q", c.String())
	}

	// Requesting no more than current capacity is a no-op with an
	// advisory code.
	if err := c.Reserve(10); err != nil {
		t.Fatalf("Reserve(10): %v", err)
	}
	if got := c.LastError(); got != errors.CodeCapacity {
		t.Errorf("LastError() = %v, want CodeCapacity advisory", got)
	}
}

func TestEmbedMigration(t *testing.T) {
	c := NewUTF8(4)
	if err := c.InsertUTF8(0, []byte("abc"), 3, false); err != nil {
		t.Fatalf("insert within embed: %v", err)
	}
	if c.Capacity() != 4 {
		t.Fatalf("Capacity() = %d, want 4 before migration", c.Capacity())
	}

	if err := c.InsertUTF8(textbuf.AppendPos, []byte("defgh"), 5, true); err != nil {
		t.Fatalf("growing insert: %v", err)
	}
	if c.Capacity() <= 4 {
		t.Errorf("Capacity() = %d, store did not migrate", c.Capacity())
	}
	if c.String() != "abcdefgh" {
		t.Errorf("String() = %q, want abcdefgh", c.String())
	}
	if c.EmbedSize() != 4 {
		t.Errorf("EmbedSize() = %d, embed region should survive migration", c.EmbedSize())
	}
}

func TestInPlace(t *testing.T) {
	area := make([]byte, recordSize+16)
	c, used := NewUTF8InPlace(area)
	if c == nil {
		t.Fatal("NewUTF8InPlace returned nil")
	}
	if used != recordSize {
		t.Errorf("used = %d, want %d", used, recordSize)
	}
	if c.Capacity() != 16 {
		t.Errorf("Capacity() = %d, want 16", c.Capacity())
	}
	if err := c.InsertUTF8(0, []byte("in place"), 8, false); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if string(area[recordSize:recordSize+8]) != "in place" {
		t.Error("content did not land in the caller's area")
	}

	small := make([]byte, recordSize-1)
	if c2, used2 := NewUTF8InPlace(small); c2 != nil || used2 != 0 {
		t.Error("in-place construction succeeded in an undersized area")
	}
}

func TestInPlaceWide(t *testing.T) {
	area := make([]byte, recordSize+20)
	c, _ := NewWideInPlace(area, 4)
	if c == nil {
		t.Fatal("NewWideInPlace returned nil")
	}
	if c.Capacity() != 5 {
		t.Errorf("Capacity() = %d, want 5 units of width 4", c.Capacity())
	}
}

func TestDestroy(t *testing.T) {
	c := NewUTF8(4)
	c.Destroy()
	c.Destroy() // idempotent

	if got := c.Size(); got != math.MaxInt {
		t.Errorf("Size() after destroy = %d, want MaxInt", got)
	}
	if got := c.LastError(); got != errors.CodeNotInitialized {
		t.Errorf("LastError() after destroy = %v", got)
	}
	err := c.InsertUTF8(0, []byte("x"), 1, false)
	if errors.CodeOf(err) != errors.CodeNotInitialized {
		t.Errorf("insert after destroy: %v", err)
	}
}

func TestClear(t *testing.T) {
	c := NewUTF16(8, textbuf.EndianLittle)
	if err := c.InsertUTF8(0, []byte("hi"), 2, false); err != nil {
		t.Fatalf("insert: %v", err)
	}
	c.Clear()
	if c.Size() != 0 || c.Length() != 0 {
		t.Errorf("Clear left size %d length %d", c.Size(), c.Length())
	}
	if c.Capacity() != 8 {
		t.Errorf("Clear changed capacity to %d", c.Capacity())
	}
}

func TestNilContainer(t *testing.T) {
	var c *Container
	if got := c.Size(); got != math.MaxInt {
		t.Errorf("nil Size() = %d, want MaxInt", got)
	}
	if got := c.LastError(); got != errors.CodeNotInitialized {
		t.Errorf("nil LastError() = %v", got)
	}
	err := c.InsertUTF8(0, []byte("x"), 1, false)
	if errors.CodeOf(err) != errors.CodeData {
		t.Errorf("nil insert error = %v", err)
	}
	c.Destroy() // must not panic
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		c    *Container
		in   string
	}{
		{"utf8", NewUTF8(0), "héllo, wörld"},
		{"utf16", NewUTF16(0, textbuf.EndianBig), "héllo, 世界"},
		{"utf32", NewUTF32(0, textbuf.EndianLittle), "emoji \U0001F600"},
		{"wide", NewWide(0, 2), "päir \U0001F680"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.c.InsertUTF8(0, []byte(tt.in), len(tt.in), true); err != nil {
				t.Fatalf("insert: %v", err)
			}
			if got := tt.c.String(); got != tt.in {
				t.Errorf("String() = %q, want %q", got, tt.in)
			}
		})
	}
}
