package buffer

import (
	"unsafe"

	"golang.org/x/text/encoding/charmap"

	"github.com/wippyai/textbuf"
	"github.com/wippyai/textbuf/codec"
	"github.com/wippyai/textbuf/errors"
)

// insertSpec is one pending insertion. Decoding is deferred so the same
// spec can run synchronously on the caller's goroutine or inside an
// async worker.
type insertSpec struct {
	leftPos int
	reserve bool
	// decode validates the source and produces its code points. A
	// non-empty advisory with nil runes and nil error is a benign no-op.
	decode func() ([]rune, errors.Code, *errors.Error)
	// overlap reports whether the source memory aliases the destination.
	overlap func() bool
}

// insertOutcome reports what an insertion actually applied.
type insertOutcome struct {
	Units   int
	Symbols int
}

// InsertAnsi inserts count ANSI bytes at the symbol position leftPos.
// Bytes are converted to the container's kind before insertion; they map
// 1:1 to code points (Latin-1). count == 0 means all of items up to a
// zero byte. leftPos may be AppendPos.
func (c *Container) InsertAnsi(leftPos int, items []byte, count int, reserve bool) error {
	return c.runSync(c.specAnsi(leftPos, items, count, nil, reserve))
}

// InsertAnsiCharmap is InsertAnsi decoding the bytes under a specific
// single-byte code page instead of the identity mapping.
func (c *Container) InsertAnsiCharmap(leftPos int, items []byte, count int, cm *charmap.Charmap, reserve bool) error {
	return c.runSync(c.specAnsi(leftPos, items, count, cm, reserve))
}

// InsertUTF8 inserts count UTF-8 bytes at the symbol position leftPos.
// The bytes are validated before anything is touched. count == 0 means
// all of items up to a zero byte.
func (c *Container) InsertUTF8(leftPos int, items []byte, count int, reserve bool) error {
	return c.runSync(c.specUTF8(leftPos, items, count, reserve))
}

// InsertUTF16 inserts count UTF-16 units given as bytes in the stated
// byte order. Surrogate pairs are validated and count as one symbol.
// count == 0 means all of items up to a zero unit.
func (c *Container) InsertUTF16(leftPos int, items []byte, count int, endian textbuf.Endianness, reserve bool) error {
	return c.runSync(c.specUTF16(leftPos, items, count, endian, reserve))
}

// InsertUTF32 inserts count UTF-32 units given as bytes in the stated
// byte order. count == 0 means all of items up to a zero unit.
func (c *Container) InsertUTF32(leftPos int, items []byte, count int, endian textbuf.Endianness, reserve bool) error {
	return c.runSync(c.specUTF32(leftPos, items, count, endian, reserve))
}

// InsertWide inserts count wide characters given as bytes in host order.
// wideWidth is the unit width of items (2 or 4 bytes), independent of
// the container's own width. count == 0 means all of items up to a zero
// unit.
func (c *Container) InsertWide(leftPos int, items []byte, count, wideWidth int, reserve bool) error {
	return c.runSync(c.specWide(leftPos, items, count, wideWidth, reserve))
}

// InsertString inserts the content of another container at the symbol
// position leftPos, converting between kinds as needed. The source is
// trusted and not re-validated, which makes this noticeably faster than
// the raw-unit forms. A nil or empty source is a benign no-op.
func (c *Container) InsertString(leftPos int, src *Container, reserve bool) error {
	return c.runSync(c.specString(leftPos, src, reserve))
}

func (c *Container) runSync(spec insertSpec) error {
	_, err := c.runInsert(spec, nil)
	return err
}

// Builders for pending insertions. Each captures the source untouched;
// screening and decoding happen when the operation runs.

func (c *Container) specAnsi(leftPos int, items []byte, count int, cm *charmap.Charmap, reserve bool) insertSpec {
	return insertSpec{
		leftPos: leftPos,
		reserve: reserve,
		overlap: func() bool { return c.overlapsStore(items) },
		decode: func() ([]rune, errors.Code, *errors.Error) {
			n, advisory, err := screenRaw(items, count, 1)
			if advisory != errors.CodeNone || err != nil {
				return nil, advisory, err
			}
			return codec.DecodeANSI(nil, items[:n], cm), errors.CodeNone, nil
		},
	}
}

func (c *Container) specUTF8(leftPos int, items []byte, count int, reserve bool) insertSpec {
	return insertSpec{
		leftPos: leftPos,
		reserve: reserve,
		overlap: func() bool { return c.overlapsStore(items) },
		decode: func() ([]rune, errors.Code, *errors.Error) {
			n, advisory, err := screenRaw(items, count, 1)
			if advisory != errors.CodeNone || err != nil {
				return nil, advisory, err
			}
			src := items[:n]
			if _, err := codec.ValidateUTF8(src); err != nil {
				return nil, errors.CodeNone, asInsertError(err)
			}
			return codec.DecodeUTF8(nil, src), errors.CodeNone, nil
		},
	}
}

func (c *Container) specUTF16(leftPos int, items []byte, count int, endian textbuf.Endianness, reserve bool) insertSpec {
	return insertSpec{
		leftPos: leftPos,
		reserve: reserve,
		overlap: func() bool { return c.overlapsStore(items) },
		decode: func() ([]rune, errors.Code, *errors.Error) {
			if !endian.Valid() {
				return nil, errors.CodeNone, errors.Endianness(errors.PhaseInsert, endian)
			}
			n, advisory, err := screenRaw(items, count, 2)
			if advisory != errors.CodeNone || err != nil {
				return nil, advisory, err
			}
			src := items[:n*2]
			if _, err := codec.ValidateUTF16(src, endian); err != nil {
				return nil, errors.CodeNone, asInsertError(err)
			}
			return codec.DecodeUTF16(nil, src, endian), errors.CodeNone, nil
		},
	}
}

func (c *Container) specUTF32(leftPos int, items []byte, count int, endian textbuf.Endianness, reserve bool) insertSpec {
	return insertSpec{
		leftPos: leftPos,
		reserve: reserve,
		overlap: func() bool { return c.overlapsStore(items) },
		decode: func() ([]rune, errors.Code, *errors.Error) {
			if !endian.Valid() {
				return nil, errors.CodeNone, errors.Endianness(errors.PhaseInsert, endian)
			}
			n, advisory, err := screenRaw(items, count, 4)
			if advisory != errors.CodeNone || err != nil {
				return nil, advisory, err
			}
			src := items[:n*4]
			if _, err := codec.ValidateUTF32(src, endian); err != nil {
				return nil, errors.CodeNone, asInsertError(err)
			}
			return codec.DecodeUTF32(nil, src, endian), errors.CodeNone, nil
		},
	}
}

func (c *Container) specWide(leftPos int, items []byte, count, wideWidth int, reserve bool) insertSpec {
	return insertSpec{
		leftPos: leftPos,
		reserve: reserve,
		overlap: func() bool { return c.overlapsStore(items) },
		decode: func() ([]rune, errors.Code, *errors.Error) {
			if !codec.ValidWideWidth(wideWidth) {
				return nil, errors.CodeNone, errors.WideWidth(errors.PhaseInsert, wideWidth)
			}
			n, advisory, err := screenRaw(items, count, wideWidth)
			if advisory != errors.CodeNone || err != nil {
				return nil, advisory, err
			}
			src := items[:n*wideWidth]
			if _, err := codec.ValidateWide(src, wideWidth); err != nil {
				return nil, errors.CodeNone, asInsertError(err)
			}
			return codec.DecodeWide(nil, src, wideWidth), errors.CodeNone, nil
		},
	}
}

func (c *Container) specString(leftPos int, src *Container, reserve bool) insertSpec {
	return insertSpec{
		leftPos: leftPos,
		reserve: reserve,
		overlap: func() bool {
			return src == c || (src != nil && c.overlapsStore(src.data))
		},
		decode: func() ([]rune, errors.Code, *errors.Error) {
			if src == nil || src.destroyed {
				return nil, errors.CodeSource, nil
			}
			if src.size == 0 {
				return nil, errors.CodeZeroCount, nil
			}
			return src.decodeSelf(make([]rune, 0, src.length)), errors.CodeNone, nil
		},
	}
}

// screenRaw applies the shared raw-source screening: nil items and an
// effective count of zero are benign no-ops, a count beyond the slice is
// an error. count == 0 scans for a terminator unit. The returned count
// is in units.
func screenRaw(items []byte, count, width int) (int, errors.Code, *errors.Error) {
	if items == nil {
		return 0, errors.CodeItems, nil
	}
	total := len(items) / width
	if count < 0 || count > total {
		return 0, errors.CodeNone, errors.New(errors.PhaseInsert, errors.CodeBigCount).
			Detail("count %d exceeds the %d units supplied", count, total).Build()
	}
	if count == 0 {
		count = codec.ScanTerminator(items, width)
	}
	if count == 0 {
		return 0, errors.CodeZeroCount, nil
	}
	return count, errors.CodeNone, nil
}

// runInsert is the insert engine. Everything before the commit is
// read-only; the commit shifts the tail once, writes the converted units
// symbol by symbol, then updates size, length and the terminator. The
// cancelled hook, when non-nil, is sampled before every symbol write;
// observing it mid-copy pulls the tail back so the container holds a
// consistent prefix of the insertion.
func (c *Container) runInsert(spec insertSpec, cancelled func() bool) (insertOutcome, error) {
	if c == nil {
		return insertOutcome{}, errors.New(errors.PhaseInsert, errors.CodeData).
			Detail("nil container").Build()
	}
	if !c.usable() {
		return insertOutcome{}, c.fail(errors.NotInitialized(errors.PhaseInsert))
	}
	if cancelled != nil && cancelled() {
		c.lastCode = errors.CodeCancelled
		return insertOutcome{}, errors.Cancelled(0, 0)
	}

	runes, advisory, derr := spec.decode()
	if derr != nil {
		return insertOutcome{}, c.fail(derr)
	}
	if advisory != errors.CodeNone {
		c.lastCode = advisory
		return insertOutcome{}, nil
	}

	pos := spec.leftPos
	if pos == textbuf.AppendPos {
		pos = c.length
	}
	if pos < 0 || pos > c.length {
		c.lastCode = errors.CodeBigLeft
		return insertOutcome{}, nil
	}

	if spec.overlap != nil && spec.overlap() {
		return insertOutcome{}, c.fail(errors.Overlap(errors.PhaseInsert))
	}

	need := 0
	for _, r := range runes {
		u, ok := c.unitsFor(r)
		if !ok {
			return insertOutcome{}, c.fail(errors.Content(errors.PhaseInsert, 0,
				"U+%04X is not representable in an %v container", r, c.kind))
		}
		need += u
	}

	free := c.capacity - c.size - 1
	if need > free {
		if !spec.reserve {
			return insertOutcome{}, c.fail(errors.Capacity(errors.PhaseInsert, need, free))
		}
		if c.own == ownAttached {
			return insertOutcome{}, c.fail(errors.Attached(errors.PhaseInsert))
		}
		if err := c.grow(c.size + need + 1); err != nil {
			return insertOutcome{}, c.fail(err)
		}
	}

	w := c.unitWidth
	unitPos := c.symbolUnit(pos)

	// Commit: open the gap, then fill it.
	copy(c.data[(unitPos+need)*w:(c.size+need)*w], c.data[unitPos*w:c.size*w])

	cursor := unitPos * w
	for i, r := range runes {
		if cancelled != nil && cancelled() {
			wrote := (cursor - unitPos*w) / w
			copy(c.data[cursor:], c.data[(unitPos+need)*w:(c.size+need)*w])
			c.size += wrote
			c.length += i
			c.writeTerminator()
			c.lastCode = errors.CodeCancelled
			return insertOutcome{Units: wrote, Symbols: i}, errors.Cancelled(wrote, i)
		}
		cursor += c.putRune(c.data[cursor:], r)
	}

	c.size += need
	c.length += len(runes)
	c.writeTerminator()
	c.lastCode = errors.CodeNone
	return insertOutcome{Units: need, Symbols: len(runes)}, nil
}

// overlapsStore reports whether b shares memory with the container's
// data store, live region and free tail alike.
func (c *Container) overlapsStore(b []byte) bool {
	return slicesOverlap(b, c.data[:c.capacity*c.unitWidth])
}

func slicesOverlap(a, b []byte) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	a0 := uintptr(unsafe.Pointer(&a[0]))
	b0 := uintptr(unsafe.Pointer(&b[0]))
	return a0 < b0+uintptr(len(b)) && b0 < a0+uintptr(len(a))
}

func asInsertError(err error) *errors.Error {
	if e, ok := err.(*errors.Error); ok {
		return errors.New(errors.PhaseInsert, e.Code).Offset(e.Offset).Detail("%s", e.Detail).Build()
	}
	return errors.New(errors.PhaseInsert, errors.CodeContent).Cause(err).Build()
}
