package buffer

import (
	"math"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/textbuf"
	"github.com/wippyai/textbuf/codec"
	"github.com/wippyai/textbuf/errors"
	"github.com/wippyai/textbuf/gate"
)

// ownership says who is responsible for a container's data store.
// Destroy and Reserve switch on it: only library-owned stores may be
// freed or grown.
type ownership uint8

const (
	ownHeap     ownership = iota // library-owned heap store, grows freely
	ownEmbedded                  // fixed inline region, migrates to heap when outgrown
	ownAttached                  // caller memory, never grown or freed
)

// Container is one string buffer of a fixed unit kind. Capacity and size
// are counted in units (bytes for ANSI/UTF-8, code units otherwise),
// length in symbols. The zero value is not usable; use the New*
// constructors.
//
// A Container is not safe for concurrent use.
type Container struct {
	data      []byte // active window, unit 0 at data[0]
	embed     []byte // embedded region kept for reuse, nil if none
	kind      textbuf.Kind
	endian    textbuf.Endianness
	unitWidth int
	capacity  int // units, including the terminator slot where one is kept
	size      int // units in use
	length    int // symbols
	offset    int // unit offset into the attached block, 0 when owned
	own       ownership
	placed    bool // record constructed in caller memory, never freed
	destroyed bool
	lastCode  errors.Code
}

// recordSize is what an in-place constructor consumes of the caller's
// area before the remainder becomes the embedded store.
var recordSize = int(unsafe.Sizeof(Container{}))

// NewAnsi creates an empty ANSI byte container. embedSize units are
// preallocated as an embedded region when positive; otherwise the
// container starts with a single terminator slot.
// Returns nil while the library gate is down.
func NewAnsi(embedSize int) *Container {
	return newContainer(textbuf.KindAnsi, 1, textbuf.EndianUndefined, embedSize)
}

// NewUTF8 creates an empty UTF-8 container.
// Returns nil while the library gate is down.
func NewUTF8(embedSize int) *Container {
	return newContainer(textbuf.KindUTF8, 1, textbuf.EndianUndefined, embedSize)
}

// NewUTF16 creates an empty UTF-16 container storing units in the given
// byte order. EndianUndefined selects the host order.
// Returns nil while the library gate is down.
func NewUTF16(embedSize int, endian textbuf.Endianness) *Container {
	if endian == textbuf.EndianUndefined {
		endian = textbuf.HostEndianness()
	}
	if !endian.Valid() {
		return nil
	}
	return newContainer(textbuf.KindUTF16, 2, endian, embedSize)
}

// NewUTF32 creates an empty UTF-32 container storing units in the given
// byte order. EndianUndefined selects the host order.
// Returns nil while the library gate is down.
func NewUTF32(embedSize int, endian textbuf.Endianness) *Container {
	if endian == textbuf.EndianUndefined {
		endian = textbuf.HostEndianness()
	}
	if !endian.Valid() {
		return nil
	}
	return newContainer(textbuf.KindUTF32, 4, endian, embedSize)
}

// NewWide creates an empty wide-character container with units of
// unitWidth bytes (2 or 4), stored in host byte order. The width is
// fixed for the container's lifetime.
// Returns nil while the library gate is down or the width is invalid.
func NewWide(embedSize, unitWidth int) *Container {
	if !codec.ValidWideWidth(unitWidth) {
		return nil
	}
	return newContainer(textbuf.KindWide, unitWidth, textbuf.HostEndianness(), embedSize)
}

func newContainer(kind textbuf.Kind, width int, endian textbuf.Endianness, embedSize int) *Container {
	if !gate.Ready() {
		return nil
	}
	c := &Container{
		kind:      kind,
		endian:    endian,
		unitWidth: width,
	}
	if embedSize > 0 {
		c.embed = make([]byte, embedSize*width)
		c.data = c.embed
		c.capacity = embedSize
		c.own = ownEmbedded
	} else {
		c.data = make([]byte, width)
		c.capacity = 1
		c.own = ownHeap
	}
	c.writeTerminator()
	return c
}

// In-place constructors build the container record inside a caller-
// supplied area and report how many bytes of it were consumed, so the
// caller can verify the area was large enough. Area bytes beyond the
// record become the container's embedded store. Destroy never releases
// the area.

// NewAnsiInPlace creates an ANSI container inside area.
// Returns (nil, 0) if area is smaller than the container record.
func NewAnsiInPlace(area []byte) (*Container, int) {
	return newInPlace(textbuf.KindAnsi, 1, textbuf.EndianUndefined, area)
}

// NewUTF8InPlace creates a UTF-8 container inside area.
func NewUTF8InPlace(area []byte) (*Container, int) {
	return newInPlace(textbuf.KindUTF8, 1, textbuf.EndianUndefined, area)
}

// NewUTF16InPlace creates a UTF-16 container inside area.
func NewUTF16InPlace(area []byte, endian textbuf.Endianness) (*Container, int) {
	if endian == textbuf.EndianUndefined {
		endian = textbuf.HostEndianness()
	}
	if !endian.Valid() {
		return nil, 0
	}
	return newInPlace(textbuf.KindUTF16, 2, endian, area)
}

// NewUTF32InPlace creates a UTF-32 container inside area.
func NewUTF32InPlace(area []byte, endian textbuf.Endianness) (*Container, int) {
	if endian == textbuf.EndianUndefined {
		endian = textbuf.HostEndianness()
	}
	if !endian.Valid() {
		return nil, 0
	}
	return newInPlace(textbuf.KindUTF32, 4, endian, area)
}

// NewWideInPlace creates a wide-character container inside area.
func NewWideInPlace(area []byte, unitWidth int) (*Container, int) {
	if !codec.ValidWideWidth(unitWidth) {
		return nil, 0
	}
	return newInPlace(textbuf.KindWide, unitWidth, textbuf.HostEndianness(), area)
}

func newInPlace(kind textbuf.Kind, width int, endian textbuf.Endianness, area []byte) (*Container, int) {
	if !gate.Ready() || len(area) < recordSize {
		return nil, 0
	}
	c := &Container{
		kind:      kind,
		endian:    endian,
		unitWidth: width,
		placed:    true,
	}
	embedUnits := (len(area) - recordSize) / width
	if embedUnits > 0 {
		c.embed = area[recordSize : recordSize+embedUnits*width]
		c.data = c.embed
		c.capacity = embedUnits
		c.own = ownEmbedded
	} else {
		c.data = make([]byte, width)
		c.capacity = 1
		c.own = ownHeap
	}
	c.writeTerminator()
	return c, recordSize
}

// usable reports whether c may be operated on at all.
func (c *Container) usable() bool {
	return c != nil && !c.destroyed && gate.Ready()
}

// Destroy releases the container's owned data store. Attached memory and
// placement areas are left alone. Idempotent; the container is unusable
// afterwards.
func (c *Container) Destroy() {
	if !c.usable() {
		return
	}
	c.data = nil
	c.embed = nil
	c.size = 0
	c.length = 0
	c.capacity = 0
	c.destroyed = true
}

// Clear resets size and length to zero without releasing capacity.
func (c *Container) Clear() {
	if !c.usable() {
		return
	}
	c.size = 0
	c.length = 0
	c.writeTerminator()
	c.lastCode = errors.CodeNone
}

// Reserve grows the container's store to hold at least newCapacity
// units. Size and length do not change. Requesting no more than the
// current capacity succeeds without effect, recording CodeCapacity as
// the advisory code. Attached containers cannot grow.
func (c *Container) Reserve(newCapacity int) error {
	if c == nil {
		return errors.New(errors.PhaseReserve, errors.CodeData).Detail("nil container").Build()
	}
	if !c.usable() {
		return c.fail(errors.NotInitialized(errors.PhaseReserve))
	}
	if newCapacity <= c.capacity {
		c.lastCode = errors.CodeCapacity
		return nil
	}
	if c.own == ownAttached {
		return c.fail(errors.Attached(errors.PhaseReserve))
	}
	if err := c.grow(newCapacity); err != nil {
		return c.fail(err)
	}
	c.lastCode = errors.CodeNone
	return nil
}

// grow enlarges the owned store to at least minCapacity units,
// preserving content and terminator. Owned heap stores double so
// repeated appends amortize; embedded stores first use their full
// inline region, then migrate to the heap.
func (c *Container) grow(minCapacity int) *errors.Error {
	if c.own == ownEmbedded {
		embedUnits := len(c.embed) / c.unitWidth
		if minCapacity <= embedUnits {
			c.capacity = embedUnits
			return nil
		}
	}

	newCap := c.capacity * 2
	if newCap < minCapacity {
		newCap = minCapacity
	}
	if newCap > math.MaxInt/c.unitWidth {
		return errors.AllocationFailed(errors.PhaseReserve, minCapacity, c.unitWidth)
	}

	buf := make([]byte, newCap*c.unitWidth)
	copy(buf, c.data[:c.size*c.unitWidth])
	c.data = buf
	c.capacity = newCap
	if c.own == ownEmbedded {
		Logger().Debug("embedded store migrated to heap",
			zap.Stringer("kind", c.kind),
			zap.Int("capacity", newCap))
		c.own = ownHeap
	}
	c.writeTerminator()
	return nil
}

// writeTerminator zeroes the unit after the last used one, when a slot
// for it exists.
func (c *Container) writeTerminator() {
	if c.size >= c.capacity {
		return
	}
	off := c.size * c.unitWidth
	for i := 0; i < c.unitWidth; i++ {
		c.data[off+i] = 0
	}
}

// live returns the bytes of the units in use.
func (c *Container) live() []byte {
	return c.data[:c.size*c.unitWidth]
}

func (c *Container) fail(err *errors.Error) error {
	c.lastCode = err.Code
	return err
}

// Accessors. On a nil, destroyed, or gate-down container the numeric
// accessors return math.MaxInt and the rest return zero values, so a
// bad handle is loud rather than silently plausible.

// Capacity returns the total addressable units, including the reserved
// terminator slot.
func (c *Container) Capacity() int {
	if !c.usable() {
		return math.MaxInt
	}
	return c.capacity
}

// Size returns the units in use, excluding the terminator.
func (c *Container) Size() int {
	if !c.usable() {
		return math.MaxInt
	}
	return c.size
}

// Length returns the symbol count. A UTF-16 surrogate pair is one
// symbol.
func (c *Container) Length() int {
	if !c.usable() {
		return math.MaxInt
	}
	return c.length
}

// Endianness returns the byte order of stored units. ANSI and UTF-8
// containers report EndianUndefined.
func (c *Container) Endianness() textbuf.Endianness {
	if !c.usable() || c.unitWidth == 1 {
		return textbuf.EndianUndefined
	}
	return c.endian
}

// UnitWidth returns the bytes per stored unit.
func (c *Container) UnitWidth() int {
	if !c.usable() {
		return math.MaxInt
	}
	return c.unitWidth
}

// Kind returns the container's unit kind.
func (c *Container) Kind() textbuf.Kind {
	if !c.usable() {
		return textbuf.KindAnsi
	}
	return c.kind
}

// OffsetFromStart returns the unit offset into the attached block at
// which this container's data begins; zero for owned stores.
func (c *Container) OffsetFromStart() int {
	if !c.usable() {
		return math.MaxInt
	}
	return c.offset
}

// IsAttached reports whether the data store is caller memory.
func (c *Container) IsAttached() bool {
	return c.usable() && c.own == ownAttached
}

// EmbedSize returns the embedded region's size in units, zero if none.
func (c *Container) EmbedSize() int {
	if !c.usable() {
		return math.MaxInt
	}
	return len(c.embed) / c.unitWidth
}

// LastError returns the advisory code recorded by the most recent
// operation. It is sticky: successful operations overwrite it with
// CodeNone or with a benign advisory such as CodeZeroCount.
func (c *Container) LastError() errors.Code {
	if !c.usable() {
		return errors.CodeNotInitialized
	}
	return c.lastCode
}

// Bytes returns the raw bytes of the units in use. The slice aliases the
// container's store and must not be modified or held across mutations.
func (c *Container) Bytes() []byte {
	if !c.usable() {
		return nil
	}
	return c.live()
}

// String decodes the container's content to a Go string.
func (c *Container) String() string {
	if !c.usable() || c.size == 0 {
		return ""
	}
	return string(c.decodeSelf(make([]rune, 0, c.length)))
}

// decodeSelf appends the container's symbols to dst. Content is trusted:
// it was validated on the way in.
func (c *Container) decodeSelf(dst []rune) []rune {
	switch c.kind {
	case textbuf.KindAnsi:
		return codec.DecodeANSI(dst, c.live(), nil)
	case textbuf.KindUTF8:
		return codec.DecodeUTF8(dst, c.live())
	case textbuf.KindUTF16:
		return codec.DecodeUTF16(dst, c.live(), c.endian)
	case textbuf.KindUTF32:
		return codec.DecodeUTF32(dst, c.live(), c.endian)
	default:
		return codec.DecodeWide(dst, c.live(), c.unitWidth)
	}
}

// unitsFor returns how many units r will occupy in this container, or
// false when r cannot be represented in its kind.
func (c *Container) unitsFor(r rune) (int, bool) {
	switch c.kind {
	case textbuf.KindAnsi:
		if !codec.CanEncodeANSI(r) {
			return 0, false
		}
		return 1, true
	case textbuf.KindUTF8:
		return codec.UnitsUTF8(r), true
	case textbuf.KindUTF16:
		return codec.UnitsUTF16(r), true
	case textbuf.KindUTF32:
		return 1, true
	default:
		return codec.UnitsWide(r, c.unitWidth), true
	}
}

// putRune writes r at dst and returns the bytes written.
func (c *Container) putRune(dst []byte, r rune) int {
	switch c.kind {
	case textbuf.KindAnsi:
		dst[0] = byte(r)
		return 1
	case textbuf.KindUTF8:
		return codec.PutUTF8(dst, r)
	case textbuf.KindUTF16:
		return codec.PutUTF16(dst, r, c.endian)
	case textbuf.KindUTF32:
		return codec.PutUTF32(dst, r, c.endian)
	default:
		return codec.PutWide(dst, r, c.unitWidth)
	}
}

// symbolUnit maps a symbol position to its unit offset in the live data.
func (c *Container) symbolUnit(sym int) int {
	switch c.kind {
	case textbuf.KindAnsi, textbuf.KindUTF32:
		return sym
	case textbuf.KindUTF8:
		return codec.SymbolIndexUTF8(c.live(), sym)
	case textbuf.KindUTF16:
		return codec.SymbolIndexUTF16(c.live(), c.endian, sym)
	default:
		return codec.SymbolIndexWide(c.live(), c.unitWidth, sym)
	}
}
