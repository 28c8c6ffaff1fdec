package buffer

import (
	"go.uber.org/zap"

	"github.com/wippyai/textbuf"
	"github.com/wippyai/textbuf/codec"
	"github.com/wippyai/textbuf/errors"
)

// AttachData binds caller-owned memory as the container's data store.
// The previous owned store is released; attached memory is never grown
// or freed by the library.
//
// block is the caller's memory, capacity its usable extent in units
// (len(block) must cover it), and offsetFromStart the unit at which this
// container's data begins. mode selects the invariant checked at bind
// time:
//
//   - AttachZeroSize: a terminator unit must already be present at the
//     offset; the container is empty afterwards.
//   - AttachSizeTerminator: the last unit of the window must be a
//     terminator; everything before it becomes content.
//   - AttachSizeNoTerminator: the whole window becomes content, no
//     terminator expected. Only UTF-32 and wide containers accept this,
//     since their content is validated unit by unit either way.
//
// For UTF-16 and UTF-32 containers endian gives the byte order of the
// attached data and becomes the container's order; other kinds ignore
// it. Content implied by the mode is validated under the container's
// codec before anything is bound; on any failure the container is left
// exactly as it was.
func (c *Container) AttachData(block []byte, offsetFromStart, capacity int, mode textbuf.AttachMode, endian textbuf.Endianness) error {
	if c == nil {
		return errors.New(errors.PhaseAttach, errors.CodeData).Detail("nil container").Build()
	}
	if !c.usable() {
		return c.fail(errors.NotInitialized(errors.PhaseAttach))
	}
	if block == nil {
		return c.fail(errors.New(errors.PhaseAttach, errors.CodeData).
			Detail("nil data block").Build())
	}
	if capacity <= 0 || capacity > len(block)/c.unitWidth {
		return c.fail(errors.New(errors.PhaseAttach, errors.CodeData).
			Detail("capacity %d units outside block of %d bytes", capacity, len(block)).Build())
	}
	if offsetFromStart < 0 || offsetFromStart >= capacity {
		return c.fail(errors.New(errors.PhaseAttach, errors.CodeOffset).
			Detail("offset %d outside capacity %d", offsetFromStart, capacity).Build())
	}

	switch mode {
	case textbuf.AttachZeroSize, textbuf.AttachSizeTerminator:
	case textbuf.AttachSizeNoTerminator:
		if c.kind != textbuf.KindUTF32 && c.kind != textbuf.KindWide {
			return c.fail(errors.New(errors.PhaseAttach, errors.CodeAttachMode).
				Detail("%v containers require a terminator on attach", c.kind).Build())
		}
	default:
		return c.fail(errors.New(errors.PhaseAttach, errors.CodeAttachMode).
			Detail("unknown attach mode %d", mode).Build())
	}

	switch c.kind {
	case textbuf.KindUTF16, textbuf.KindUTF32:
		if !endian.Valid() {
			return c.fail(errors.Endianness(errors.PhaseAttach, endian))
		}
	default:
		endian = c.endian
	}

	w := c.unitWidth
	window := block[offsetFromStart*w : capacity*w]
	winUnits := capacity - offsetFromStart

	var size int
	var content []byte
	switch mode {
	case textbuf.AttachZeroSize:
		if codec.ScanTerminator(window[:w], w) != 0 {
			return c.fail(errors.New(errors.PhaseAttach, errors.CodeAttachTerminator).
				Detail("no terminator at attach offset %d", offsetFromStart).Build())
		}
		size = 0
	case textbuf.AttachSizeTerminator:
		if codec.ScanTerminator(window[(winUnits-1)*w:], w) != 0 {
			return c.fail(errors.New(errors.PhaseAttach, errors.CodeAttachTerminator).
				Detail("no terminator at end of attached window").Build())
		}
		size = winUnits - 1
		content = window[:size*w]
	case textbuf.AttachSizeNoTerminator:
		size = winUnits
		content = window
	}

	symbols := size // ANSI: byte per symbol
	if len(content) > 0 {
		counts, err := c.validateAttached(content, endian)
		if err != nil {
			return c.fail(errors.New(errors.PhaseAttach, errors.CodeContent).
				Cause(err).Detail("attached content rejected").Build())
		}
		symbols = counts.Symbols
	}

	c.data = window
	c.offset = offsetFromStart
	c.capacity = winUnits
	c.size = size
	c.length = symbols
	c.endian = endian
	c.own = ownAttached
	c.lastCode = errors.CodeNone

	Logger().Debug("data attached",
		zap.Stringer("kind", c.kind),
		zap.Stringer("mode", mode),
		zap.Int("capacity", winUnits),
		zap.Int("size", size))
	return nil
}

// validateAttached checks attached content under the container's codec.
// ANSI content needs no validation and reports a symbol per byte.
func (c *Container) validateAttached(content []byte, endian textbuf.Endianness) (codec.Counts, error) {
	switch c.kind {
	case textbuf.KindAnsi:
		return codec.Counts{Units: len(content), Symbols: len(content)}, nil
	case textbuf.KindUTF8:
		return codec.ValidateUTF8(content)
	case textbuf.KindUTF16:
		return codec.ValidateUTF16(content, endian)
	case textbuf.KindUTF32:
		return codec.ValidateUTF32(content, endian)
	default:
		return codec.ValidateWide(content, c.unitWidth)
	}
}
