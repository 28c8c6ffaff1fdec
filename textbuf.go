package textbuf

import "encoding/binary"

// Kind identifies the unit kind a container stores or a source supplies.
type Kind uint8

const (
	KindAnsi  Kind = iota // one byte per unit, no validation
	KindUTF8              // one byte per unit, multi-unit sequences
	KindUTF16             // two bytes per unit, surrogate pairs
	KindUTF32             // four bytes per unit
	KindWide              // two or four bytes per unit, fixed per container
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAnsi:
		return "ansi"
	case KindUTF8:
		return "utf8"
	case KindUTF16:
		return "utf16"
	case KindUTF32:
		return "utf32"
	case KindWide:
		return "wide"
	default:
		return "unknown"
	}
}

// Endianness is the byte order of multi-byte code units.
type Endianness uint8

const (
	EndianUndefined Endianness = iota
	EndianLittle
	EndianBig
)

// String returns the endianness name.
func (e Endianness) String() string {
	switch e {
	case EndianLittle:
		return "little"
	case EndianBig:
		return "big"
	default:
		return "undefined"
	}
}

// Valid reports whether e is a concrete byte order.
func (e Endianness) Valid() bool {
	return e == EndianLittle || e == EndianBig
}

// ByteOrder returns the binary.ByteOrder for a concrete endianness.
// EndianUndefined maps to the host order.
func (e Endianness) ByteOrder() binary.ByteOrder {
	if e == EndianBig {
		return binary.BigEndian
	}
	if e == EndianLittle {
		return binary.LittleEndian
	}
	return HostEndianness().ByteOrder()
}

// HostEndianness returns the byte order of the running platform.
func HostEndianness() Endianness {
	var probe [2]byte
	binary.NativeEndian.PutUint16(probe[:], 0x0102)
	if probe[0] == 0x02 {
		return EndianLittle
	}
	return EndianBig
}

// AttachMode selects the invariant expected of caller memory at bind time.
type AttachMode uint8

const (
	// AttachZeroSize binds an empty region: a terminator unit must be
	// present at the attach offset, size is zero afterwards.
	AttachZeroSize AttachMode = iota

	// AttachSizeTerminator binds a full region ending in a terminator
	// unit: size is capacity minus one afterwards.
	AttachSizeTerminator

	// AttachSizeNoTerminator binds a full region with no terminator:
	// size equals capacity afterwards. Only UTF-32 and wide containers
	// accept this mode.
	AttachSizeNoTerminator
)

// String returns the attach mode name.
func (m AttachMode) String() string {
	switch m {
	case AttachZeroSize:
		return "zero-size"
	case AttachSizeTerminator:
		return "size-terminator"
	case AttachSizeNoTerminator:
		return "size-no-terminator"
	default:
		return "unknown"
	}
}

// AppendPos is the sentinel insert position meaning "after the last
// symbol". Inserting at a position equal to the container length is
// equivalent.
const AppendPos = -1
