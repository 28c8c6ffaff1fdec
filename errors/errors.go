package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseCreate   Phase = "create"   // container construction
	PhaseAttach   Phase = "attach"   // binding caller memory
	PhaseReserve  Phase = "reserve"  // capacity growth
	PhaseInsert   Phase = "insert"   // insert engine
	PhaseValidate Phase = "validate" // codec validation
	PhaseDispatch Phase = "dispatch" // async dispatch
)

// Code categorizes the error. Codes double as the advisory codes a
// container records after every operation, including conditions that do
// not produce an error value at all (zero-count insert, out-of-range
// insert position).
type Code string

const (
	CodeNone             Code = "none"
	CodeData             Code = "invalid_data"        // nil or unusable data argument
	CodeCapacity         Code = "capacity"            // not enough free capacity
	CodeOffset           Code = "invalid_offset"      // attach offset out of range
	CodeZeroCount        Code = "zero_count"          // nothing to insert
	CodeBigCount         Code = "big_count"           // count exceeds the source
	CodeBigLeft          Code = "big_left"            // insert position beyond length
	CodeItems            Code = "invalid_items"       // nil items argument
	CodeSource           Code = "invalid_source"      // nil or empty source container
	CodeAttached         Code = "attached"            // attached memory cannot grow
	CodeAllocation       Code = "allocation"          // store allocation failed
	CodeContent          Code = "invalid_content"     // malformed encoded text
	CodeEndianness       Code = "invalid_endianness"  // not little or big
	CodeAttachMode       Code = "invalid_attach_mode" // mode not valid for the kind
	CodeAttachTerminator Code = "attach_terminator"   // expected terminator missing
	CodeWideWidth        Code = "invalid_wide_width"  // wide unit width not 2 or 4
	CodeOverlap          Code = "overlap"             // source aliases destination
	CodeDispatch         Code = "dispatch"            // async worker could not start
	CodeCancelled        Code = "cancelled"           // async insert cancelled
	CodeNotInitialized   Code = "not_initialized"     // library gate is down
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Code   Code
	Detail string
	Offset int // unit offset of the offending data, -1 if not applicable
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Code))

	if e.Offset >= 0 {
		fmt.Fprintf(&b, " at unit %d", e.Offset)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. Two errors match when
// their codes agree; a target with an empty phase matches any phase.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if t.Phase != "" && e.Phase != t.Phase {
			return false
		}
		return e.Code == t.Code
	}
	return false
}

// CodeOf extracts the advisory code carried by err. Errors produced
// outside this package report CodeNone.
func CodeOf(err error) Code {
	if err == nil {
		return CodeNone
	}
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return CodeNone
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, code Code) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Code:   code,
			Offset: -1,
		},
	}
}

// Offset sets the unit offset of the offending data
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Content creates an invalid-content error at a unit offset
func Content(phase Phase, offset int, detail string, args ...any) *Error {
	return New(phase, CodeContent).Offset(offset).Detail(detail, args...).Build()
}

// Capacity creates a not-enough-capacity error
func Capacity(phase Phase, need, free int) *Error {
	return New(phase, CodeCapacity).
		Detail("need %d units, %d free", need, free).
		Build()
}

// Attached creates an attached-cannot-grow error
func Attached(phase Phase) *Error {
	return New(phase, CodeAttached).
		Detail("attached memory cannot be grown").
		Build()
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, units, width int) *Error {
	return New(phase, CodeAllocation).
		Detail("failed to allocate %d units of %d bytes", units, width).
		Build()
}

// Endianness creates an invalid-endianness error
func Endianness(phase Phase, value any) *Error {
	return New(phase, CodeEndianness).
		Value(value).
		Detail("endianness must be little or big").
		Build()
}

// WideWidth creates an invalid wide-character width error
func WideWidth(phase Phase, width int) *Error {
	return New(phase, CodeWideWidth).
		Value(width).
		Detail("wide unit width must be 2 or 4 bytes, got %d", width).
		Build()
}

// Overlap creates a source-aliases-destination error
func Overlap(phase Phase) *Error {
	return New(phase, CodeOverlap).
		Detail("source memory overlaps destination buffer").
		Build()
}

// NotInitialized creates a gate-is-down error
func NotInitialized(phase Phase) *Error {
	return New(phase, CodeNotInitialized).
		Detail("library is not initialized").
		Build()
}

// Cancelled creates an async-cancelled error
func Cancelled(insertedUnits, insertedSymbols int) *Error {
	return New(PhaseDispatch, CodeCancelled).
		Detail("cancelled after %d units (%d symbols)", insertedUnits, insertedSymbols).
		Build()
}
