// Package errors provides structured error types for the textbuf library.
//
// Errors are categorized by Phase (where the error occurred) and Code
// (error category). The Code values double as the advisory codes a
// container records after every operation: some conditions, such as a
// zero-count insert, produce no error value but still leave an advisory
// code behind.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseInsert, errors.CodeContent).
//		Offset(12).
//		Detail("truncated UTF-8 sequence").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Capacity(errors.PhaseInsert, need, free)
//	err := errors.Content(errors.PhaseValidate, off, "unpaired surrogate")
//
// All errors implement the standard error interface and support
// errors.Is/As. CodeOf extracts the advisory code from any error.
package errors
