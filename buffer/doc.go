// Package buffer implements the string containers the textbuf library
// is built around: growable buffers of ANSI bytes, UTF-8, UTF-16,
// UTF-32, or platform wide characters, with validated insertion and
// conversion between kinds.
//
// # Containers
//
// A Container tracks three figures: capacity (units its store can
// hold, including the reserved terminator slot), size (units in use),
// and length (symbols; a UTF-16 surrogate pair is one symbol). The
// store either lives on the heap and grows on demand, starts as an
// embedded region that migrates to the heap when outgrown, or is
// caller memory bound by AttachData, in which case it never grows.
//
// # Insertion
//
// The Insert* methods accept raw encoded units, validate them fully
// before touching the container, and convert them to the container's
// own kind. InsertString takes another container as the source and
// skips validation, since container content is validated on the way
// in. Insertion is atomic: it either applies completely or leaves the
// container unchanged.
//
// Each insert method has an Async variant returning an InsertTask, a
// handle that can be polled, waited on, or cooperatively cancelled. A
// cancelled insertion leaves a consistent prefix of the new content in
// place. The container must not be touched while a task is running.
//
// # Errors
//
// Methods return structured *errors.Error values. Independently, every
// operation records an advisory code readable through LastError; some
// benign conditions, like an empty source or an out-of-range insert
// position, record an advisory code while returning nil.
//
// All operations fail until the library gate is opened with gate.Init.
package buffer
