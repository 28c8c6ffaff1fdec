// Package textbuf provides multi-encoding string buffers with explicit
// capacity control.
//
// A buffer is a dynamically-sized contiguous container of encoded text in
// one of five unit kinds: ANSI bytes, UTF-8, UTF-16, UTF-32, or platform
// "wide" characters of 2 or 4 bytes. Every kind shares the same state
// machine (capacity, size, length, ownership) and the same operation set;
// text of any kind can be inserted into a container of any other kind,
// with validation and transcoding performed before the buffer is touched.
//
// # Architecture Overview
//
// The library is organized into focused packages:
//
//	textbuf/       Root package with shared scalar types
//	├── buffer/    Container state machine, insert engine, async dispatch
//	├── codec/     Pure validation and transcoding between unit kinds
//	├── gate/      Process-wide initialization gate
//	├── errors/    Structured error types with advisory codes
//	└── cmd/       Inspector CLI
//
// # Quick Start
//
// Initialize the library once, then create and fill containers:
//
//	if !gate.Init(first, last, email, license) {
//	    log.Fatal("library not usable")
//	}
//	defer gate.Uninit()
//
//	c := buffer.NewUTF8(0)
//	defer c.Destroy()
//
//	if err := c.InsertUTF8(0, []byte("grüße"), 0, true); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(c.Size(), c.Length()) // 6 5
//
// # Terminology
//
// Capacity counts addressable units including the reserved terminator
// slot. Size counts units in use, excluding the terminator. Length counts
// symbols: a UTF-16 surrogate pair is one symbol, combining marks are
// separate symbols.
//
// # Memory Ownership
//
// A container's data store is library-owned (heap or an embedded region),
// or attached caller memory. Attached memory is never grown, reallocated,
// or freed by the library; growth requests against an attached container
// fail instead.
//
// # Thread Safety
//
// Containers are not safe for concurrent use. While an asynchronous
// insertion is outstanding against a container, no other operation may
// touch it. Distinct containers share no state and may be used from
// different goroutines freely.
package textbuf
