// Package gate holds the process-wide initialization state of the textbuf
// library.
//
// The library must be initialized exactly once before any container is
// created or mutated. Initialization accepts four opaque credential
// hashes and reports a single usability flag; every library entry point
// checks the gate and fails hard while it is down.
//
//	if !gate.Init(first, last, email, license) {
//	    // library not usable
//	}
//	defer gate.Uninit()
//
// InitArea places the gate's internal state in caller-supplied memory
// instead of the heap; the area must be at least StateSize bytes.
package gate
