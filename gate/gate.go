package gate

import (
	"encoding/binary"
	"hash/fnv"
	"sync"

	"go.uber.org/zap"
)

// StateSize is the number of bytes the gate needs for its internal state.
// Areas passed to InitArea must be at least this large.
const StateSize = 512

var (
	mu    sync.Mutex
	state []byte // nil while the gate is down
	ready bool
)

// Init initializes the library from four opaque credential hashes. It must
// be called before any container operation; every entry point of the
// library fails while the gate is down. Calling Init on an initialized
// gate is a no-op reporting the current usability.
func Init(firstNameHash, lastNameHash, emailHash, licenseHash []uint32) bool {
	return initState(firstNameHash, lastNameHash, emailHash, licenseHash, nil)
}

// InitArea is Init with a caller-provided memory area for the gate's
// internal state. The area must be at least StateSize bytes; the number
// of bytes actually used is returned.
func InitArea(firstNameHash, lastNameHash, emailHash, licenseHash []uint32, area []byte) (used int, ok bool) {
	if len(area) < StateSize {
		Logger().Debug("gate area too small",
			zap.Int("have", len(area)),
			zap.Int("need", StateSize))
		return 0, false
	}
	if !initState(firstNameHash, lastNameHash, emailHash, licenseHash, area[:StateSize]) {
		return 0, false
	}
	return StateSize, true
}

// Uninit tears the gate down and releases its internal state. Idempotent.
func Uninit() {
	mu.Lock()
	defer mu.Unlock()
	if ready {
		Logger().Debug("gate uninitialized")
	}
	state = nil
	ready = false
}

// Ready reports whether the library has been initialized and is usable.
func Ready() bool {
	mu.Lock()
	defer mu.Unlock()
	return ready
}

func initState(first, last, email, license []uint32, area []byte) bool {
	if len(first) == 0 || len(last) == 0 || len(email) == 0 || len(license) == 0 {
		Logger().Debug("gate rejected empty credential hash")
		return false
	}

	mu.Lock()
	defer mu.Unlock()
	if ready {
		return true
	}

	if area == nil {
		area = make([]byte, StateSize)
	}
	fillState(area, first, last, email, license)

	state = area
	ready = true
	Logger().Debug("gate initialized", zap.Int("state_bytes", len(area)))
	return true
}

// fillState derives the gate's state block from the credential material.
// The block layout is a digest followed by the folded hash words; the
// content is opaque to callers.
func fillState(dst []byte, hashes ...[]uint32) {
	h := fnv.New64a()
	var word [4]byte
	for _, hs := range hashes {
		for _, v := range hs {
			binary.LittleEndian.PutUint32(word[:], v)
			h.Write(word[:])
		}
	}
	digest := h.Sum64()

	for i := range dst {
		dst[i] = 0
	}
	binary.LittleEndian.PutUint64(dst, digest)
	off := 8
	for _, hs := range hashes {
		for _, v := range hs {
			if off+4 > len(dst) {
				return
			}
			binary.LittleEndian.PutUint32(dst[off:], v^uint32(digest))
			off += 4
		}
	}
}
