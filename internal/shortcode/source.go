package shortcode

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

// CryptoSource is a rand.Source backed by crypto/rand.
// It holds no state and is safe for concurrent use.
type CryptoSource struct{}

// Uint64 returns 64 bits read from crypto/rand.
func (CryptoSource) Uint64() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		// crypto/rand does not fail on supported platforms
		panic("crypto/rand failed: " + err.Error())
	}
	return binary.LittleEndian.Uint64(b[:])
}

// LockedSource serializes access to a wrapped source so that one seeded
// source can be shared by concurrent Generate calls.
type LockedSource struct {
	mu  sync.Mutex
	src rand.Source
}

// NewLockedSource wraps src.
func NewLockedSource(src rand.Source) *LockedSource {
	return &LockedSource{src: src}
}

// Uint64 returns the next value of the wrapped source.
func (s *LockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}
