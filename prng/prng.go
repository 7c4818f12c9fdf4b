// Package prng is the thin seam between the aces core and its two
// external collaborators: a cryptographically strong uniform integer
// source, and a small-prime/compositeness oracle used when validating
// or repairing the cipher modulus q. It is grounded on the teacher's
// utils/sampling keyed-PRNG (itself backed by a keyed BLAKE3 XOF) and on
// ring/primes.go's role of supplying modulus-related number-theoretic
// helpers.
package prng

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/zeebo/blake3"
)

// Source is a cryptographically strong uniform integer source. It is
// injected into every constructor that needs randomness (channel
// construction, encryption), so tests can substitute a deterministic
// instance, matching the "random source is a dependency injected into
// constructors" design note.
type Source interface {
	// Uint64Below returns a uniformly distributed value in [0, bound).
	// Panics if bound is zero.
	Uint64Below(bound uint64) uint64
	// Bit returns true with probability p (0 <= p <= 1).
	Bit(p float64) bool
	// Bytes fills buf with uniformly distributed bytes.
	Bytes(buf []byte)
}

// blake3Source is a Source backed by a keyed BLAKE3 extendable-output
// stream, mirroring utils/sampling.KeyedPRNG: a 32-byte key seeds a
// digest that is read as an arbitrarily long deterministic byte stream.
type blake3Source struct {
	xof io.Reader
}

// New returns a Source seeded independently from the operating system's
// CSPRNG (crypto/rand), per the "seeded independently per process"
// requirement. It never exposes its internal key or stream position.
func New() (Source, error) {
	var key [32]byte
	if _, err := rand.Read(key[:]); err != nil {
		return nil, fmt.Errorf("prng: seeding from crypto/rand: %w", err)
	}
	return Deterministic(key[:])
}

// Deterministic returns a Source seeded from the given key, so that the
// same key reproduces the same stream of draws. Tests use this to
// substitute a fixed random source, the same way
// utils/sampling/prng_test.go seeds two KeyedPRNGs from an identical key
// and checks they agree.
func Deterministic(key []byte) (Source, error) {
	h, err := blake3.NewKeyed(pad32(key))
	if err != nil {
		return nil, fmt.Errorf("prng: keying blake3: %w", err)
	}
	return &blake3Source{xof: h.Digest()}, nil
}

func pad32(key []byte) []byte {
	if len(key) == 32 {
		return key
	}
	out := make([]byte, 32)
	h := blake3.Sum256(key)
	copy(out, h[:])
	return out
}

func (s *blake3Source) Bytes(buf []byte) {
	if _, err := io.ReadFull(s.xof, buf); err != nil {
		// The XOF stream never terminates; a failure here means the
		// underlying reader is broken, which is a programmer error.
		panic(fmt.Errorf("prng: reading from blake3 xof: %w", err))
	}
}

func (s *blake3Source) uint64() uint64 {
	var b [8]byte
	s.Bytes(b[:])
	return binary.BigEndian.Uint64(b[:])
}

// Uint64Below draws a uniform value in [0, bound) by rejection sampling,
// the same masked-rejection loop ring.UniformSampler.Read uses per
// modulus: draw candidates from the stream and discard any that would
// bias the result, retrying until one lands inside range.
func (s *blake3Source) Uint64Below(bound uint64) uint64 {
	if bound == 0 {
		panic("prng: Uint64Below called with bound 0")
	}
	if bound == 1 {
		return 0
	}
	limit := ^uint64(0) - (^uint64(0) % bound)
	for {
		v := s.uint64()
		if v < limit {
			return v % bound
		}
	}
}

// Bit returns true with probability p, used to draw the δ_i ∈ {0,1}
// bits that decide whether an error term contributes to the level.
func (s *blake3Source) Bit(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	const scale = uint64(1) << 53
	threshold := uint64(p * float64(scale))
	return s.Uint64Below(scale) < threshold
}
