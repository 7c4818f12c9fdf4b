// Package rlwe implements encryption and decryption over an
// ArithChannel's public material: turning a plaintext in Z_p into a
// Ciphertext with a tracked noise bound, and recovering the plaintext
// from a Ciphertext and the channel's secret key. Grounded on the
// teacher's rlwe.Ciphertext{MetaData; Value []*ring.Poly} shape and its
// encryptor/decryptor struct-with-injected-PRNG pattern.
package rlwe

import "github.com/remytuyeras/aces/ring"

// Ciphertext is the pair (c, c′, uplvl) of spec.md §3: c is an n-vector
// of polynomials, c′ a single polynomial, and UpLvl a public upper
// bound on the ciphertext's current noise level.
type Ciphertext struct {
	C      []*ring.Poly
	Cprime *ring.Poly
	UpLvl  uint64
}

// Level is the secret N-vector of non-negative integers tracking, per
// error-vector component, how many times its contribution has
// accumulated into a ciphertext (spec.md §3's Level vector k). It is
// produced alongside a fresh Ciphertext and consumed only by the level
// sub-algebra (algebra.Algebra's AddLevel/MultLevel, expr.LevelDomain
// and algebra.Refresher); it must never be published.
type Level []uint64

// Zeroize overwrites the level vector's contents, matching the
// zeroize-on-destruction requirement for secret level data.
func (l Level) Zeroize() {
	for i := range l {
		l[i] = 0
	}
}

// Dot returns the dot product k·lvlE, the scalar level ℓ(k) of
// spec.md §3.
func (l Level) Dot(lvlE []uint64) uint64 {
	var sum uint64
	for i, k := range l {
		sum += k * lvlE[i]
	}
	return sum
}
