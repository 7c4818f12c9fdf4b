// Package channel implements ArithChannel: validated scalar
// parameters, key generation (secret key, public matrix f0, public
// vector f1, the secret-product-linearizing tensor λ, and the level
// proxy lvl_e), and the public/private split over that material.
// Grounded on the teacher's rlwe.Parameters/NewEncryptor split between
// a freely shareable parameter object and a holder-only secret key.
package channel

import "github.com/remytuyeras/aces/aceserr"

// Params are the scalar parameters fixing an arithmetic channel.
//
//   - P: the vanishing (message) modulus, plaintext space Z_p.
//   - Q: the integer (cipher) modulus, arithmetic space Z_q.
//   - Deg: spec.md's "n" — degree of the reduction polynomial u, and
//     also the length of the secret-key vector x.
//   - Width: spec.md's "N" — number of columns of f0 and the length of
//     the per-ciphertext b vector.
//   - P0: probability that a given error term e'_i contributes zero to
//     the level (δ_i = 0). Zero value means "use the documented
//     default of 1/(p+1)".
type Params struct {
	P      uint64
	Q      uint64
	Deg    int
	Width  int
	P0     float64
}

// DefaultP0 returns the documented default δ_i=0 probability 1/(p+1).
func DefaultP0(p uint64) float64 {
	return 1 / float64(p+1)
}

// Validate checks the invariants spec.md §3 requires of channel
// parameters, independently of construction, so callers can validate
// before committing to key generation.
func (pr Params) Validate() error {
	if pr.P < 2 {
		return aceserr.NewParameterError("p=%d must be >= 2", pr.P)
	}
	if pr.Q < 2 {
		return aceserr.NewParameterError("q=%d must be >= 2", pr.Q)
	}
	if pr.Deg <= 4 {
		return aceserr.NewParameterError("n=%d must be > 4", pr.Deg)
	}
	if pr.Width < 1 {
		return aceserr.NewParameterError("N=%d must be >= 1", pr.Width)
	}
	if pr.P*pr.P >= pr.Q {
		return aceserr.NewParameterError("p^2=%d must be < q=%d", pr.P*pr.P, pr.Q)
	}
	if gcd(pr.P, pr.Q) != 1 {
		return aceserr.NewParameterError("gcd(p=%d, q=%d) must be 1", pr.P, pr.Q)
	}
	if pr.P0 < 0 || pr.P0 > 1 {
		return aceserr.NewParameterError("P0=%v must be in [0, 1]", pr.P0)
	}
	return nil
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
