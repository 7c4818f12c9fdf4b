// Package ring implements the ground arithmetic of aces: polynomials
// with coefficients in Z_q, reduced modulo a degree-n monic polynomial
// u with u(1) ≡ 0 (mod q). It is the truncated-polynomial analogue of
// the teacher's RNS ring package, specialized to a single modulus
// instead of a tower of NTT-friendly primes, since this scheme has no
// NTT: u is an arbitrary monic polynomial, not a cyclotomic one.
package ring

import (
	"math/big"

	"github.com/remytuyeras/aces/aceserr"
)

// Ring carries the parameters every arithmetic operation is performed
// against: the coefficient modulus Q and the reduction polynomial U.
// U holds the n coefficients of degree 0..n-1 of u; the degree-n
// leading coefficient is implicitly 1 (u is monic), matching the
// teacher's convention of keeping a Ring's moduli/structure separate
// from the Poly values it operates on.
type Ring struct {
	N int
	Q uint64
	U []uint64 // len N, coefficients of u at degrees 0..N-1
}

// New builds a Ring for the given modulus, degree and reduction
// polynomial coefficients. U must have exactly n entries and satisfy
// u(1) ≡ 0 (mod q); New panics if not, since a malformed reduction
// polynomial is always a construction bug in the caller (channel.New
// is the only caller and it is responsible for building a valid u).
func New(q uint64, n int, u []uint64) *Ring {
	if len(u) != n {
		aceserr.Panicf("ring.New: len(u)=%d does not match n=%d", len(u), n)
	}
	sum := uint64(0)
	for _, c := range u {
		sum = addMod(sum, c, q)
	}
	// u(1) = sum(U) + 1 (leading monomial contributes 1 at X=1).
	if addMod(sum, 1, q) != 0 {
		aceserr.Panicf("ring.New: u(1) = %d, want 0 mod q=%d", addMod(sum, 1, q), q)
	}
	uu := make([]uint64, n)
	copy(uu, u)
	return &Ring{N: n, Q: q, U: uu}
}

func (r *Ring) checkOwn(p *Poly) {
	if p.r != r {
		aceserr.Panicf("ring: polynomial does not belong to this ring")
	}
}

func addMod(a, b, q uint64) uint64 {
	s := a + b
	if s >= q || s < a { // s < a catches the (here unreachable for q<2^63) wraparound case
		s -= q
	}
	return s
}

func subMod(a, b, q uint64) uint64 {
	if a >= b {
		return a - b
	}
	return q - (b - a)
}

// mulMod computes a*b mod q using arbitrary-precision arithmetic, per
// spec.md §4.1's "overflow in intermediate products MUST be avoided by
// using wide integers": q is a general modulus here, not a fixed-width
// NTT-friendly prime the way the teacher's Barrett/Montgomery reducers
// assume, so a generic big.Int reduction is the correct tool rather
// than reimplementing Barrett reduction for an arbitrary modulus.
func mulMod(a, b, q uint64) uint64 {
	var x, y, m, out big.Int
	x.SetUint64(a)
	y.SetUint64(b)
	m.SetUint64(q)
	out.Mul(&x, &y)
	out.Mod(&out, &m)
	return out.Uint64()
}

// Add returns a+b with coefficients reduced mod q.
func (r *Ring) Add(a, b *Poly) *Poly {
	r.checkOwn(a)
	r.checkOwn(b)
	out := r.NewPoly()
	for i := 0; i < r.N; i++ {
		out.Coeffs[i] = addMod(a.Coeffs[i], b.Coeffs[i], r.Q)
	}
	return out
}

// Sub returns a-b with coefficients normalized into [0, q).
func (r *Ring) Sub(a, b *Poly) *Poly {
	r.checkOwn(a)
	r.checkOwn(b)
	out := r.NewPoly()
	for i := 0; i < r.N; i++ {
		out.Coeffs[i] = subMod(a.Coeffs[i], b.Coeffs[i], r.Q)
	}
	return out
}

// Neg returns -a with coefficients normalized into [0, q).
func (r *Ring) Neg(a *Poly) *Poly {
	r.checkOwn(a)
	out := r.NewPoly()
	for i := 0; i < r.N; i++ {
		out.Coeffs[i] = subMod(0, a.Coeffs[i], r.Q)
	}
	return out
}

// Scale returns k*a with coefficients reduced mod q.
func (r *Ring) Scale(k uint64, a *Poly) *Poly {
	r.checkOwn(a)
	out := r.NewPoly()
	k %= r.Q
	for i := 0; i < r.N; i++ {
		out.Coeffs[i] = mulMod(k, a.Coeffs[i], r.Q)
	}
	return out
}

// mulUnreduced returns the length-(2n-1) schoolbook product of a and b,
// coefficient arithmetic performed in Z_q. Mul reduces it immediately;
// MulUnreduced exposes it unreduced for callers that want to apply
// Reduce themselves.
func (r *Ring) mulUnreduced(a, b *Poly) []uint64 {
	r.checkOwn(a)
	r.checkOwn(b)
	out := make([]uint64, 2*r.N-1)
	for i := 0; i < r.N; i++ {
		if a.Coeffs[i] == 0 {
			continue
		}
		for j := 0; j < r.N; j++ {
			if b.Coeffs[j] == 0 {
				continue
			}
			out[i+j] = addMod(out[i+j], mulMod(a.Coeffs[i], b.Coeffs[j], r.Q), r.Q)
		}
	}
	return out
}

// MulUnreduced exposes the raw length-(2n-1) schoolbook product, before
// reduction by u. See Reduce.
func (r *Ring) MulUnreduced(a, b *Poly) []uint64 {
	return r.mulUnreduced(a, b)
}

// Reduce folds a length->=n coefficient vector (indexed by increasing
// power of X) down to a Poly of degree < n by repeated division by the
// monic reduction polynomial u: while the top coefficient t[d] at
// degree d >= n is nonzero, use x^n ≡ -(u - x^n) to rewrite
// t[d]*x^d as a correction to the coefficients at degrees d-n..d-1,
// then drop the top coefficient. Because u is monic this is always an
// exact operation with no remainder beyond degree n-1.
func (r *Ring) Reduce(t []uint64) *Poly {
	buf := make([]uint64, len(t))
	copy(buf, t)
	for d := len(buf) - 1; d >= r.N; d-- {
		lead := buf[d]
		if lead != 0 {
			for i := 0; i < r.N; i++ {
				// x^d = x^{d-n} * x^n ≡ -x^{d-n} * u(x) (dropping the
				// implicit leading 1 of u, already accounted for by d).
				buf[d-r.N+i] = subMod(buf[d-r.N+i], mulMod(lead, r.U[i], r.Q), r.Q)
			}
			buf[d] = 0
		}
	}
	out := r.NewPoly()
	copy(out.Coeffs, buf[:r.N])
	return out
}

// Mul returns reduce(mulUnreduced(a, b)).
func (r *Ring) Mul(a, b *Poly) *Poly {
	return r.Reduce(r.mulUnreduced(a, b))
}

// EvalAtOmega returns Σ a_i mod q, the evaluation of a at ω=1.
func (r *Ring) EvalAtOmega(a *Poly) uint64 {
	r.checkOwn(a)
	sum := uint64(0)
	for _, c := range a.Coeffs {
		sum = addMod(sum, c, r.Q)
	}
	return sum
}

// Equal reports whether a and b have identical coefficients.
func (r *Ring) Equal(a, b *Poly) bool {
	r.checkOwn(a)
	r.checkOwn(b)
	for i := range a.Coeffs {
		if a.Coeffs[i] != b.Coeffs[i] {
			return false
		}
	}
	return true
}
