package channel

import (
	"log/slog"

	"github.com/remytuyeras/aces/aceserr"
	"github.com/remytuyeras/aces/prng"
	"github.com/remytuyeras/aces/ring"
)

// maxKeygenRetries bounds how many times New redraws a secret key
// after a singular tensor basis before giving up. The basis formed by
// n uniformly random vectors in Z_q^n is invertible with overwhelming
// probability for any q used in practice, so this is a generous bound
// against a pathological run of draws, not a tuning knob.
const maxKeygenRetries = 8

// PublicView is the read-only, freely shareable portion of an
// ArithChannel: (p, q, n, N, u, f0, f1, tensor, lvl_e). It never
// carries the secret key x.
type PublicView struct {
	P      uint64
	Q      uint64
	Deg    int
	Width  int
	Ring   *ring.Ring
	U      []uint64
	F0     [][]*ring.Poly // Deg rows x Width columns
	F1     []*ring.Poly   // length Width
	Tensor *Tensor
	LvlE   []uint64 // length Width
}

// Channel is the full ArithChannel: a PublicView plus the privately
// held secret key. Only the holder that constructed it (or received it
// via Secret, which copies) ever sees x.
type Channel struct {
	view PublicView
	x    []*ring.Poly // secret, length Deg
	src  prng.Source
}

// New builds a fresh ArithChannel from validated parameters, executing
// the construction steps of spec.md §4.2. If q is prime, it is
// replaced by the nearest composite >= q and the substitution is
// logged, per §3's "MAY replace it with a nearby composite and report
// the change". If the sampled secret key yields a singular tensor
// basis, New retries with a fresh secret key up to maxKeygenRetries
// times before returning a GenerationError.
func New(p Params, src prng.Source) (*Channel, error) {
	if p.P0 == 0 {
		p.P0 = DefaultP0(p.P)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if prng.IsPrime(p.Q) {
		replacement := prng.NearbyComposite(p.Q)
		slog.Info("aces: channel q was prime, replaced with nearby composite",
			"q", p.Q, "replacement", replacement)
		p.Q = replacement
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	u := genReductionPoly(src, p.Q, p.Deg)
	r := ring.New(p.Q, p.Deg, u)

	var lastErr error
	for attempt := 0; attempt < maxKeygenRetries; attempt++ {
		x := sampleSecretKey(r, src)

		f0 := sampleF0(r, src, p.P, p.Width)
		e, lvlE := sampleErrorVector(r, src, p.P, p.Width, p.P0)
		f1 := computeF1(r, x, f0, e)

		tensor, err := solveTensor(r, x)
		if err != nil {
			lastErr = err
			slog.Warn("aces: tensor basis singular, retrying key generation", "attempt", attempt+1)
			continue
		}

		return &Channel{
			view: PublicView{
				P: p.P, Q: p.Q, Deg: p.Deg, Width: p.Width,
				Ring: r, U: append([]uint64(nil), u...),
				F0: f0, F1: f1, Tensor: tensor, LvlE: lvlE,
			},
			x:   x,
			src: src,
		}, nil
	}

	return nil, aceserr.NewGenerationError("no invertible secret-key basis found after %d attempts: %v", maxKeygenRetries, lastErr)
}

// Publish returns the channel's public view.
func (c *Channel) Publish() PublicView {
	return c.view
}

// Secret returns a defensive copy of the secret key, callable only by
// the holder of the Channel value itself (there is no accessor that
// reaches x through PublicView).
func (c *Channel) Secret() []*ring.Poly {
	out := make([]*ring.Poly, len(c.x))
	for i, xi := range c.x {
		out[i] = xi.CopyNew()
	}
	return out
}

// Close zeroizes the secret key. Callers that construct a Channel
// should defer Close once the secret is no longer needed.
func (c *Channel) Close() {
	for _, xi := range c.x {
		xi.Zeroize()
	}
	c.x = nil
}

func genReductionPoly(src prng.Source, q uint64, n int) []uint64 {
	u := make([]uint64, n)
	sum := uint64(0)
	for i := 0; i < n-1; i++ {
		u[i] = src.Uint64Below(q)
		sum = (sum + u[i]) % q
	}
	// Need sum(u) + 1 ≡ 0 (mod q): u[n-1] ≡ -(sum+1) (mod q).
	u[n-1] = (q - ((sum + 1) % q) + q) % q
	return u
}

func sampleSecretKey(r *ring.Ring, src prng.Source) []*ring.Poly {
	x := make([]*ring.Poly, r.N)
	for i := range x {
		x[i] = r.SampleUniform(src)
	}
	return x
}

// sampleF0 draws the Deg x Width matrix of public polynomials whose
// evaluation at ω is always a multiple of p (spec.md §4.2 step 4): for
// each entry, draw a small multiplier k in [0, p) and build a
// polynomial that evaluates to p*k, which stays below p^2 < q.
func sampleF0(r *ring.Ring, src prng.Source, p uint64, width int) [][]*ring.Poly {
	f0 := make([][]*ring.Poly, r.N)
	for i := range f0 {
		f0[i] = make([]*ring.Poly, width)
		for j := range f0[i] {
			k := src.Uint64Below(p)
			target := (p * k) % r.Q
			f0[i][j] = r.SampleWithEval(src, target)
		}
	}
	return f0
}

// sampleErrorVector draws e' (spec.md §4.2 step 5): for each component
// i, δ_i is 1 with probability (1-P0), and the polynomial is built to
// evaluate to p*δ_i mod q. lvlE[i] records the deterministic level
// contribution δ_i*p.
func sampleErrorVector(r *ring.Ring, src prng.Source, p uint64, width int, p0 float64) ([]*ring.Poly, []uint64) {
	e := make([]*ring.Poly, width)
	lvlE := make([]uint64, width)
	for i := range e {
		delta := uint64(0)
		if !src.Bit(p0) {
			delta = 1
		}
		e[i] = r.SampleWithEval(src, (p*delta)%r.Q)
		lvlE[i] = delta * p
	}
	return e, lvlE
}

// computeF1 returns f1 = f0ᵀ·x + e' (spec.md §4.2 step 6): column j of
// f0 dotted with x, plus e'_j.
func computeF1(r *ring.Ring, x []*ring.Poly, f0 [][]*ring.Poly, e []*ring.Poly) []*ring.Poly {
	width := len(e)
	f1 := make([]*ring.Poly, width)
	for j := 0; j < width; j++ {
		acc := r.NewPoly()
		for i := range x {
			acc = r.Add(acc, r.Mul(f0[i][j], x[i]))
		}
		f1[j] = r.Add(acc, e[j])
	}
	return f1
}

// solveTensor computes λ such that x_i·x_j ≡ Σ_{k=1}^{n} λ^k x_k inside
// Z_q[X]_u for every pair 1<=i<=j<=n (spec.md §4.2 step 7). It builds
// the n×n basis matrix X whose columns are the coefficient vectors of
// x_1..x_n and inverts it once; every pairwise product is then a
// single matrix-vector multiply against X^-1. λ^0 (the coefficient of
// the implicit constant x_0=1, used only by algebra.Mult's c' update)
// is always 0: x_1..x_n generically already span Z_q^n on their own,
// so no contribution from a separate constant basis vector is needed —
// see DESIGN.md for this Open Question resolution. If X is singular
// mod q (some pivot column has no residue invertible mod q), solveTensor
// fails so the caller can resample x.
func solveTensor(r *ring.Ring, x []*ring.Poly) (*Tensor, error) {
	n := r.N
	basis := newMatQ(r.Q, n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			basis.rows[row][col] = x[col].Coeffs[row]
		}
	}

	basisInv, singular := basis.invert()
	if singular {
		return nil, aceserr.NewGenerationError("secret-key coefficient basis is singular mod q=%d", r.Q)
	}

	t := newTensor(n)
	for i := 1; i <= n; i++ {
		for j := i; j <= n; j++ {
			p := r.Mul(x[i-1], x[j-1])
			lambda := basisInv.mulVec(p.Coeffs)
			withConst := make([]uint64, n+1)
			copy(withConst[1:], lambda)
			t.set(i, j, withConst)
		}
	}
	return t, nil
}
