// Package algebra implements the homomorphic operations over
// ciphertexts produced by package rlwe: componentwise add, tensor-based
// mult, and level-bound refresh, plus the parallel level sub-algebra
// used to track the true (secret) noise level alongside a ciphertext's
// public uplvl bound. Grounded on the teacher's rlwe.Evaluator, which
// likewise holds only read-only references to public parameters and a
// relinearization/evaluation key; here the evaluation key is replaced
// by the dense secret-product tensor λ that spec.md §4.2/§4.5 define.
package algebra

import (
	"github.com/remytuyeras/aces/aceserr"
	"github.com/remytuyeras/aces/channel"
	"github.com/remytuyeras/aces/ring"
	"github.com/remytuyeras/aces/rlwe"
)

// Algebra holds read-only references to a channel's public material
// and exposes the ciphertext and level operations of spec.md §4.5.
type Algebra struct {
	view channel.PublicView
}

// New builds an Algebra bound to the given public view.
func New(view channel.PublicView) *Algebra {
	return &Algebra{view: view}
}

func (a *Algebra) checkDims(c1, c2 *rlwe.Ciphertext) {
	if len(c1.C) != a.view.Deg || len(c2.C) != a.view.Deg {
		aceserr.Panicf("algebra: ciphertext dimension does not match channel degree %d", a.view.Deg)
	}
}

// Add implements spec.md §4.5's add: componentwise polynomial addition
// mod u and mod q, with uplvl bounds summed. Commutative and
// associative because ring.Add is.
func (a *Algebra) Add(c1, c2 *rlwe.Ciphertext) *rlwe.Ciphertext {
	a.checkDims(c1, c2)
	r := a.view.Ring

	c3 := make([]*ring.Poly, a.view.Deg)
	for i := range c3 {
		c3[i] = r.Add(c1.C[i], c2.C[i])
	}
	return &rlwe.Ciphertext{
		C:      c3,
		Cprime: r.Add(c1.Cprime, c2.Cprime),
		UpLvl:  c1.UpLvl + c2.UpLvl,
	}
}

// Mult implements spec.md §4.5's mult: the tensor λ linearizes every
// cross term t_i·s_j = c1_i·c2_j back into the secret-key basis, so
// the product ciphertext's components are expressible purely in terms
// of public data (c1, c2, λ) without ever touching x. Level grows by a
// factor of p per the documented bilinear-form blow-up.
func (a *Algebra) Mult(c1, c2 *rlwe.Ciphertext) *rlwe.Ciphertext {
	a.checkDims(c1, c2)
	r := a.view.Ring
	n := a.view.Deg

	prod := make([][]*ring.Poly, n)
	for i := 0; i < n; i++ {
		prod[i] = make([]*ring.Poly, n)
		for j := 0; j < n; j++ {
			prod[i][j] = r.Mul(c1.C[i], c2.C[j])
		}
	}

	c3 := make([]*ring.Poly, n)
	for k := 1; k <= n; k++ {
		acc := r.Add(r.Mul(c1.C[k-1], c2.Cprime), r.Mul(c2.C[k-1], c1.Cprime))
		for i := 1; i <= n; i++ {
			for j := 1; j <= n; j++ {
				coeff := a.view.Tensor.At(i, j, k)
				if coeff == 0 {
					continue
				}
				acc = r.Sub(acc, r.Scale(coeff, prod[i-1][j-1]))
			}
		}
		c3[k-1] = acc
	}

	cprime := r.Mul(c1.Cprime, c2.Cprime)
	for i := 1; i <= n; i++ {
		for j := 1; j <= n; j++ {
			coeff := a.view.Tensor.At(i, j, 0)
			if coeff == 0 {
				continue
			}
			cprime = r.Sub(cprime, r.Scale(coeff, prod[i-1][j-1]))
		}
	}

	return &rlwe.Ciphertext{
		C:      c3,
		Cprime: cprime,
		UpLvl:  a.view.P * c1.UpLvl * c2.UpLvl,
	}
}

// refreshOverhead is the deterministic constant spec.md §4.5 step 3
// adds on top of the caller-supplied target level.
const refreshOverhead = 1

// Refresh implements spec.md §4.5's refresh. It never touches the
// secret key: decryption of an aces ciphertext depends only on the
// scalar evaluations eval(c_i) and eval(c′) (eval_at_omega is a ring
// homomorphism, so eval(c_i·x_i) = eval(c_i)·eval(x_i) regardless of
// c_i's internal coefficient representation), so the ciphertext's
// algebraic content never needs to change here — what changes is the
// *declared* uplvl bound. add/mult's uplvl formulas accumulate a
// conservative, compositional bound that grows far faster than the
// ciphertext's true level ℓ(k) (tracked separately, in parallel, by
// the level sub-algebra on secret-but-trackable Level vectors); Refresh
// lets a caller who has computed that tighter true bound via
// AddLevel/MultLevel (and Refresher.Process) certify it as the new
// public bound, after checking the public structural invariant every
// well-formed aces ciphertext satisfies: eval(c_i) ≡ 0 (mod p) for
// every component (a consequence of f0's zero-divisor-at-ω
// construction, preserved by both Add and Mult). A ciphertext that
// fails this check, or a target level that is not actually smaller
// than the ciphertext's current bound, surfaces as a RefreshError
// instead of silently returning a result with an untrustworthy bound.
func (a *Algebra) Refresh(ct *rlwe.Ciphertext, targetLevel uint64) (*rlwe.Ciphertext, error) {
	r := a.view.Ring

	for i, ci := range ct.C {
		if r.EvalAtOmega(ci)%a.view.P != 0 {
			return nil, aceserr.NewRefreshError(
				"component c[%d] does not vanish mod p; ciphertext is not in affine-decomposable form", i)
		}
	}

	newUpLvl := targetLevel + refreshOverhead
	if newUpLvl >= ct.UpLvl {
		return nil, aceserr.NewRefreshError(
			"target level %d (+%d overhead) is not smaller than current uplvl %d", targetLevel, refreshOverhead, ct.UpLvl)
	}

	c3 := make([]*ring.Poly, len(ct.C))
	for i, ci := range ct.C {
		c3[i] = ci.CopyNew()
	}
	return &rlwe.Ciphertext{
		C:      c3,
		Cprime: ct.Cprime.CopyNew(),
		UpLvl:  newUpLvl,
	}, nil
}

// AddLevel implements spec.md §4.5's addlvl: componentwise addition of
// level vectors, mirroring Add's structure in the level domain.
func (a *Algebra) AddLevel(k1, k2 rlwe.Level) rlwe.Level {
	if len(k1) != len(k2) {
		aceserr.Panicf("algebra: mismatched level vector lengths %d, %d", len(k1), len(k2))
	}
	out := make(rlwe.Level, len(k1))
	for i := range out {
		out[i] = k1[i] + k2[i]
	}
	return out
}

// MultLevel implements spec.md §4.5's multlvl: a documented,
// implementation-defined bound on the level blow-up a ciphertext
// multiplication causes, componentwise scaled by p to mirror Mult's
// p-factor blow-up.
func (a *Algebra) MultLevel(k1, k2 rlwe.Level) rlwe.Level {
	if len(k1) != len(k2) {
		aceserr.Panicf("algebra: mismatched level vector lengths %d, %d", len(k1), len(k2))
	}
	out := make(rlwe.Level, len(k1))
	for i := range out {
		out[i] = a.view.P * k1[i] * k2[i]
	}
	return out
}
