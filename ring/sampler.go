package ring

import "github.com/remytuyeras/aces/prng"

// SampleUniform draws a polynomial with every coefficient independent
// and uniform over Z_q, generalizing the teacher's
// UniformSampler.Read from a per-RNS-limb rejection loop to this
// scheme's single modulus.
func (r *Ring) SampleUniform(src prng.Source) *Poly {
	out := r.NewPoly()
	for i := range out.Coeffs {
		out.Coeffs[i] = src.Uint64Below(r.Q)
	}
	return out
}

// SampleWithEval draws a polynomial whose coefficients are uniform
// subject to the constraint that it evaluates to `target` mod q at
// ω=1: n-1 coefficients are drawn freely at a uniformly chosen set of
// positions, and the coefficient at one remaining position is solved
// for so the sum matches `target`. This single routine implements the
// "draw random coefficients, pick a random position s, set the s-th
// coefficient so the total matches a target" pattern spec.md §4.2/§4.3
// repeats for each f0 entry, for e', for b_i, and for r_m. (u is built
// separately by channel's genReductionPoly, which always solves its
// last coefficient.)
func (r *Ring) SampleWithEval(src prng.Source, target uint64) *Poly {
	out := r.NewPoly()
	s := int(src.Uint64Below(uint64(r.N)))
	sum := uint64(0)
	for i := range out.Coeffs {
		if i == s {
			continue
		}
		out.Coeffs[i] = src.Uint64Below(r.Q)
		sum = addMod(sum, out.Coeffs[i], r.Q)
	}
	out.Coeffs[s] = subMod(target%r.Q, sum, r.Q)
	return out
}
