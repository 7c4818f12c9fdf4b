package ring

// Poly is an ordered sequence of n coefficients in Z_q, index i
// carrying the X^i coefficient. Mirrors the teacher's Poly{Coeffs,
// Buff} split, minus the multi-modulus RNS limb dimension this scheme
// does not need: one modulus q, one flat coefficient slice.
//
// Each Poly is value-owned by whichever holder created it; arithmetic
// on a Ring always allocates and returns a new Poly rather than
// mutating an operand in place, so there is never aliasing between
// unrelated entities.
type Poly struct {
	Coeffs []uint64
	r      *Ring
}

// NewPoly returns a zero polynomial belonging to r.
func (r *Ring) NewPoly() *Poly {
	return &Poly{Coeffs: make([]uint64, r.N), r: r}
}

// FromCoeffs builds a Poly from exactly n coefficients, each reduced
// into [0, q). Panics if len(coeffs) != n.
func (r *Ring) FromCoeffs(coeffs []uint64) *Poly {
	if len(coeffs) != r.N {
		panic("ring.FromCoeffs: wrong coefficient count")
	}
	out := r.NewPoly()
	for i, c := range coeffs {
		out.Coeffs[i] = c % r.Q
	}
	return out
}

// Ring returns the Ring that owns p, so callers holding only a Poly can
// recover its modulus and degree.
func (p *Poly) Ring() *Ring {
	return p.r
}

// CopyNew returns a deep copy of p.
func (p *Poly) CopyNew() *Poly {
	out := &Poly{Coeffs: make([]uint64, len(p.Coeffs)), r: p.r}
	copy(out.Coeffs, p.Coeffs)
	return out
}

// Zero sets every coefficient of p to 0.
func (p *Poly) Zero() {
	for i := range p.Coeffs {
		p.Coeffs[i] = 0
	}
}

// Zeroize overwrites p's coefficients and detaches it from its ring, so
// that a secret polynomial does not linger in memory after its holder
// is done with it. Required by spec.md §3 and §5 for secret
// polynomials and level vectors.
func (p *Poly) Zeroize() {
	for i := range p.Coeffs {
		p.Coeffs[i] = 0
	}
	p.r = nil
}
