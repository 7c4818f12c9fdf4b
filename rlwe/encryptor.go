package rlwe

import (
	"github.com/remytuyeras/aces/channel"
	"github.com/remytuyeras/aces/prng"
	"github.com/remytuyeras/aces/ring"
)

// Encryptor turns plaintexts into fresh ciphertexts against a
// channel's public view. It holds only public material and an
// injected randomness source, exactly the teacher's encryptorBase
// shape (params + prng + samplers, no secret key).
type Encryptor struct {
	view channel.PublicView
	src  prng.Source
}

// NewEncryptor builds an Encryptor bound to the given public view and
// randomness source.
func NewEncryptor(view channel.PublicView, src prng.Source) *Encryptor {
	return &Encryptor{view: view, src: src}
}

// Encrypt implements spec.md §4.3: it draws b and r_m, forms
// c = f0·b and c′ = r_m + bᵀ·f1, and returns the resulting ciphertext
// together with the level vector recording β_i per component.
func (e *Encryptor) Encrypt(m uint64) (*Ciphertext, Level) {
	view := e.view
	r := view.Ring

	b := make([]*ring.Poly, view.Width)
	k := make(Level, view.Width)
	for i := 0; i < view.Width; i++ {
		beta := e.src.Uint64Below(view.P + 1)
		b[i] = r.SampleWithEval(e.src, beta)
		k[i] = beta
	}

	rm := r.SampleWithEval(e.src, m%view.P)

	c := make([]*ring.Poly, view.Deg)
	for i := 0; i < view.Deg; i++ {
		acc := r.NewPoly()
		for j := 0; j < view.Width; j++ {
			acc = r.Add(acc, r.Mul(view.F0[i][j], b[j]))
		}
		c[i] = acc
	}

	cprime := rm
	for j := 0; j < view.Width; j++ {
		cprime = r.Add(cprime, r.Mul(b[j], view.F1[j]))
	}

	uplvl := uint64(0)
	for i := range view.LvlE {
		uplvl += view.LvlE[i] * (view.P + 1)
	}

	return &Ciphertext{C: c, Cprime: cprime, UpLvl: uplvl}, k
}
