package rlwe

import (
	"github.com/remytuyeras/aces/aceserr"
	"github.com/remytuyeras/aces/channel"
	"github.com/remytuyeras/aces/ring"
)

// Decryptor recovers plaintexts from ciphertexts using a channel's
// secret key. Grounded on the teacher's decryptor{params, ringQ, pool,
// sk} struct, minus the RNS level bookkeeping this single-modulus
// scheme does not need.
type Decryptor struct {
	view channel.PublicView
	x    []*ring.Poly
}

// NewDecryptor builds a Decryptor bound to the given channel's public
// view and a copy of its secret key (as returned by Channel.Secret).
func NewDecryptor(view channel.PublicView, secret []*ring.Poly) *Decryptor {
	return &Decryptor{view: view, x: secret}
}

// Decrypt implements spec.md §4.4: it computes d = c′ − cᵀ·x, evaluates
// d at ω=1, and reduces mod p. If the ciphertext's public upper bound
// uplvl has grown past q/p, the plaintext is still returned but wrapped
// with an aceserr.DecryptWarning, per the "return a value plus a
// warning" propagation policy rather than refusing outright.
func (d *Decryptor) Decrypt(ct *Ciphertext) (uint64, error) {
	r := d.view.Ring

	acc := ct.Cprime.CopyNew()
	for i, ci := range ct.C {
		acc = r.Sub(acc, r.Mul(ci, d.x[i]))
	}

	v := r.EvalAtOmega(acc)
	m := v % d.view.P

	bound := float64(d.view.Q) / float64(d.view.P)
	if float64(ct.UpLvl) >= bound {
		return m, aceserr.NewDecryptWarning(ct.UpLvl, bound)
	}
	return m, nil
}
