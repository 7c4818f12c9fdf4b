// Package aces is a thin façade over the library's packages,
// re-exporting the constructors named in spec.md §6 so a caller can
// depend on a single import path for common use, exactly as the
// teacher's own root package re-exports its subpackages' constructors
// for library consumers who don't need the internal layering.
package aces

import (
	"github.com/remytuyeras/aces/algebra"
	"github.com/remytuyeras/aces/channel"
	"github.com/remytuyeras/aces/expr"
	"github.com/remytuyeras/aces/prng"
	"github.com/remytuyeras/aces/ring"
	"github.com/remytuyeras/aces/rlwe"
)

// Re-exported types, so callers need not import the subpackages
// directly for everyday use.
type (
	Channel     = channel.Channel
	Params      = channel.Params
	PublicView  = channel.PublicView
	Encryptor   = rlwe.Encryptor
	Decryptor   = rlwe.Decryptor
	Ciphertext  = rlwe.Ciphertext
	Level       = rlwe.Level
	Algebra     = algebra.Algebra
	Refresher   = algebra.Refresher
	Expression  = expr.Expression
)

// NewChannel builds an arithmetic channel from validated parameters
// and a randomness source, per spec.md §6's make_channel.
func NewChannel(params Params, src prng.Source) (*Channel, error) {
	return channel.New(params, src)
}

// NewEncryptor builds an Encryptor bound to a channel's public view,
// per spec.md §6's make_encryptor.
func NewEncryptor(view PublicView, src prng.Source) *Encryptor {
	return rlwe.NewEncryptor(view, src)
}

// NewDecryptor builds a Decryptor bound to a channel's public view and
// secret key, per spec.md §6's make_decryptor.
func NewDecryptor(view PublicView, secret []*ring.Poly) *Decryptor {
	return rlwe.NewDecryptor(view, secret)
}

// NewAlgebra builds an Algebra bound to a channel's public view, per
// spec.md §6's make_algebra.
func NewAlgebra(view PublicView) *Algebra {
	return algebra.New(view)
}

// NewRefresher builds a Refresher bound to a channel, per spec.md §6's
// make_refresher.
func NewRefresher(ch *Channel) *Refresher {
	return algebra.NewRefresher(ch)
}

// Compile parses an arithmetic expression into a reusable, domain-
// polymorphic Expression, per spec.md §6's compile.
func Compile(expression string) (*Expression, error) {
	return expr.Compile(expression)
}

// MustCompile is Compile, panicking on error.
func MustCompile(expression string) *Expression {
	return expr.MustCompile(expression)
}
