package channel_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/remytuyeras/aces/aceserr"
	"github.com/remytuyeras/aces/channel"
	"github.com/remytuyeras/aces/prng"
)

func testParams() channel.Params {
	return channel.Params{P: 4, Q: 47601551, Deg: 5, Width: 10}
}

func mustSrc(t *testing.T, seed string) prng.Source {
	t.Helper()
	src, err := prng.Deterministic([]byte(seed))
	require.NoError(t, err)
	return src
}

func TestChannelInvariants(t *testing.T) {
	ch, err := channel.New(testParams(), mustSrc(t, "channel-invariants"))
	require.NoError(t, err)
	defer ch.Close()

	view := ch.Publish()
	r := view.Ring

	require.Equal(t, uint64(0), r.EvalAtOmega(r.FromCoeffs(view.U)), "u(1) must vanish mod q")

	for i := 0; i < view.Deg; i++ {
		for j := 0; j < view.Width; j++ {
			require.Equal(t, uint64(0), r.EvalAtOmega(view.F0[i][j])%view.P,
				"f0[%d][%d] must evaluate to a multiple of p", i, j)
		}
	}

	x := ch.Secret()
	for j := 0; j < view.Width; j++ {
		acc := r.NewPoly()
		for i := range x {
			acc = r.Add(acc, r.Mul(view.F0[i][j], x[i]))
		}
		// f1 = f0^T x + e', so f1 - f0^T x must be e', whose eval is a
		// multiple of p (0 or p, per the δ bit).
		diff := r.Sub(view.F1[j], acc)
		require.Zero(t, r.EvalAtOmega(diff)%view.P)
	}

	for i := 1; i <= view.Deg; i++ {
		for j := i; j <= view.Deg; j++ {
			lhs := r.Mul(x[i-1], x[j-1])
			rhs := r.NewPoly()
			for k := 1; k <= view.Deg; k++ {
				coeff := view.Tensor.At(i, j, k)
				rhs = r.Add(rhs, r.Scale(coeff, x[k-1]))
			}
			require.True(t, r.Equal(lhs, rhs), "tensor identity must hold for (%d,%d)", i, j)
		}
	}
}

func TestParameterGating(t *testing.T) {
	_, err := channel.New(channel.Params{P: 10, Q: 50, Deg: 5, Width: 1}, mustSrc(t, "gate"))
	require.Error(t, err)
	var perr *aceserr.ParameterError
	require.ErrorAs(t, err, &perr)
}

func TestPublicViewStableAcrossAccess(t *testing.T) {
	ch, err := channel.New(testParams(), mustSrc(t, "stable"))
	require.NoError(t, err)
	defer ch.Close()

	a := ch.Publish()
	b := ch.Publish()
	require.True(t, cmp.Equal(a.U, b.U, cmpopts.EquateEmpty()))
	require.Equal(t, a.LvlE, b.LvlE)
}
