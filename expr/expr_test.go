package expr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/remytuyeras/aces/algebra"
	"github.com/remytuyeras/aces/channel"
	"github.com/remytuyeras/aces/expr"
	"github.com/remytuyeras/aces/prng"
	"github.com/remytuyeras/aces/rlwe"
)

func TestCompileParsesPrecedenceAndAssociativity(t *testing.T) {
	e, err := expr.Compile("0*1+2*3+4*5")
	require.NoError(t, err)
	require.Equal(t, 6, e.NumLeaves())

	dom := expr.PlaintextDomain{P: 1000}
	values := []uint64{2, 3, 4, 5, 6, 7}
	got := expr.Evaluate(e, values, dom)
	require.Equal(t, uint64(2*3+4*5+6*7), got)
}

func TestCompileHandlesParentheses(t *testing.T) {
	e, err := expr.Compile("(0+1)*2")
	require.NoError(t, err)
	dom := expr.PlaintextDomain{P: 1000}
	got := expr.Evaluate(e, []uint64{2, 3, 4}, dom)
	require.Equal(t, uint64((2+3)*4), got)
}

func TestCompileRejectsMalformedInput(t *testing.T) {
	_, err := expr.Compile("0*+1")
	require.Error(t, err)

	_, err = expr.Compile("(0+1")
	require.Error(t, err)
}

func TestEvaluatePanicsOnTooFewValues(t *testing.T) {
	e := expr.MustCompile("0+1")
	require.Panics(t, func() {
		expr.Evaluate(e, []uint64{1}, expr.PlaintextDomain{P: 5})
	})
}

func TestExpressionAgreesAcrossPlaintextAndCiphertextDomains(t *testing.T) {
	params := channel.Params{P: 4, Q: 47601551, Deg: 5, Width: 10}
	src, err := prng.Deterministic([]byte("expr-channel"))
	require.NoError(t, err)
	ch, err := channel.New(params, src)
	require.NoError(t, err)
	t.Cleanup(ch.Close)

	encSrc, err := prng.Deterministic([]byte("expr-encrypt"))
	require.NoError(t, err)
	enc := rlwe.NewEncryptor(ch.Publish(), encSrc)
	dec := rlwe.NewDecryptor(ch.Publish(), ch.Secret())
	alg := algebra.New(ch.Publish())

	e := expr.MustCompile("0*1+2")
	plainValues := []uint64{2, 3, 1}

	ctValues := make([]*rlwe.Ciphertext, len(plainValues))
	for i, m := range plainValues {
		ctValues[i], _ = enc.Encrypt(m)
	}

	plainGot := expr.Evaluate(e, plainValues, expr.PlaintextDomain{P: params.P})
	ctResult := expr.Evaluate(e, ctValues, expr.CiphertextDomain{Algebra: alg})

	decGot, err := dec.Decrypt(ctResult)
	require.NoError(t, err)
	require.Equal(t, plainGot, decGot)
}

func TestExpressionOverLevelDomain(t *testing.T) {
	params := channel.Params{P: 4, Q: 47601551, Deg: 5, Width: 10}
	src, err := prng.Deterministic([]byte("expr-level-channel"))
	require.NoError(t, err)
	ch, err := channel.New(params, src)
	require.NoError(t, err)
	t.Cleanup(ch.Close)

	encSrc, err := prng.Deterministic([]byte("expr-level-encrypt"))
	require.NoError(t, err)
	enc := rlwe.NewEncryptor(ch.Publish(), encSrc)
	alg := algebra.New(ch.Publish())

	e := expr.MustCompile("0+1")
	_, k0 := enc.Encrypt(1)
	_, k1 := enc.Encrypt(2)

	got := expr.Evaluate(e, []rlwe.Level{k0, k1}, expr.LevelDomain{Algebra: alg})
	require.Len(t, got, params.Width)
}
