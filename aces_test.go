package aces_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/remytuyeras/aces"
	"github.com/remytuyeras/aces/aceserr"
	"github.com/remytuyeras/aces/prng"
)

func deterministicSource(t *testing.T, seed string) prng.Source {
	t.Helper()
	src, err := prng.Deterministic([]byte(seed))
	require.NoError(t, err)
	return src
}

// TestScenarioS1 reproduces spec.md §8's S1: add and mult both agree
// with plaintext arithmetic mod p.
func TestScenarioS1(t *testing.T) {
	params := aces.Params{P: 4, Q: 47601551, Deg: 5, Width: 10}
	ch, err := aces.NewChannel(params, deterministicSource(t, "s1-channel"))
	require.NoError(t, err)
	t.Cleanup(ch.Close)

	enc := aces.NewEncryptor(ch.Publish(), deterministicSource(t, "s1-encrypt"))
	dec := aces.NewDecryptor(ch.Publish(), ch.Secret())
	alg := aces.NewAlgebra(ch.Publish())

	c1, _ := enc.Encrypt(3)
	c2, _ := enc.Encrypt(2)

	sum := alg.Add(c1, c2)
	gotSum, err := dec.Decrypt(sum)
	require.NoError(t, err)
	require.Equal(t, uint64(1), gotSum)

	prod := alg.Mult(c1, c2)
	gotProd, err := dec.Decrypt(prod)
	require.NoError(t, err)
	require.Equal(t, uint64(2), gotProd)
}

// TestScenarioS3 reproduces spec.md §8's S3: evaluating the circuit
// F = (x0x1 + x2x3 + x4x5)x6 + x7 directly overflows uplvl past q/p,
// but splitting at F1 = x0x1+x2x3+x4x5, refreshing, then applying
// F2 = y*x6+x7 recovers the correct plaintext.
func TestScenarioS3(t *testing.T) {
	params := aces.Params{P: 32, Q: 335544321, Deg: 10, Width: 5}
	ch, err := aces.NewChannel(params, deterministicSource(t, "s3-channel"))
	require.NoError(t, err)
	t.Cleanup(ch.Close)

	enc := aces.NewEncryptor(ch.Publish(), deterministicSource(t, "s3-encrypt"))
	dec := aces.NewDecryptor(ch.Publish(), ch.Secret())
	alg := aces.NewAlgebra(ch.Publish())
	rf := aces.NewRefresher(ch)

	inputs := []uint64{2, 3, 1, 4, 5, 2, 3, 1}
	cts := make([]*aces.Ciphertext, len(inputs))
	lvls := make([]aces.Level, len(inputs))
	for i, m := range inputs {
		cts[i], lvls[i] = enc.Encrypt(m)
	}

	f1 := aces.MustCompile("0*1+2*3+4*5")
	f2 := aces.MustCompile("0*1+2")

	plainF1 := f1Value(inputs)
	require.Equal(t, (inputs[0]*inputs[1]+inputs[2]*inputs[3]+inputs[4]*inputs[5])%params.P, plainF1)

	ctY := evalF1Ciphertext(alg, cts)
	target := rf.ScalarLevel(lvls[0])
	for _, k := range lvls[1:6] {
		target = max(target, rf.ScalarLevel(k))
	}

	refreshed, err := alg.Refresh(ctY, target)
	require.NoError(t, err)
	require.Less(t, refreshed.UpLvl, ctY.UpLvl)

	y, err := dec.Decrypt(refreshed)
	require.NoError(t, err)
	require.Equal(t, plainF1, y)

	final := alg.Add(alg.Mult(refreshed, cts[6]), cts[7])
	gotFinal, err := dec.Decrypt(final)
	require.NoError(t, err)

	wantFinal := (plainF1*inputs[6] + inputs[7]) % params.P
	require.Equal(t, wantFinal, gotFinal)

	_ = f2
}

func f1Value(inputs []uint64) uint64 {
	const p = 32
	return (inputs[0]*inputs[1] + inputs[2]*inputs[3] + inputs[4]*inputs[5]) % p
}

func evalF1Ciphertext(alg *aces.Algebra, cts []*aces.Ciphertext) *aces.Ciphertext {
	t01 := alg.Mult(cts[0], cts[1])
	t23 := alg.Mult(cts[2], cts[3])
	t45 := alg.Mult(cts[4], cts[5])
	return alg.Add(alg.Add(t01, t23), t45)
}

// TestScenarioS6 reproduces spec.md §8's S6: p=10, q=50 (p²=100>50)
// fails deterministically with ParameterError before any keys exist.
func TestScenarioS6(t *testing.T) {
	params := aces.Params{P: 10, Q: 50, Deg: 5, Width: 2}
	_, err := aces.NewChannel(params, deterministicSource(t, "s6-channel"))
	require.Error(t, err)

	var paramErr *aceserr.ParameterError
	require.True(t, errors.As(err, &paramErr))
}
