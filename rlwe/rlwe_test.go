package rlwe_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/remytuyeras/aces/channel"
	"github.com/remytuyeras/aces/prng"
	"github.com/remytuyeras/aces/rlwe"
)

func newTestChannel(t *testing.T, params channel.Params, seed string) *channel.Channel {
	t.Helper()
	src, err := prng.Deterministic([]byte(seed))
	require.NoError(t, err)
	ch, err := channel.New(params, src)
	require.NoError(t, err)
	t.Cleanup(ch.Close)
	return ch
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	params := channel.Params{P: 4, Q: 47601551, Deg: 5, Width: 10}
	ch := newTestChannel(t, params, "rlwe-roundtrip")

	src, err := prng.Deterministic([]byte("rlwe-roundtrip-enc"))
	require.NoError(t, err)

	enc := rlwe.NewEncryptor(ch.Publish(), src)
	dec := rlwe.NewDecryptor(ch.Publish(), ch.Secret())

	for m := uint64(0); m < params.P; m++ {
		ct, _ := enc.Encrypt(m)
		got, err := dec.Decrypt(ct)
		require.NoError(t, err)
		require.Equal(t, m, got)
	}
}

func TestLevelVectorMatchesBeta(t *testing.T) {
	params := channel.Params{P: 4, Q: 47601551, Deg: 5, Width: 10}
	ch := newTestChannel(t, params, "rlwe-level")

	src, err := prng.Deterministic([]byte("rlwe-level-enc"))
	require.NoError(t, err)

	enc := rlwe.NewEncryptor(ch.Publish(), src)
	_, k := enc.Encrypt(2)
	require.Len(t, k, params.Width)
	for _, beta := range k {
		require.LessOrEqual(t, beta, params.P)
	}
}
