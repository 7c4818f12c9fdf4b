package ring_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/remytuyeras/aces/prng"
	"github.com/remytuyeras/aces/ring"
)

// buildTestRing constructs a small ring with a u satisfying u(1) ≡ 0
// mod q, adjusting the last coefficient exactly as channel.New does.
func buildTestRing(t *testing.T, q uint64, n int, src prng.Source) *ring.Ring {
	t.Helper()
	u := make([]uint64, n)
	sum := uint64(0)
	for i := 0; i < n-1; i++ {
		u[i] = src.Uint64Below(q)
		sum = (sum + u[i]) % q
	}
	// Need sum(u) + 1 ≡ 0 (mod q), i.e. u[n-1] ≡ -(sum+1).
	u[n-1] = (q - ((sum + 1) % q)) % q
	return ring.New(q, n, u)
}

func TestReduceIdempotent(t *testing.T) {
	src, err := prng.Deterministic([]byte("ring-test-seed-1"))
	require.NoError(t, err)

	r := buildTestRing(t, 97, 5, src)
	a := r.SampleUniform(src)
	b := r.SampleUniform(src)

	raw := r.MulUnreduced(a, b)
	once := r.Reduce(raw)
	twice := r.Reduce(append([]uint64{}, once.CopyNew().Coeffs...))

	require.True(t, r.Equal(once, twice), "reduce must be idempotent")
}

func TestMulCommutativeAssociative(t *testing.T) {
	src, err := prng.Deterministic([]byte("ring-test-seed-2"))
	require.NoError(t, err)

	r := buildTestRing(t, 97, 5, src)
	a := r.SampleUniform(src)
	b := r.SampleUniform(src)
	c := r.SampleUniform(src)

	require.True(t, r.Equal(r.Mul(a, b), r.Mul(b, a)), "mul must be commutative")

	left := r.Mul(r.Mul(a, b), c)
	right := r.Mul(a, r.Mul(b, c))
	require.True(t, r.Equal(left, right), "mul must be associative")
}

func TestEvalAtOmegaHomomorphism(t *testing.T) {
	src, err := prng.Deterministic([]byte("ring-test-seed-3"))
	require.NoError(t, err)

	r := buildTestRing(t, 97, 5, src)
	a := r.SampleUniform(src)
	b := r.SampleUniform(src)

	sumEval := (r.EvalAtOmega(a) + r.EvalAtOmega(b)) % r.Q
	require.Equal(t, sumEval, r.EvalAtOmega(r.Add(a, b)))

	mulEval := (r.EvalAtOmega(a) * r.EvalAtOmega(b)) % r.Q
	require.Equal(t, mulEval, r.EvalAtOmega(r.Mul(a, b)))
}

func TestSampleWithEvalMatchesTarget(t *testing.T) {
	src, err := prng.Deterministic([]byte("ring-test-seed-4"))
	require.NoError(t, err)

	r := buildTestRing(t, 97, 5, src)
	for target := uint64(0); target < 10; target++ {
		p := r.SampleWithEval(src, target)
		require.Equal(t, target%r.Q, r.EvalAtOmega(p))
	}
}
