package prng

import "math/big"

// IsPrime reports whether q is prime, used by channel.New to decide
// whether a caller-supplied q must be replaced (spec.md §3: q MUST be
// composite).
func IsPrime(q uint64) bool {
	return new(big.Int).SetUint64(q).ProbablyPrime(32)
}

// IsComposite reports whether q has at least two distinct prime
// factors, the invariant spec.md §3 requires of the cipher modulus.
// A prime q, or a prime power q = r^k for a single prime r, is not
// composite in this sense even though big.Int considers it non-prime;
// this scheme specifically needs a modulus with at least two distinct
// prime factors so that the zero-divisor structure in ArithChannel's f0
// matrix (§4.2 step 4) has room to exist.
func IsComposite(q uint64) bool {
	n := new(big.Int).SetUint64(q)
	if n.ProbablyPrime(32) {
		return false
	}
	return len(distinctPrimeFactors(n, 2)) >= 2
}

// NearbyComposite finds the smallest q' >= q that has at least two
// distinct prime factors, for use when a caller-supplied q turns out to
// be prime (spec.md §3: "the implementation MAY replace it with a
// nearby composite and report the change").
func NearbyComposite(q uint64) uint64 {
	for c := q; ; c++ {
		if IsComposite(c) {
			return c
		}
	}
}

// distinctPrimeFactors returns up to limit distinct prime factors of n
// via trial division against small primes followed by a primality
// fallback on the remaining cofactor. This mirrors the small-prime
// table idiom of ring/primes.go, generalized from "find an NTT-friendly
// prime" to "factor a general modulus far enough to know it is
// composite".
func distinctPrimeFactors(n *big.Int, limit int) []*big.Int {
	var factors []*big.Int
	rem := new(big.Int).Set(n)

	for _, p := range smallPrimes() {
		if len(factors) >= limit {
			return factors
		}
		bp := big.NewInt(int64(p))
		if rem.Cmp(bp) < 0 {
			break
		}
		mod := new(big.Int)
		div := new(big.Int)
		div.DivMod(rem, bp, mod)
		if mod.Sign() == 0 {
			factors = append(factors, bp)
			for mod.Sign() == 0 {
				rem.Set(div)
				div.DivMod(rem, bp, mod)
			}
		}
	}

	// Whatever remains has no factor among the small primes trialled
	// above, so it contributes exactly one more prime factor distinct
	// from every factor already found, whether or not rem itself is
	// prime; we do not need its full factorization to answer the
	// at-least-two-distinct-factors question.
	if rem.Cmp(big.NewInt(1)) > 0 && len(factors) < limit {
		factors = append(factors, new(big.Int).Set(rem))
	}

	return factors
}

func smallPrimes() []uint64 {
	const n = 2000
	sieve := make([]bool, n+1)
	var primes []uint64
	for i := uint64(2); i <= n; i++ {
		if !sieve[i] {
			primes = append(primes, i)
			for j := i * i; j <= n; j += i {
				sieve[j] = true
			}
		}
	}
	return primes
}
