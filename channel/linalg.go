package channel

import "math/big"

// matQ is a dense matrix over Z_q, row-major, used only to invert the
// n×n basis formed by the secret key's coefficient vectors when
// solving for the tensor λ (spec.md §4.2 step 7).
type matQ struct {
	q        uint64
	n        int
	rows     [][]uint64
}

func newMatQ(q uint64, n int) *matQ {
	rows := make([][]uint64, n)
	for i := range rows {
		rows[i] = make([]uint64, n)
	}
	return &matQ{q: q, n: n, rows: rows}
}

func addModQ(a, b, q uint64) uint64 {
	s := a + b
	if s >= q {
		s -= q
	}
	return s
}

func subModQ(a, b, q uint64) uint64 {
	if a >= b {
		return a - b
	}
	return q - (b - a)
}

func mulModQ(a, b, q uint64) uint64 {
	var x, y, m, out big.Int
	x.SetUint64(a)
	y.SetUint64(b)
	m.SetUint64(q)
	out.Mul(&x, &y)
	out.Mod(&out, &m)
	return out.Uint64()
}

// modInverse returns a^-1 mod q via the extended Euclidean algorithm,
// succeeding only when gcd(a, q) == 1. This is the pivot-inversion step
// spec.md §4.2 step 7 calls for explicitly ("using the extended gcd for
// pivot inversion"), needed because q is composite rather than prime so
// not every nonzero residue is invertible.
func modInverse(a, q uint64) (uint64, bool) {
	if a == 0 {
		return 0, false
	}
	var av, qv big.Int
	av.SetUint64(a % q)
	qv.SetUint64(q)
	g := new(big.Int)
	x := new(big.Int)
	g.GCD(x, nil, &av, &qv)
	if g.Cmp(big.NewInt(1)) != 0 {
		return 0, false
	}
	x.Mod(x, &qv)
	return x.Uint64(), true
}

// invert computes m's inverse mod q via Gauss-Jordan elimination with
// row-pivot search for an invertible entry, failing (singular=true) if
// no such pivot exists in some column. This is the "solve by Gaussian
// elimination adapted for a finite ring" step spec.md §4.2 calls for;
// failure here is the trigger for channel.New to retry key generation
// with a freshly sampled secret key, surfaced as aceserr.GenerationError
// after a bounded number of retries.
func (m *matQ) invert() (inv *matQ, singular bool) {
	n := m.n
	q := m.q

	work := make([][]uint64, n)
	id := make([][]uint64, n)
	for i := 0; i < n; i++ {
		work[i] = append([]uint64(nil), m.rows[i]...)
		id[i] = make([]uint64, n)
		id[i][i] = 1
	}

	for col := 0; col < n; col++ {
		pivotRow := -1
		var pivotInv uint64
		for r := col; r < n; r++ {
			if inv, ok := modInverse(work[r][col], q); ok {
				pivotRow = r
				pivotInv = inv
				break
			}
		}
		if pivotRow < 0 {
			return nil, true
		}
		work[col], work[pivotRow] = work[pivotRow], work[col]
		id[col], id[pivotRow] = id[pivotRow], id[col]

		for c := 0; c < n; c++ {
			work[col][c] = mulModQ(work[col][c], pivotInv, q)
			id[col][c] = mulModQ(id[col][c], pivotInv, q)
		}

		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := work[r][col]
			if factor == 0 {
				continue
			}
			for c := 0; c < n; c++ {
				work[r][c] = subModQ(work[r][c], mulModQ(factor, work[col][c], q), q)
				id[r][c] = subModQ(id[r][c], mulModQ(factor, id[col][c], q), q)
			}
		}
	}

	return &matQ{q: q, n: n, rows: id}, false
}

// mulVec returns m*v mod q.
func (m *matQ) mulVec(v []uint64) []uint64 {
	out := make([]uint64, m.n)
	for r := 0; r < m.n; r++ {
		acc := uint64(0)
		for c := 0; c < m.n; c++ {
			if v[c] == 0 || m.rows[r][c] == 0 {
				continue
			}
			acc = addModQ(acc, mulModQ(m.rows[r][c], v[c], m.q), m.q)
		}
		out[r] = acc
	}
	return out
}
