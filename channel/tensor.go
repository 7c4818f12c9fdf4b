package channel

// Tensor holds the secret-product-linearizing coefficients λ_{i,j}^k
// such that x_i · x_j ≡ Σ_{k=0}^{n} λ_{i,j}^k · x_k inside Z_q[X]_u,
// with the convention x_0 = 1 (spec.md §3, §4.2 step 7). i and j are
// 1-indexed secret-key component indices with i<=j (x_i x_j = x_j x_i,
// so only the upper triangle is stored); k ranges over 0..n, with k=0
// addressing the implicit constant term.
type Tensor struct {
	n      int
	lambda map[[2]int][]uint64 // key (i,j), i<=j; value has n+1 entries indexed by k
}

func newTensor(n int) *Tensor {
	return &Tensor{n: n, lambda: make(map[[2]int][]uint64, n*(n+1)/2)}
}

func (t *Tensor) set(i, j int, lambda []uint64) {
	if i > j {
		i, j = j, i
	}
	t.lambda[[2]int{i, j}] = lambda
}

// At returns λ_{i,j}^k. i and j are 1-indexed secret-key component
// indices (order-independent); k ranges over 0..n.
func (t *Tensor) At(i, j, k int) uint64 {
	if i > j {
		i, j = j, i
	}
	row, ok := t.lambda[[2]int{i, j}]
	if !ok || k < 0 || k >= len(row) {
		return 0
	}
	return row[k]
}

// N returns the secret-key dimension this tensor was built over.
func (t *Tensor) N() int {
	return t.n
}
