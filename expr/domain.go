package expr

import (
	"github.com/remytuyeras/aces/aceserr"
	"github.com/remytuyeras/aces/algebra"
	"github.com/remytuyeras/aces/rlwe"
)

// Domain is the capability set an Expression needs to evaluate itself
// over some value type T: add and multiply two values. Spec.md §9
// calls for exactly this kind of small capability interface rather
// than subclassing value types, so the same Expression runs
// unmodified over plaintexts, ciphertexts, or level vectors.
type Domain[T any] interface {
	Add(a, b T) T
	Mul(a, b T) T
}

// Refreshable is the optional extra capability a domain may offer: the
// ciphertext domain implements it, the plaintext and level domains do
// not need to.
type Refreshable[T any] interface {
	Refresh(v T, targetLevel uint64) (T, error)
}

// Evaluate walks the expression's AST, looking up leaves in values and
// combining them with the domain's Add/Mul. len(values) must be at
// least e.NumLeaves(); Evaluate panics (via aceserr.Panicf) otherwise,
// matching the library's programmer-error propagation policy.
func Evaluate[T any](e *Expression, values []T, dom Domain[T]) T {
	if len(values) < e.numLeaf {
		aceserr.Panicf("expr: expression references leaf %d but only %d values were given", e.numLeaf-1, len(values))
	}
	return evalNode(e.root, values, dom)
}

func evalNode[T any](n *Node, values []T, dom Domain[T]) T {
	switch n.Kind {
	case KindLeaf:
		return values[n.Index]
	case KindAdd:
		return dom.Add(evalNode(n.Left, values, dom), evalNode(n.Right, values, dom))
	case KindMul:
		return dom.Mul(evalNode(n.Left, values, dom), evalNode(n.Right, values, dom))
	default:
		aceserr.Panicf("expr: unknown node kind %d", n.Kind)
		panic("unreachable")
	}
}

// PlaintextDomain evaluates an Expression over plain integers mod P,
// the simplest of the three domains spec.md §4.6 requires every
// Expression to agree across.
type PlaintextDomain struct {
	P uint64
}

func (d PlaintextDomain) Add(a, b uint64) uint64 { return (a + b) % d.P }
func (d PlaintextDomain) Mul(a, b uint64) uint64 { return (a * b) % d.P }

// CiphertextDomain adapts an *algebra.Algebra to the Domain and
// Refreshable interfaces over *rlwe.Ciphertext, so an Expression can be
// evaluated directly on encrypted inputs.
type CiphertextDomain struct {
	Algebra *algebra.Algebra
}

func (d CiphertextDomain) Add(a, b *rlwe.Ciphertext) *rlwe.Ciphertext {
	return d.Algebra.Add(a, b)
}

func (d CiphertextDomain) Mul(a, b *rlwe.Ciphertext) *rlwe.Ciphertext {
	return d.Algebra.Mult(a, b)
}

func (d CiphertextDomain) Refresh(v *rlwe.Ciphertext, targetLevel uint64) (*rlwe.Ciphertext, error) {
	return d.Algebra.Refresh(v, targetLevel)
}

// LevelDomain adapts an *algebra.Algebra to the Domain interface over
// rlwe.Level vectors, letting the same Expression be evaluated on the
// true, secret level vectors that run in parallel to a ciphertext
// evaluation (see algebra.Refresher).
type LevelDomain struct {
	Algebra *algebra.Algebra
}

func (d LevelDomain) Add(a, b rlwe.Level) rlwe.Level { return d.Algebra.AddLevel(a, b) }
func (d LevelDomain) Mul(a, b rlwe.Level) rlwe.Level { return d.Algebra.MultLevel(a, b) }
