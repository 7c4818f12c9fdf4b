// Package expr implements spec.md §4.6's ExpressionCompiler: parsing a
// small arithmetic grammar over leaf indices into an immutable AST,
// then evaluating that AST against any value domain that can add and
// multiply (and, optionally, refresh) its own values. Grounded on the
// teacher's circuits/polynomial.go + circuits/polynomial_evaluator.go
// pair, which likewise separate a parsed, immutable expression from
// the domain-specific evaluator that walks it.
package expr

// Kind discriminates the three node shapes an Expression can take.
type Kind int

const (
	KindLeaf Kind = iota
	KindAdd
	KindMul
)

// Node is one node of the parsed expression tree. Leaves carry an
// Index into the caller-supplied value slice; Add/Mul nodes carry two
// operand subtrees. Immutable once returned by Compile.
type Node struct {
	Kind  Kind
	Index int
	Left  *Node
	Right *Node
}

// Expression is a compiled, reusable AST together with the number of
// distinct leaf slots it references, so callers can size their value
// slice before evaluating.
type Expression struct {
	root    *Node
	numLeaf int
}

// NumLeaves returns one past the highest leaf index referenced by the
// expression, i.e. the minimum length a values slice passed to
// Evaluate must have.
func (e *Expression) NumLeaves() int {
	return e.numLeaf
}
