package linalg

import (
	"github.com/consensys/gnark/frontend"
)

// VerifyMul checks the claimed product c == a*b with Freivalds' algorithm.
// It multiplies both sides with the power vector (1, r, ..., r^(m-1)) built
// from the challenge and asserts the resulting vectors are equal, which
// costs two matrix-vector products instead of a full matrix product.  A
// wrong claim survives only if the challenge is a root of a nonzero
// polynomial of degree below m, so the error probability is at most
// m/|field|.  The challenge must be sampled after c is fixed.
//
// All three matrices are compared without rescaling, so c has to carry the
// raw scale of the products of a and b.
func VerifyMul(api frontend.API, a, b, c Matrix, challenge frontend.Variable) {
	if a.NumCols() != b.NumRows() {
		panic("Incompatible operand shapes in product check")
	}
	if c.NumRows() != a.NumRows() || c.NumCols() != b.NumCols() {
		panic("Claimed product has the wrong shape")
	}

	pow := make([]frontend.Variable, c.NumCols())
	pow[0] = 1
	for i := 1; i < len(pow); i++ {
		pow[i] = api.Mul(pow[i-1], challenge)
	}

	left := c.MulVecRaw(api, pow)
	right := a.MulVecRaw(api, b.MulVecRaw(api, pow))
	for i := range left {
		api.AssertIsEqual(left[i], right[i])
	}
}

// ProductCheckCircuit wraps a single Freivalds check so the product
// verification can be compiled and proven on its own, e.g. through the
// layered circuit pipeline.
type ProductCheckCircuit struct {
	A         [][]frontend.Variable
	B         [][]frontend.Variable
	Claimed   [][]frontend.Variable
	Challenge frontend.Variable `gnark:",public"`
}

func (c *ProductCheckCircuit) Define(api frontend.API) error {
	VerifyMul(api, NewMatrix(c.A), NewMatrix(c.B), NewMatrix(c.Claimed), c.Challenge)
	return nil
}

// PlaceholderProductCheck allocates the variable slices for a product check
// of the given shape, ready to be compiled.
func PlaceholderProductCheck(rowsA, inner, colsB int) *ProductCheckCircuit {
	alloc := func(rows, cols int) [][]frontend.Variable {
		out := make([][]frontend.Variable, rows)
		for i := range out {
			out[i] = make([]frontend.Variable, cols)
		}
		return out
	}
	return &ProductCheckCircuit{
		A:       alloc(rowsA, inner),
		B:       alloc(inner, colsB),
		Claimed: alloc(rowsA, colsB),
	}
}
