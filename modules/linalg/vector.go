package linalg

import (
	"SVDVerifierCircuit/modules/fixedpoint"

	"github.com/consensys/gnark/frontend"
)

// Vector is an immutable vector of circuit variables in fixed-point
// encoding.
type Vector struct {
	vs []frontend.Variable
}

func NewVector(vs []frontend.Variable) Vector {
	if len(vs) == 0 {
		panic("Empty vector")
	}
	copied := make([]frontend.Variable, len(vs))
	copy(copied, vs)
	return Vector{vs: copied}
}

func (v Vector) Size() int { return len(v.vs) }

func (v Vector) Elements() []frontend.Variable {
	out := make([]frontend.Variable, len(v.vs))
	copy(out, v.vs)
	return out
}

// InnerProduct sums the pairwise products and rescales once, so the result
// keeps the canonical fixed-point encoding.
func (v Vector) InnerProduct(e fixedpoint.Engine, other Vector) frontend.Variable {
	if v.Size() != other.Size() {
		panic("Inner product size mismatch")
	}
	sum := frontend.Variable(0)
	for i := range v.vs {
		sum = e.Add(sum, e.Mul(v.vs[i], other.vs[i]))
	}
	return e.Rescale(sum)
}

func (v Vector) NormSquare(e fixedpoint.Engine) frontend.Variable {
	return v.InnerProduct(e, v)
}

func (v Vector) Norm(e fixedpoint.Engine) frontend.Variable {
	return e.Sqrt(v.NormSquare(e))
}

func (v Vector) DistSquare(e fixedpoint.Engine, other Vector) frontend.Variable {
	if v.Size() != other.Size() {
		panic("Distance size mismatch")
	}
	sum := frontend.Variable(0)
	for i := range v.vs {
		diff := e.Sub(v.vs[i], other.vs[i])
		sum = e.Add(sum, e.Mul(diff, diff))
	}
	return e.Rescale(sum)
}

func (v Vector) Dist(e fixedpoint.Engine, other Vector) frontend.Variable {
	return e.Sqrt(v.DistSquare(e, other))
}

// MulByMatrix returns a*v as a vector of row inner products, each rescaled
// once.
func (v Vector) MulByMatrix(e fixedpoint.Engine, a Matrix) Vector {
	if a.NumCols() != v.Size() {
		panic("Matrix vector size mismatch")
	}
	out := make([]frontend.Variable, a.NumRows())
	for i := 0; i < a.NumRows(); i++ {
		out[i] = a.Row(i).InnerProduct(e, v)
	}
	return Vector{vs: out}
}

// EntriesLessThan constrains every entry to [0, 2^maxBits) and applies the
// same range bound to each consecutive difference v[i]-v[i+1], which forces
// the entries to be sorted in non-increasing order.
func (v Vector) EntriesLessThan(e fixedpoint.Engine, maxBits uint) {
	for i := range v.vs {
		e.AssertBitLength(v.vs[i], maxBits)
	}
	for i := 0; i+1 < len(v.vs); i++ {
		e.AssertBitLength(e.Sub(v.vs[i], v.vs[i+1]), maxBits)
	}
}
