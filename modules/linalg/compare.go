package linalg

import (
	"math/big"

	"SVDVerifierCircuit/modules/fixedpoint"

	"github.com/consensys/gnark/frontend"
)

// assertNear constrains |x - target| <= quantTol through a shift into the
// non-negative range: x - target + quantTol must land in [0, 2*quantTol],
// which needs no sign primitive.
func assertNear(e fixedpoint.Engine, x, target frontend.Variable, quantTol *big.Int) {
	shifted := e.Add(e.Sub(x, target), quantTol)
	bound := new(big.Int).Lsh(quantTol, 1)
	bound.Add(bound, big.NewInt(1))
	e.AssertLessThanConst(shifted, bound)
}

// CheckDiff constrains |a[i][j] - b[i][j]| <= tol for every entry.  With
// tol == 0 the matrices must match exactly.
func CheckDiff(e fixedpoint.Engine, a, b Matrix, tol float64) {
	if a.NumRows() != b.NumRows() || a.NumCols() != b.NumCols() {
		panic("Matrix shape mismatch in difference check")
	}
	quantTol := e.QuantizedTolerance(tol)
	for i := 0; i < a.NumRows(); i++ {
		for j := 0; j < a.NumCols(); j++ {
			assertNear(e, a.At(i, j), b.At(i, j), quantTol)
		}
	}
}

// CheckId constrains a to be within tol of scalar times the identity.
func CheckId(e fixedpoint.Engine, a Matrix, scalar frontend.Variable, tol float64) {
	if a.NumRows() != a.NumCols() {
		panic("Identity check needs a square matrix")
	}
	quantTol := e.QuantizedTolerance(tol)
	for i := 0; i < a.NumRows(); i++ {
		for j := 0; j < a.NumCols(); j++ {
			if i == j {
				assertNear(e, a.At(i, j), scalar, quantTol)
			} else {
				assertNear(e, a.At(i, j), 0, quantTol)
			}
		}
	}
}

// CheckEntriesBounded constrains |a[i][j]| <= bound for every entry.
func CheckEntriesBounded(e fixedpoint.Engine, a Matrix, bound float64) {
	quantBound := e.QuantizedTolerance(bound)
	for i := 0; i < a.NumRows(); i++ {
		for j := 0; j < a.NumCols(); j++ {
			assertNear(e, a.At(i, j), 0, quantBound)
		}
	}
}
