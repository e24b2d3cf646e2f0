// Package linalg provides fixed-point matrix and vector arithmetic over a
// constraint system, together with the randomized product check used to
// avoid cubic in-circuit matrix multiplication.
package linalg

import (
	"SVDVerifierCircuit/modules/fixedpoint"

	"github.com/consensys/gnark/frontend"
)

// Matrix is a dense row-major matrix of circuit variables.  The shape is
// fixed at construction and every row has the same length.
type Matrix struct {
	rows    [][]frontend.Variable
	numRows int
	numCols int
}

func NewMatrix(rows [][]frontend.Variable) Matrix {
	if len(rows) == 0 || len(rows[0]) == 0 {
		panic("Empty matrix")
	}
	numCols := len(rows[0])
	copied := make([][]frontend.Variable, len(rows))
	for i, row := range rows {
		if len(row) != numCols {
			panic("Ragged matrix rows")
		}
		copied[i] = make([]frontend.Variable, numCols)
		copy(copied[i], row)
	}
	return Matrix{rows: copied, numRows: len(rows), numCols: numCols}
}

func (m Matrix) NumRows() int { return m.numRows }

func (m Matrix) NumCols() int { return m.numCols }

func (m Matrix) At(i, j int) frontend.Variable { return m.rows[i][j] }

func (m Matrix) Row(i int) Vector { return NewVector(m.rows[i]) }

// Transpose reindexes the entries and costs no constraints.
func (m Matrix) Transpose() Matrix {
	transposed := make([][]frontend.Variable, m.numCols)
	for j := 0; j < m.numCols; j++ {
		transposed[j] = make([]frontend.Variable, m.numRows)
		for i := 0; i < m.numRows; i++ {
			transposed[j][i] = m.rows[i][j]
		}
	}
	return Matrix{rows: transposed, numRows: m.numCols, numCols: m.numRows}
}

// Rescale divides every entry by the fixed-point scale, bringing a matrix
// of raw products back to the canonical encoding.
func (m Matrix) Rescale(e fixedpoint.Engine) Matrix {
	rescaled := make([][]frontend.Variable, m.numRows)
	for i := 0; i < m.numRows; i++ {
		rescaled[i] = make([]frontend.Variable, m.numCols)
		for j := 0; j < m.numCols; j++ {
			rescaled[i][j] = e.Rescale(m.rows[i][j])
		}
	}
	return Matrix{rows: rescaled, numRows: m.numRows, numCols: m.numCols}
}

// MulVecRaw multiplies the matrix with a plain vector of variables without
// rescaling, so the result carries the product of the operand scales.
func (m Matrix) MulVecRaw(api frontend.API, vec []frontend.Variable) []frontend.Variable {
	if len(vec) != m.numCols {
		panic("Matrix vector size mismatch")
	}
	out := make([]frontend.Variable, m.numRows)
	for i := 0; i < m.numRows; i++ {
		sum := frontend.Variable(0)
		for j := 0; j < m.numCols; j++ {
			sum = api.Add(sum, api.Mul(m.rows[i][j], vec[j]))
		}
		out[i] = sum
	}
	return out
}

// DiagMulRaw right-multiplies by diag(d) without rescaling, scaling column
// j of the matrix by d[j].
func (m Matrix) DiagMulRaw(api frontend.API, d Vector) Matrix {
	if d.Size() != m.numCols {
		panic("Diagonal size does not match the column count")
	}
	scaled := make([][]frontend.Variable, m.numRows)
	for i := 0; i < m.numRows; i++ {
		scaled[i] = make([]frontend.Variable, m.numCols)
		for j := 0; j < m.numCols; j++ {
			scaled[i][j] = api.Mul(m.rows[i][j], d.vs[j])
		}
	}
	return Matrix{rows: scaled, numRows: m.numRows, numCols: m.numCols}
}
