package svd

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// GenerateInputRecord samples a random square matrix and factors it,
// producing a record that satisfies the decomposition constraints at the
// default tolerance.
func GenerateInputRecord(n int, seed uint64) (*InputRecord, error) {
	if n <= 0 {
		return nil, fmt.Errorf("matrix size must be positive, got %d", n)
	}

	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, n*n)
	for i := range data {
		data[i] = rng.Float64()*2 - 1
	}
	a := mat.NewDense(n, n, data)

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDFull); !ok {
		return nil, fmt.Errorf("svd factorization of the sampled matrix failed")
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// gonum factors a into u * diag(values) * transpose(v), the record
	// keeps the right factor pre-transposed
	return &InputRecord{
		M: denseRows(a),
		U: denseRows(&u),
		V: transposeRows(denseRows(&v)),
		D: svd.Values(nil),
	}, nil
}

func denseRows(a mat.Matrix) [][]float64 {
	r, c := a.Dims()
	out := make([][]float64, r)
	for i := 0; i < r; i++ {
		out[i] = make([]float64, c)
		for j := 0; j < c; j++ {
			out[i][j] = a.At(i, j)
		}
	}
	return out
}

func transposeRows(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows[0]))
	for j := range out {
		out[j] = make([]float64, len(rows))
		for i := range rows {
			out[j][i] = rows[i][j]
		}
	}
	return out
}
