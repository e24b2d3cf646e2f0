// Package svd constrains a claimed singular value decomposition
// m = u*diag(d)*v inside an arithmetic circuit.  The matrix products the
// statement needs are not recomputed with cubic many multiplications:
// they enter as plain witnesses and are tied to their factors with
// randomized product checks whose challenge is squeezed from a transcript
// over the whole statement.
package svd

import (
	"math"
	"math/big"

	"SVDVerifierCircuit/modules/fixedpoint"
	"SVDVerifierCircuit/modules/linalg"
	"SVDVerifierCircuit/modules/transcript"

	"github.com/consensys/gnark/frontend"
)

// orthonormalEntryBound caps the magnitude of u and v entries.  Entries of
// an orthonormal matrix stay within 1, the slack absorbs quantization
// error.
const orthonormalEntryBound = 1.01

// Options collects the verification knobs of the decomposition check.
type Options struct {
	// Tolerance bounds the reconstruction and orthogonality error in real
	// units.
	Tolerance float64

	// MaxBitsD bounds the integer part of the singular values: every d[i]
	// has to satisfy 0 <= d[i] < 2^MaxBitsD.
	MaxBitsD uint
}

func DefaultOptions() Options {
	return Options{
		Tolerance: 1e-5,
		MaxBitsD:  30,
	}
}

// Claims carries the witness matrix products in raw scale: MV holds m times
// the transpose of v, UU holds u times its own transpose, VV the same for
// v.  None of them is rescaled, all comparisons happen at the product
// scale.
type Claims struct {
	MV linalg.Matrix
	UU linalg.Matrix
	VV linalg.Matrix
}

// Circuit is the decomposition statement: the input matrix is public, the
// factors and the claimed products stay private.
type Circuit struct {
	M [][]frontend.Variable `gnark:",public"`
	U [][]frontend.Variable
	V [][]frontend.Variable
	D []frontend.Variable

	ProductMV [][]frontend.Variable
	ProductUU [][]frontend.Variable
	ProductVV [][]frontend.Variable

	Cfg  fixedpoint.Config
	Opts Options
}

func (c *Circuit) Define(api frontend.API) error {
	engine := fixedpoint.NewEngine(api, c.Cfg)
	claims := Claims{
		MV: linalg.NewMatrix(c.ProductMV),
		UU: linalg.NewMatrix(c.ProductUU),
		VV: linalg.NewMatrix(c.ProductVV),
	}
	Check(
		engine,
		linalg.NewMatrix(c.M),
		linalg.NewMatrix(c.U),
		linalg.NewMatrix(c.V),
		linalg.NewVector(c.D),
		claims,
		c.Opts,
	)
	return nil
}

// Check derives the product-check challenge from a transcript over every
// matrix of the statement, the claimed products included, then runs the
// decomposition constraints.  Squeezing the challenge after the claims are
// absorbed is what makes the product checks sound: a claim fixed with the
// challenge in hand could be cheated.
func Check(
	e fixedpoint.Engine,
	m, u, v linalg.Matrix,
	d linalg.Vector,
	claims Claims,
	opts Options,
) {
	ts := transcript.NewTranscript(e.API)
	ts.AppendMatrix(m)
	ts.AppendMatrix(u)
	ts.AppendMatrix(v)
	ts.AppendFs(d.Elements()...)
	ts.AppendMatrix(claims.MV)
	ts.AppendMatrix(claims.UU)
	ts.AppendMatrix(claims.VV)

	CheckWithChallenge(e, m, u, v, d, claims, ts.ChallengeF(), opts)
}

// CheckWithChallenge runs the decomposition constraints under an externally
// supplied challenge.  The caller has to guarantee the challenge was
// sampled after every matrix in claims was fixed.
func CheckWithChallenge(
	e fixedpoint.Engine,
	m, u, v linalg.Matrix,
	d linalg.Vector,
	claims Claims,
	challenge frontend.Variable,
	opts Options,
) {
	n := m.NumRows()
	if m.NumCols() != n {
		panic("Input matrix must be square")
	}
	if u.NumRows() != n || u.NumCols() != n || v.NumRows() != n || v.NumCols() != n {
		panic("Singular vector matrices must match the input shape")
	}
	if d.Size() > n {
		panic("More singular values than matrix columns")
	}

	// non-negative, bounded and sorted in non-increasing order
	d.EntriesLessThan(e, opts.MaxBitsD+e.PrecisionBits)

	linalg.CheckEntriesBounded(e, u, orthonormalEntryBound)
	linalg.CheckEntriesBounded(e, v, orthonormalEntryBound)

	ut := u.Transpose()
	vt := v.Transpose()

	// u*diag(d) in raw scale, padding d with zeros when fewer singular
	// values than columns are claimed
	padded := d.Elements()
	for len(padded) < n {
		padded = append(padded, 0)
	}
	reconstruction := u.DiagMulRaw(e.API, linalg.NewVector(padded))

	// comparisons happen between raw products, so the tolerance moves up
	// by one scale factor
	rawTol := opts.Tolerance * math.Pow(2, float64(e.PrecisionBits))

	// the claimed product of m and the transpose of v matches its factors
	// and reconstructs u*diag(d)
	linalg.VerifyMul(e.API, m, vt, claims.MV, challenge)
	linalg.CheckDiff(e, reconstruction, claims.MV, rawTol)

	// orthogonality of the singular vectors against the scaled identity
	scaledIdentity := new(big.Int).Lsh(big.NewInt(1), 2*e.PrecisionBits)
	linalg.VerifyMul(e.API, u, ut, claims.UU, challenge)
	linalg.CheckId(e, claims.UU, scaledIdentity, rawTol)
	linalg.VerifyMul(e.API, v, vt, claims.VV, challenge)
	linalg.CheckId(e, claims.VV, scaledIdentity, rawTol)
}
