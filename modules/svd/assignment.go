package svd

import (
	"math/big"

	"SVDVerifierCircuit/modules/fixedpoint"
	"SVDVerifierCircuit/modules/linalg"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	mimcbn254 "github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	"github.com/consensys/gnark/frontend"
)

// PlaceholderCircuit allocates the variable slices for an n by n statement
// with numValues singular values, ready for compilation.
func PlaceholderCircuit(n, numValues int, cfg fixedpoint.Config, opts Options) *Circuit {
	return &Circuit{
		M:         allocGrid(n, n),
		U:         allocGrid(n, n),
		V:         allocGrid(n, n),
		D:         make([]frontend.Variable, numValues),
		ProductMV: allocGrid(n, n),
		ProductUU: allocGrid(n, n),
		ProductVV: allocGrid(n, n),
		Cfg:       cfg,
		Opts:      opts,
	}
}

// AssignCircuit quantizes the record and computes the claimed raw products
// the verification constraints expect as witnesses.
func AssignCircuit(record *InputRecord, field *big.Int, cfg fixedpoint.Config, opts Options) (*Circuit, error) {
	if err := record.Validate(); err != nil {
		return nil, err
	}

	m := quantizeGrid(field, cfg, record.M)
	u := quantizeGrid(field, cfg, record.U)
	v := quantizeGrid(field, cfg, record.V)
	d := make([]*big.Int, len(record.D))
	for i, x := range record.D {
		d[i] = cfg.Quantize(field, x)
	}

	return &Circuit{
		M:         gridVars(m),
		U:         gridVars(u),
		V:         gridVars(v),
		D:         sliceVars(d),
		ProductMV: gridVars(mulTransposeMod(field, m, v)),
		ProductUU: gridVars(mulTransposeMod(field, u, u)),
		ProductVV: gridVars(mulTransposeMod(field, v, v)),
		Cfg:       cfg,
		Opts:      opts,
	}, nil
}

// BuildProductCheck extracts the reconstruction product claim of the record
// as a standalone Freivalds circuit, with the challenge derived natively
// from the factors and the claim.  The returned shell is ready for
// compilation and the assignment carries the witness.
func BuildProductCheck(record *InputRecord, field *big.Int, cfg fixedpoint.Config) (*linalg.ProductCheckCircuit, *linalg.ProductCheckCircuit, error) {
	if err := record.Validate(); err != nil {
		return nil, nil, err
	}
	n := len(record.M)

	m := quantizeGrid(field, cfg, record.M)
	v := quantizeGrid(field, cfg, record.V)
	vt := transposeGrid(v)
	claimed := mulTransposeMod(field, m, v)

	shell := linalg.PlaceholderProductCheck(n, n, n)
	assignment := &linalg.ProductCheckCircuit{
		A:         gridVars(m),
		B:         gridVars(vt),
		Claimed:   gridVars(claimed),
		Challenge: bindingChallenge(m, vt, claimed),
	}
	return shell, assignment, nil
}

// bindingChallenge mirrors the in-circuit transcript natively: the zero
// initial state is hashed first, then every matrix entry in row-major
// order.
func bindingChallenge(grids ...[][]*big.Int) *big.Int {
	h := mimcbn254.NewMiMC()

	var state fr.Element
	stateBytes := state.Bytes()
	h.Write(stateBytes[:])

	var el fr.Element
	for _, grid := range grids {
		for _, row := range grid {
			for _, entry := range row {
				el.SetBigInt(entry)
				entryBytes := el.Bytes()
				h.Write(entryBytes[:])
			}
		}
	}

	return new(big.Int).SetBytes(h.Sum(nil))
}

func allocGrid(rows, cols int) [][]frontend.Variable {
	out := make([][]frontend.Variable, rows)
	for i := range out {
		out[i] = make([]frontend.Variable, cols)
	}
	return out
}

func quantizeGrid(field *big.Int, cfg fixedpoint.Config, rows [][]float64) [][]*big.Int {
	out := make([][]*big.Int, len(rows))
	for i, row := range rows {
		out[i] = make([]*big.Int, len(row))
		for j, x := range row {
			out[i][j] = cfg.Quantize(field, x)
		}
	}
	return out
}

func transposeGrid(rows [][]*big.Int) [][]*big.Int {
	out := make([][]*big.Int, len(rows[0]))
	for j := range out {
		out[j] = make([]*big.Int, len(rows))
		for i := range rows {
			out[j][i] = rows[i][j]
		}
	}
	return out
}

// mulTransposeMod computes a times the transpose of b over the field, which
// covers every product the statement claims.
func mulTransposeMod(field *big.Int, a, b [][]*big.Int) [][]*big.Int {
	out := make([][]*big.Int, len(a))
	for i := range a {
		out[i] = make([]*big.Int, len(b))
		for j := range b {
			acc := new(big.Int)
			for k := range a[i] {
				acc.Add(acc, new(big.Int).Mul(a[i][k], b[j][k]))
			}
			out[i][j] = acc.Mod(acc, field)
		}
	}
	return out
}

func gridVars(vals [][]*big.Int) [][]frontend.Variable {
	out := make([][]frontend.Variable, len(vals))
	for i := range vals {
		out[i] = make([]frontend.Variable, len(vals[i]))
		for j := range vals[i] {
			out[i][j] = vals[i][j]
		}
	}
	return out
}

func sliceVars(vals []*big.Int) []frontend.Variable {
	out := make([]frontend.Variable, len(vals))
	for i := range vals {
		out[i] = vals[i]
	}
	return out
}
