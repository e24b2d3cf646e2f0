package linalg

import (
	"math/big"
	"testing"

	"github.com/PolyhedraZK/ExpanderCompilerCollection/ecgo"
	ecgoTest "github.com/PolyhedraZK/ExpanderCompilerCollection/ecgo/test"
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func randomGrid(rng *rand.Rand, rows, cols int) [][]*big.Int {
	out := make([][]*big.Int, rows)
	for i := range out {
		out[i] = make([]*big.Int, cols)
		for j := range out[i] {
			out[i][j] = big.NewInt(int64(rng.Intn(4096)))
		}
	}
	return out
}

func gridVariables(vals [][]*big.Int) [][]frontend.Variable {
	out := make([][]frontend.Variable, len(vals))
	for i := range vals {
		out[i] = make([]frontend.Variable, len(vals[i]))
		for j := range vals[i] {
			out[i][j] = vals[i][j]
		}
	}
	return out
}

func productMod(field *big.Int, a, b [][]*big.Int) [][]*big.Int {
	out := make([][]*big.Int, len(a))
	for i := range out {
		out[i] = make([]*big.Int, len(b[0]))
		for j := range out[i] {
			acc := new(big.Int)
			for k := range b {
				acc.Add(acc, new(big.Int).Mul(a[i][k], b[k][j]))
			}
			out[i][j] = acc.Mod(acc, field)
		}
	}
	return out
}

func TestFreivaldsProductCheck(t *testing.T) {
	field := ecc.BN254.ScalarField()
	rng := rand.New(rand.NewSource(11))

	a := randomGrid(rng, 3, 5)
	b := randomGrid(rng, 5, 2)
	claimed := productMod(field, a, b)

	cs, err := frontend.Compile(field, r1cs.NewBuilder, PlaceholderProductCheck(3, 5, 2))
	require.NoError(t, err, "Unable to generate r1cs")

	println("Nb Constraints: ", cs.GetNbConstraints())

	// Correct claimed product
	assignment := ProductCheckCircuit{
		A:         gridVariables(a),
		B:         gridVariables(b),
		Claimed:   gridVariables(claimed),
		Challenge: 12345,
	}
	witness, err := frontend.NewWitness(&assignment, field)
	require.NoError(t, err, "Unable to solve witness")
	require.NoError(t, cs.IsSolved(witness), "R1CS not satisfied")

	// Corrupted claimed product
	ri := rand.Intn(len(claimed))
	rj := rand.Intn(len(claimed[0]))
	claimed[ri][rj] = new(big.Int).Add(claimed[ri][rj], big.NewInt(1))

	assignment.Claimed = gridVariables(claimed)
	witness, err = frontend.NewWitness(&assignment, field)
	require.NoError(t, err, "Unable to solve witness")
	require.Error(t, cs.IsSolved(witness), "Incorrect product should not be marked as solved")
}

func TestProductCheckLayeredEvaluation(t *testing.T) {
	field := ecc.BN254.ScalarField()
	rng := rand.New(rand.NewSource(23))

	a := randomGrid(rng, 4, 4)
	b := randomGrid(rng, 4, 4)
	claimed := productMod(field, a, b)

	compileResult, err := ecgo.Compile(field, PlaceholderProductCheck(4, 4, 4))
	require.NoError(t, err, "ECGO compilation error")

	layeredCircuit := compileResult.GetLayeredCircuit()
	inputSolver := compileResult.GetInputSolver()

	assignment := ProductCheckCircuit{
		A:         gridVariables(a),
		B:         gridVariables(b),
		Claimed:   gridVariables(claimed),
		Challenge: 67890,
	}
	witness, err := inputSolver.SolveInputAuto(&assignment)
	require.NoError(t, err, "ECGO witness resolve error")

	require.True(t, ecgoTest.CheckCircuit(layeredCircuit, witness))
}
