package main

import (
	"SVDVerifierCircuit/modules/svd"

	"github.com/PolyhedraZK/ExpanderCompilerCollection/ecgo"
	ecgoTest "github.com/PolyhedraZK/ExpanderCompilerCollection/ecgo/test"
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/spf13/cobra"
)

func init() {
	svdCmd.AddCommand(expanderCmd)
}

var expanderCmd = &cobra.Command{
	Use:   "expander",
	Short: "Compile the reconstruction product check into a layered circuit and evaluate it",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ExpanderImpl()
	},
}

// ExpanderImpl lowers the Freivalds product check of the record to a
// layered circuit.  Only the product check goes through this pipeline: the
// full statement leans on lookup based range checks, which the layered
// form does not support.
func ExpanderImpl() {
	record := loadInputRecord()
	cfg := codecConfig()

	shell, assignment, err := svd.BuildProductCheck(record, ecc.BN254.ScalarField(), cfg)
	if err != nil {
		panic(err.Error())
	}

	compilation, err := ecgo.Compile(ecc.BN254.ScalarField(), shell)
	if err != nil {
		panic(err.Error())
	}

	println("Solving witness...")
	inputSolver := compilation.GetInputSolver()
	witness, err := inputSolver.SolveInputAuto(assignment)
	if err != nil {
		panic(err.Error())
	}

	println("Checking satisfiability...")
	layeredCircuit := compilation.GetLayeredCircuit()
	println(ecgoTest.CheckCircuit(layeredCircuit, witness))
}
