package main

import (
	"SVDVerifierCircuit/modules/svd"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/spf13/cobra"
)

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Compile the decomposition circuit and check the witness satisfies it",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		MockImpl()
	},
}

func init() {
	svdCmd.AddCommand(mockCmd)
}

func MockImpl() {
	record := loadInputRecord()
	cfg := codecConfig()
	opts := checkOptions()
	n := len(record.M)

	shell := svd.PlaceholderCircuit(n, len(record.D), cfg, opts)
	r1cs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, shell)
	if err != nil {
		panic(err.Error())
	}

	println("Nb Constraints: ", r1cs.GetNbConstraints())
	println("Nb Internal Witness: ", r1cs.GetNbInternalVariables())
	println("Nb Private Witness: ", r1cs.GetNbSecretVariables())
	println("Nb Public Witness:", r1cs.GetNbPublicVariables())

	assignment, err := svd.AssignCircuit(record, ecc.BN254.ScalarField(), cfg, opts)
	if err != nil {
		panic(err.Error())
	}

	println("Solving witness...")
	witness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		panic(err.Error())
	}

	println("Checking satisfiability...")
	if err = r1cs.IsSolved(witness); err != nil {
		panic("R1CS not satisfied.")
	}
	println("R1CS satisfied.")
}
