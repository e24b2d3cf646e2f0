package main

import (
	"os"

	"SVDVerifierCircuit/modules/svd"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/scs"
	"github.com/consensys/gnark/test/unsafekzg"
	"github.com/spf13/cobra"
)

var plonkCmd = &cobra.Command{
	Use:   "plonk",
	Short: "Prove and verify the decomposition record with PLONK over a test SRS",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		PlonkImpl()
	},
}

func init() {
	svdCmd.AddCommand(plonkCmd)
}

// PlonkImpl runs setup, prove and verify in one go.  The SRS comes from the
// unsafe test generator, so the resulting proof carries no security and the
// command exists to size and exercise the PLONK pipeline.
func PlonkImpl() {
	record := loadInputRecord()
	cfg := codecConfig()
	opts := checkOptions()
	n := len(record.M)

	shell := svd.PlaceholderCircuit(n, len(record.D), cfg, opts)
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), scs.NewBuilder, shell)
	if err != nil {
		panic(err.Error())
	}

	println("Nb Constraints: ", ccs.GetNbConstraints())
	println("Nb Internal Witness: ", ccs.GetNbInternalVariables())
	println("Nb Private Witness: ", ccs.GetNbSecretVariables())
	println("Nb Public Witness:", ccs.GetNbPublicVariables())

	assignment, err := svd.AssignCircuit(record, ecc.BN254.ScalarField(), cfg, opts)
	if err != nil {
		panic(err.Error())
	}

	println("Solving witness...")
	witness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		panic(err.Error())
	}

	println("Generating test SRS...")
	srs, srsLagrange, err := unsafekzg.NewSRS(ccs)
	if err != nil {
		panic(err.Error())
	}

	println("PLONK setup...")
	pk, vk, err := plonk.Setup(ccs, srs, srsLagrange)
	if err != nil {
		panic(err.Error())
	}

	println("PLONK proving...")
	proof, err := plonk.Prove(ccs, pk, witness)
	if err != nil {
		panic(err.Error())
	}

	publicWitness, err := witness.Public()
	if err != nil {
		panic(err.Error())
	}

	println("PLONK verifying...")
	if err = plonk.Verify(proof, vk, publicWitness); err != nil {
		panic(err.Error())
	}

	if proofFile != "" {
		out, err := os.OpenFile(proofFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			panic(err.Error())
		}
		proof.WriteTo(out)
	}

	println("Done.")
}
