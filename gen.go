package main

import (
	"SVDVerifierCircuit/modules/svd"

	"github.com/spf13/cobra"
)

var (
	genSize int
	genSeed uint64
	genOut  string
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Sample a random matrix and write its decomposition record",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		GenImpl()
	},
}

func init() {
	svdCmd.AddCommand(genCmd)
	genCmd.PersistentFlags().IntVar(&genSize, "size", 8, "The size of the sampled square matrix.")
	genCmd.PersistentFlags().Uint64Var(&genSeed, "seed", 42, "The sampling seed.")
	genCmd.PersistentFlags().StringVar(&genOut, "out", "svd_input.json", "The record output file.")
}

func GenImpl() {
	record, err := svd.GenerateInputRecord(genSize, genSeed)
	if err != nil {
		panic(err.Error())
	}
	if err := record.WriteFile(genOut); err != nil {
		panic(err.Error())
	}
	println("Wrote", genOut)
}
