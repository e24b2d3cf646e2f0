package main

import (
	"fmt"
	"os"

	"SVDVerifierCircuit/modules/fixedpoint"
	"SVDVerifierCircuit/modules/svd"

	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	inputFile string
	proofFile string

	precisionBits uint
	signedBits    uint
	tolerance     float64
	maxBitsD      uint

	verbose bool
)

func init() {
	svdCmd.PersistentFlags().StringVar(&inputFile, "input", "", "The JSON record holding the input matrix and its claimed decomposition.")
	svdCmd.PersistentFlags().StringVar(&proofFile, "proof", "", "The proof output file.")
	svdCmd.PersistentFlags().UintVar(&precisionBits, "precision-bits", 32, "The number of fractional bits of the fixed-point encoding.")
	svdCmd.PersistentFlags().UintVar(&signedBits, "signed-bits", 120, "The magnitude bound, in bits, on any encoded value.")
	svdCmd.PersistentFlags().Float64Var(&tolerance, "tolerance", 1e-5, "The accepted reconstruction and orthogonality error.")
	svdCmd.PersistentFlags().UintVar(&maxBitsD, "max-bits-d", 30, "The bit bound on the integer part of the singular values.")
	svdCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log the pipeline steps to stderr.")
}

var svdCmd = &cobra.Command{
	Use:   "svd",
	Short: "Manage singular value decomposition proof generation",
	Args:  cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureLogger()
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.HelpFunc()(cmd, args)
	},
}

func configureLogger() {
	if verbose {
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
		logger.Set(zerolog.New(output).With().Timestamp().Logger())
	} else {
		logger.Disable()
	}
}

func codecConfig() fixedpoint.Config {
	return fixedpoint.Config{
		PrecisionBits: precisionBits,
		SignedBits:    signedBits,
	}
}

func checkOptions() svd.Options {
	return svd.Options{
		Tolerance: tolerance,
		MaxBitsD:  maxBitsD,
	}
}

func loadInputRecord() *svd.InputRecord {
	record, err := svd.ReadInputRecord(inputFile)
	if err != nil {
		panic(err.Error())
	}
	return record
}

func main() {
	if err := svdCmd.Execute(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}
