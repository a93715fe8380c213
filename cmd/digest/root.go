package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd is the base command when digest-minimizer is called without
// any subcommands.
var RootCmd = &cobra.Command{
	Use:   "digest-minimizer",
	Short: "Streaming k-mer minimizer digestion for DNA sequences",
	Long: `digest-minimizer - streaming k-mer minimizer digestion

A command-line tool for digesting DNA sequences into minimizer sketches
using a rolling ntHash, with a choice of ModMinimizer, WindowMinimizer,
or Syncmer selection schemes.
`,
}

// Execute adds all child commands to RootCmd and runs it. Called once
// from main.main().
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().BoolP("verbose", "", false, "print verbose information")
}
