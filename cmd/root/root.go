package root

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cnflab/satbench/cmd/bench"

	"github.com/cnflab/satbench/cmd/worker"
)

func NewRootCmd() *cobra.Command {
	var verbose bool
	rootCmd := &cobra.Command{
		Use:   "satbench",
		Short: "satbench benchmarks SAT decision procedures on DIMACS CNF corpora",
		Long: `satbench runs brute-force enumeration, Davis-Putnam resolution, DPLL
backtracking search and a CDCL engine against every CNF file in a
directory, comparing verdicts, running time and peak memory.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	// add sub-commands
	rootCmd.AddCommand(bench.NewBenchCommand())
	rootCmd.AddCommand(worker.NewWorkerCommand())

	return rootCmd
}
