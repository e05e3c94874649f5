package worker

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cnflab/satbench/internal/bench"
	"github.com/cnflab/satbench/internal/cnf"
)

// NewWorkerCommand returns the hidden subcommand that executes a single
// (file, algorithm) run and writes its RunResult as JSON to stdout. The
// bench harness spawns it as a child process so a run can be killed
// preemptively on timeout and its memory observed from outside.
func NewWorkerCommand() *cobra.Command {
	cfg := bench.DefaultConfig()
	var algorithmID string

	cmd := &cobra.Command{
		Use:    "worker <file>",
		Hidden: true,
		Args:   cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening cnf file (%s): %w", args[0], err)
			}
			defer file.Close()

			formula, err := cnf.Parse(file)
			if err != nil {
				return fmt.Errorf("parsing cnf file (%s): %w", args[0], err)
			}

			result := bench.Exec(cmd.Context(), formula, algorithmID, cfg)
			return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
		},
	}

	cmd.Flags().StringVar(&algorithmID, "algorithm", "", "algorithm identifier to run")
	_ = cmd.MarkFlagRequired("algorithm")
	cmd.Flags().IntVar(&cfg.BruteForceLimit, "brute-force-limit", cfg.BruteForceLimit, "variable count above which brute force is skipped")
	cmd.Flags().IntVar(&cfg.DPStepLimit, "dp-step-limit", cfg.DPStepLimit, "resolvent budget for Davis-Putnam elimination")
	cmd.Flags().DurationVar(&cfg.SampleInterval, "sample-interval", cfg.SampleInterval, "memory sampling interval")

	return cmd
}
