package bench

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cnflab/satbench/internal/bench"
)

func NewBenchCommand() *cobra.Command {
	cfg := bench.DefaultConfig()
	var configPath string

	cmd := &cobra.Command{
		Use:   "bench <path>",
		Short: "Runs every decision procedure against a .cnf file or directory of .cnf files",
		Long: `Runs every configured decision procedure against the given .cnf file, or
against every .cnf file found directly under the given directory. Inputs
are DIMACS CNF:
c
c this is a comment
c header: p cnf <number of variables> <number of clauses>
p cnf 3 2
c clauses end in zero, negative means 'not'
1 -2 3 0
-1 2 -3 0

Each (file, algorithm) pair runs in an isolated worker process under the
configured timeout while its peak resident memory is sampled. The command
exits non-zero only when the path cannot be read or yields no .cnf files;
individual verdicts never affect the exit code.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			info, err := os.Stat(args[0])
			if err != nil {
				return fmt.Errorf("path (%s) not found", args[0])
			}
			if !info.IsDir() && !strings.HasSuffix(strings.ToLower(args[0]), ".cnf") {
				return fmt.Errorf("%s is neither a directory nor a .cnf file", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				fileCfg, err := bench.LoadConfig(configPath)
				if err != nil {
					return err
				}
				// Flags given on the command line win over the file.
				flags := cmd.Flags()
				if !flags.Changed("timeout") {
					cfg.Timeout = fileCfg.Timeout
				}
				if !flags.Changed("brute-force-limit") {
					cfg.BruteForceLimit = fileCfg.BruteForceLimit
				}
				if !flags.Changed("dp-step-limit") {
					cfg.DPStepLimit = fileCfg.DPStepLimit
				}
				if !flags.Changed("sample-interval") {
					cfg.SampleInterval = fileCfg.SampleInterval
				}
				if !flags.Changed("jobs") {
					cfg.Jobs = fileCfg.Jobs
				}
				if !flags.Changed("algorithms") {
					cfg.Algorithms = fileCfg.Algorithms
				}
			}

			runner, err := bench.NewRunner(cfg)
			if err != nil {
				return err
			}
			reports, err := runner.ScanPath(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			bench.WriteReport(cmd.OutOrStdout(), reports)
			return nil
		},
	}

	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "wall-clock budget per (file, algorithm) run")
	cmd.Flags().IntVar(&cfg.BruteForceLimit, "brute-force-limit", cfg.BruteForceLimit, "variable count above which brute force is skipped")
	cmd.Flags().IntVar(&cfg.DPStepLimit, "dp-step-limit", cfg.DPStepLimit, "resolvent budget for Davis-Putnam elimination")
	cmd.Flags().DurationVar(&cfg.SampleInterval, "sample-interval", cfg.SampleInterval, "memory sampling interval")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", cfg.Jobs, "number of (file, algorithm) pairs to run concurrently")
	cmd.Flags().StringSliceVar(&cfg.Algorithms, "algorithms", cfg.Algorithms, "algorithms to run, in report order")
	cmd.Flags().StringVar(&configPath, "config", "", "JSON config file; command-line flags take precedence")

	return cmd
}
