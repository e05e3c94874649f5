package bench

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cnflab/satbench/internal/cnf"
	"github.com/cnflab/satbench/internal/solver"
)

// Exec runs one solver against one formula in the calling process, measuring
// elapsed wall time and the process's own peak resident memory. It is the
// body of the hidden worker subcommand: solver errors and panics become
// ERROR results rather than crashes, so the parent harness always receives
// one decodable outcome per run.
func Exec(ctx context.Context, f *cnf.Formula, algorithmID string, cfg Config) RunResult {
	result := RunResult{
		Algorithm: algorithmID,
		Name:      solver.Name(algorithmID),
	}

	sampler := newMemSampler(int32(os.Getpid()), cfg.SampleInterval)
	start := time.Now()
	res, err := runSolver(ctx, f, algorithmID, cfg)
	result.Elapsed = time.Since(start)
	result.PeakMemory = sampler.Stop()

	if err != nil {
		result.Verdict = solver.VerdictError
		result.Message = err.Error()
		return result
	}
	result.Verdict = res.Verdict
	result.Message = res.Message
	if res.Verdict == solver.VerdictSAT && res.Witness != nil {
		result.Witness = res.Witness.Literals()
	}
	return result
}

func runSolver(ctx context.Context, f *cnf.Formula, algorithmID string, cfg Config) (res solver.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("solver panic: %v", r)
		}
	}()
	s, err := solver.New(algorithmID, cfg.SolverOptions())
	if err != nil {
		return solver.Result{}, err
	}
	return s.Solve(ctx, f)
}
