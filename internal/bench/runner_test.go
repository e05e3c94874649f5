package bench

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cnflab/satbench/internal/solver"
)

// stubWorkerRunner builds a Runner whose worker executable is a shell script,
// so the kill and failure paths can be driven deterministically without a
// real solver run.
func stubWorkerRunner(t *testing.T, script string) *Runner {
	t.Helper()
	path := filepath.Join(t.TempDir(), "worker.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	cfg := DefaultConfig()
	cfg.Timeout = 250 * time.Millisecond
	cfg.SampleInterval = 10 * time.Millisecond
	return &Runner{cfg: cfg, exe: path}
}

func TestRunKillsWorkerOnTimeout(t *testing.T) {
	runner := stubWorkerRunner(t, "exec sleep 10\n")
	start := time.Now()
	result := runner.Run(context.Background(), "input.cnf", solver.AlgorithmDPLL)

	assert.Equal(t, solver.VerdictTimeout, result.Verdict)
	assert.Equal(t, "DPLL", result.Name)
	// The worker must not outlive the call: Run returns once the child is
	// reaped, long before the stub's sleep would end on its own.
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.GreaterOrEqual(t, result.Elapsed, 200*time.Millisecond)
}

func TestRunReportsWorkerCrashAsError(t *testing.T) {
	runner := stubWorkerRunner(t, "echo 'boom: heap exhausted' >&2\nexit 3\n")
	result := runner.Run(context.Background(), "input.cnf", solver.AlgorithmCDCL)

	assert.Equal(t, solver.VerdictError, result.Verdict)
	assert.Contains(t, result.Message, "exit status 3")
	assert.Contains(t, result.Message, "boom: heap exhausted")
}

func TestRunReportsUndecodableWorkerOutput(t *testing.T) {
	runner := stubWorkerRunner(t, "echo 'not json'\n")
	result := runner.Run(context.Background(), "input.cnf", solver.AlgorithmDPLL)

	assert.Equal(t, solver.VerdictError, result.Verdict)
	assert.Contains(t, result.Message, "undecodable worker output")
}

func TestRunPassesThroughCompletedResult(t *testing.T) {
	runner := stubWorkerRunner(t,
		`echo '{"algorithm":"dpll","name":"DPLL","verdict":"SAT","elapsed":1000000,"peakMemoryBytes":1,"witness":[1,-2]}'`+"\n")
	result := runner.Run(context.Background(), "input.cnf", solver.AlgorithmDPLL)

	require.Equal(t, solver.VerdictSAT, result.Verdict)
	assert.Equal(t, []int{1, -2}, result.Witness)
	// The parent samples the child from outside and keeps the larger of
	// the two peak observations.
	assert.GreaterOrEqual(t, result.PeakMemory, uint64(1))
}

func TestRunNeverTimesOutACompletedRun(t *testing.T) {
	// The worker finishes well within the budget; the deadline must never
	// reclassify its verdict as TIMEOUT.
	runner := stubWorkerRunner(t,
		"sleep 0.05\n"+
			`exec echo '{"algorithm":"cdcl","name":"CDCL","verdict":"UNSAT","elapsed":50000000,"peakMemoryBytes":0}'`+"\n")
	result := runner.Run(context.Background(), "input.cnf", solver.AlgorithmCDCL)

	assert.Equal(t, solver.VerdictUNSAT, result.Verdict)
	assert.Empty(t, result.Message)
}
