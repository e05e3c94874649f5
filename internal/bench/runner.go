package bench

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/cnflab/satbench/internal/solver"
)

// Runner executes (file, algorithm) pairs in isolated child processes. The
// search loops are CPU-bound and non-cooperative, so timeout enforcement is
// preemptive: on deadline the child is killed outright. A stuck or
// memory-exhausting run can therefore never corrupt the harness or a
// sibling run, and killing the process releases everything it held.
type Runner struct {
	cfg Config
	exe string
}

func NewRunner(cfg Config) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locating own executable: %w", err)
	}
	return &Runner{cfg: cfg, exe: exe}, nil
}

// Run executes one algorithm against one file inside a worker process and
// waits for completion or timeout. The worker never outlives this call.
func (r *Runner) Run(ctx context.Context, path string, algorithmID string) RunResult {
	result := RunResult{
		Algorithm: algorithmID,
		Name:      solver.Name(algorithmID),
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.exe, "worker",
		"--algorithm", algorithmID,
		"--brute-force-limit", strconv.Itoa(r.cfg.BruteForceLimit),
		"--dp-step-limit", strconv.Itoa(r.cfg.DPStepLimit),
		"--sample-interval", r.cfg.SampleInterval.String(),
		path,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Start(); err != nil {
		result.Verdict = solver.VerdictError
		result.Message = fmt.Sprintf("starting worker: %s", err)
		return result
	}
	log.Debugf("worker %d started: algorithm=%s file=%s", cmd.Process.Pid, algorithmID, path)

	sampler := newMemSampler(int32(cmd.Process.Pid), r.cfg.SampleInterval)
	waitErr := cmd.Wait()
	result.PeakMemory = sampler.Stop()
	result.Elapsed = time.Since(start)

	// A worker that completed normally wins over a deadline that fired in
	// the instant between completion and Wait returning: TIMEOUT is only
	// reported for runs that were actually killed.
	if waitErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			log.Debugf("worker %d killed after %s timeout", cmd.Process.Pid, r.cfg.Timeout)
			result.Verdict = solver.VerdictTimeout
			return result
		}
		result.Verdict = solver.VerdictError
		result.Message = workerFailure(waitErr, stderr.Bytes())
		return result
	}

	var reported RunResult
	if err := json.Unmarshal(stdout.Bytes(), &reported); err != nil {
		result.Verdict = solver.VerdictError
		result.Message = fmt.Sprintf("undecodable worker output: %s", err)
		return result
	}
	// The worker samples its own RSS from the inside; keep whichever
	// observation is larger.
	if reported.PeakMemory < result.PeakMemory {
		reported.PeakMemory = result.PeakMemory
	}
	return reported
}

func workerFailure(waitErr error, stderr []byte) string {
	if msg := strings.TrimSpace(string(stderr)); msg != "" {
		return fmt.Sprintf("%s: %s", waitErr, lastLine(msg))
	}
	return waitErr.Error()
}

func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
