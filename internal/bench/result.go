package bench

import (
	"time"

	"github.com/cnflab/satbench/internal/solver"
)

// RunResult is the outcome of one (file, algorithm) pair. It is produced
// once per run and immutable afterwards. Witness holds a satisfying total
// assignment as signed DIMACS literals when the verdict is SAT and the
// procedure can produce one.
//
// RunResult is also the wire format between the harness and its worker
// processes, JSON-encoded on the worker's stdout.
type RunResult struct {
	Algorithm  string         `json:"algorithm"`
	Name       string         `json:"name"`
	Verdict    solver.Verdict `json:"verdict"`
	Elapsed    time.Duration  `json:"elapsed"`
	PeakMemory uint64         `json:"peakMemoryBytes"`
	Witness    []int          `json:"witness,omitempty"`
	Message    string         `json:"message,omitempty"`
}
