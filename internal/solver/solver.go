package solver

import (
	"context"
	"fmt"

	"github.com/cnflab/satbench/internal/cnf"
)

// Verdict is the outcome of one decision procedure on one formula.
type Verdict string

const (
	VerdictSAT     Verdict = "SAT"
	VerdictUNSAT   Verdict = "UNSAT"
	VerdictTimeout Verdict = "TIMEOUT"
	VerdictError   Verdict = "ERROR"
	VerdictSkipped Verdict = "SKIPPED"
)

// Result is a solver's answer. Witness is a total satisfying assignment when
// the solver can produce one; Davis-Putnam reports SAT without a witness
// since elimination resolves the clauses away. Message carries the reason
// for a SKIPPED verdict.
type Result struct {
	Verdict Verdict
	Witness cnf.Assignment
	Message string
}

// Solver is a decision procedure for CNF satisfiability. Implementations are
// deterministic and keep no state across calls; the harness is written only
// against this interface.
type Solver interface {
	Name() string
	Solve(ctx context.Context, f *cnf.Formula) (Result, error)
}

// Algorithm identifiers, in the fixed benchmark order.
const (
	AlgorithmBruteForce  = "brute-force"
	AlgorithmDavisPutnam = "davis-putnam"
	AlgorithmDPLL        = "dpll"
	AlgorithmCDCL        = "cdcl"
)

// Algorithms returns all algorithm identifiers in benchmark order.
func Algorithms() []string {
	return []string{AlgorithmBruteForce, AlgorithmDavisPutnam, AlgorithmDPLL, AlgorithmCDCL}
}

// Options carries the per-solver policy knobs.
type Options struct {
	// BruteForceLimit is the variable count above which brute force
	// declines to run.
	BruteForceLimit int

	// DPStepLimit bounds the number of resolvents Davis-Putnam may
	// generate before giving up with an error.
	DPStepLimit int
}

// Name returns the display name of the algorithm registered under id, or id
// itself when unknown.
func Name(id string) string {
	s, err := New(id, Options{})
	if err != nil {
		return id
	}
	return s.Name()
}

// New instantiates the solver registered under id.
func New(id string, opts Options) (Solver, error) {
	switch id {
	case AlgorithmBruteForce:
		return &BruteForce{Limit: opts.BruteForceLimit}, nil
	case AlgorithmDavisPutnam:
		return &DavisPutnam{StepLimit: opts.DPStepLimit}, nil
	case AlgorithmDPLL:
		return &DPLL{}, nil
	case AlgorithmCDCL:
		return &CDCL{}, nil
	default:
		return nil, fmt.Errorf("unknown algorithm %q", id)
	}
}
