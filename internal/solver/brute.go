package solver

import (
	"context"
	"fmt"

	"github.com/cnflab/satbench/internal/cnf"
)

// BruteForce enumerates all 2^n total assignments as a binary counter over
// the variables 1..n and reports the first satisfying one. There is no
// pruning, so it declines to run above Limit variables rather than stall the
// harness before the timeout engages.
type BruteForce struct {
	Limit int
}

func (s *BruteForce) Name() string { return "Brute-Force" }

func (s *BruteForce) Solve(_ context.Context, f *cnf.Formula) (Result, error) {
	n := f.Variables
	if n > s.Limit {
		return Result{Verdict: VerdictSkipped, Message: fmt.Sprintf("n>%d", s.Limit)}, nil
	}
	if n > 62 {
		// The enumeration counter is a uint64.
		return Result{Verdict: VerdictSkipped, Message: "n>62"}, nil
	}

	total := uint64(1) << n
	for mask := uint64(0); mask < total; mask++ {
		if satisfiedBy(f, mask) {
			witness := cnf.NewAssignment(n)
			for v := 1; v <= n; v++ {
				witness.Assign(v, mask>>(v-1)&1 == 1)
			}
			return Result{Verdict: VerdictSAT, Witness: witness}, nil
		}
	}
	return Result{Verdict: VerdictUNSAT}, nil
}

// satisfiedBy evaluates the formula under the total assignment encoded in
// mask, where bit v-1 is the value of variable v.
func satisfiedBy(f *cnf.Formula, mask uint64) bool {
	for _, clause := range f.Clauses {
		sat := false
		for _, lit := range clause {
			value := mask>>(lit.Var()-1)&1 == 1
			if value == lit.IsPos() {
				sat = true
				break
			}
		}
		if !sat {
			return false
		}
	}
	return true
}
