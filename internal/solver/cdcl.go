package solver

import (
	"context"
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/cnflab/satbench/internal/cnf"
)

// CDCL delegates to the gini conflict-driven solver. The adapter owns no
// search logic: it translates the formula into gini's literal encoding,
// invokes the engine, and translates the model back. Any failure inside the
// engine surfaces as an error, never as UNSAT.
type CDCL struct{}

func (s *CDCL) Name() string { return "CDCL" }

func (s *CDCL) Solve(_ context.Context, f *cnf.Formula) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cdcl: engine panic: %v", r)
		}
	}()

	g := gini.New()
	for _, clause := range f.Clauses {
		for _, lit := range clause {
			g.Add(z.Dimacs2Lit(int(lit)))
		}
		g.Add(z.LitNull)
	}

	switch g.Solve() {
	case 1:
		witness := cnf.NewAssignment(f.Variables)
		// Variables that appear in no clause are unknown to the engine;
		// any value completes the witness.
		known := int(g.MaxVar())
		for v := 1; v <= f.Variables; v++ {
			value := false
			if v <= known {
				value = g.Value(z.Var(v).Pos())
			}
			witness.Assign(v, value)
		}
		return Result{Verdict: VerdictSAT, Witness: witness}, nil
	case -1:
		return Result{Verdict: VerdictUNSAT}, nil
	default:
		return Result{}, fmt.Errorf("cdcl: engine returned an indeterminate result")
	}
}
