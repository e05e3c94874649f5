package solver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cnflab/satbench/internal/solver"
)

func TestDavisPutnamEmptyResolvent(t *testing.T) {
	f := mustParse(t, "p cnf 1 2\n1 0\n-1 0\n")
	res, err := (&solver.DavisPutnam{StepLimit: 100000}).Solve(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, solver.VerdictUNSAT, res.Verdict)
}

func TestDavisPutnamDiscardsTautologicalResolvents(t *testing.T) {
	// Resolving (x1 ∨ x2) with (¬x1 ∨ ¬x2) on x1 yields the tautology
	// (x2 ∨ ¬x2). With it discarded, no clauses remain: satisfiable.
	f := mustParse(t, "p cnf 2 2\n1 2 0\n-1 -2 0\n")
	res, err := (&solver.DavisPutnam{StepLimit: 100000}).Solve(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, solver.VerdictSAT, res.Verdict)
}

func TestDavisPutnamStepLimit(t *testing.T) {
	// Eliminating x1 forms two resolvent pairs; a budget of one trips.
	f := mustParse(t, "p cnf 4 3\n1 2 0\n-1 3 0\n-1 4 0\n")
	_, err := (&solver.DavisPutnam{StepLimit: 1}).Solve(context.Background(), f)
	require.Error(t, err)
	assert.ErrorIs(t, err, solver.ErrStepLimit)
}

func TestDavisPutnamTerminatesOnDenseInstance(t *testing.T) {
	// A dense unsatisfiable instance: elimination must terminate because
	// the variable set strictly shrinks each iteration.
	f := mustParse(t, "p cnf 3 8\n1 2 3 0\n1 2 -3 0\n1 -2 3 0\n1 -2 -3 0\n-1 2 3 0\n-1 2 -3 0\n-1 -2 3 0\n-1 -2 -3 0\n")
	res, err := (&solver.DavisPutnam{StepLimit: 100000}).Solve(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, solver.VerdictUNSAT, res.Verdict)
}

func TestDavisPutnamReportsSATWithoutWitness(t *testing.T) {
	f := mustParse(t, "p cnf 3 1\n1 2 3 0\n")
	res, err := (&solver.DavisPutnam{StepLimit: 100000}).Solve(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, solver.VerdictSAT, res.Verdict)
	assert.Nil(t, res.Witness)
}
