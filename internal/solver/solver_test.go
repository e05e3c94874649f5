package solver_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cnflab/satbench/internal/cnf"
	"github.com/cnflab/satbench/internal/solver"
)

func mustParse(t *testing.T, text string) *cnf.Formula {
	t.Helper()
	f, err := cnf.Parse(strings.NewReader(text))
	require.NoError(t, err)
	return f
}

func exactSolvers(t *testing.T) []solver.Solver {
	t.Helper()
	opts := solver.Options{BruteForceLimit: 20, DPStepLimit: 100000}
	var solvers []solver.Solver
	for _, id := range solver.Algorithms() {
		s, err := solver.New(id, opts)
		require.NoError(t, err)
		solvers = append(solvers, s)
	}
	return solvers
}

// All four procedures must agree on SAT/UNSAT, and every witness they return
// must satisfy the original formula.
func TestSolverAgreement(t *testing.T) {
	type tc struct {
		Name    string
		Problem string
		Verdict solver.Verdict
	}

	for _, tt := range []tc{
		{
			Name:    "contradictory units",
			Problem: "p cnf 1 2\n1 0\n-1 0\n",
			Verdict: solver.VerdictUNSAT,
		},
		{
			Name:    "single ternary clause",
			Problem: "p cnf 3 1\n1 2 3 0\n",
			Verdict: solver.VerdictSAT,
		},
		{
			Name:    "empty clause set",
			Problem: "p cnf 0 0\n",
			Verdict: solver.VerdictSAT,
		},
		{
			Name:    "unit propagation chain",
			Problem: "p cnf 2 3\n1 0\n-1 2 0\n-2 0\n",
			Verdict: solver.VerdictUNSAT,
		},
		{
			Name:    "two pigeons one hole",
			Problem: "p cnf 2 3\n1 0\n2 0\n-1 -2 0\n",
			Verdict: solver.VerdictUNSAT,
		},
		{
			Name: "satisfiable 3-sat instance",
			Problem: "p cnf 5 6\n" +
				"1 -2 3 0\n" +
				"-1 2 4 0\n" +
				"2 -3 -4 0\n" +
				"-2 3 5 0\n" +
				"1 4 -5 0\n" +
				"-3 -4 5 0\n",
			Verdict: solver.VerdictSAT,
		},
		{
			Name: "unsatisfiable 3-sat core",
			Problem: "p cnf 3 8\n" +
				"1 2 3 0\n" +
				"1 2 -3 0\n" +
				"1 -2 3 0\n" +
				"1 -2 -3 0\n" +
				"-1 2 3 0\n" +
				"-1 2 -3 0\n" +
				"-1 -2 3 0\n" +
				"-1 -2 -3 0\n",
			Verdict: solver.VerdictUNSAT,
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			f := mustParse(t, tt.Problem)
			for _, s := range exactSolvers(t) {
				res, err := s.Solve(context.Background(), f)
				require.NoError(t, err, s.Name())
				assert.Equal(t, tt.Verdict, res.Verdict, s.Name())
				if res.Verdict == solver.VerdictSAT && res.Witness != nil {
					assert.True(t, res.Witness.Satisfies(f), "%s witness must satisfy the formula", s.Name())
				}
			}
		})
	}
}

// Brute force declines above its variable threshold; the other procedures
// still run the instance to completion.
func TestBruteForceThreshold(t *testing.T) {
	f := mustParse(t, "p cnf 25 1\n1 2 3 0\n")

	for _, s := range exactSolvers(t) {
		res, err := s.Solve(context.Background(), f)
		require.NoError(t, err, s.Name())
		if s.Name() == "Brute-Force" {
			assert.Equal(t, solver.VerdictSkipped, res.Verdict)
			assert.Equal(t, "n>20", res.Message)
		} else {
			assert.Equal(t, solver.VerdictSAT, res.Verdict, s.Name())
		}
	}
}

func TestNewRejectsUnknownAlgorithm(t *testing.T) {
	_, err := solver.New("simulated-annealing", solver.Options{})
	assert.Error(t, err)
}

func TestAlgorithmOrder(t *testing.T) {
	assert.Equal(t, []string{"brute-force", "davis-putnam", "dpll", "cdcl"}, solver.Algorithms())
}

func TestNames(t *testing.T) {
	assert.Equal(t, "Brute-Force", solver.Name(solver.AlgorithmBruteForce))
	assert.Equal(t, "Davis-Putnam", solver.Name(solver.AlgorithmDavisPutnam))
	assert.Equal(t, "DPLL", solver.Name(solver.AlgorithmDPLL))
	assert.Equal(t, "CDCL", solver.Name(solver.AlgorithmCDCL))
}
