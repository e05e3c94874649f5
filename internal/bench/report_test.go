package bench

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cnflab/satbench/internal/solver"
)

func TestWriteReport(t *testing.T) {
	reports := []FileReport{
		{
			File:      "easy.cnf",
			Variables: 3,
			Clauses:   2,
			Results: []RunResult{
				{Name: "Brute-Force", Verdict: solver.VerdictSkipped, Message: "n>20"},
				{Name: "Davis-Putnam", Verdict: solver.VerdictUNSAT, Elapsed: 1234 * time.Millisecond, PeakMemory: 13107200},
				{Name: "DPLL", Verdict: solver.VerdictTimeout},
				{Name: "CDCL", Verdict: solver.VerdictError, Message: "engine panic"},
			},
		},
		{
			File:     "broken.cnf",
			ParseErr: errors.New("dimacs: line 1: missing problem line 'p cnf <variables> <clauses>'"),
		},
	}

	var buf bytes.Buffer
	WriteReport(&buf, reports)

	want := "=== easy.cnf ===\n" +
		"Vars: 3, Clauses: 2\n" +
		"-- Brute-Force  SKIPPED (n>20)\n" +
		"-- Davis-Putnam UNSAT, 1.23s, 12.5MB\n" +
		"-- DPLL         TIMEOUT\n" +
		"-- CDCL         ERROR (engine panic)\n" +
		"\n" +
		"=== broken.cnf ===\n" +
		"parse error: dimacs: line 1: missing problem line 'p cnf <variables> <clauses>'\n" +
		"\n" +
		"2 files, 4 runs: 0 SAT, 1 UNSAT, 1 TIMEOUT, 1 ERROR, 1 SKIPPED\n"
	assert.Equal(t, want, buf.String())
}

func TestFormatOutcomeSAT(t *testing.T) {
	got := formatOutcome(RunResult{
		Verdict:    solver.VerdictSAT,
		Elapsed:    50 * time.Millisecond,
		PeakMemory: 2 * 1024 * 1024,
	})
	assert.Equal(t, "SAT, 0.05s, 2.0MB", got)
}
