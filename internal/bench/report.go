package bench

import (
	"fmt"
	"io"

	"github.com/samber/lo"

	"github.com/cnflab/satbench/internal/solver"
)

// WriteReport renders one plain-text block per file:
//
//	=== <filename> ===
//	Vars: <n>, Clauses: <m>
//	-- <AlgorithmName>   <Verdict>[, <elapsed>s, <peakMemoryMB>MB]
//
// followed by a verdict summary across all runs.
func WriteReport(w io.Writer, reports []FileReport) {
	for _, report := range reports {
		fmt.Fprintf(w, "=== %s ===\n", report.File)
		if report.ParseErr != nil {
			fmt.Fprintf(w, "parse error: %s\n\n", report.ParseErr)
			continue
		}
		fmt.Fprintf(w, "Vars: %d, Clauses: %d\n", report.Variables, report.Clauses)
		for _, result := range report.Results {
			fmt.Fprintf(w, "-- %-12s %s\n", result.Name, formatOutcome(result))
		}
		fmt.Fprintln(w)
	}

	runs := lo.FlatMap(reports, func(r FileReport, _ int) []RunResult { return r.Results })
	counts := lo.CountValuesBy(runs, func(r RunResult) solver.Verdict { return r.Verdict })
	fmt.Fprintf(w, "%d files, %d runs: %d SAT, %d UNSAT, %d TIMEOUT, %d ERROR, %d SKIPPED\n",
		len(reports), len(runs),
		counts[solver.VerdictSAT], counts[solver.VerdictUNSAT],
		counts[solver.VerdictTimeout], counts[solver.VerdictError],
		counts[solver.VerdictSkipped])
}

func formatOutcome(result RunResult) string {
	switch result.Verdict {
	case solver.VerdictSAT, solver.VerdictUNSAT:
		return fmt.Sprintf("%s, %.2fs, %.1fMB",
			result.Verdict, result.Elapsed.Seconds(), float64(result.PeakMemory)/(1024*1024))
	case solver.VerdictSkipped:
		return fmt.Sprintf("SKIPPED (%s)", result.Message)
	case solver.VerdictTimeout:
		return "TIMEOUT"
	case solver.VerdictError:
		if result.Message != "" {
			return fmt.Sprintf("ERROR (%s)", result.Message)
		}
		return "ERROR"
	default:
		return string(result.Verdict)
	}
}
