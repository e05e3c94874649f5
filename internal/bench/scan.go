package bench

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/cnflab/satbench/internal/cnf"
	"github.com/cnflab/satbench/internal/solver"
)

// ErrNoInputs is returned when the scanned directory contains no .cnf files.
var ErrNoInputs = errors.New("no .cnf files found")

// FileReport aggregates the outcomes for one input file. Results holds one
// entry per configured algorithm in benchmark order. A file that fails to
// parse carries ParseErr instead and is otherwise skipped; the scan
// continues with the remaining files.
type FileReport struct {
	File      string
	Variables int
	Clauses   int
	ParseErr  error
	Results   []RunResult
}

// ScanPath accepts either a directory of .cnf files or a single .cnf file
// and benchmarks every configured algorithm against the inputs found.
func (r *Runner) ScanPath(ctx context.Context, path string) ([]FileReport, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if info.IsDir() {
		return r.Scan(ctx, path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".cnf") {
		return nil, fmt.Errorf("%w at %s", ErrNoInputs, path)
	}
	return r.runFiles(ctx, filepath.Dir(path), []string{filepath.Base(path)}), nil
}

// Scan iterates all .cnf files directly under dir (non-recursive, sorted)
// and runs every configured algorithm against each. (file, algorithm) pairs
// execute concurrently up to Config.Jobs; each pair writes only its own
// result slot, so aggregation needs no locking. An error is returned only
// when the directory is unreadable or holds no inputs.
func (r *Runner) Scan(ctx context.Context, dir string) ([]FileReport, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory (%s): %w", dir, err)
	}
	names := lo.FilterMap(entries, func(e os.DirEntry, _ int) (string, bool) {
		return e.Name(), !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ".cnf")
	})
	sort.Strings(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoInputs, dir)
	}
	return r.runFiles(ctx, dir, names), nil
}

func (r *Runner) runFiles(ctx context.Context, dir string, names []string) []FileReport {
	reports := make([]FileReport, len(names))
	var group errgroup.Group
	group.SetLimit(r.cfg.Jobs)

	for i, name := range names {
		report := &reports[i]
		report.File = name
		path := filepath.Join(dir, name)

		formula, err := parseFile(path)
		if err != nil {
			log.Infof("skipping %s: %s", name, err)
			report.ParseErr = err
			continue
		}
		log.Infof("benchmarking %s: %d variables, %d clauses", name, formula.Variables, formula.NumClauses())
		report.Variables = formula.Variables
		report.Clauses = formula.NumClauses()
		report.Results = make([]RunResult, len(r.cfg.Algorithms))

		for j, algorithmID := range r.cfg.Algorithms {
			slot := &report.Results[j]
			// Decline brute force up front instead of paying for a
			// worker that would immediately refuse to run.
			if algorithmID == solver.AlgorithmBruteForce && formula.Variables > r.cfg.BruteForceLimit {
				*slot = RunResult{
					Algorithm: algorithmID,
					Name:      solver.Name(algorithmID),
					Verdict:   solver.VerdictSkipped,
					Message:   fmt.Sprintf("n>%d", r.cfg.BruteForceLimit),
				}
				continue
			}
			algorithmID := algorithmID
			group.Go(func() error {
				*slot = r.Run(ctx, path, algorithmID)
				return nil
			})
		}
	}
	// Workers report failures through their result slots, never as errors.
	_ = group.Wait()
	return reports
}

func parseFile(path string) (*cnf.Formula, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()
	return cnf.Parse(file)
}
