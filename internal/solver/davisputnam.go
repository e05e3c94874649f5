package solver

import (
	"context"
	"errors"
	"sort"

	"github.com/cnflab/satbench/internal/cnf"
)

// ErrStepLimit is returned when Davis-Putnam elimination exceeds its
// resolvent budget. Resolvent counts blow up exponentially on hard
// instances and the budget keeps a single run's memory bounded.
var ErrStepLimit = errors.New("davis-putnam: resolvent step limit exceeded")

// DavisPutnam decides satisfiability by resolution-based variable
// elimination. Each iteration eliminates the smallest variable still present:
// all pairwise resolvents of its positive and negative occurrences replace
// the two occurrence groups. The variable set strictly shrinks, so
// elimination always terminates; the clause set may grow exponentially,
// which is the cost profile this benchmark exists to expose.
type DavisPutnam struct {
	StepLimit int
}

func (s *DavisPutnam) Name() string { return "Davis-Putnam" }

func (s *DavisPutnam) Solve(_ context.Context, f *cnf.Formula) (Result, error) {
	clauses := make([]cnf.Clause, 0, len(f.Clauses))
	seen := map[string]struct{}{}
	for _, clause := range f.Clauses {
		c := normalize(clause)
		key := c.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		clauses = append(clauses, c)
	}

	steps := 0
	for len(clauses) > 0 {
		v := smallestVariable(clauses)

		var pos, neg, rest []cnf.Clause
		for _, clause := range clauses {
			switch {
			case contains(clause, cnf.Literal(v)):
				pos = append(pos, clause)
			case contains(clause, cnf.Literal(-v)):
				neg = append(neg, clause)
			default:
				rest = append(rest, clause)
			}
		}

		next := rest
		keys := map[string]struct{}{}
		for _, clause := range next {
			keys[clause.String()] = struct{}{}
		}
		for _, p := range pos {
			for _, q := range neg {
				steps++
				if s.StepLimit > 0 && steps > s.StepLimit {
					return Result{}, ErrStepLimit
				}
				resolvent, tautology := resolve(p, q, v)
				if tautology {
					continue
				}
				if len(resolvent) == 0 {
					// Empty resolvent: the formula is unsatisfiable.
					return Result{Verdict: VerdictUNSAT}, nil
				}
				key := resolvent.String()
				if _, dup := keys[key]; dup {
					continue
				}
				keys[key] = struct{}{}
				next = append(next, resolvent)
			}
		}
		clauses = next
	}

	// All clauses resolved away: satisfiable. Elimination does not retain
	// enough structure to reconstruct a witness.
	return Result{Verdict: VerdictSAT}, nil
}

// resolve forms the resolvent of p and q on variable v, reporting whether it
// is a tautology (contains some literal and its negation).
func resolve(p, q cnf.Clause, v int) (cnf.Clause, bool) {
	merged := make(cnf.Clause, 0, len(p)+len(q)-2)
	present := map[cnf.Literal]struct{}{}
	for _, side := range [2]cnf.Clause{p, q} {
		for _, lit := range side {
			if lit.Var() == v {
				continue
			}
			if _, ok := present[lit]; ok {
				continue
			}
			if _, ok := present[lit.Neg()]; ok {
				return nil, true
			}
			present[lit] = struct{}{}
			merged = append(merged, lit)
		}
	}
	return normalize(merged), false
}

// normalize returns a copy of the clause with literals in ascending variable
// order, giving every clause a canonical key for deduplication.
func normalize(c cnf.Clause) cnf.Clause {
	out := make(cnf.Clause, len(c))
	copy(out, c)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Var() != out[j].Var() {
			return out[i].Var() < out[j].Var()
		}
		return out[i] < out[j]
	})
	return out
}

func contains(c cnf.Clause, l cnf.Literal) bool {
	for _, lit := range c {
		if lit == l {
			return true
		}
	}
	return false
}

func smallestVariable(clauses []cnf.Clause) int {
	v := 0
	for _, clause := range clauses {
		for _, lit := range clause {
			if v == 0 || lit.Var() < v {
				v = lit.Var()
			}
		}
	}
	return v
}
