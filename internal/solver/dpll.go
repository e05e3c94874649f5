package solver

import (
	"context"

	"github.com/cnflab/satbench/internal/cnf"
)

// DPLL is backtracking search over partial assignments with unit propagation
// and pure-literal elimination. The search keeps an explicit trail of
// assigned literals plus a decision stack, so depth is bounded by the
// variable count instead of the goroutine call stack.
type DPLL struct{}

func (s *DPLL) Name() string { return "DPLL" }

func (s *DPLL) Solve(_ context.Context, f *cnf.Formula) (Result, error) {
	st := &dpllSearch{
		f:      f,
		assign: cnf.NewAssignment(f.Variables),
	}

	for {
		if st.propagate() {
			// Conflict: rewind to the innermost decision with an
			// untried polarity. None left means UNSAT.
			flipped := false
			for len(st.decisions) > 0 {
				d := &st.decisions[len(st.decisions)-1]
				st.rewind(d.trailMark)
				if d.tried {
					st.decisions = st.decisions[:len(st.decisions)-1]
					continue
				}
				d.tried = true
				d.lit = d.lit.Neg()
				st.push(d.lit)
				flipped = true
				break
			}
			if !flipped {
				return Result{Verdict: VerdictUNSAT}, nil
			}
			continue
		}

		st.eliminatePure()

		if st.allSatisfied() {
			witness := st.assign.Copy()
			witness.Complete()
			return Result{Verdict: VerdictSAT, Witness: witness}, nil
		}

		lit := st.chooseDecision()
		st.decisions = append(st.decisions, dpllDecision{trailMark: len(st.trail), lit: lit})
		st.push(lit)
	}
}

// dpllDecision records one branch point. lit is the polarity currently under
// trial; tried marks that the second polarity is in play.
type dpllDecision struct {
	trailMark int
	lit       cnf.Literal
	tried     bool
}

type dpllSearch struct {
	f         *cnf.Formula
	assign    cnf.Assignment
	trail     []cnf.Literal
	decisions []dpllDecision
}

// push assigns the literal true and records it on the trail.
func (st *dpllSearch) push(lit cnf.Literal) {
	st.assign.Assign(lit.Var(), lit.IsPos())
	st.trail = append(st.trail, lit)
}

// rewind unassigns every trail entry above mark.
func (st *dpllSearch) rewind(mark int) {
	for i := len(st.trail) - 1; i >= mark; i-- {
		st.assign.Unassign(st.trail[i].Var())
	}
	st.trail = st.trail[:mark]
}

// propagate assigns unit-forced literals until fixpoint, reporting true when
// a clause is falsified.
func (st *dpllSearch) propagate() bool {
	for {
		var unit cnf.Literal
		for _, clause := range st.f.Clauses {
			satisfied := false
			unassignedCount := 0
			var unassigned cnf.Literal
			for _, lit := range clause {
				if st.assign.LitTrue(lit) {
					satisfied = true
					break
				}
				if !st.assign.LitFalse(lit) {
					unassignedCount++
					unassigned = lit
				}
			}
			if satisfied {
				continue
			}
			if unassignedCount == 0 {
				return true
			}
			if unassignedCount == 1 && unit == 0 {
				unit = unassigned
			}
		}
		if unit == 0 {
			return false
		}
		st.push(unit)
	}
}

// eliminatePure assigns every variable that occurs with a single polarity
// across the unsatisfied clauses. Pure assignments cannot falsify a clause
// and go on the trail like propagated literals.
func (st *dpllSearch) eliminatePure() {
	const (
		posSeen = 1
		negSeen = 2
	)
	occurs := make([]uint8, st.f.Variables+1)
	for _, clause := range st.f.Clauses {
		if st.clauseSatisfied(clause) {
			continue
		}
		for _, lit := range clause {
			if st.assign.Assigned(lit.Var()) {
				continue
			}
			if lit.IsPos() {
				occurs[lit.Var()] |= posSeen
			} else {
				occurs[lit.Var()] |= negSeen
			}
		}
	}
	for v := 1; v <= st.f.Variables; v++ {
		switch occurs[v] {
		case posSeen:
			st.push(cnf.Literal(v))
		case negSeen:
			st.push(cnf.Literal(-v))
		}
	}
}

func (st *dpllSearch) clauseSatisfied(clause cnf.Clause) bool {
	for _, lit := range clause {
		if st.assign.LitTrue(lit) {
			return true
		}
	}
	return false
}

func (st *dpllSearch) allSatisfied() bool {
	for _, clause := range st.f.Clauses {
		if !st.clauseSatisfied(clause) {
			return false
		}
	}
	return true
}

// chooseDecision picks the first unassigned literal of the first unsatisfied
// clause. Only called when at least one clause is unsatisfied, and
// propagation guarantees such a clause has an unassigned literal.
func (st *dpllSearch) chooseDecision() cnf.Literal {
	for _, clause := range st.f.Clauses {
		if st.clauseSatisfied(clause) {
			continue
		}
		for _, lit := range clause {
			if !st.assign.Assigned(lit.Var()) {
				return lit
			}
		}
	}
	panic("dpll: no decision candidate in an unsatisfied formula")
}
