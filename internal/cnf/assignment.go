package cnf

const (
	unassigned int8 = iota
	assignedTrue
	assignedFalse
)

// Assignment is a partial mapping from variable to truth value, indexed by
// 1-based variable. A variable, once assigned within a search branch, is not
// reassigned without an explicit Unassign.
type Assignment []int8

// NewAssignment returns an empty assignment over n variables.
func NewAssignment(n int) Assignment {
	return make(Assignment, n+1)
}

// Assign binds variable v to value. Index 0 is reserved and never bound.
func (a Assignment) Assign(v int, value bool) {
	if value {
		a[v] = assignedTrue
	} else {
		a[v] = assignedFalse
	}
}

// Unassign removes the binding for variable v.
func (a Assignment) Unassign(v int) {
	a[v] = unassigned
}

// Assigned returns true if variable v has a binding.
func (a Assignment) Assigned(v int) bool {
	return a[v] != unassigned
}

// Value returns the bound value of variable v, false if unbound.
func (a Assignment) Value(v int) bool {
	return a[v] == assignedTrue
}

// LitTrue returns true if the literal is satisfied under the assignment.
func (a Assignment) LitTrue(l Literal) bool {
	if l > 0 {
		return a[int(l)] == assignedTrue
	}
	return a[int(-l)] == assignedFalse
}

// LitFalse returns true if the literal is falsified under the assignment.
func (a Assignment) LitFalse(l Literal) bool {
	if l > 0 {
		return a[int(l)] == assignedFalse
	}
	return a[int(-l)] == assignedTrue
}

// Complete binds every unbound variable to false, making the assignment a
// total witness.
func (a Assignment) Complete() {
	for v := 1; v < len(a); v++ {
		if a[v] == unassigned {
			a[v] = assignedFalse
		}
	}
}

// Copy returns an independent copy of the assignment.
func (a Assignment) Copy() Assignment {
	dst := make(Assignment, len(a))
	copy(dst, a)
	return dst
}

// Satisfies reports whether every clause of f has at least one true literal
// under the assignment.
func (a Assignment) Satisfies(f *Formula) bool {
	for _, clause := range f.Clauses {
		sat := false
		for _, lit := range clause {
			if a.LitTrue(lit) {
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

// Literals returns the assignment as signed DIMACS literals, one per bound
// variable in ascending order.
func (a Assignment) Literals() []int {
	lits := make([]int, 0, len(a))
	for v := 1; v < len(a); v++ {
		switch a[v] {
		case assignedTrue:
			lits = append(lits, v)
		case assignedFalse:
			lits = append(lits, -v)
		}
	}
	return lits
}

// AssignmentFromLiterals rebuilds an assignment over n variables from signed
// DIMACS literals. Literals with magnitude above n are ignored.
func AssignmentFromLiterals(n int, lits []int) Assignment {
	a := NewAssignment(n)
	for _, l := range lits {
		v := l
		if v < 0 {
			v = -v
		}
		if v == 0 || v > n {
			continue
		}
		a.Assign(v, l > 0)
	}
	return a
}
