package cnf

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Literal is a signed DIMACS literal. The magnitude identifies the variable,
// the sign identifies the polarity. Zero is never a valid literal.
type Literal int

// Var returns the 1-based variable index of the literal.
func (l Literal) Var() int {
	if l < 0 {
		return int(-l)
	}
	return int(l)
}

// Neg returns the literal with the opposite polarity.
func (l Literal) Neg() Literal {
	return -l
}

// IsPos returns true if the literal asserts its variable true.
func (l Literal) IsPos() bool {
	return l > 0
}

func (l Literal) String() string {
	return strconv.Itoa(int(l))
}

// Clause is a disjunction of literals. Well-formed clauses carry no duplicate
// literals and no variable with both polarities; the parser enforces both.
type Clause []Literal

func (c Clause) String() string {
	lits := make([]string, len(c))
	for i, l := range c {
		lits[i] = l.String()
	}
	return strings.Join(lits, " ")
}

// Formula is a conjunction of clauses over the variables 1..Variables.
// A Formula is immutable after parsing; solvers must copy the clause set
// before mutating it.
type Formula struct {
	Variables int
	Clauses   []Clause
}

// NumClauses returns the number of clauses in the formula.
func (f *Formula) NumClauses() int {
	return len(f.Clauses)
}

// Serialize writes the formula back out in DIMACS CNF format.
func (f *Formula) Serialize(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "p cnf %d %d\n", f.Variables, len(f.Clauses)); err != nil {
		return err
	}
	for _, clause := range f.Clauses {
		for _, lit := range clause {
			if _, err := fmt.Fprintf(w, "%d ", lit); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "0"); err != nil {
			return err
		}
	}
	return nil
}
