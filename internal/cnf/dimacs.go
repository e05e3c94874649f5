package cnf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseError describes a malformed DIMACS input.
// see: https://logic.pdmi.ras.ru/~basolver/dimacs.html
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dimacs: line %d: %s", e.Line, e.Msg)
}

// Parse reads a DIMACS CNF problem and returns the in-memory Formula.
//
// Comment lines start with 'c'. Exactly one problem line 'p cnf <n> <m>'
// declares the variable and clause counts. Clauses are streams of non-zero
// literals terminated by 0 and may span multiple lines. A line starting with
// '%' ends the input and an inline '%' truncates its line; some benchmark
// corpora (SATLIB) carry such trailers.
//
// Duplicate literals within a clause are dropped. A clause containing a
// variable with both polarities is trivially true: it counts toward the
// declared clause total but is excluded from the returned clause set.
func Parse(r io.Reader) (*Formula, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		lineNo     int
		headerSeen bool
		numVars    int
		numClauses int
		clauses    []Clause
		parsed     int
		current    Clause
		polarity   = map[int]Literal{}
		tautology  bool
	)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}
		if strings.HasPrefix(line, "%") {
			break
		}
		if i := strings.IndexByte(line, '%'); i >= 0 {
			line = strings.TrimSpace(line[:i])
			if line == "" {
				continue
			}
		}

		if strings.HasPrefix(line, "p") {
			if headerSeen {
				return nil, &ParseError{Line: lineNo, Msg: "duplicate problem line"}
			}
			fields := strings.Fields(line)
			if len(fields) != 4 || fields[1] != "cnf" {
				return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("invalid problem line (%s), want 'p cnf <variables> <clauses>'", line)}
			}
			var err error
			if numVars, err = strconv.Atoi(fields[2]); err != nil || numVars < 0 {
				return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("invalid variable count (%s)", fields[2])}
			}
			if numClauses, err = strconv.Atoi(fields[3]); err != nil || numClauses < 0 {
				return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("invalid clause count (%s)", fields[3])}
			}
			headerSeen = true
			clauses = make([]Clause, 0, numClauses)
			continue
		}

		if !headerSeen {
			return nil, &ParseError{Line: lineNo, Msg: "clause before problem line"}
		}

		for _, tok := range strings.Fields(line) {
			val, err := strconv.Atoi(tok)
			if err != nil {
				return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("invalid literal (%s)", tok)}
			}
			if val == 0 {
				if len(current) == 0 && !tautology {
					return nil, &ParseError{Line: lineNo, Msg: "empty clause"}
				}
				parsed++
				if !tautology {
					clauses = append(clauses, current)
				}
				current = nil
				tautology = false
				polarity = map[int]Literal{}
				continue
			}
			lit := Literal(val)
			if lit.Var() > numVars {
				return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("literal %d exceeds declared variable count %d", val, numVars)}
			}
			prev, seen := polarity[lit.Var()]
			if seen {
				if prev != lit {
					// Both polarities present: the clause is always true.
					tautology = true
				}
				continue
			}
			polarity[lit.Var()] = lit
			current = append(current, lit)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dimacs: reading input: %w", err)
	}

	if !headerSeen {
		return nil, &ParseError{Line: lineNo, Msg: "missing problem line 'p cnf <variables> <clauses>'"}
	}
	if len(current) > 0 || tautology {
		return nil, &ParseError{Line: lineNo, Msg: "unterminated clause, expected trailing 0"}
	}
	if parsed != numClauses {
		return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("clause count mismatch: header declares %d, found %d", numClauses, parsed)}
	}

	return &Formula{Variables: numVars, Clauses: clauses}, nil
}
