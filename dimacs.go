package dpll

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseDIMACS parses text in the DIMACS CNF format: comment lines start
// with 'c', a single problem line "p cnf <num_vars> <num_clauses>"
// declares the variable count, and each remaining line is a
// whitespace-separated list of nonzero signed integers terminated by 0.
//
// Its only contract with the solver is to deliver the clause stream and
// the declared variable count; everything else here is just getting text
// off the wire into that shape. A couple of non-standard conveniences are
// accepted, matching common DIMACS producers in the wild:
//
//   - Comments may appear anywhere, not just in the preamble.
//   - The problem line may be missing, in which case the variable count
//     is taken to be the largest variable referenced by any clause.
func ParseDIMACS(r io.Reader) (numVars int, clauses [][]int, err error) {
	var declaredVars, declaredClauses int
	haveHeader := false
	var clause []int

	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()
		if len(line) == 0 || line[0] == 'c' {
			continue
		}
		if line == "%" {
			break
		}
		if line[0] == 'p' {
			if len(clauses) > 0 {
				return 0, nil, errors.New("dpll: problem line appears after clauses")
			}
			if haveHeader {
				return 0, nil, errors.New("dpll: multiple problem lines")
			}
			fields := strings.Fields(line)
			if len(fields) != 4 {
				return 0, nil, fmt.Errorf("dpll: malformed problem line %q", line)
			}
			if fields[0] != "p" {
				return 0, nil, fmt.Errorf("dpll: problem line starts with unexpected signifier %q", fields[0])
			}
			if fields[1] != "cnf" {
				return 0, nil, fmt.Errorf("dpll: only cnf supported; got %q", fields[1])
			}
			declaredVars, err = strconv.Atoi(fields[2])
			if err != nil {
				return 0, nil, fmt.Errorf("dpll: malformed variable count in problem line: %s", err)
			}
			declaredClauses, err = strconv.Atoi(fields[3])
			if err != nil {
				return 0, nil, fmt.Errorf("dpll: malformed clause count in problem line: %s", err)
			}
			if declaredVars < 0 {
				return 0, nil, fmt.Errorf("dpll: invalid variable count %d", declaredVars)
			}
			if declaredClauses < 0 {
				return 0, nil, fmt.Errorf("dpll: invalid clause count %d", declaredClauses)
			}
			haveHeader = true
			continue
		}
		for _, field := range strings.Fields(line) {
			n, err := strconv.Atoi(field)
			if err != nil {
				return 0, nil, fmt.Errorf("dpll: invalid literal %q: %s", field, err)
			}
			if n == 0 {
				clauses = append(clauses, clause)
				clause = nil
			} else {
				clause = append(clause, n)
			}
		}
	}
	if err := s.Err(); err != nil {
		return 0, nil, err
	}
	if len(clause) > 0 {
		return 0, nil, errors.New("dpll: last clause is not terminated with 0")
	}

	if haveHeader {
		if len(clauses) != declaredClauses {
			return 0, nil, fmt.Errorf("dpll: problem line declares %d clauses, but %d were read", declaredClauses, len(clauses))
		}
		for _, cl := range clauses {
			for _, v := range cl {
				if v < 0 {
					v = -v
				}
				if v > declaredVars {
					return 0, nil, fmt.Errorf("dpll: literal references variable %d, but problem line declares only %d vars", v, declaredVars)
				}
			}
		}
		return declaredVars, clauses, nil
	}

	inferred := 0
	for _, cl := range clauses {
		for _, v := range cl {
			if v < 0 {
				v = -v
			}
			if v > inferred {
				inferred = v
			}
		}
	}
	return inferred, clauses, nil
}

// WriteDIMACS renders a formula back into DIMACS CNF text, primarily used
// by tests (e.g. for randomized formulas generated in-process) and as the
// inverse of ParseDIMACS.
func WriteDIMACS(w io.Writer, numVars int, clauses [][]int) error {
	if _, err := fmt.Fprintf(w, "p cnf %d %d\n", numVars, len(clauses)); err != nil {
		return err
	}
	for _, cl := range clauses {
		for _, v := range cl {
			if _, err := fmt.Fprintf(w, "%d ", v); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "0"); err != nil {
			return err
		}
	}
	return nil
}
