// Command dpll is a toy SAT solver: it reads a DIMACS CNF formula and
// reports SAT (with a satisfying assignment) or UNSAT.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/kr/pretty"

	"github.com/ordinal-sat/dpll"
)

func main() {
	log.SetFlags(0)
	verbose := flag.Bool("v", false, "verbose mode: trace decisions/implications and dump stats")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `dpll: a toy DPLL SAT solver.

Usage:

  dpll [-v] [input.cnf]

dpll reads a single problem specification in the DIMACS CNF format. It
writes the output in the conventional way: either the first line is UNSAT,
or else the first line is SAT and the second line gives the assignment as
space-separated signed literals, one per variable (positive for true,
negative for false), with no terminating 0.

If no input file is given, dpll reads from standard input.

The -v flag enables a trace of every decision and implication, plus a
dump of the solver's diagnostic counters on exit.
`)
	}
	flag.Parse()

	var r io.Reader = os.Stdin
	if flag.NArg() >= 1 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		r = f
	}

	numVars, clauses, err := dpll.ParseDIMACS(r)
	if err != nil {
		log.Fatalln("Error reading input file as DIMACS CNF:", err)
	}

	sv, err := dpll.NewSolver(numVars, clauses)
	if err != nil {
		log.Fatalln("Error building solver:", err)
	}
	if *verbose {
		sv.Trace = traceLine
	}

	sat := sv.Solve()
	stats := sv.Stats()
	if *verbose {
		fmt.Fprintln(os.Stderr, "--- stats ---")
		pretty.Fprintf(os.Stderr, "%# v\n", stats)
	}

	if !sat {
		fmt.Println("UNSAT")
		return
	}
	fmt.Println("SAT")
	for i, v := range sv.Assignment() {
		if i > 0 {
			fmt.Print(" ")
		}
		fmt.Print(v)
	}
	fmt.Println()
}

// traceLine prints one trail event to stderr: decisions in blue, ordinary
// implications uncolored, conflicts in red, backtracks in yellow. Coloring
// lives entirely here — the core (dpll.Solver) never formats or colors
// anything itself.
func traceLine(ev dpll.TraceEvent) {
	const (
		colorReset  = "\x1b[0m"
		colorBlue   = "\x1b[34m"
		colorRed    = "\x1b[31m"
		colorYellow = "\x1b[33m"
	)
	lit := ev.Var
	if !ev.Value {
		lit = -lit
	}
	switch ev.Kind {
	case dpll.TraceDecision:
		fmt.Fprintf(os.Stderr, "%s> decision %d (level %d)%s\n", colorBlue, lit, ev.Level, colorReset)
	case dpll.TraceImplication:
		fmt.Fprintf(os.Stderr, "* implied %d (level %d, clause %d)\n", lit, ev.Level, ev.Clause)
	case dpll.TraceConflict:
		fmt.Fprintf(os.Stderr, "%s= conflict at level %d (clause %d)%s\n", colorRed, ev.Level, ev.Clause, colorReset)
	case dpll.TraceBacktrack:
		fmt.Fprintf(os.Stderr, "%s< backtrack: forcing %d (level %d)%s\n", colorYellow, lit, ev.Level, colorReset)
	}
}
