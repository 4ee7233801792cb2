// Package dpll implements a DPLL-style Boolean satisfiability solver over
// CNF formulas: two-watched-literals unit propagation, chronological
// backtracking on conflict, and a deterministic ordered decision policy.
// There is no clause learning, no non-chronological backjumping, no
// restarts, and no variable-activity heuristic; this is a small, readable
// core rather than a competition solver.
package dpll

import (
	"container/heap"
	"time"
)

// Solver holds everything needed to decide satisfiability of one CNF
// formula: the clause store and its watch indices, the assignment trail,
// the decider's candidate pool, and diagnostic counters. A Solver is used
// once; construct a new one per formula via NewSolver.
type Solver struct {
	numVars int
	trail   *trail
	clauses *clauseStore
	pending varHeap
	stats   Stats

	trivialUnsat bool

	// Trace, if set, is called for every decision, implication, conflict
	// and backtrack the solve loop performs. The core itself never logs
	// or colors output; this hook exists purely so an external
	// collaborator like cmd/dpll's -v flag can narrate the trail without
	// the core depending on any output format.
	Trace func(TraceEvent)
}

// TraceEventKind identifies which phase produced a TraceEvent.
type TraceEventKind int

const (
	TraceDecision TraceEventKind = iota
	TraceImplication
	TraceConflict
	TraceBacktrack
)

// TraceEvent describes one trail mutation, in enough detail for a verbose
// CLI to print a readable line for it.
type TraceEvent struct {
	Kind  TraceEventKind
	Var   int // 1-based source variable; unset (0) for TraceConflict
	Value bool
	Level int
	Clause int32 // reason clause id, or reasonDecision
}

func (s *Solver) trace(kind TraceEventKind, v int, value bool, level int, clause int32) {
	if s.Trace == nil {
		return
	}
	ev := TraceEvent{Kind: kind, Level: level, Clause: clause}
	if kind != TraceConflict {
		ev.Var = v + 1
		ev.Value = value
	}
	s.Trace(ev)
}

// NewSolver ingests a CNF formula over variables 1..numVars, where each
// entry of rawClauses is a clause as nonzero signed DIMACS literals. It
// performs ingestion (duplicate removal, unit clauses folded into level-0
// facts, empty clauses detected) but does not run the solve loop; call
// Solve for that.
//
// The returned error reports malformed input: a literal referencing a
// variable outside [1, numVars], or a zero literal in a clause.
func NewSolver(numVars int, rawClauses [][]int) (*Solver, error) {
	s := &Solver{
		numVars: numVars,
		trail:   newTrail(numVars),
		clauses: newClauseStore(numVars),
	}

	result, err := s.ingest(numVars, rawClauses)
	if err != nil {
		return nil, err
	}
	if result == ingestTrivialUnsat {
		s.trivialUnsat = true
		return s, nil
	}

	s.pending = make(varHeap, 0, numVars)
	for v := 0; v < numVars; v++ {
		if !s.trail.isAssigned(v) {
			s.pending = append(s.pending, v)
		}
	}
	heap.Init(&s.pending)

	return s, nil
}

// Solve runs the BCP/decide/backtrack loop to completion and reports
// whether the formula is satisfiable.
func (s *Solver) Solve() bool {
	if s.trivialUnsat {
		return false
	}

	for {
		for {
			t0 := time.Now()
			result := s.bcp()
			timeSince(&s.stats.BCPTime, t0)

			if result == noConflict {
				break
			}

			t1 := time.Now()
			target, flip, unsat := s.analyze()
			timeSince(&s.stats.AnalyzeTime, t1)
			if unsat {
				return false
			}

			t2 := time.Now()
			s.backtrack(target, flip)
			timeSince(&s.stats.BacktrackTime, t2)
		}

		t3 := time.Now()
		hasDecision := s.decide()
		timeSince(&s.stats.DecideTime, t3)
		if !hasDecision {
			return true
		}
	}
}

// Assignment reports the satisfying assignment found by the most recent
// Solve call that returned true, as signed DIMACS literals (one per
// variable, in variable order). Calling it after an UNSAT result or before
// Solve is undefined.
func (s *Solver) Assignment() []int {
	out := make([]int, s.numVars)
	for v := 0; v < s.numVars; v++ {
		out[v] = sourceLiteral(litFor(v, s.trail.valueOf(v)))
	}
	return out
}

// Stats returns a snapshot of the diagnostic counters accumulated so far.
func (s *Solver) Stats() Stats {
	snap := s.stats
	snap.DecidedDuringIngestion = s.trivialUnsat
	return snap
}

// Solve is the package-level convenience entry point: parse-free, it takes
// the declared variable count and clause stream directly and returns a
// satisfying assignment when one exists.
func Solve(numVars int, clauses [][]int) (assignment []int, stats Stats, sat bool, err error) {
	sv, err := NewSolver(numVars, clauses)
	if err != nil {
		return nil, Stats{}, false, err
	}
	sat = sv.Solve()
	stats = sv.Stats()
	if !sat {
		return nil, stats, false, nil
	}
	return sv.Assignment(), stats, true, nil
}
