package dpll

import "fmt"

// checkInvariants verifies the watch-index and trail invariants the solver
// is supposed to maintain at every quiescent point: the two watch indices
// stay mirror images of each other, every variable appears on the trail at
// most once, the variable map always points at the trail entry assigning
// it, and levels never decrease moving down the trail. A violation here
// means a bug in the solver itself; it is never called from the solve loop,
// only from tests, since a production build shouldn't pay to check
// conditions that should be unreachable.
func (s *Solver) checkInvariants() error {
	if err := s.checkWatchInvariant(); err != nil {
		return err
	}
	if err := s.checkTrailInvariants(); err != nil {
		return err
	}
	return nil
}

func (s *Solver) checkWatchInvariant() error {
	for c, pair := range s.clauses.watchPair {
		for _, l := range pair {
			found := false
			for _, id := range s.clauses.watchedBy[l] {
				if int(id) == c {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("dpll: clause %d watches literal %d but is absent from that literal's watch list", c, l)
			}
		}
	}
	for l, ids := range s.clauses.watchedBy {
		for _, c := range ids {
			pair := s.clauses.watchPair[c]
			if pair[0] != literal(l) && pair[1] != literal(l) {
				return fmt.Errorf("dpll: literal %d watches clause %d, but is not in that clause's watched pair", l, c)
			}
		}
	}
	return nil
}

func (s *Solver) checkTrailInvariants() error {
	seen := make(map[int]bool, len(s.trail.nodes))
	prevLevel := 0
	for i, n := range s.trail.nodes {
		if n.isConflict() {
			continue
		}
		if seen[n.v] {
			return fmt.Errorf("dpll: variable %d appears twice on the trail", n.v)
		}
		seen[n.v] = true

		if n.level < prevLevel {
			return fmt.Errorf("dpll: trail index %d has level %d following level %d", i, n.level, prevLevel)
		}
		prevLevel = n.level

		if s.trail.varNode[n.v] != i {
			return fmt.Errorf("dpll: variable %d maps to trail index %d, expected %d", n.v, s.trail.varNode[n.v], i)
		}
	}
	for v, idx := range s.trail.varNode {
		if idx == -1 {
			continue
		}
		if idx >= len(s.trail.nodes) || s.trail.nodes[idx].v != v {
			return fmt.Errorf("dpll: variable %d maps to stale trail index %d", v, idx)
		}
	}
	return nil
}

// checkPostBCPSatisfaction verifies that once bcp has quiesced without a
// conflict, every stored clause either has a satisfied literal or at
// least two unassigned literals — the condition the watch scheme relies
// on to guarantee no clause is silently left falsified.
func (s *Solver) checkPostBCPSatisfaction() error {
	for _, cl := range s.clauses.clauses {
		satisfied := false
		unassigned := 0
		for _, l := range cl.lits {
			if s.trail.isSatisfied(l) {
				satisfied = true
				break
			}
			if !s.trail.isAssigned(varOf(l)) {
				unassigned++
			}
		}
		if !satisfied && unassigned < 2 {
			return fmt.Errorf("dpll: clause %d has no satisfied literal and fewer than two unassigned literals", cl.id)
		}
	}
	return nil
}
