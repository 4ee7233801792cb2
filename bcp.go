package dpll

// bcpResult is the outcome of running bcp to quiescence or to a conflict.
type bcpResult int

const (
	noConflict bcpResult = iota
	conflictFound
)

// bcp performs Boolean Constraint Propagation. It advances trail.propagated
// across every node pushed since the last call, and for each one walks the
// watch list of the literal that node falsifies, tightening or firing
// clauses as it goes. It returns as soon as a clause's remaining watched
// literal is falsified with no replacement available.
func (s *Solver) bcp() bcpResult {
	for s.trail.propagated < len(s.trail.nodes) {
		i := s.trail.propagated
		s.trail.propagated++

		n := s.trail.nodes[i]
		falsified := litFor(n.v, !n.value)

		// Snapshot before iterating: the loop body mutates watchedBy[falsified]
		// in place (moveWatch), so traversal must not observe those changes.
		watchers := append([]int32(nil), s.clauses.watchedBy[falsified]...)
		for _, c := range watchers {
			if s.propagateClause(c, falsified) == conflictFound {
				return conflictFound
			}
		}
	}
	return noConflict
}

// propagateClause re-examines clause c now that its watched literal
// "falsified" has become false: it looks for a replacement watch, and
// failing that either forces the other watched literal true or reports a
// conflict.
func (s *Solver) propagateClause(c int32, falsified literal) bcpResult {
	other := s.clauses.otherWatch(c, falsified)
	if s.trail.isSatisfied(other) {
		return noConflict
	}

	for _, lit := range s.clauses.clauses[c].lits {
		if lit == falsified || lit == other {
			continue
		}
		if !s.trail.isFalsified(lit) {
			s.clauses.moveWatch(c, falsified, lit)
			return noConflict
		}
	}

	if !s.trail.isAssigned(varOf(other)) {
		s.trail.push(varOf(other), !isNegative(other), s.trail.level, c)
		s.stats.NumImplications++
		s.trace(TraceImplication, varOf(other), !isNegative(other), s.trail.level, c)
		return noConflict
	}

	s.trail.pushConflict(s.trail.level, c)
	s.trace(TraceConflict, 0, false, s.trail.level, c)
	return conflictFound
}
