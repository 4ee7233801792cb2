package dpll

import "fmt"

// clause is an ordered, duplicate-free list of at least two literals, as
// ingested. The list itself never changes after ingestion; only the
// watched pair recorded in clauseStore.watchPair (and its mirror,
// clauseStore.watchedBy) changes as BCP runs.
type clause struct {
	id   int32
	lits []literal
}

// clauseStore holds the non-unit clauses of the formula together with the
// two watched-literal indices. The indices are mirror images of each
// other: watchPair[c] names the two literals currently watching clause c,
// and watchedBy[l] names every clause currently watched by literal l.
type clauseStore struct {
	clauses   []clause
	watchPair [][2]literal   // clause id -> watched pair
	watchedBy [][]int32      // literal -> clause ids watching it
}

func newClauseStore(numVars int) *clauseStore {
	return &clauseStore{
		watchedBy: make([][]int32, 2*numVars),
	}
}

// add stores an already-deduplicated, length>=2 clause, designates its
// first two literals as the initial watched pair, and updates both watch
// indices to match.
func (cs *clauseStore) add(lits []literal) int32 {
	id := int32(len(cs.clauses))
	cs.clauses = append(cs.clauses, clause{id: id, lits: lits})
	pair := [2]literal{lits[0], lits[1]}
	cs.watchPair = append(cs.watchPair, pair)
	cs.watchedBy[pair[0]] = append(cs.watchedBy[pair[0]], id)
	cs.watchedBy[pair[1]] = append(cs.watchedBy[pair[1]], id)
	return id
}

// otherWatch returns the member of clause c's watched pair that is not l.
func (cs *clauseStore) otherWatch(c int32, l literal) literal {
	pair := cs.watchPair[c]
	if pair[0] == l {
		return pair[1]
	}
	return pair[0]
}

// moveWatch shifts clause c's watch from the falsified literal "from" to
// the replacement literal "to", keeping both indices in lock-step.
func (cs *clauseStore) moveWatch(c int32, from, to literal) {
	pair := cs.watchPair[c]
	if pair[0] == from {
		cs.watchPair[c][0] = to
	} else {
		cs.watchPair[c][1] = to
	}
	cs.watchedBy[to] = append(cs.watchedBy[to], c)

	list := cs.watchedBy[from]
	for i, id := range list {
		if id == c {
			list[i] = list[len(list)-1]
			cs.watchedBy[from] = list[:len(list)-1]
			break
		}
	}
}

// ingestResult reports what ingestion discovered about the formula before
// the solve loop even starts.
type ingestResult int

const (
	ingestOK ingestResult = iota
	ingestTrivialUnsat
)

// ingest consumes the raw clause stream (1-based signed DIMACS literals):
// duplicate literals are dropped, empty clauses and unit clauses are
// handled specially (the latter become level-0 forced trail facts rather
// than stored clauses), and everything else is encoded and added to the
// clause store with its first two literals watched.
//
// This performs no simplification beyond that: there is no repeated
// unit-propagation fixpoint over the whole formula here. Any further unit
// facts those level-0 assignments imply are resolved by the first pass of
// BCP once the solve loop starts, the same as any other propagation.
func (s *Solver) ingest(numVars int, rawClauses [][]int) (ingestResult, error) {
	for _, raw := range rawClauses {
		lits, err := s.dedupe(numVars, raw)
		if err != nil {
			return ingestOK, err
		}
		switch len(lits) {
		case 0:
			return ingestTrivialUnsat, nil
		case 1:
			l := lits[0]
			v := varOf(l)
			want := !isNegative(l)
			if s.trail.isAssigned(v) {
				if s.trail.valueOf(v) != want {
					return ingestTrivialUnsat, nil
				}
				continue
			}
			s.trail.push(v, want, 0, reasonDecision)
		default:
			s.clauses.add(lits)
		}
	}
	return ingestOK, nil
}

// dedupe removes duplicate literals (first occurrence wins) and encodes
// the remaining 1-based signed ints into internal literals, validating
// that every referenced variable is within [1, numVars].
func (s *Solver) dedupe(numVars int, raw []int) ([]literal, error) {
	seen := make(map[int]struct{}, len(raw))
	out := make([]literal, 0, len(raw))
	for _, v := range raw {
		if v == 0 {
			return nil, fmt.Errorf("dpll: clause literal must be nonzero")
		}
		av := v
		if av < 0 {
			av = -av
		}
		if av > numVars {
			return nil, fmt.Errorf("dpll: literal %d references variable %d, but only %d declared", v, av, numVars)
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, encodeLiteral(v))
	}
	return out, nil
}
