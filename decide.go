package dpll

import "container/heap"

// varHeap is a min-heap of variable indices, used by decide to find the
// smallest-numbered unassigned variable in O(log n) instead of a linear
// scan over every variable.
//
// Every variable left unassigned by ingestion is pushed when the solver is
// built. A variable that becomes assigned through BCP rather than a
// decision is left in the heap as a stale entry; decide pops and discards
// stale entries lazily rather than hunting them down to remove them.
// backtrack pushes back every variable it unassigns, whether or not decide
// had popped it, so the heap can hold duplicate entries; decide skips
// those the same way.
type varHeap []int

func (h varHeap) Len() int            { return len(h) }
func (h varHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h varHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *varHeap) Push(x interface{}) { *h = append(*h, x.(int)) }
func (h *varHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// decide selects the next assignment once BCP has quiesced: the
// smallest-numbered unassigned variable, assigned true, at a freshly
// incremented decision level. It returns false once every variable is
// assigned (the formula is satisfied).
func (s *Solver) decide() bool {
	for s.pending.Len() > 0 {
		v := heap.Pop(&s.pending).(int)
		if s.trail.isAssigned(v) {
			continue
		}
		s.trail.level++
		s.trail.push(v, true, s.trail.level, reasonDecision)
		s.stats.NumDecisions++
		s.trace(TraceDecision, v, true, s.trail.level, reasonDecision)
		return true
	}
	return false
}

// restoreCandidate makes v eligible for decide again after backtrack has
// unassigned it.
func (s *Solver) restoreCandidate(v int) {
	heap.Push(&s.pending, v)
}
