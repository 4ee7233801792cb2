package dpll

// reasonDecision marks a trail node as a decision (or a level-0 forced fact
// from a unit clause during ingestion): it has no implying clause.
const reasonDecision int32 = -1

// node is an assignment node on the trail: a variable, the value it was
// given, the decision level at which that happened, the clause that forced
// it (or reasonDecision), and its own position in the trail.
//
// A conflict sentinel is a node with var == -1; it carries only level and
// reason (the falsified clause). analyze reads its level and skips over it;
// truncateTo removes it during backtrack. After a root-level conflict it is
// left at the tail of the trail.
type node struct {
	v      int   // variable index, or -1 for a conflict sentinel
	value  bool  // polarity assigned to v
	level  int   // decision level this assignment belongs to
	reason int32 // clause id that forced this, or reasonDecision
	index  int   // position within trail.nodes at push time
}

func (n node) isConflict() bool { return n.v < 0 }

// trail is the ordered, append-at-tail/truncate-at-tail assignment log.
// It owns every assignment node; varNode holds weak references (indices
// into nodes) so uniqueness and consistency between the two can be
// checked directly.
type trail struct {
	nodes  []node
	varNode []int // variable index -> position in nodes, or -1 if unassigned

	level      int // current decision level
	propagated int // index of the first not-yet-propagated node
}

func newTrail(numVars int) *trail {
	vn := make([]int, numVars)
	for i := range vn {
		vn[i] = -1
	}
	return &trail{varNode: vn}
}

// push appends a new assignment node and records it in the variable map.
// It returns the node by value, not a pointer into t.nodes: a later
// append can reallocate that backing array, and the trail is the sole
// owner of nodes anyway — the variable map only ever holds indices into it.
func (t *trail) push(v int, value bool, level int, reason int32) node {
	n := node{v: v, value: value, level: level, reason: reason, index: len(t.nodes)}
	t.nodes = append(t.nodes, n)
	t.varNode[v] = n.index
	return n
}

// pushConflict appends the conflict sentinel that stops BCP.
func (t *trail) pushConflict(level int, reason int32) {
	t.nodes = append(t.nodes, node{v: -1, level: level, reason: reason, index: len(t.nodes)})
}

// isAssigned reports whether variable v currently has a value.
func (t *trail) isAssigned(v int) bool { return t.varNode[v] != -1 }

// valueOf returns the current value of variable v. Only valid when assigned.
func (t *trail) valueOf(v int) bool { return t.nodes[t.varNode[v]].value }

// isSatisfied reports whether literal l is true under the current
// assignment (false if l's variable is unassigned).
func (t *trail) isSatisfied(l literal) bool {
	v := varOf(l)
	return t.isAssigned(v) && t.valueOf(v) != isNegative(l)
}

// isFalsified reports whether literal l is false under the current
// assignment (false if l's variable is unassigned).
func (t *trail) isFalsified(l literal) bool {
	v := varOf(l)
	return t.isAssigned(v) && t.valueOf(v) == isNegative(l)
}

// tail returns the most recently pushed node, or nil if the trail is empty.
func (t *trail) tail() *node {
	if len(t.nodes) == 0 {
		return nil
	}
	return &t.nodes[len(t.nodes)-1]
}

// truncateTo pops every node with level > target, unwinding the variable
// map alongside the trail so the two stay consistent. A trailing conflict
// sentinel is always removed first. It returns the variables whose
// assignments were undone, in pop order.
func (t *trail) truncateTo(target int) []int {
	var freed []int
	n := len(t.nodes)
	for n > 0 && (t.nodes[n-1].isConflict() || t.nodes[n-1].level > target) {
		if !t.nodes[n-1].isConflict() {
			v := t.nodes[n-1].v
			t.varNode[v] = -1
			freed = append(freed, v)
		}
		n--
	}
	t.nodes = t.nodes[:n]
	t.level = target
	if t.propagated > n {
		t.propagated = n
	}
	return freed
}
