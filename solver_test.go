package dpll

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// --- end-to-end scenarios --------------------------------------------------

func TestScenario1UnitClause(t *testing.T) {
	soln, _, sat, err := Solve(1, [][]int{{1}})
	if err != nil {
		t.Fatal(err)
	}
	if !sat {
		t.Fatal("want SAT")
	}
	wantSolution(t, soln, map[int]bool{1: true})
}

func TestScenario2TrivialUnsat(t *testing.T) {
	_, stats, sat, err := Solve(1, [][]int{{1}, {-1}})
	if err != nil {
		t.Fatal(err)
	}
	if sat {
		t.Fatal("want UNSAT")
	}
	if !stats.DecidedDuringIngestion {
		t.Error("want DecidedDuringIngestion=true for a conflicting pair of unit clauses")
	}
}

func TestScenario3UnitPropagation(t *testing.T) {
	soln, _, sat, err := Solve(3, [][]int{{1, 2}, {-1, 3}, {-2, -3}})
	if err != nil {
		t.Fatal(err)
	}
	if !sat {
		t.Fatal("want SAT")
	}
	// Decision 1=true forces 3=true (clause 2), and 3=true in turn forces
	// 2=false (clause 3), so the search finishes without a conflict.
	wantSolution(t, soln, map[int]bool{1: true, 2: false, 3: true})
}

func TestScenario4Unsat(t *testing.T) {
	_, _, sat, err := Solve(2, [][]int{{1, 2}, {1, -2}, {-1, 2}, {-1, -2}})
	if err != nil {
		t.Fatal(err)
	}
	if sat {
		t.Fatal("want UNSAT")
	}
}

func TestScenario5EmptyFormula(t *testing.T) {
	soln, _, sat, err := Solve(3, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !sat {
		t.Fatal("want SAT")
	}
	wantSolution(t, soln, map[int]bool{1: true, 2: true, 3: true})
}

func TestScenario6Pigeonhole(t *testing.T) {
	problem := pigeonhole(3, 2)
	_, _, sat, err := Solve(6, problem)
	if err != nil {
		t.Fatal(err)
	}
	if sat {
		t.Fatal("want UNSAT: 3 pigeons cannot fit in 2 holes")
	}
}

func wantSolution(t *testing.T, soln []int, want map[int]bool) {
	t.Helper()
	if len(soln) != len(want) {
		t.Fatalf("solution has %d vars, want %d", len(soln), len(want))
	}
	for _, lit := range soln {
		v := lit
		val := true
		if v < 0 {
			v, val = -v, false
		}
		if want[v] != val {
			t.Errorf("var %d = %v, want %v", v, val, want[v])
		}
	}
}

func pigeonhole(pigeons, holes int) [][]int {
	var_ := func(p, h int) int { return (p-1)*holes + h }
	var clauses [][]int
	for p := 1; p <= pigeons; p++ {
		var cl []int
		for h := 1; h <= holes; h++ {
			cl = append(cl, var_(p, h))
		}
		clauses = append(clauses, cl)
	}
	for h := 1; h <= holes; h++ {
		for p1 := 1; p1 <= pigeons; p1++ {
			for p2 := p1 + 1; p2 <= pigeons; p2++ {
				clauses = append(clauses, []int{-var_(p1, h), -var_(p2, h)})
			}
		}
	}
	return clauses
}

// --- laws -----------------------------------------------------------------

func TestVerdictSoundness(t *testing.T) {
	for seed := int64(0); seed < 300; seed++ {
		numVars, problem := makeRandomSAT(seed, 6, 16)
		soln, _, sat, err := Solve(numVars, problem)
		if err != nil {
			t.Fatalf("[seed=%d] %s", seed, err)
		}
		if sat && !solutionSatisfies(problem, soln) {
			t.Fatalf("[seed=%d] reported SAT with an assignment that doesn't satisfy the formula: %v", seed, soln)
		}
	}
}

func TestPermutationInvarianceOfVerdict(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for seed := int64(0); seed < 50; seed++ {
		numVars, problem := makeRandomSAT(seed, 5, 12)
		_, _, wantSat, err := Solve(numVars, problem)
		if err != nil {
			t.Fatal(err)
		}

		shuffled := make([][]int, len(problem))
		for i, cl := range problem {
			cl2 := append([]int(nil), cl...)
			rng.Shuffle(len(cl2), func(i, j int) { cl2[i], cl2[j] = cl2[j], cl2[i] })
			shuffled[i] = cl2
		}
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		_, _, gotSat, err := Solve(numVars, shuffled)
		if err != nil {
			t.Fatal(err)
		}
		if gotSat != wantSat {
			t.Fatalf("[seed=%d] verdict changed under reordering: want sat=%v, got sat=%v", seed, wantSat, gotSat)
		}
	}
}

func TestDeterminism(t *testing.T) {
	numVars, problem := makeRandomSAT(42, 7, 20)
	soln1, _, sat1, err := Solve(numVars, problem)
	if err != nil {
		t.Fatal(err)
	}
	soln2, _, sat2, err := Solve(numVars, problem)
	if err != nil {
		t.Fatal(err)
	}
	if sat1 != sat2 {
		t.Fatalf("verdict differs between runs: %v vs %v", sat1, sat2)
	}
	if len(soln1) != len(soln2) {
		t.Fatalf("solution lengths differ: %d vs %d", len(soln1), len(soln2))
	}
	for i := range soln1 {
		if soln1[i] != soln2[i] {
			t.Fatalf("solution differs at %d: %d vs %d", i, soln1[i], soln2[i])
		}
	}
}

func TestIdempotentBCP(t *testing.T) {
	sv, err := NewSolver(3, [][]int{{1, 2}, {-1, 3}, {-2, -3}})
	if err != nil {
		t.Fatal(err)
	}
	if sv.bcp() == conflictFound {
		t.Fatal("unexpected conflict during initial propagation")
	}
	if !sv.decide() {
		t.Fatal("expected a decision to be available")
	}
	if sv.bcp() == conflictFound {
		t.Fatal("unexpected conflict after first decision")
	}
	before := len(sv.trail.nodes)
	if sv.bcp() == conflictFound {
		t.Fatal("unexpected conflict on idempotence check")
	}
	after := len(sv.trail.nodes)
	if before != after {
		t.Fatalf("second bcp call with no new trail entries changed the trail: %d -> %d", before, after)
	}
}

// --- invariants -------------------------------------------------------------

func TestInvariantsHoldThroughoutSolve(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		numVars, problem := makeRandomSAT(seed, 6, 15)
		sv, err := NewSolver(numVars, problem)
		if err != nil {
			t.Fatal(err)
		}
		sv.Solve()
		if err := sv.checkInvariants(); err != nil {
			t.Fatalf("[seed=%d] %s", seed, err)
		}
	}
}

func TestPostBCPSatisfaction(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		numVars, problem := makeRandomSAT(seed, 6, 15)
		sv, err := NewSolver(numVars, problem)
		if err != nil {
			t.Fatal(err)
		}
		for {
			result := sv.bcp()
			if result == conflictFound {
				target, flip, unsat := sv.analyze()
				if unsat {
					break
				}
				sv.backtrack(target, flip)
				continue
			}
			if err := sv.checkPostBCPSatisfaction(); err != nil {
				t.Fatalf("[seed=%d] %s", seed, err)
			}
			if !sv.decide() {
				break
			}
		}
	}
}

// --- fixtures ---------------------------------------------------------------

func TestFixtures(t *testing.T) {
	filenames, err := filepath.Glob("testdata/*.cnf")
	if err != nil {
		t.Fatal(err)
	}
	if len(filenames) == 0 {
		t.Fatal("no fixtures found under testdata/")
	}
	for _, filename := range filenames {
		filename := filename
		t.Run(filepath.Base(filename), func(t *testing.T) {
			f, err := os.Open(filename)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			numVars, clauses, err := ParseDIMACS(f)
			if err != nil {
				t.Fatalf("bad fixture %s: %s", filename, err)
			}
			soln, _, sat, err := Solve(numVars, clauses)
			if err != nil {
				t.Fatal(err)
			}
			switch {
			case strings.HasSuffix(filename, ".sat.cnf"):
				if !sat {
					t.Fatalf("got UNSAT; want SAT")
				}
				if !solutionSatisfies(clauses, soln) {
					t.Fatalf("assignment %v does not satisfy %s", soln, filename)
				}
			case strings.HasSuffix(filename, ".unsat.cnf"):
				if sat {
					t.Fatalf("got SAT with assignment %v; want UNSAT", soln)
				}
			default:
				t.Fatalf("fixture name %q must end in .sat.cnf or .unsat.cnf", filename)
			}
		})
	}
}

// --- test helpers ------------------------------------------------------------

func solutionSatisfies(problem [][]int, soln []int) bool {
	value := make(map[int]bool, len(soln))
	for _, lit := range soln {
		if lit < 0 {
			value[-lit] = false
		} else {
			value[lit] = true
		}
	}
clauseLoop:
	for _, cl := range problem {
		for _, lit := range cl {
			v, want := lit, true
			if v < 0 {
				v, want = -v, false
			}
			if value[v] == want {
				continue clauseLoop
			}
		}
		return false
	}
	return true
}

// makeRandomSAT builds a random CNF formula that is satisfiable by
// construction: it first samples an assignment, then builds each clause so
// it contains at least one literal that assignment satisfies.
func makeRandomSAT(seed int64, numVars, numClauses int) (int, [][]int) {
	rng := rand.New(rand.NewSource(seed))
	assignment := make([]bool, numVars)
	for v := range assignment {
		assignment[v] = rng.Intn(2) == 1
	}
	vars := make([]int, numVars)
	for v := range vars {
		vars[v] = v
	}
	problem := make([][]int, numClauses)
	for i := range problem {
		rng.Shuffle(len(vars), func(i, j int) { vars[i], vars[j] = vars[j], vars[i] })
		size := rng.Intn(numVars) + 1
		cl := make([]int, size)
		fixed := rng.Intn(size)
		for j := 0; j < size; j++ {
			v := vars[j] + 1
			if j == fixed {
				if !assignment[v-1] {
					v = -v
				}
			} else if rng.Intn(2) == 1 {
				v = -v
			}
			cl[j] = v
		}
		problem[i] = cl
	}
	return numVars, problem
}
