package bytelog

import "testing"

// TestSolveTransitiveClosure is scenario S1: transitive closure over a
// three-link parent chain computes the full ancestor relation.
func TestSolveTransitiveClosure(t *testing.T) {
	store := NewStore()
	parent, ancestor := 0, 1
	store.Insert(parent, 0, 1)
	store.Insert(parent, 1, 2)
	store.Insert(parent, 2, 3)

	// ancestor(x, y) :- SCAN parent, EMIT ancestor $0 $1
	base, err := CompileRule("ancestor", ancestor, []Op{{Kind: ScanOp, Rel: parent}}, 0, 1)
	if err != nil {
		t.Fatalf("compile base rule: %v", err)
	}
	// ancestor(x, z) :- SCAN parent, JOIN ancestor $1, EMIT ancestor $0 $2
	step, err := CompileRule("ancestor", ancestor,
		[]Op{{Kind: ScanOp, Rel: parent}, {Kind: JoinOp, Rel: ancestor, HasVar: true, Var: 1}},
		0, 2)
	if err != nil {
		t.Fatalf("compile step rule: %v", err)
	}

	if err := Solve(store, []*Rule{base, step}, 0, 0); err != nil {
		t.Fatalf("Solve: %v", err)
	}

	got := sortedPairs(store.Iter(ancestor))
	want := [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	if !equalPairs(got, want) {
		t.Fatalf("ancestor facts = %v, want %v", got, want)
	}
}

// TestSolveIdempotent is scenario S4: re-running Solve on an
// already-closed store changes nothing.
func TestSolveIdempotent(t *testing.T) {
	store := NewStore()
	parent, ancestor := 0, 1
	store.Insert(parent, 0, 1)
	store.Insert(parent, 1, 2)

	base, _ := CompileRule("ancestor", ancestor, []Op{{Kind: ScanOp, Rel: parent}}, 0, 1)
	step, _ := CompileRule("ancestor", ancestor,
		[]Op{{Kind: ScanOp, Rel: parent}, {Kind: JoinOp, Rel: ancestor, HasVar: true, Var: 1}},
		0, 2)
	rules := []*Rule{base, step}

	if err := Solve(store, rules, 0, 0); err != nil {
		t.Fatalf("first Solve: %v", err)
	}
	before := sortedPairs(store.Iter(ancestor))

	if err := Solve(store, rules, 0, 0); err != nil {
		t.Fatalf("second Solve: %v", err)
	}
	after := sortedPairs(store.Iter(ancestor))

	if !equalPairs(before, after) {
		t.Fatalf("Solve is not idempotent: before %v, after %v", before, after)
	}
}

// TestSolveTerminatesOnCycle is scenario S6: a cyclic base relation must
// not make Solve loop forever — the value domain is finite, so the
// derived relation saturates and Solve converges normally.
func TestSolveTerminatesOnCycle(t *testing.T) {
	store := NewStore()
	edge, reach := 0, 1
	store.Insert(edge, 0, 1)
	store.Insert(edge, 1, 2)
	store.Insert(edge, 2, 0) // cycle back to 0

	base, _ := CompileRule("reach", reach, []Op{{Kind: ScanOp, Rel: edge}}, 0, 1)
	step, _ := CompileRule("reach", reach,
		[]Op{{Kind: ScanOp, Rel: edge}, {Kind: JoinOp, Rel: reach, HasVar: true, Var: 1}},
		0, 2)

	err := Solve(store, []*Rule{base, step}, 0, 0)
	if err != nil {
		t.Fatalf("Solve on a cyclic graph must converge, got: %v", err)
	}

	// A 3-cycle's transitive closure reaches every node from every node,
	// including itself (via the length-3 trip back around the cycle).
	got := sortedPairs(store.Iter(reach))
	want := [][2]int{
		{0, 0}, {0, 1}, {0, 2},
		{1, 0}, {1, 1}, {1, 2},
		{2, 0}, {2, 1}, {2, 2},
	}
	if !equalPairs(got, want) {
		t.Fatalf("reach facts = %v, want %v", got, want)
	}
}

func TestSolveNoRulesIsNoOp(t *testing.T) {
	store := NewStore()
	store.Insert(0, 1, 2)
	if err := Solve(store, nil, 0, 0); err != nil {
		t.Fatalf("Solve with no rules: %v", err)
	}
	if store.Size(0) != 1 {
		t.Fatalf("Solve with no rules must not touch the store")
	}
}
