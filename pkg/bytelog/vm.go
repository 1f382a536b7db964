package bytelog

// Eval runs the rule body depth-first over store, calling emit once for
// every binding (full register vector) the body derives. Eval itself never
// mutates store, it only reads, so it is safe to call repeatedly during
// fixpoint rounds (spec §5: reads are safe concurrently with other reads,
// never with writes; the fixpoint driver serializes rounds).
//
// Depth-first, minimal-memory evaluation is the teacher's own style for
// goal pipelines (primitives.go's Conj chains one goal's success stream into
// the next rather than materializing every intermediate stage), adapted
// here from a unification goal stream to a flat register-slot pipeline.
func (r *Rule) Eval(store *Store, emit func(reg []int)) {
	evalFrom(store, r.Body, 0, nil, emit)
}

func evalFrom(store *Store, ops []Op, i int, reg []int, emit func(reg []int)) {
	if i == len(ops) {
		emit(reg)
		return
	}

	op := ops[i]
	if op.Kind == ScanOp && !op.HasVar {
		// Only legal as the first op: iterate every fact, seeding $0, $1.
		for _, fact := range store.Iter(op.Rel) {
			evalFrom(store, ops, i+1, []int{fact[0], fact[1]}, emit)
		}
		return
	}

	// ScanOp with MATCH and JoinOp share the same semantics: look up every
	// b stored under (op.Rel, reg[op.Var], b) and push b as a new register.
	a := reg[op.Var]
	for _, b := range store.LookupByFirst(op.Rel, a) {
		next := make([]int, len(reg)+1)
		copy(next, reg)
		next[len(reg)] = b
		evalFrom(store, ops, i+1, next, emit)
	}
}
