package bytelog

import "sync"

// evalRulesConcurrently runs every rule's Eval in a fixed pool of worker
// goroutines and serializes the resulting inserts through a single
// collector goroutine, returning whether the round changed the store.
//
// This is the teacher's worker-pool shape (internal/parallel's WorkerPool in
// the original tree) cut down to what a fixpoint round actually needs: that
// pool manages dynamic up/down scaling and deadlock detection for
// long-running backtracking search; a ByteLog round just needs a handful of
// read-only Eval calls fanned out and their emitted facts funneled back
// through one writer. Store's RWMutex (store.go) is what makes the fan-out
// safe: rule reads share the read lock with each other, and each Insert by
// the collector takes the write lock, so no read sees a half-done insert.
type emittedFact struct {
	rel  int
	a, b int
}

// evalRulesConcurrently evaluates rules against store using up to workers
// goroutines. workers <= 0 runs every rule in its own goroutine (capped at
// len(rules)).
func evalRulesConcurrently(store *Store, rules []*Rule, workers int) bool {
	if len(rules) == 0 {
		return false
	}
	if workers <= 0 || workers > len(rules) {
		workers = len(rules)
	}

	jobs := make(chan *Rule)
	out := make(chan emittedFact, workers*4)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rule := range jobs {
				rule.Eval(store, func(reg []int) {
					out <- emittedFact{rule.Target, reg[rule.EmitA], reg[rule.EmitB]}
				})
			}
		}()
	}

	go func() {
		for _, r := range rules {
			jobs <- r
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	changed := false
	for f := range out {
		if store.Insert(f.rel, f.a, f.b) {
			changed = true
		}
	}
	return changed
}
