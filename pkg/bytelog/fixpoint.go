package bytelog

// MaxRounds is the fixpoint driver's safety ceiling (spec §4.4). A correct
// ByteLog program never reaches it; a program that does is reported via
// ErrIterationCap rather than looping forever.
const MaxRounds = 10000

// Solve repeatedly evaluates every rule until a full round inserts no new
// fact: the least fixpoint of rules over store (spec §4.4). Each rule's
// body is re-evaluated against the *entire* current store every round; this
// is the naive fixpoint the spec requires, traded for the semi-naive delta
// optimization's extra bookkeeping and risk of under- or over-counting
// deltas (see DESIGN.md). Termination is guaranteed because the value
// domain is finite and the fact set only grows.
//
// Within one round, rules are independent reads against the store as of the
// round's start plus whatever earlier rules in the same round have already
// inserted. parallel.go fans them out across a small worker pool and
// serializes the resulting inserts through one collector goroutine, which is
// safe because Store's RWMutex lets rule reads share the read lock while
// each of that single writer's inserts holds the write lock.
//
// maxRounds overrides MaxRounds when positive; workers overrides the number
// of goroutines evalRulesConcurrently fans a round across (zero means one
// goroutine per rule). Both let a config.Config's MaxIterations/Workers
// actually reach the driver instead of sitting unread.
//
// Solve is idempotent: calling it again after it has already reached a
// fixpoint runs exactly one round that inserts nothing and returns
// immediately.
func Solve(store *Store, rules []*Rule, maxRounds, workers int) error {
	if maxRounds <= 0 {
		maxRounds = MaxRounds
	}
	for round := 0; round < maxRounds; round++ {
		if !evalRulesConcurrently(store, rules, workers) {
			return nil
		}
	}
	return ErrIterationCap
}
