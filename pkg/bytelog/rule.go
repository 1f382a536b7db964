package bytelog

// OpKind distinguishes the two body operation shapes of spec §4.3. Per
// Design Notes §9 this is a tagged variant dispatched on directly, not a
// visitor/function-pointer table.
type OpKind int

const (
	// ScanOp with HasVar == false is only legal as a rule body's first
	// operation: it iterates every fact of Rel and seeds registers $0, $1
	// with the fact's two columns.
	//
	// ScanOp with HasVar == true ("SCAN r MATCH $v") filters to facts whose
	// first column equals the already-bound register Var, extending the
	// binding with one new register (the fact's second column). Spec §4.3
	// calls this "a restricted JOIN".
	ScanOp OpKind = iota

	// JoinOp extends every live binding with every b such that
	// (Rel, reg[Var], b) is stored, pushing b as a new register. Var must
	// already be bound.
	JoinOp
)

// Op is one compiled body operation.
type Op struct {
	Kind   OpKind
	Rel    int
	HasVar bool // MATCH present (ScanOp) or always true (JoinOp)
	Var    int  // register index read, when HasVar
}

// Rule is a compiled rule: a target relation, a linear pipeline of body
// operations, and an emit template naming the two registers written back
// into the target relation. Compilation happens once, at registration
// (spec §4.3); SOLVE re-executes the same compiled pipeline every round.
type Rule struct {
	Target   int
	TargetOf string // source relation name, for error messages only
	Body     []Op
	EmitA    int
	EmitB    int
}

// CompileRule validates and compiles a rule body, returning the rejection
// reason as a *CompileError (wrapping ErrRuleCompilation) when the body is
// malformed. CompileRule itself inserts no facts. A registration error
// aborts the whole program load, not just this rule; Program.Load compiles
// each RULE when it reaches it in source order, so facts from earlier FACT
// and SOLVE statements are already in the store when a rejection stops it.
func CompileRule(targetName string, target int, ops []Op, emitA, emitB int) (*Rule, error) {
	if len(ops) == 0 {
		return nil, newCompileError(targetName, "rule body is empty")
	}

	regs := 0
	for i, op := range ops {
		switch op.Kind {
		case ScanOp:
			if i == 0 {
				if op.HasVar {
					return nil, newCompileError(targetName, "first op must be a bare SCAN (no MATCH), found SCAN MATCH $%d", op.Var)
				}
				regs = 2
				continue
			}
			if !op.HasVar {
				return nil, newCompileError(targetName, "SCAN at position %d without MATCH is only legal as the first op", i)
			}
			if op.Var >= regs {
				return nil, newCompileError(targetName, "SCAN MATCH $%d at position %d references an unbound register (only $0..$%d are bound)", op.Var, i, regs-1)
			}
			regs++
		case JoinOp:
			if i == 0 {
				return nil, newCompileError(targetName, "first op must be SCAN, found JOIN")
			}
			if op.Var >= regs {
				return nil, newCompileError(targetName, "JOIN $%d at position %d references an unbound register (only $0..$%d are bound)", op.Var, i, regs-1)
			}
			regs++
		default:
			return nil, newCompileError(targetName, "unknown op kind at position %d", i)
		}
	}

	if emitA >= regs || emitB >= regs || emitA < 0 || emitB < 0 {
		return nil, newCompileError(targetName, "EMIT references register outside $0..$%d", regs-1)
	}

	return &Rule{
		Target:   target,
		TargetOf: targetName,
		Body:     append([]Op(nil), ops...),
		EmitA:    emitA,
		EmitB:    emitB,
	}, nil
}
