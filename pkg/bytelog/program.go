package bytelog

import (
	"github.com/pkg/errors"

	"github.com/gitrdm/bytelog/internal/ast"
)

// QueryResult is handed to a Program's query callback for one QUERY
// statement (spec §4.6: "Run the query evaluator and hand the result to
// the caller (printed, returned, …)").
type QueryResult struct {
	Rel   string
	A, B  Arg
	Pairs [][2]int
}

// Program interprets a parsed ByteLog AST: it owns the atom table,
// relation registry, fact store, and compiled rule set for one run, and
// walks the AST in source order dispatching REL / FACT / RULE / SOLVE /
// QUERY exactly as spec §4.6 describes.
type Program struct {
	Atoms     *AtomTable
	Relations *Relations
	Store     *Store
	Rules     []*Rule

	// MaxIterations overrides Solve's round ceiling when positive (wired
	// from config.Config.MaxIterations by the CLI); zero uses MaxRounds.
	MaxIterations int

	// Workers overrides the number of goroutines Solve fans a round's rule
	// evaluations across (wired from config.Config.Workers); zero uses one
	// goroutine per rule.
	Workers int
}

// NewProgram returns an empty Program ready to Load an AST.
func NewProgram() *Program {
	return &Program{
		Atoms:     NewAtomTable(),
		Relations: NewRelations(),
		Store:     NewStore(),
	}
}

// Load walks prog's statements once, in order, mutating the Program's atom
// table, relation registry, fact store, and rule set. onQuery is invoked
// for each QUERY statement encountered, in source order; it may be nil if
// the caller doesn't need query output inline (e.g. it will re-query after
// Load returns). Load returns the first error encountered; a parse-layer
// concern is assumed already handled by internal/parser; Load only reports
// rule-compilation and fixpoint errors. Both are fatal: Load stops at the
// first one, and whatever the store holds at that point is partial.
func (p *Program) Load(prog *ast.Program, onQuery func(QueryResult)) error {
	for _, stmt := range prog.Statements {
		if err := p.dispatch(stmt, onQuery); err != nil {
			return err
		}
	}
	return nil
}

func (p *Program) dispatch(stmt ast.Stmt, onQuery func(QueryResult)) error {
	switch s := stmt.(type) {
	case *ast.RelDecl:
		p.Relations.Resolve(s.Name)
		return nil

	case *ast.Fact:
		rel := p.Relations.Resolve(s.Rel)
		a := p.literalValue(s.A)
		b := p.literalValue(s.B)
		p.Store.Insert(rel, a, b)
		return nil

	case *ast.Rule:
		rule, err := p.compileRule(s)
		if err != nil {
			return err
		}
		p.Rules = append(p.Rules, rule)
		return nil

	case *ast.Solve:
		// No latch: a later SOLVE must still pick up any FACT/RULE statements
		// processed since the previous one. Solve is itself idempotent on an
		// unchanged store (one round, nothing inserted, returns immediately),
		// so there's nothing to gain by skipping it outright.
		return Solve(p.Store, p.Rules, p.MaxIterations, p.Workers)

	case *ast.Query:
		rel, ok := p.Relations.Lookup(s.Rel)
		a, aOK := p.queryArgValue(s.A)
		b, bOK := p.queryArgValue(s.B)
		var pairs [][2]int
		if ok && aOK && bOK {
			pairs = Query(p.Store, rel, a, b)
		}
		if pairs == nil {
			pairs = [][2]int{}
		}
		if onQuery != nil {
			onQuery(QueryResult{Rel: s.Rel, A: a, B: b, Pairs: pairs})
		}
		return nil

	default:
		return errors.Errorf("bytelog: unknown statement type %T", stmt)
	}
}

// literalValue resolves a FACT argument to a Value, interning atom
// literals (first use defines them, per spec §3/§4.6).
func (p *Program) literalValue(lit ast.Literal) Value {
	if lit.IsAtom {
		return p.Atoms.Intern(lit.Atom)
	}
	return lit.Int
}

// queryArgValue resolves a QUERY argument to an Arg. ok is false when the
// argument names an atom that was never interned: such a query can never
// match any stored fact, so the caller should short-circuit to an empty
// result rather than risk colliding with an unrelated integer id.
func (p *Program) queryArgValue(qa ast.QueryArg) (Arg, bool) {
	if qa.Wildcard {
		return Wild(), true
	}
	if qa.Literal.IsAtom {
		id, ok := p.Atoms.Lookup(qa.Literal.Atom)
		if !ok {
			return Arg{}, false
		}
		return Concrete(id), true
	}
	return Concrete(qa.Literal.Int), true
}

// compileRule resolves every relation name in s to an id and compiles the
// body via CompileRule. Per spec grammar (§6), a rule's EMIT clause must
// name the same relation as the rule's own target.
func (p *Program) compileRule(s *ast.Rule) (*Rule, error) {
	if s.EmitTarget != s.Target {
		return nil, newCompileError(s.Target, "EMIT target %q must match rule target %q", s.EmitTarget, s.Target)
	}

	target := p.Relations.Resolve(s.Target)
	ops := make([]Op, len(s.Body))
	for i, astOp := range s.Body {
		rel := p.Relations.Resolve(astOp.Rel)
		kind := ScanOp
		if astOp.Kind == ast.JoinOp {
			kind = JoinOp
		}
		ops[i] = Op{Kind: kind, Rel: rel, HasVar: astOp.HasVar, Var: astOp.Var}
	}
	return CompileRule(s.Target, target, ops, s.EmitA, s.EmitB)
}
