// Package printer renders a parsed ByteLog program back to a human-readable
// tree plus a short structural summary, the Go equivalent of
// original_source/src/demo.c's ast_print_tree + statement-counting pass. It
// is a diagnostic front end, never on the path from source to derived
// facts.
package printer

import (
	"fmt"
	"io"

	"github.com/gitrdm/bytelog/internal/ast"
)

// Tree writes one line per statement of prog to w, in source order.
func Tree(w io.Writer, prog *ast.Program) error {
	for i, stmt := range prog.Statements {
		if err := printStmt(w, i, stmt); err != nil {
			return err
		}
	}
	return nil
}

func printStmt(w io.Writer, i int, stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.RelDecl:
		_, err := fmt.Fprintf(w, "%3d: REL %s\n", i, s.Name)
		return err
	case *ast.Fact:
		_, err := fmt.Fprintf(w, "%3d: FACT %s %s %s\n", i, s.Rel, literalString(s.A), literalString(s.B))
		return err
	case *ast.Rule:
		_, err := fmt.Fprintf(w, "%3d: RULE %s (%d ops) -> EMIT %s $%d $%d\n",
			i, s.Target, len(s.Body), s.EmitTarget, s.EmitA, s.EmitB)
		return err
	case *ast.Solve:
		_, err := fmt.Fprintf(w, "%3d: SOLVE\n", i)
		return err
	case *ast.Query:
		_, err := fmt.Fprintf(w, "%3d: QUERY %s %s %s\n", i, s.Rel, queryArgString(s.A), queryArgString(s.B))
		return err
	default:
		_, err := fmt.Fprintf(w, "%3d: <unknown statement %T>\n", i, stmt)
		return err
	}
}

func literalString(lit ast.Literal) string {
	if lit.IsAtom {
		return lit.Atom
	}
	return fmt.Sprintf("%d", lit.Int)
}

func queryArgString(qa ast.QueryArg) string {
	if qa.Wildcard {
		return "?"
	}
	return literalString(qa.Literal)
}

// Summary counts each statement kind in prog, mirroring demo.c's
// rel_count/fact_count/rule_count/solve_count/query_count tally.
type Summary struct {
	Relations int
	Facts     int
	Rules     int
	Solves    int
	Queries   int
}

// Summarize tallies prog's statements by kind.
func Summarize(prog *ast.Program) Summary {
	var s Summary
	for _, stmt := range prog.Statements {
		switch stmt.(type) {
		case *ast.RelDecl:
			s.Relations++
		case *ast.Fact:
			s.Facts++
		case *ast.Rule:
			s.Rules++
		case *ast.Solve:
			s.Solves++
		case *ast.Query:
			s.Queries++
		}
	}
	return s
}

// WriteSummary writes a human-readable rendering of s to w, matching the
// "Relations declared: N" block of demo.c.
func WriteSummary(w io.Writer, s Summary) error {
	_, err := fmt.Fprintf(w,
		"Relations declared: %d\nFacts asserted: %d\nRules defined: %d\nSolve statements: %d\nQueries: %d\n",
		s.Relations, s.Facts, s.Rules, s.Solves, s.Queries)
	return err
}
