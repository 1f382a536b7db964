// Package wasmtext emits WebAssembly Text (WAT) scaffolding for a ByteLog
// program, ported from original_source/src/wat_gen.c. It is, like its C
// ancestor, a sketch: the memory layout, fact hashing, and point-query
// lookup functions are real WAT, but rule bodies lower to a stub function
// body rather than actual SCAN/JOIN/EMIT instructions (see the TODO in
// ruleFunctions below). Not on the path from source to derived facts.
package wasmtext

import (
	"fmt"
	"io"

	"github.com/gitrdm/bytelog/internal/ast"
)

const (
	wasmPageSize   = 65536
	factSize       = 12 // three i32 columns: rel, a, b
	factHashBucket = 1000
)

// Emit writes a WAT module for prog to w. The module's fact-database
// functions (add_fact, has_fact) are real WAT; rule and non-ground query
// lowering are stubs (see package doc). Relation ids are taken from the
// length of the relation name and every atom argument is emitted as 0, so a
// lowered ground query does not distinguish atoms or same-length relation
// names the way the engine does.
func Emit(w io.Writer, prog *ast.Program) error {
	g := &generator{w: w}
	g.calculateMemory(prog)

	g.writeLine("(module")
	g.comment("Generated ByteLog WebAssembly module")
	g.memorySection()
	g.factFunctions()
	g.ruleFunctions(prog)
	g.queryFunctions(prog)
	g.mainFunction(prog)
	g.exports()
	g.writeLine(")")

	return g.err
}

type generator struct {
	w          io.Writer
	err        error
	memoryPages int
	nextFuncID int
}

func (g *generator) writeString(s string) {
	if g.err != nil {
		return
	}
	_, g.err = io.WriteString(g.w, s)
}

func (g *generator) writeLine(s string) {
	g.writeString(s)
	g.writeString("\n")
}

func (g *generator) comment(s string) {
	g.writeString("  ;; ")
	g.writeLine(s)
}

// calculateMemory estimates pages needed for facts and their interned atom
// names, the same rough 3x-derivation-factor heuristic as
// wat_gen_calculate_memory in the C original.
func (g *generator) calculateMemory(prog *ast.Program) {
	factCount := 0
	atomBytes := 0
	for _, stmt := range prog.Statements {
		f, ok := stmt.(*ast.Fact)
		if !ok {
			continue
		}
		factCount++
		if f.A.IsAtom {
			atomBytes += len(f.A.Atom) + 1
		}
		if f.B.IsAtom {
			atomBytes += len(f.B.Atom) + 1
		}
	}
	factCount *= 3 // headroom for SOLVE-derived facts
	needed := factCount*factSize + atomBytes
	g.memoryPages = needed/wasmPageSize + 1
}

func (g *generator) memorySection() {
	g.writeLine(fmt.Sprintf("  (memory %d)", g.memoryPages))
}

// factFunctions emits the fixed fact-database primitives: a hash over
// (rel, a, b), a store, and a ground-term lookup. These three are complete;
// queryFunctions lowers a ground QUERY to a call of the lookup.
func (g *generator) factFunctions() {
	g.comment("Fact database functions")
	g.writeLine(`  (func $hash_fact (param $rel i32) (param $a i32) (param $b i32) (result i32)
    local.get $rel
    i32.const 31
    i32.mul
    local.get $a
    i32.add
    i32.const 31
    i32.mul
    local.get $b
    i32.add
    i32.const ` + fmt.Sprintf("%d", factHashBucket) + `
    i32.rem_u
  )
`)
	g.writeLine(`  (func $add_fact (param $rel i32) (param $a i32) (param $b i32)
    (local $offset i32)
    local.get $rel
    local.get $a
    local.get $b
    call $hash_fact
    i32.const ` + fmt.Sprintf("%d", factSize) + `
    i32.mul
    local.set $offset
    local.get $offset
    local.get $rel
    i32.store
    local.get $offset
    i32.const 4
    i32.add
    local.get $a
    i32.store
    local.get $offset
    i32.const 8
    i32.add
    local.get $b
    i32.store
  )
`)
	g.writeLine(`  (func $has_fact (param $rel i32) (param $a i32) (param $b i32) (result i32)
    (local $offset i32)
    local.get $rel
    local.get $a
    local.get $b
    call $hash_fact
    i32.const ` + fmt.Sprintf("%d", factSize) + `
    i32.mul
    local.set $offset
    local.get $offset
    i32.load
    local.get $rel
    i32.eq
    local.get $offset
    i32.const 4
    i32.add
    i32.load
    local.get $a
    i32.eq
    i32.and
    local.get $offset
    i32.const 8
    i32.add
    i32.load
    local.get $b
    i32.eq
    i32.and
  )
`)
}

// ruleFunctions emits one stub function per RULE statement. Unlike
// factFunctions, these don't lower SCAN/JOIN/EMIT to WAT: doing so needs a
// register-to-local allocation pass and a loop construct per op, which this
// sketch never grew.
//
// TODO: lower Rule.Body (the parsed ast.Op slice) to a loop over
// $hash_fact-addressed memory instead of emitting this stub.
func (g *generator) ruleFunctions(prog *ast.Program) {
	g.comment("Rule evaluation functions")
	for _, stmt := range prog.Statements {
		r, ok := stmt.(*ast.Rule)
		if !ok {
			continue
		}
		g.writeLine(fmt.Sprintf("  (func $rule_%s_%d", r.Target, g.nextFuncID))
		g.nextFuncID++
		g.writeLine("    ;; TODO: lower SCAN/JOIN/EMIT body to WAT instructions")
		g.writeLine("  )")
		g.writeString("\n")
	}
}

// queryFunctions emits one function per QUERY statement. Ground (fully
// bound) queries compile to a real has_fact call; any query with a
// wildcard argument falls back to a stub that always reports a match,
// since enumerating results over linear memory isn't implemented.
func (g *generator) queryFunctions(prog *ast.Program) {
	g.comment("Query functions")
	id := 0
	for _, stmt := range prog.Statements {
		q, ok := stmt.(*ast.Query)
		if !ok {
			continue
		}
		g.writeLine(fmt.Sprintf("  (func $query_%d (result i32)", id))
		id++
		g.writeLine(fmt.Sprintf("    ;; Query: %s(%s, %s)", q.Rel, queryArgComment(q.A), queryArgComment(q.B)))
		if !q.A.Wildcard && !q.B.Wildcard {
			relID := len(q.Rel) % 100
			g.writeLine(fmt.Sprintf("    i32.const %d", relID))
			g.writeLine(fmt.Sprintf("    i32.const %d", literalInt(q.A.Literal)))
			g.writeLine(fmt.Sprintf("    i32.const %d", literalInt(q.B.Literal)))
			g.writeLine("    call $has_fact")
		} else {
			g.writeLine("    ;; TODO: non-ground queries need a linear scan over fact memory")
			g.writeLine("    i32.const 1")
		}
		g.writeLine("  )")
		g.writeString("\n")
	}
}

func literalInt(lit ast.Literal) int {
	if lit.IsAtom {
		// Atom values aren't resolved at WAT-generation time; the sketch
		// doesn't carry an atom table through to here. See package doc.
		return 0
	}
	return lit.Int
}

func queryArgComment(qa ast.QueryArg) string {
	if qa.Wildcard {
		return "?"
	}
	if qa.Literal.IsAtom {
		return qa.Literal.Atom
	}
	return fmt.Sprintf("%d", qa.Literal.Int)
}

// mainFunction emits the module's entry point: every FACT is loaded via
// add_fact. Rule evaluation is left as a TODO, matching wat_gen.c's own
// "TODO: Evaluate rules here" comment; this sketch never reached the
// fixpoint-in-WASM stage.
func (g *generator) mainFunction(prog *ast.Program) {
	g.comment("Main execution function")
	g.writeLine("  (func $main")
	for _, stmt := range prog.Statements {
		f, ok := stmt.(*ast.Fact)
		if !ok {
			continue
		}
		relID := len(f.Rel) % 100
		g.writeLine(fmt.Sprintf("    ;; Add fact: %s(%s, %s)", f.Rel, literalComment(f.A), literalComment(f.B)))
		g.writeLine(fmt.Sprintf("    i32.const %d", relID))
		g.writeLine(fmt.Sprintf("    i32.const %d", literalInt(f.A)))
		g.writeLine(fmt.Sprintf("    i32.const %d", literalInt(f.B)))
		g.writeLine("    call $add_fact")
		g.writeString("\n")
	}
	g.comment("TODO: evaluate rules here (see ruleFunctions)")
	g.writeLine("  )")
	g.writeString("\n")
}

func literalComment(lit ast.Literal) string {
	if lit.IsAtom {
		return lit.Atom
	}
	return fmt.Sprintf("%d", lit.Int)
}

func (g *generator) exports() {
	g.comment("Exports for the host environment")
	g.writeLine(`  (export "main" (func $main))
  (export "memory" (memory 0))
  (export "add_fact" (func $add_fact))
  (export "has_fact" (func $has_fact))
`)
}
