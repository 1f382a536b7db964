package printer

import (
	"strings"
	"testing"

	"github.com/gitrdm/bytelog/internal/parser"
)

func TestTreeRendersEveryStatement(t *testing.T) {
	prog, err := parser.Parse("REL p\nFACT p a b\nRULE p: SCAN p, EMIT p $0 $1\nSOLVE\nQUERY p a ?\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var buf strings.Builder
	if err := Tree(&buf, prog); err != nil {
		t.Fatalf("Tree: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"REL p", "FACT p a b", "RULE p", "SOLVE", "QUERY p a ?"} {
		if !strings.Contains(out, want) {
			t.Fatalf("Tree output missing %q:\n%s", want, out)
		}
	}
}

func TestSummarizeCounts(t *testing.T) {
	prog, err := parser.Parse("REL p\nREL q\nFACT p a b\nSOLVE\nQUERY p ? ?\nQUERY q ? ?\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	s := Summarize(prog)
	want := Summary{Relations: 2, Facts: 1, Rules: 0, Solves: 1, Queries: 2}
	if s != want {
		t.Fatalf("Summarize = %+v, want %+v", s, want)
	}
}

func TestWriteSummary(t *testing.T) {
	var buf strings.Builder
	if err := WriteSummary(&buf, Summary{Relations: 1}); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	if !strings.Contains(buf.String(), "Relations declared: 1") {
		t.Fatalf("unexpected summary output: %q", buf.String())
	}
}
