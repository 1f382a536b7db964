package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gitrdm/bytelog/internal/config"
	"github.com/gitrdm/bytelog/pkg/bytelog"
)

// valueString renders v as its atom name if one was interned for it,
// falling back to the bare integer (an integer literal FACT argument, or an
// atom id the query's own run never interned (e.g. a relation with no
// atom columns at all).
func valueString(atoms *bytelog.AtomTable, v int) string {
	if name, ok := atoms.Name(v); ok {
		return name
	}
	return fmt.Sprintf("%d", v)
}

type jsonResult struct {
	Relation string     `json:"relation"`
	Pairs    [][2]string `json:"pairs"`
}

// printQueryResult writes one QueryResult to w in the configured format.
func printQueryResult(w io.Writer, format config.OutputFormat, atoms *bytelog.AtomTable, rel string, pairs [][2]int) error {
	if format == config.FormatJSON {
		out := jsonResult{Relation: rel, Pairs: make([][2]string, len(pairs))}
		for i, p := range pairs {
			out.Pairs[i] = [2]string{valueString(atoms, p[0]), valueString(atoms, p[1])}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintf(w, "%s:\n", rel)
	if len(pairs) == 0 {
		fmt.Fprintln(w, "  (no results)")
		return nil
	}
	for _, p := range pairs {
		fmt.Fprintf(w, "  (%s, %s)\n", valueString(atoms, p[0]), valueString(atoms, p[1]))
	}
	return nil
}
