package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gitrdm/bytelog/internal/parser"
	"github.com/gitrdm/bytelog/pkg/bytelog"
)

var queryCmd = &cobra.Command{
	Use:   "query <file.bytelog> <relation> <a> <b>",
	Short: "Load a program (running any embedded SOLVE) and answer one ad-hoc query",
	Long: `query loads and runs <file.bytelog> as "bytelog run" does, except
that the results of embedded QUERY statements are not printed, then answers
one additional query against the resulting fact store. Each of <a> and <b> is either "?"
for a wildcard, an integer literal, or an atom name already used somewhere
in the program.`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, relName, aArg, bArg := args[0], args[1], args[2], args[3]

		src, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("bytelog: read %s: %w", file, err)
		}
		prog, err := parser.Parse(string(src))
		if err != nil {
			return err
		}

		p := bytelog.NewProgram()
		p.MaxIterations = cfg.MaxIterations
		p.Workers = cfg.Workers
		if err := p.Load(prog, nil); err != nil {
			return err
		}

		rel, ok := p.Relations.Lookup(relName)
		if !ok {
			return printQueryResult(cmd.OutOrStdout(), cfg.OutputFormat, p.Atoms, relName, nil)
		}

		a, ok := queryArg(p.Atoms, aArg)
		if !ok {
			return printQueryResult(cmd.OutOrStdout(), cfg.OutputFormat, p.Atoms, relName, nil)
		}
		b, ok := queryArg(p.Atoms, bArg)
		if !ok {
			return printQueryResult(cmd.OutOrStdout(), cfg.OutputFormat, p.Atoms, relName, nil)
		}

		pairs := bytelog.Query(p.Store, rel, a, b)
		return printQueryResult(cmd.OutOrStdout(), cfg.OutputFormat, p.Atoms, relName, pairs)
	},
}

// queryArg resolves a CLI argument to a query Arg. "?" is the wildcard; an
// integer-looking argument is a literal; anything else must already be an
// interned atom name, or the query can never match anything and the caller
// should short-circuit to an empty result.
func queryArg(atoms *bytelog.AtomTable, s string) (bytelog.Arg, bool) {
	if s == "?" {
		return bytelog.Wild(), true
	}
	if n, err := strconv.Atoi(s); err == nil {
		return bytelog.Concrete(n), true
	}
	id, ok := atoms.Lookup(s)
	if !ok {
		return bytelog.Arg{}, false
	}
	return bytelog.Concrete(id), true
}
