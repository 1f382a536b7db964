package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitrdm/bytelog/internal/ast"
	"github.com/gitrdm/bytelog/internal/parser"
	"github.com/gitrdm/bytelog/internal/printer"
	"github.com/gitrdm/bytelog/pkg/bytelog"
)

var checkCmd = &cobra.Command{
	Use:   "check <file.bytelog>",
	Short: "Parse and validate a program without running SOLVE or answering any QUERY",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("bytelog: read %s: %w", args[0], err)
		}

		prog, err := parser.Parse(string(src))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if err := printer.Tree(out, prog); err != nil {
			return err
		}
		fmt.Fprintln(out)
		if err := printer.WriteSummary(out, printer.Summarize(prog)); err != nil {
			return err
		}

		// Compile REL/FACT/RULE only: SOLVE and QUERY are dropped so
		// checking a program never runs the fixpoint driver or touches the
		// query evaluator, just rule/relation/fact validation.
		checkOnly := &ast.Program{}
		for _, stmt := range prog.Statements {
			switch stmt.(type) {
			case *ast.Solve, *ast.Query:
				continue
			default:
				checkOnly.Statements = append(checkOnly.Statements, stmt)
			}
		}

		p := bytelog.NewProgram()
		if err := p.Load(checkOnly, nil); err != nil {
			return err
		}

		fmt.Fprintln(out, "\nOK: program compiles.")
		return nil
	},
}
