package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gitrdm/bytelog/internal/parser"
	"github.com/gitrdm/bytelog/pkg/bytelog"
)

var runCmd = &cobra.Command{
	Use:   "run <file.bytelog>",
	Short: "Parse, load, and run a ByteLog program, printing every embedded QUERY result",
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

		p := bytelog.NewProgram()
		p.MaxIterations = cfg.MaxIterations
		p.Workers = cfg.Workers
		out := cmd.OutOrStdout()
		return p.Load(prog, func(result bytelog.QueryResult) {
			if err := printQueryResult(out, cfg.OutputFormat, p.Atoms, result.Rel, result.Pairs); err != nil {
				logger.Warn("failed to print query result", zap.Error(err))
			}
		})
	},
}
