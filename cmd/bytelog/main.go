// Command bytelog is the ByteLog CLI: parse and run a .bytelog program,
// issue an ad-hoc query against one, or just check a program compiles.
// Command wiring follows theRebelliousNerd-codenerd/cmd/nerd/main.go's
// cobra root-command-plus-PersistentPreRunE-logger-bring-up shape, scaled
// down to ByteLog's three subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gitrdm/bytelog/internal/config"
)

var (
	verbose    bool
	configPath string
	format     string

	logger *zap.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "bytelog",
	Short: "ByteLog — a tiny register-VM Datalog engine",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		zcfg.Encoding = "console"
		zcfg.EncoderConfig.TimeKey = ""
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("bytelog: init logger: %w", err)
		}

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if format != "" {
			loaded.OutputFormat = config.OutputFormat(format)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "bytelog.yaml", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&format, "format", "", "output format: text or json (overrides config)")

	rootCmd.AddCommand(runCmd, queryCmd, checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
