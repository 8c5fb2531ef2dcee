// Command revdiff computes and renders differences between texts and keeps
// a revision history of entity texts in SQLite.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/movlib/go-diff/internal/config"
)

var (
	// Global flags
	cfgFile string
	verbose bool

	// Output overrides shared by diff and history
	outputFormat    string
	granularityFlag string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "revdiff",
	Short: "Compute, render and track text differences",
	Long: `revdiff compares texts codepoint by codepoint, word by word or line by line
and renders the edit script as HTML, colored text, a unified diff or JSON.

The history commands store successive revisions of an entity's text in SQLite
and compare any two of them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		logger, err = cfg.Logging.NewLogger(verbose)
		if err != nil {
			return err
		}
		logger.Debug("Loaded configuration", zap.String("path", cfgFile))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "revdiff.yaml", "Configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(xindexCmd)
	rootCmd.AddCommand(historyCmd)
}

// commandContext returns the command's context, or a background context for
// commands that were not started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
