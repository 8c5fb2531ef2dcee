package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var diffTimeout string

var diffCmd = &cobra.Command{
	Use:   "diff OLD NEW",
	Short: "Show the differences between two files",
	Long: `Computes the edit script turning OLD into NEW and renders it.

Formats:
  - html: copied text as is, insertions in <ins>, deletions in <del>
  - text: ANSI colored text
  - unified: unified diff with hunks
  - json: the raw edit script`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "Output format: html, text, unified or json (default from config)")
	diffCmd.Flags().StringVarP(&granularityFlag, "granularity", "g", "", "Diff unit: chars, words or lines (default from config)")
	diffCmd.Flags().StringVar(&diffTimeout, "timeout", "", "Time budget before settling for a non-minimal diff, 0 for none (default from config)")
}

func runDiff(cmd *cobra.Command, args []string) error {
	oldText, err := readText(args[0])
	if err != nil {
		return err
	}
	newText, err := readText(args[1])
	if err != nil {
		return err
	}

	diffCfg := cfg.Diff
	if diffTimeout != "" {
		if _, err := time.ParseDuration(diffTimeout); err != nil {
			return fmt.Errorf("invalid --timeout: %w", err)
		}
		diffCfg.Timeout = diffTimeout
	}
	granularity, err := resolveGranularity()
	if err != nil {
		return err
	}

	dmp := diffCfg.NewEngine()
	start := time.Now()
	diffs := granularity.Diff(dmp, oldText, newText)
	logger.Debug("Computed diff",
		zap.String("granularity", string(granularity)),
		zap.Int("edits", len(diffs)),
		zap.Int("distance", dmp.DiffLevenshtein(diffs)),
		zap.Duration("elapsed", time.Since(start)))

	return render(cmd.OutOrStdout(), resolveFormat(), dmp, diffs, args[0], args[1])
}
