package main

import (
	"fmt"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const snippetLength = 10

var xindexCmd = &cobra.Command{
	Use:   "xindex OLD NEW LOC",
	Short: "Map a codepoint location in OLD to the same place in NEW",
	Long: `Diffs OLD against NEW character by character and translates LOC, a
codepoint offset into OLD, to the equivalent offset into NEW. A location
inside deleted text maps to the start of the deletion.`,
	Args: cobra.ExactArgs(3),
	RunE: runXIndex,
}

func runXIndex(cmd *cobra.Command, args []string) error {
	oldText, err := readText(args[0])
	if err != nil {
		return err
	}
	newText, err := readText(args[1])
	if err != nil {
		return err
	}
	oldLoc, err := cast.ToIntE(args[2])
	if err != nil {
		return fmt.Errorf("invalid location %q: %w", args[2], err)
	}
	oldRunes, newRunes := []rune(oldText), []rune(newText)
	if oldLoc < 0 || oldLoc > len(oldRunes) {
		return fmt.Errorf("location %d outside of %s (%d codepoints)", oldLoc, args[0], len(oldRunes))
	}

	dmp := cfg.Diff.NewEngine()
	var deadline time.Time
	if dmp.DiffTimeout > 0 {
		deadline = time.Now().Add(dmp.DiffTimeout)
	}
	// The codepoint counts are already known.
	diffs := dmp.DiffWithDeadline(oldText, len(oldRunes), newText, len(newRunes), deadline)
	newLoc := dmp.DiffXIndex(diffs, oldLoc)
	logger.Debug("Translated location", zap.Int("old", oldLoc), zap.Int("new", newLoc))

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, snippet(oldRunes, oldLoc))
	fmt.Fprintln(out, snippet(newRunes, newLoc))
	fmt.Fprintf(out, "loc_change: %d -> %d\n", oldLoc, newLoc)
	return nil
}

// snippet returns up to snippetLength codepoints of text starting at loc.
func snippet(text []rune, loc int) string {
	end := min(loc+snippetLength, len(text))
	return string(text[loc:end])
}
