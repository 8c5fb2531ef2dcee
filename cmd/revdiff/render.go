package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/movlib/go-diff/diffmatchpatch"
	"github.com/movlib/go-diff/internal/revision"
)

// resolveFormat returns the --format override or the configured format.
func resolveFormat() string {
	if outputFormat != "" {
		return outputFormat
	}
	return cfg.Output.Format
}

// resolveGranularity returns the --granularity override or the configured one.
func resolveGranularity() (revision.Granularity, error) {
	g := cfg.Diff.Granularity
	if granularityFlag != "" {
		g = granularityFlag
	}
	return revision.ParseGranularity(g)
}

// render writes diffs to w in the given format.
func render(w io.Writer, format string, dmp *diffmatchpatch.DiffMatchPatch, diffs []diffmatchpatch.Diff, oldLabel, newLabel string) error {
	var err error
	switch format {
	case "html":
		_, err = fmt.Fprintln(w, dmp.DiffPrettyHtml(diffs))
	case "text":
		_, err = fmt.Fprintln(w, dmp.DiffPrettyText(diffs))
	case "unified":
		_, err = io.WriteString(w, dmp.DiffUnified(diffs,
			diffmatchpatch.UnifiedLabels(oldLabel, newLabel),
			diffmatchpatch.UnifiedContextLines(cfg.Output.ContextLines)))
	case "json":
		if diffs == nil {
			diffs = []diffmatchpatch.Diff{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(diffs)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return err
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
