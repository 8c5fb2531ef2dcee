package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/movlib/go-diff/diffmatchpatch"
	"github.com/movlib/go-diff/internal/config"
)

// setup resets the global state the commands read and returns a command
// whose output is captured.
func setup(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	logger = zap.NewNop()
	cfg = config.DefaultConfig()
	cfg.Storage.Path = filepath.Join(t.TempDir(), "revisions.db")
	outputFormat = ""
	granularityFlag = ""
	diffTimeout = ""
	historyAuthor = "tester"

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	return cmd, &out
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunDiff_Formats(t *testing.T) {
	oldPath := writeFile(t, "old.txt", "The quick brown fox\n")
	newPath := writeFile(t, "new.txt", "The quick pale fox\n")

	type TestCase struct {
		Format      string
		Granularity string

		Expected string
	}

	for _, tc := range []TestCase{
		{"html", "words", "The quick <del>brown</del><ins>pale</ins> fox\n\n"},
		{"text", "chars", "The quick \x1b[31mbrown\x1b[0m\x1b[32mpale\x1b[0m fox\n\n"},
		{"unified", "lines", "--- " + oldPath + "\n+++ " + newPath + "\n@@ -1 +1 @@\n-The quick brown fox\n+The quick pale fox\n"},
	} {
		cmd, out := setup(t)
		outputFormat = tc.Format
		granularityFlag = tc.Granularity

		require.NoError(t, runDiff(cmd, []string{oldPath, newPath}))
		assert.Equal(t, tc.Expected, out.String(), tc.Format)
	}
}

func TestRunDiff_JSON(t *testing.T) {
	cmd, out := setup(t)
	outputFormat = "json"
	granularityFlag = "chars"
	diffTimeout = "0"

	oldPath := writeFile(t, "old.txt", "cat")
	newPath := writeFile(t, "new.txt", "cart")
	require.NoError(t, runDiff(cmd, []string{oldPath, newPath}))

	var diffs []diffmatchpatch.Diff
	require.NoError(t, json.Unmarshal(out.Bytes(), &diffs))
	assert.Equal(t, []diffmatchpatch.Diff{
		{Type: diffmatchpatch.DiffCopy, Text: "ca", Length: 2},
		{Type: diffmatchpatch.DiffInsert, Text: "r", Length: 1},
		{Type: diffmatchpatch.DiffCopy, Text: "t", Length: 1},
	}, diffs)

	// Identical inputs give an empty array.
	cmd, out = setup(t)
	outputFormat = "json"
	require.NoError(t, runDiff(cmd, []string{oldPath, oldPath}))
	assert.Equal(t, "[]\n", out.String())
}

func TestRunDiff_Errors(t *testing.T) {
	path := writeFile(t, "a.txt", "a")

	cmd, _ := setup(t)
	assert.Error(t, runDiff(cmd, []string{path, filepath.Join(t.TempDir(), "missing.txt")}))

	cmd, _ = setup(t)
	granularityFlag = "sentences"
	assert.Error(t, runDiff(cmd, []string{path, path}))

	cmd, _ = setup(t)
	outputFormat = "pdf"
	assert.Error(t, runDiff(cmd, []string{path, path}))

	cmd, _ = setup(t)
	diffTimeout = "soon"
	assert.Error(t, runDiff(cmd, []string{path, path}))
}

func TestRunXIndex(t *testing.T) {
	cmd, out := setup(t)

	oldPath := writeFile(t, "old.txt", "The cat sat on the mat.")
	newPath := writeFile(t, "new.txt", "The big cat sat on the mat.")

	require.NoError(t, runXIndex(cmd, []string{oldPath, newPath, "4"}))
	assert.Equal(t, "cat sat on\ncat sat on\nloc_change: 4 -> 8\n", out.String())

	cmd, _ = setup(t)
	assert.Error(t, runXIndex(cmd, []string{oldPath, newPath, "four"}))

	cmd, _ = setup(t)
	assert.Error(t, runXIndex(cmd, []string{oldPath, newPath, "99"}))
}

func TestHistory(t *testing.T) {
	cmd, out := setup(t)
	granularityFlag = "words"

	v1 := writeFile(t, "v1.txt", "Hello world.")
	v2 := writeFile(t, "v2.txt", "Hello brave new world.")

	require.NoError(t, runHistoryAdd(cmd, []string{"page", v1}))
	require.NoError(t, runHistoryAdd(cmd, []string{"page", v1}))
	require.NoError(t, runHistoryAdd(cmd, []string{"page", v2}))
	assert.Equal(t, "page revision 1\npage unchanged at revision 1\npage revision 2\n", out.String())

	out.Reset()
	require.NoError(t, runHistoryList(cmd, []string{"page"}))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "REVISION"))
	assert.Contains(t, lines[1], "tester")
	assert.True(t, strings.HasSuffix(lines[2], "22"))

	out.Reset()
	require.NoError(t, runHistoryDiff(cmd, []string{"page", "1", "2"}))
	assert.Equal(t, "Hello <ins>brave new </ins>world.\n", out.String())

	out.Reset()
	outputFormat = "unified"
	require.NoError(t, runHistoryDiff(cmd, []string{"page", "1", "2"}))
	assert.Equal(t, "--- page@1\n+++ page@2\n@@ -1 +1 @@\n-Hello world.\n\\ No newline at end of file\n+Hello brave new world.\n\\ No newline at end of file\n", out.String())

	out.Reset()
	outputFormat = ""
	require.NoError(t, runHistoryChanges(cmd, []string{"page"}))
	assert.Equal(t, "# page r1 -> r2 (distance 10)\nHello <ins>brave new </ins>world.\n", out.String())

	assert.Error(t, runHistoryDiff(cmd, []string{"page", "1", "x"}))
	assert.Error(t, runHistoryDiff(cmd, []string{"page", "1", "3"}))
	assert.Error(t, runHistoryList(cmd, []string{"missing"}))
}

func TestRootCommand(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"diff", "xindex", "history"} {
		assert.True(t, names[name], name)
	}

	names = map[string]bool{}
	for _, c := range historyCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"add", "list", "diff", "changes"} {
		assert.True(t, names[name], name)
	}
}
