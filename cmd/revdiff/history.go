package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/movlib/go-diff/internal/revision"
)

var historyAuthor string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Record and compare revisions of entity texts",
}

var historyAddCmd = &cobra.Command{
	Use:   "add ENTITY FILE",
	Short: "Store the contents of FILE as the next revision of ENTITY",
	Args:  cobra.ExactArgs(2),
	RunE:  runHistoryAdd,
}

var historyListCmd = &cobra.Command{
	Use:   "list ENTITY",
	Short: "List the revisions of ENTITY",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryList,
}

var historyDiffCmd = &cobra.Command{
	Use:   "diff ENTITY FROM TO",
	Short: "Show the differences between two revisions of ENTITY",
	Args:  cobra.ExactArgs(3),
	RunE:  runHistoryDiff,
}

var historyChangesCmd = &cobra.Command{
	Use:   "changes ENTITY",
	Short: "Show every change made to ENTITY, revision by revision",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryChanges,
}

func init() {
	historyCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "", "Output format: html, text, unified or json (default from config)")
	historyCmd.PersistentFlags().StringVarP(&granularityFlag, "granularity", "g", "", "Diff unit: chars, words or lines (default from config)")
	historyAddCmd.Flags().StringVar(&historyAuthor, "author", os.Getenv("USER"), "Author recorded with the revision")

	historyCmd.AddCommand(historyAddCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyDiffCmd)
	historyCmd.AddCommand(historyChangesCmd)
}

// openService opens the configured store. The returned function closes it.
func openService() (*revision.Service, func(), error) {
	granularity, err := resolveGranularity()
	if err != nil {
		return nil, nil, err
	}
	store, err := revision.OpenSQLite(cfg.Storage.Path)
	if err != nil {
		return nil, nil, err
	}
	svc := revision.NewService(store, cfg.Diff.NewEngine(), granularity, logger)
	return svc, func() { _ = store.Close() }, nil
}

func runHistoryAdd(cmd *cobra.Command, args []string) error {
	text, err := readText(args[1])
	if err != nil {
		return err
	}
	svc, closeStore, err := openService()
	if err != nil {
		return err
	}
	defer closeStore()

	rev, err := svc.Commit(commandContext(cmd), args[0], historyAuthor, text)
	if errors.Is(err, revision.ErrUnchanged) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s unchanged at revision %d\n", args[0], rev.Number)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s revision %d\n", rev.EntityID, rev.Number)
	return nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := revision.OpenSQLite(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	revs, err := store.List(commandContext(cmd), args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REVISION\tAUTHOR\tCREATED\tLENGTH")
	for _, rev := range revs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", rev.Number, rev.Author, rev.Created.Format(time.RFC3339), len([]rune(rev.Text)))
	}
	return w.Flush()
}

func runHistoryDiff(cmd *cobra.Command, args []string) error {
	from, err := cast.ToIntE(args[1])
	if err != nil {
		return fmt.Errorf("invalid revision %q: %w", args[1], err)
	}
	to, err := cast.ToIntE(args[2])
	if err != nil {
		return fmt.Errorf("invalid revision %q: %w", args[2], err)
	}

	svc, closeStore, err := openService()
	if err != nil {
		return err
	}
	defer closeStore()

	c, err := svc.Compare(commandContext(cmd), args[0], from, to)
	if err != nil {
		return err
	}
	return renderComparison(cmd, c)
}

func runHistoryChanges(cmd *cobra.Command, args []string) error {
	svc, closeStore, err := openService()
	if err != nil {
		return err
	}
	defer closeStore()

	changes, err := svc.Changes(commandContext(cmd), args[0])
	if err != nil {
		return err
	}
	for _, c := range changes {
		fmt.Fprintf(cmd.OutOrStdout(), "# %s r%d -> r%d (distance %d)\n", c.EntityID, c.From, c.To, c.Distance)
		if err := renderComparison(cmd, c); err != nil {
			return err
		}
	}
	return nil
}

func renderComparison(cmd *cobra.Command, c *revision.Comparison) error {
	return render(cmd.OutOrStdout(), resolveFormat(), cfg.Diff.NewEngine(), c.Diffs,
		fmt.Sprintf("%s@%d", c.EntityID, c.From),
		fmt.Sprintf("%s@%d", c.EntityID, c.To))
}
