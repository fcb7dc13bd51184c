package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/notional/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query recorded calculation runs",
	Long: `Query runs recorded with "notional calc --db".

Subcommands:
  list  - List the most recent runs
  show  - Show one run as an Org-mode block

Examples:
  notional journal list -d runs.sqlite
  notional journal show <run-id> -d runs.sqlite`,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runJournalList,
}

var journalShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalShow,
}

var (
	journalDBPath string
	journalLimit  int
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalShowCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./notional.sqlite", "path to SQLite journal DB")
	journalListCmd.Flags().IntVarP(&journalLimit, "limit", "n", 20, "maximum number of runs (0 for all)")
}

func runJournalList(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	runs, err := j.ListRuns(cmd.Context(), journalLimit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return nil
	}
	fmt.Fprintf(out, "%-26s  %-16s  %-14s  %6s  %18s  %s\n", "Run ID", "Created", "Platform", "Trades", "Notional (USD)", "File")
	for _, r := range runs {
		fmt.Fprintf(out, "%-26s  %-16s  %-14s  %6d  %18s  %s\n",
			r.RunID,
			r.Created.Local().Format("2006-01-02 15:04"),
			r.Platform,
			r.TotalTrades,
			"$"+humanize.FormatFloat("#,###.##", r.TotalNotional),
			r.SourceFile,
		)
	}
	return nil
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	ctx := cmd.Context()
	runID := args[0]
	run, err := j.GetRun(ctx, runID)
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}
	trades, err := j.ListRunTrades(ctx, runID)
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}
	skipped, err := j.ListRunSkipped(ctx, runID)
	if err != nil {
		return fmt.Errorf("list skipped: %w", err)
	}

	org, err := journal.FormatRunOrg(run, trades, skipped)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), org)
	return nil
}
