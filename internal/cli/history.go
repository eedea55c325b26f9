package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/hosei/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	RunID    string
	Limit    int
}

// HistoryResult is the JSON payload of a run listing.
type HistoryResult struct {
	Runs []store.Run `json:"runs"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored inference runs",
		Long: `List inference runs stored with 'hosei infer --db', newest first.

With --run, show the per-waza results of a single run.

Example:
  hosei history --db ./hosei.db
  hosei history --db ./hosei.db --run 0192f7c4-...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", rootOpts.Config.Database, "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "show a single run by id")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs to list (0 = all)")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.Database == "" {
		_ = formatter.Error(ErrCodeGeneric, "database path required (--db or HOSEI_DB)", nil)
		return &ExitError{Code: ExitCommandError, Message: "database path required", Reported: true}
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return reportFailure(formatter, &databaseError{Op: "open database", Err: err})
	}
	defer st.Close()

	if opts.RunID != "" {
		run, err := st.ReadRun(ctx, opts.RunID)
		if err != nil {
			return reportFailure(formatter, &databaseError{Op: "read run", Err: err})
		}
		return outputRun(formatter, run)
	}

	runs, err := st.ListRuns(ctx, opts.Limit)
	if err != nil {
		return reportFailure(formatter, &databaseError{Op: "list runs", Err: err})
	}
	return outputRuns(formatter, runs)
}

// outputRuns prints a run listing.
func outputRuns(formatter *OutputFormatter, runs []store.Run) error {
	if formatter.Format == "json" {
		return formatter.Success(HistoryResult{Runs: runs})
	}

	w := formatter.Writer
	if len(runs) == 0 {
		fmt.Fprintln(w, "(no runs)")
		return nil
	}
	for _, run := range runs {
		writeRunSummary(w, run)
	}
	return nil
}

// outputRun prints one run with its entries.
func outputRun(formatter *OutputFormatter, run store.Run) error {
	if formatter.Format == "json" {
		return formatter.Success(run)
	}

	w := formatter.Writer
	writeRunSummary(w, run)
	fmt.Fprintf(w, "dataset digest: %s\n", run.DatasetDigest)
	fmt.Fprintln(w)
	for _, e := range run.Entries {
		writeEntryLine(w, e.WazaID, e.DM, run.Base())
	}
	return nil
}
