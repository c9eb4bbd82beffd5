package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/edslab/mineraliz/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded classification runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		runID, _ := cmd.Flags().GetString("labels")
		prune, _ := cmd.Flags().GetInt("prune")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := cmd.Context()
		repo := s.RunRepo()
		w := cmd.OutOrStdout()

		if cmd.Flags().Changed("prune") {
			if err := repo.Prune(ctx, prune); err != nil {
				return fmt.Errorf("prune runs: %w", err)
			}
			fmt.Fprintf(w, "Kept the %d most recent runs.\n", prune)
			return nil
		}

		if runID != "" {
			return printRunLabels(ctx, w, repo, runID)
		}

		runs, err := repo.Recent(ctx, limit)
		if err != nil {
			return fmt.Errorf("query runs: %w", err)
		}
		if len(runs) == 0 {
			fmt.Fprintln(w, "No runs recorded.")
			return nil
		}

		// Header.
		fmt.Fprintf(w, "%-5s  %-36s  %-16s  %-6s  %9s  %9s  %-10s  %s\n",
			"Seq", "Run", "When", "Scheme", "Rows", "Unlabeled", "Elapsed", "Source")
		fmt.Fprintln(w, strings.Repeat("─", 120))

		for _, r := range runs {
			fmt.Fprintf(w, "%-5d  %-36s  %-16s  %-6s  %9s  %9s  %-10s  %s\n",
				r.Sequence,
				r.ID,
				humanize.Time(r.Timestamp),
				r.Scheme,
				humanize.Comma(int64(r.Rows)),
				humanize.Comma(int64(r.Unlabeled)),
				r.Duration,
				r.Source,
			)
		}
		return nil
	},
}

func printRunLabels(ctx context.Context, w io.Writer, repo store.RunRepo, runID string) error {
	run, err := repo.Get(ctx, runID)
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}
	if run == nil {
		return fmt.Errorf("run %s not found", runID)
	}
	labels, err := repo.Labels(ctx, runID)
	if err != nil {
		return fmt.Errorf("query labels: %w", err)
	}

	fmt.Fprintf(w, "Run:       %s\n", run.ID)
	fmt.Fprintf(w, "Time:      %s\n", run.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Scheme:    %s\n", run.Scheme)
	fmt.Fprintf(w, "Source:    %s\n", run.Source)
	fmt.Fprintf(w, "Rows:      %s (%s unlabeled)\n", humanize.Comma(int64(run.Rows)), humanize.Comma(int64(run.Unlabeled)))
	fmt.Fprintf(w, "Elapsed:   %s\n", run.Duration)
	fmt.Fprintln(w, strings.Repeat("─", 40))
	for _, l := range labels {
		fmt.Fprintf(w, "%-28s  %9s\n", l.Label, humanize.Comma(int64(l.Count)))
	}
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Number of runs to list (0 = all)")
	historyCmd.Flags().String("labels", "", "Show the label counts of one run")
	historyCmd.Flags().Int("prune", 0, "Delete all but the N most recent runs")
}
