package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/inovacc/diarypush/internal/database"
	"github.com/inovacc/diarypush/internal/model"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 10, "Number of runs to show (0 for all)")
	historyCmd.Flags().Bool("failed", false, "Only show failed runs")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	failedOnly, _ := cmd.Flags().GetBool("failed")

	db, err := database.NewBolt(cfg.HistoryPath)
	if err != nil {
		return fmt.Errorf("failed to open run history: %w", err)
	}

	defer func() { _ = db.Close() }()

	fetch := limit
	if failedOnly {
		fetch = 0
	}

	runs, err := db.ListRuns(fetch)
	if err != nil {
		return err
	}

	if failedOnly {
		runs = filterFailed(runs, limit)
	}

	printHistory(cmd.OutOrStdout(), runs)

	return nil
}

func filterFailed(runs []model.RunRecord, limit int) []model.RunRecord {
	var out []model.RunRecord

	for _, r := range runs {
		if r.Succeeded() {
			continue
		}

		out = append(out, r)

		if limit > 0 && len(out) == limit {
			break
		}
	}

	return out
}

func printHistory(w io.Writer, runs []model.RunRecord) {
	if len(runs) == 0 {
		_, _ = fmt.Fprintln(w, dimStyle.Render("No runs recorded yet."))
		return
	}

	_, _ = fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%-20s %-16s %-10s %-8s %-9s %s", "STARTED", "ENTRY", "STATE", "COMMIT", "DURATION", "DETAIL")))

	for _, r := range runs {
		state := okStyle.Render(fmt.Sprintf("%-10s", r.State))
		if !r.Succeeded() {
			state = errStyle.Render(fmt.Sprintf("%-10s", r.State))
		}

		_, _ = fmt.Fprintf(w, "%-20s %-16s %s %-8s %-9s %s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Entry,
			state,
			shortSHA(r.Commit),
			formatDuration(r.Duration()),
			dimStyle.Render(runDetail(r)),
		)
	}
}

func runDetail(r model.RunRecord) string {
	if !r.Succeeded() {
		return fmt.Sprintf("%s: %s", r.FailedStep, r.Error)
	}

	var parts []string

	if !r.Committed {
		parts = append(parts, "no changes")
	}

	if len(r.Pruned) > 0 {
		parts = append(parts, "pruned "+strings.Join(r.Pruned, ", "))
	}

	if r.Trigger != "" {
		parts = append(parts, "via "+r.Trigger)
	}

	return strings.Join(parts, "; ")
}
