package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/inovacc/diarypush/internal/diary"
	"github.com/inovacc/diarypush/internal/model"
	"golang.org/x/term"
)

// isInteractive reports whether f is attached to a terminal
func isInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}

	return sha
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}

	return d.Round(100 * time.Millisecond).String()
}

// newRunRecord converts a publisher result into a history record
func newRunRecord(res *diary.Result, runErr error, workDir, trigger string) *model.RunRecord {
	rec := &model.RunRecord{
		StartedAt:  res.StartedAt,
		FinishedAt: res.FinishedAt,
		WorkDir:    workDir,
		Entry:      res.Entry.FileName(),
		State:      res.State.String(),
		FailedStep: string(res.FailedStep),
		Trigger:    trigger,
	}

	for _, p := range res.Pruned {
		rec.Pruned = append(rec.Pruned, filepath.Base(p))
	}

	if res.Publish != nil {
		rec.Commit = res.Publish.Commit
		rec.Committed = res.Publish.Committed
	}

	if runErr != nil {
		var stepErr *diary.StepError
		if errors.As(runErr, &stepErr) {
			rec.Error = stepErr.Err.Error()
		} else {
			rec.Error = runErr.Error()
		}
	}

	return rec
}
