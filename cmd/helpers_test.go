package cmd

import (
	"errors"
	"testing"
	"time"

	"github.com/inovacc/diarypush/internal/diary"
	"github.com/inovacc/diarypush/internal/model"
	"github.com/stretchr/testify/assert"
)

var testDay = time.Date(2024, time.March, 15, 8, 0, 0, 0, time.UTC)

func TestShortSHA(t *testing.T) {
	assert.Equal(t, "0123456", shortSHA("0123456789abcdef"))
	assert.Equal(t, "abc", shortSHA("abc"))
	assert.Empty(t, shortSHA(""))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "250ms", formatDuration(250*time.Millisecond+400*time.Microsecond))
	assert.Equal(t, "1.5s", formatDuration(1523*time.Millisecond))
}

func TestNewRunRecord_Published(t *testing.T) {
	start := testDay

	res := &diary.Result{
		State:      diary.StatePublished,
		Entry:      diary.NewEntry(start, "n"),
		Pruned:     []string{"/srv/diary/14-03-2024.txt"},
		Publish:    &diary.PublishReport{Committed: true, Pushed: true, Commit: "feedface"},
		StartedAt:  start,
		FinishedAt: start.Add(2 * time.Second),
	}

	rec := newRunRecord(res, nil, "/srv/diary", triggerCLI)

	assert.Equal(t, "15-03-2024.txt", rec.Entry)
	assert.Equal(t, model.RunStatePublished, rec.State)
	assert.True(t, rec.Succeeded())
	assert.Equal(t, []string{"14-03-2024.txt"}, rec.Pruned)
	assert.Equal(t, "feedface", rec.Commit)
	assert.True(t, rec.Committed)
	assert.Equal(t, "cli", rec.Trigger)
	assert.Equal(t, 2*time.Second, rec.Duration())
	assert.Empty(t, rec.Error)
}

func TestNewRunRecord_Failed(t *testing.T) {
	res := &diary.Result{
		State:      diary.StateFailed,
		FailedStep: diary.StepPublish,
		StartedAt:  time.Now(),
	}

	err := &diary.StepError{Step: diary.StepPublish, Err: errors.New("git push failed: rejected")}

	rec := newRunRecord(res, err, "/srv/diary", triggerService)

	assert.Equal(t, model.RunStateFailed, rec.State)
	assert.Equal(t, "publish changes", rec.FailedStep)
	assert.Equal(t, "git push failed: rejected", rec.Error)
	assert.Empty(t, rec.Commit)
}
