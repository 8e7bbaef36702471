// Package schedule runs a job once a day at a fixed wall-clock time
package schedule

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Spec returns the cron schedule firing every day at at (an offset from
// midnight) in loc.
func Spec(at time.Duration, loc *time.Location) (*cron.SpecSchedule, error) {
	if at < 0 || at >= 24*time.Hour {
		return nil, fmt.Errorf("time of day out of range: %s", at)
	}

	h := int(at / time.Hour)
	m := int((at % time.Hour) / time.Minute)

	sched, err := cron.ParseStandard(fmt.Sprintf("%d %d * * *", m, h))
	if err != nil {
		return nil, err
	}

	spec := sched.(*cron.SpecSchedule)
	spec.Location = loc

	return spec, nil
}

// NextRun returns the first instant strictly after now whose wall clock, in
// now's location, equals at. The zero time is returned when at is not a
// time of day.
func NextRun(now time.Time, at time.Duration) time.Time {
	spec, err := Spec(at, now.Location())
	if err != nil {
		return time.Time{}
	}

	return spec.Next(now)
}

// Daily runs Job every day at At until the context is cancelled.
type Daily struct {
	At     time.Duration
	Job    func(ctx context.Context) error
	Logger *slog.Logger

	// Location defaults to time.Local
	Location *time.Location

	schedule cron.Schedule
}

// Run blocks until ctx is done and returns its error. A failing job is
// logged and the next day's run stays scheduled. A run still in flight
// when the next one is due makes the scheduler skip that one.
func (s *Daily) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	loc := s.Location
	if loc == nil {
		loc = time.Local
	}

	sched := s.schedule
	if sched == nil {
		spec, err := Spec(s.At, loc)
		if err != nil {
			return err
		}

		sched = spec
	}

	cl := cronLogger{logger: logger}

	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	c.Schedule(sched, cron.FuncJob(func() {
		if ctx.Err() != nil {
			return
		}

		if err := s.Job(ctx); err != nil {
			logger.Error("scheduled run failed", "error", err)
		} else {
			logger.Info("scheduled run finished")
		}

		logger.Info("next run scheduled", "at", sched.Next(time.Now().In(loc)).Format(time.RFC3339))
	}))

	c.Start()
	logger.Info("next run scheduled", "at", sched.Next(time.Now().In(loc)).Format(time.RFC3339))

	<-ctx.Done()
	<-c.Stop().Done()

	return ctx.Err()
}

// cronLogger routes the scheduler's own chatter to slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
