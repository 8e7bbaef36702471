package database

import (
	"errors"

	"github.com/inovacc/diarypush/internal/model"
)

var (
	// ErrNoRuns is returned by LastRun when nothing has been recorded yet
	ErrNoRuns = errors.New("no runs recorded")

	// ErrLocked is returned when another process holds the history database
	ErrLocked = errors.New("history database is locked by another diarypush process")
)

// Store defines the history operations used by the app.
type Store interface {
	Ping() error
	SaveRun(run *model.RunRecord) error
	ListRuns(limit int) ([]model.RunRecord, error)
	LastRun() (*model.RunRecord, error)
	Close() error
}
