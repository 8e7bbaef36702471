package model

import "time"

// Run states as recorded in history. They mirror the publisher's final state.
const (
	RunStatePublished = "published"
	RunStateFailed    = "failed"
)

type RunRecord struct {
	// UID is the unique identifier for the run
	UID string `json:"uid"`

	// StartedAt and FinishedAt bracket the run
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// WorkDir is the diary working directory the run operated on
	WorkDir string `json:"work_dir"`

	// Entry is the file name of the entry written by the run
	Entry string `json:"entry"`

	// State is the final state of the run
	State string `json:"state"`

	// FailedStep names the step that failed, empty on success
	FailedStep string `json:"failed_step,omitempty"`

	// Commit is the HEAD SHA after the push
	Commit string `json:"commit,omitempty"`

	// Committed is false when the working tree had nothing new
	Committed bool `json:"committed"`

	// Pruned lists the entry files deleted by the run
	Pruned []string `json:"pruned,omitempty"`

	// Error is the error text of a failed run
	Error string `json:"error,omitempty"`

	// Trigger is what started the run: "cli" or "service"
	Trigger string `json:"trigger"`
}

// Succeeded reports whether the run reached the published state
func (r RunRecord) Succeeded() bool {
	return r.State == RunStatePublished
}

// Duration is how long the run took
func (r RunRecord) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}

	return r.FinishedAt.Sub(r.StartedAt)
}
