package diary

import (
	"errors"
	"fmt"
)

// ErrSecretsDetected aborts a publish when the staged diff contains secrets
var ErrSecretsDetected = errors.New("secrets detected in staged changes")

// Step names a transition of the publish state machine
type Step string

const (
	StepInitRepository Step = "initialize repository"
	StepVerifyRemote   Step = "verify remote"
	StepWriteEntry     Step = "write entry"
	StepPruneEntries   Step = "prune entries"
	StepPublish        Step = "publish changes"
)

// StepError records which transition failed
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
