package git

import (
	"bytes"
	"context"
	"os/exec"
)

// Runner executes a git subcommand inside dir and returns its stdout.
// A non-zero exit status is reported as a *GitError.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// ExecRunner is the default Runner and delegates to the git binary.
type ExecRunner struct {
	GitPath string
}

// NewExecRunner locates git on PATH, falling back to the bare name so the
// failure surfaces on first use.
func NewExecRunner() *ExecRunner {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		gitPath = "git"
	}

	return &ExecRunner{GitPath: gitPath}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, r.GitPath, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.String(), NewGitError(args, stderr.String(), err)
	}

	return stdout.String(), nil
}
