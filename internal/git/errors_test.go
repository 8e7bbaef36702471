package git

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGitError_Error(t *testing.T) {
	cause := errors.New("exit status 128")

	withStderr := NewGitError([]string{"push", "origin", "main"}, "fatal: Authentication failed\n", cause)
	assert.Equal(t, "git push failed: fatal: Authentication failed", withStderr.Error())
	assert.ErrorIs(t, withStderr, cause)
	assert.Equal(t, -1, withStderr.ExitCode)

	noStderr := NewGitError([]string{"init"}, "", cause)
	assert.Equal(t, "git init failed: exit status 128", noStderr.Error())
}

func TestClassifiers(t *testing.T) {
	rejected := &GitError{
		Args:   []string{"push"},
		Stderr: " ! [rejected]        main -> main (fetch first)\nerror: failed to push some refs",
	}
	auth := &GitError{Args: []string{"push"}, Stderr: "remote: Permission denied to someone."}
	noRemote := &GitError{Args: []string{"remote"}, Stderr: "error: No such remote 'origin'"}
	nothing := &GitError{Args: []string{"commit"}, Stderr: "nothing to commit, working tree clean"}
	notRepo := fmt.Errorf("wrapped: %w", &GitError{Stderr: "fatal: not a git repository (or any of the parent directories): .git"})

	assert.True(t, IsRejected(rejected))
	assert.False(t, IsRejected(auth))
	assert.True(t, IsAuthRequired(auth))
	assert.True(t, IsNoSuchRemote(noRemote))
	assert.True(t, IsNothingToCommit(nothing))
	assert.True(t, IsNotRepository(notRepo))
	assert.False(t, IsRejected(nil))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, 0, GetExitCode(nil))
	assert.Equal(t, 2, GetExitCode(&GitError{ExitCode: 2}))
	assert.Equal(t, -1, GetExitCode(errors.New("boom")))
}
