// Package git drives the git command-line tool for a single working directory.
package git

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Client wraps git operations on one repository directory
type Client struct {
	RepoDir string
	runner  Runner
}

// NewClient creates a client for repoDir backed by the git binary
func NewClient(repoDir string) *Client {
	return NewClientWithRunner(repoDir, NewExecRunner())
}

// NewClientWithRunner creates a client with a custom Runner, used by tests
// to substitute a fake tool invoker
func NewClientWithRunner(repoDir string, runner Runner) *Client {
	return &Client{RepoDir: repoDir, runner: runner}
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	return c.runner.Run(ctx, c.RepoDir, args...)
}

// HasMetadata reports whether RepoDir contains git metadata. It looks for the
// .git entry directly so a parent repository is never mistaken for ours.
func (c *Client) HasMetadata() (bool, error) {
	_, err := os.Stat(filepath.Join(c.RepoDir, ".git"))
	if err == nil {
		return true, nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	return false, err
}

// Init creates an empty repository in RepoDir
func (c *Client) Init(ctx context.Context) error {
	_, err := c.run(ctx, "init")
	return err
}

// AddRemote registers a new remote
func (c *Client) AddRemote(ctx context.Context, name, url string) error {
	_, err := c.run(ctx, "remote", "add", name, url)
	return err
}

// GetRemoteURL returns the URL for a remote
func (c *Client) GetRemoteURL(ctx context.Context, name string) (string, error) {
	output, err := c.run(ctx, "remote", "get-url", name)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(output), nil
}

// SetRemoteURL points an existing remote at url
func (c *Client) SetRemoteURL(ctx context.Context, name, url string) error {
	_, err := c.run(ctx, "remote", "set-url", name, url)
	return err
}

// BranchExists reports whether rev-parse can resolve branch. Any failure is
// treated as absence, matching `git rev-parse --verify` semantics.
func (c *Client) BranchExists(ctx context.Context, branch string) bool {
	_, err := c.run(ctx, "rev-parse", "--verify", "--quiet", branch)
	return err == nil
}

// CreateBranch creates branch from the current state and switches to it
func (c *Client) CreateBranch(ctx context.Context, branch string) error {
	_, err := c.run(ctx, "checkout", "-b", branch)
	return err
}

// Add stages the given pathspecs
func (c *Client) Add(ctx context.Context, pathspecs ...string) error {
	args := append([]string{"add"}, pathspecs...)
	_, err := c.run(ctx, args...)

	return err
}

// HasChanges reports whether the working tree or index differs from HEAD
func (c *Client) HasChanges(ctx context.Context) (bool, error) {
	output, err := c.run(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}

	return strings.TrimSpace(output) != "", nil
}

// Commit records the staged changes
func (c *Client) Commit(ctx context.Context, message string) error {
	_, err := c.run(ctx, "commit", "-m", message)
	return err
}

// Push pushes branch to remote
func (c *Client) Push(ctx context.Context, remote, branch string) error {
	_, err := c.run(ctx, "push", remote, branch)
	return err
}

// HeadCommit returns the full SHA of HEAD
func (c *Client) HeadCommit(ctx context.Context) (string, error) {
	output, err := c.run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(output), nil
}

// CurrentBranch returns the current branch name
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	output, err := c.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(output), nil
}
