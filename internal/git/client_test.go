package git_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/inovacc/diarypush/internal/git"
	"github.com/inovacc/diarypush/internal/git/gittest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CommandLines(t *testing.T) {
	ctx := context.Background()
	runner := gittest.NewFakeRunner().
		On("remote get-url origin", "https://example.com/me/diary.git\n").
		On("rev-parse HEAD", "0123abcd\n").
		On("status --porcelain", " M 15-03-2024.txt\n").
		Fail("rev-parse --verify --quiet main", "")

	c := git.NewClientWithRunner("/diary", runner)

	url, err := c.GetRemoteURL(ctx, "origin")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/me/diary.git", url)

	assert.False(t, c.BranchExists(ctx, "main"))
	require.NoError(t, c.CreateBranch(ctx, "main"))
	require.NoError(t, c.Add(ctx, "."))

	dirty, err := c.HasChanges(ctx)
	require.NoError(t, err)
	assert.True(t, dirty)

	require.NoError(t, c.Commit(ctx, "Update 15-03-2024.txt for 2024-03-15"))
	require.NoError(t, c.Push(ctx, "origin", "main"))

	sha, err := c.HeadCommit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0123abcd", sha)

	assert.Equal(t, []string{
		"remote get-url origin",
		"rev-parse --verify --quiet main",
		"checkout -b main",
		"add .",
		"status --porcelain",
		"commit -m Update 15-03-2024.txt for 2024-03-15",
		"push origin main",
		"rev-parse HEAD",
	}, runner.Commands())

	for _, call := range runner.Calls {
		assert.Equal(t, "/diary", call.Dir)
	}
}

func TestClient_HasMetadata(t *testing.T) {
	dir := t.TempDir()
	c := git.NewClientWithRunner(dir, gittest.NewFakeRunner())

	ok, err := c.HasMetadata()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	ok, err = c.HasMetadata()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestExecRunner_RealGit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}

	ctx := context.Background()
	dir := t.TempDir()
	c := git.NewClient(dir)

	require.NoError(t, c.Init(ctx))
	require.NoError(t, c.AddRemote(ctx, "origin", "https://example.com/me/diary.git"))

	url, err := c.GetRemoteURL(ctx, "origin")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/me/diary.git", url)

	_, err = c.GetRemoteURL(ctx, "upstream")
	require.Error(t, err)
	assert.True(t, git.IsNoSuchRemote(err))
	assert.NotEqual(t, 0, git.GetExitCode(err))

	assert.False(t, c.BranchExists(ctx, "main"), "fresh repository has no commits")
}
