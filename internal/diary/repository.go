package diary

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/inovacc/diarypush/internal/git"
)

const (
	readmeName    = "README.md"
	readmeContent = "# Diary Repository\n\nThis repository stores daily diary entries."

	initialCommitMessage = "Initial commit"
)

// RemoteReport describes what VerifyRemote had to change
type RemoteReport struct {
	Added       bool
	Repaired    bool
	PreviousURL string
}

// InitRepository turns dir into a repository with remote registered at url
// and a README committed so history is never empty. It is a no-op returning
// false when git metadata already exists.
func InitRepository(ctx context.Context, c *git.Client, remote, url string, logger *slog.Logger) (bool, error) {
	exists, err := c.HasMetadata()
	if err != nil {
		return false, fmt.Errorf("failed to inspect %s: %w", c.RepoDir, err)
	}

	if exists {
		return false, nil
	}

	logger.Info("initializing repository", "dir", c.RepoDir)

	if err := c.Init(ctx); err != nil {
		return false, err
	}

	if err := c.AddRemote(ctx, remote, url); err != nil {
		return false, err
	}

	readme := filepath.Join(c.RepoDir, readmeName)
	if _, err := os.Stat(readme); errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(readme, []byte(readmeContent), 0o644); err != nil {
			return false, fmt.Errorf("failed to write %s: %w", readmeName, err)
		}
	}

	if err := c.Add(ctx, readmeName); err != nil {
		return false, err
	}

	if err := c.Commit(ctx, initialCommitMessage); err != nil {
		return false, err
	}

	return true, nil
}

// VerifyRemote makes sure remote points at url, registering or rewriting it
// when needed. A remote that already matches is left alone.
func VerifyRemote(ctx context.Context, c *git.Client, remote, url string, logger *slog.Logger) (RemoteReport, error) {
	var report RemoteReport

	current, err := c.GetRemoteURL(ctx, remote)
	if err != nil {
		if !git.IsNoSuchRemote(err) {
			return report, err
		}

		logger.Info("registering remote", "remote", remote, "url", url)

		if err := c.AddRemote(ctx, remote, url); err != nil {
			return report, err
		}

		report.Added = true

		return report, nil
	}

	if current == url {
		return report, nil
	}

	logger.Info("updating remote URL", "remote", remote, "from", current, "to", url)

	if err := c.SetRemoteURL(ctx, remote, url); err != nil {
		return report, err
	}

	report.Repaired = true
	report.PreviousURL = current

	return report, nil
}

// EnsureRepository guarantees dir is a working copy whose remote equals url.
func EnsureRepository(ctx context.Context, c *git.Client, remote, url string, logger *slog.Logger) (bool, RemoteReport, error) {
	created, err := InitRepository(ctx, c, remote, url, logger)
	if err != nil {
		return false, RemoteReport{}, err
	}

	report, err := VerifyRemote(ctx, c, remote, url, logger)

	return created, report, err
}
