package diary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/inovacc/diarypush/internal/git"
	"github.com/inovacc/diarypush/internal/security"
)

// SecretScanner inspects staged changes before they are committed
type SecretScanner interface {
	ScanStagedChanges(ctx context.Context, repoPath string) (*security.ScanResult, error)
}

// PublishReport describes what PublishChanges did
type PublishReport struct {
	BranchCreated bool
	Committed     bool
	Pushed        bool
	Commit        string
	Scan          *security.ScanResult
}

// PublishChanges stages the whole working tree, commits it with the entry's
// message and pushes branch to remote. The report is never nil.
func PublishChanges(
	ctx context.Context,
	c *git.Client,
	remote, branch string,
	entry Entry,
	scanner SecretScanner,
	logger *slog.Logger,
) (*PublishReport, error) {
	report := &PublishReport{}

	if !c.BranchExists(ctx, branch) {
		logger.Info("branch does not exist, creating it", "branch", branch)

		if err := c.CreateBranch(ctx, branch); err != nil {
			return report, err
		}

		report.BranchCreated = true
	}

	if err := c.Add(ctx, "."); err != nil {
		return report, err
	}

	dirty, err := c.HasChanges(ctx)
	if err != nil {
		return report, err
	}

	if dirty {
		if err := scanStaged(ctx, c, scanner, report, logger); err != nil {
			return report, err
		}

		if err := c.Commit(ctx, entry.CommitMessage()); err != nil {
			return report, err
		}

		report.Committed = true
	} else {
		logger.Info("working tree unchanged, skipping commit", "entry", entry.FileName())
	}

	if err := c.Push(ctx, remote, branch); err != nil {
		return report, err
	}

	report.Pushed = true

	sha, err := c.HeadCommit(ctx)
	if err != nil {
		logger.Warn("failed to resolve HEAD after push", "error", err)
	}

	report.Commit = sha

	return report, nil
}

func scanStaged(ctx context.Context, c *git.Client, scanner SecretScanner, report *PublishReport, logger *slog.Logger) error {
	if scanner == nil {
		return nil
	}

	result, err := scanner.ScanStagedChanges(ctx, c.RepoDir)
	if err != nil {
		logger.Warn("secret scan failed, continuing without it", "error", err)
		return nil
	}

	report.Scan = result

	if result != nil && result.HasLeaks {
		return fmt.Errorf("%w: %d finding(s)", ErrSecretsDetected, len(result.Findings))
	}

	return nil
}
