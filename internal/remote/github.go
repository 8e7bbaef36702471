// Package remote checks the diary's hosted repository before publishing
package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v82/github"
	"github.com/inovacc/diarypush/internal/giturl"
	"golang.org/x/oauth2"
)

var (
	// ErrNotGitHub is returned for remotes that are not hosted on github.com
	ErrNotGitHub = errors.New("remote is not a GitHub repository")

	// ErrRepositoryNotFound is returned when GitHub answers 404. Private
	// repositories look the same without a token.
	ErrRepositoryNotFound = errors.New("repository not found")
)

// RepoInfo is the subset of repository metadata relevant to publishing
type RepoInfo struct {
	FullName      string
	DefaultBranch string
	HTMLURL       string
	Private       bool
	Archived      bool
	Authenticated bool
}

// Problems lists conditions that will make every push fail
func (i *RepoInfo) Problems() []string {
	var out []string

	if i.Archived {
		out = append(out, "repository is archived, pushes will be rejected")
	}

	return out
}

// Warnings lists conditions that will not fail a push to branch but are
// probably not what the user wants.
func (i *RepoInfo) Warnings(branch string) []string {
	var out []string

	if i.DefaultBranch != "" && i.DefaultBranch != branch {
		out = append(out, fmt.Sprintf("publishing to %q but the repository default branch is %q", branch, i.DefaultBranch))
	}

	return out
}

// Checker queries the GitHub REST API
type Checker struct {
	client        *github.Client
	authenticated bool
	logger        *slog.Logger
}

// NewChecker creates a Checker. An empty token queries anonymously.
func NewChecker(ctx context.Context, token string, logger *slog.Logger) *Checker {
	var hc *http.Client

	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(ctx, ts)
	}

	c := NewCheckerWithClient(github.NewClient(hc), logger)
	c.authenticated = token != ""

	return c
}

// NewCheckerWithClient wraps an existing go-github client
func NewCheckerWithClient(client *github.Client, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Checker{client: client, logger: logger}
}

// Check resolves the repository behind remoteURL and fetches its metadata.
func (c *Checker) Check(ctx context.Context, remoteURL string) (*RepoInfo, error) {
	repo, err := giturl.ParseRepository(remoteURL)
	if err != nil {
		return nil, err
	}

	if !repo.IsGitHub() {
		return nil, fmt.Errorf("%w: %s", ErrNotGitHub, repo.Host)
	}

	c.logger.Debug("fetching repository metadata",
		slog.String("owner", repo.Owner),
		slog.String("repo", repo.Name),
		slog.Bool("authenticated", c.authenticated),
	)

	r, resp, err := c.client.Repositories.Get(ctx, repo.Owner, repo.Name)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrRepositoryNotFound, repo.FullName())
		}

		return nil, fmt.Errorf("failed to get repository: %w", err)
	}

	return &RepoInfo{
		FullName:      r.GetFullName(),
		DefaultBranch: r.GetDefaultBranch(),
		HTMLURL:       r.GetHTMLURL(),
		Private:       r.GetPrivate(),
		Archived:      r.GetArchived(),
		Authenticated: c.authenticated,
	}, nil
}
