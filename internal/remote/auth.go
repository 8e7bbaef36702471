package remote

import (
	"os"

	"github.com/cli/go-gh/v2/pkg/auth"
	"github.com/inovacc/diarypush/internal/giturl"
)

// TokenSource indicates where the token was found
type TokenSource string

const (
	TokenSourceEnvGitHub TokenSource = "GITHUB_TOKEN"
	TokenSourceEnvGH     TokenSource = "GH_TOKEN"
	TokenSourceGHCLI     TokenSource = "gh-cli"
	TokenSourceNone      TokenSource = "none"
)

const defaultHost = "github.com"

// ResolveToken finds a GitHub token for host.
// Priority order:
//  1. GITHUB_TOKEN environment variable
//  2. GH_TOKEN environment variable
//  3. gh CLI auth for the host (config file, then keyring)
func ResolveToken(host string) (string, TokenSource) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token, TokenSourceEnvGitHub
	}

	if token := os.Getenv("GH_TOKEN"); token != "" {
		return token, TokenSourceEnvGH
	}

	if host == "" {
		host = defaultHost
	}

	if token, _ := auth.TokenForHost(host); token != "" {
		return token, TokenSourceGHCLI
	}

	return "", TokenSourceNone
}

// ResolveTokenForRemote resolves a token for the host behind remoteURL.
// Unparseable remotes are treated as github.com.
func ResolveTokenForRemote(remoteURL string) (string, TokenSource) {
	host := defaultHost

	if repo, err := giturl.ParseRepository(remoteURL); err == nil && repo.Host != "" {
		host = repo.Host
	}

	return ResolveToken(host)
}
