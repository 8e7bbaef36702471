package giturl

import (
	"fmt"
	"strings"
)

const defaultHost = "github.com"

// Repository identifies a hosted repository behind a remote URL
type Repository struct {
	Owner string
	Name  string
	Host  string
}

// FullName returns the "owner/repo" string
func (r *Repository) FullName() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

// IsGitHub reports whether the repository lives on github.com
func (r *Repository) IsGitHub() bool {
	return r.Host == defaultHost
}

// ParseRepository resolves owner, name and host from a remote URL.
// Supports:
//   - "https://github.com/owner/repo.git"
//   - "git@github.com:owner/repo.git"
//   - "ssh://git@github.com/owner/repo.git"
func ParseRepository(rawURL string) (*Repository, error) {
	if !IsURL(rawURL) {
		return nil, fmt.Errorf("not a network remote: %q", rawURL)
	}

	u, err := Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}

	owner, name, err := ExtractOwnerRepo(u)
	if err != nil {
		return nil, fmt.Errorf("invalid repository URL %q: %w", rawURL, err)
	}

	host := u.Hostname()
	if host == "" {
		host = defaultHost
	}

	return &Repository{
		Owner: owner,
		Name:  name,
		Host:  strings.ToLower(strings.TrimPrefix(host, "www.")),
	}, nil
}
