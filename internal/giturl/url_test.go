package giturl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsRemote(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "https", input: "https://github.com/user/diary.git", want: true},
		{name: "scp-like", input: "git@github.com:user/diary.git", want: true},
		{name: "ssh", input: "ssh://git@github.com/user/diary.git", want: true},
		{name: "file scheme", input: "file:///srv/git/diary.git", want: true},
		{name: "absolute path", input: "/srv/git/diary.git", want: true},
		{name: "relative path", input: "diary.git", want: false},
		{name: "empty", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsRemote(tt.input))
		})
	}
}

func TestParse_SCPLike(t *testing.T) {
	u, err := Parse("git@github.com:user/diary.git")
	require.NoError(t, err)
	require.Equal(t, "ssh", u.Scheme)
	require.Equal(t, "github.com", u.Host)
	require.Equal(t, "/user/diary.git", u.Path)
}

func TestParseRepository(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantOwner string
		wantName  string
		wantHost  string
		wantErr   bool
	}{
		{
			name:      "https with .git",
			input:     "https://github.com/1ndrajeet/diary.git",
			wantOwner: "1ndrajeet",
			wantName:  "diary",
			wantHost:  "github.com",
		},
		{
			name:      "scp-like",
			input:     "git@github.com:owner/notes.git",
			wantOwner: "owner",
			wantName:  "notes",
			wantHost:  "github.com",
		},
		{
			name:      "gitlab",
			input:     "https://www.GitLab.com/group/diary",
			wantOwner: "group",
			wantName:  "diary",
			wantHost:  "gitlab.com",
		},
		{
			name:    "missing repo",
			input:   "https://github.com/owner",
			wantErr: true,
		},
		{
			name:    "local path",
			input:   "/srv/git/diary.git",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := ParseRepository(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantOwner, repo.Owner)
			require.Equal(t, tt.wantName, repo.Name)
			require.Equal(t, tt.wantHost, repo.Host)
		})
	}
}
