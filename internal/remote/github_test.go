package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v82/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestChecker(t *testing.T, handler http.Handler) *Checker {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL

	return NewCheckerWithClient(client, nil)
}

func TestChecker_Check(t *testing.T) {
	testCases := []struct {
		name           string
		remoteURL      string
		handlerFunc    func(w http.ResponseWriter, r *http.Request)
		expected       *RepoInfo
		expectedErr    error
		expectedErrMsg string
	}{
		{
			name:      "happy path - https remote",
			remoteURL: "https://github.com/1ndrajeet/diary.git",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/repos/1ndrajeet/diary", r.URL.Path)
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `{"full_name": "1ndrajeet/diary", "default_branch": "main", "private": true, "archived": false, "html_url": "https://github.com/1ndrajeet/diary"}`)
			},
			expected: &RepoInfo{
				FullName:      "1ndrajeet/diary",
				DefaultBranch: "main",
				HTMLURL:       "https://github.com/1ndrajeet/diary",
				Private:       true,
			},
		},
		{
			name:      "happy path - scp-like remote",
			remoteURL: "git@github.com:me/notes.git",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/repos/me/notes", r.URL.Path)
				fmt.Fprint(w, `{"full_name": "me/notes", "default_branch": "master", "archived": true}`)
			},
			expected: &RepoInfo{FullName: "me/notes", DefaultBranch: "master", Archived: true},
		},
		{
			name:      "not found",
			remoteURL: "https://github.com/me/missing.git",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"message": "Not Found"}`)
			},
			expectedErr: ErrRepositoryNotFound,
		},
		{
			name:      "server error",
			remoteURL: "https://github.com/me/diary.git",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"message": "Internal Server Error"}`)
			},
			expectedErrMsg: "failed to get repository",
		},
		{
			name:      "not github",
			remoteURL: "https://gitlab.com/me/diary.git",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				t.Errorf("unexpected request to %s", r.URL)
			},
			expectedErr: ErrNotGitHub,
		},
		{
			name:      "local path",
			remoteURL: "/srv/git/diary.git",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				t.Errorf("unexpected request to %s", r.URL)
			},
			expectedErrMsg: "not a network remote",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			checker := setupTestChecker(t, http.HandlerFunc(tc.handlerFunc))

			info, err := checker.Check(context.Background(), tc.remoteURL)

			switch {
			case tc.expectedErr != nil:
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.expectedErr)
			case tc.expectedErrMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			default:
				require.NoError(t, err)
				assert.Equal(t, tc.expected, info)
			}
		})
	}
}

func TestRepoInfo_ProblemsAndWarnings(t *testing.T) {
	info := &RepoInfo{DefaultBranch: "main"}
	assert.Empty(t, info.Problems())
	assert.Empty(t, info.Warnings("main"))

	info = &RepoInfo{DefaultBranch: "master", Archived: true}

	problems := info.Problems()
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "archived")

	warnings := info.Warnings("main")
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], `default branch is "master"`)
}

func TestNewChecker_Authenticated(t *testing.T) {
	assert.False(t, NewChecker(context.Background(), "", nil).authenticated)
	assert.True(t, NewChecker(context.Background(), "ghp_example", nil).authenticated)
}
