package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-github/v82/github"
	"github.com/inovacc/diarypush/internal/git"
	"github.com/inovacc/diarypush/internal/git/gittest"
	"github.com/inovacc/diarypush/internal/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalChecks_NotInitialized(t *testing.T) {
	c := newTestConfig(t)
	fake := gittest.NewFakeRunner()

	lines := localChecks(context.Background(), c, git.NewClientWithRunner(c.WorkDir, fake))
	require.Len(t, lines, 1)
	assert.True(t, lines[0].warn)
	assert.Contains(t, lines[0].detail, "will initialize")
	assert.Empty(t, fake.Calls)
}

func TestLocalChecks(t *testing.T) {
	tests := []struct {
		name       string
		script     func(f *gittest.FakeRunner, url string)
		wantRemote checkLine
		wantBranch bool
	}{
		{
			name: "all good",
			script: func(f *gittest.FakeRunner, url string) {
				f.On("remote get-url origin", url+"\n")
			},
			wantRemote: checkLine{ok: true},
			wantBranch: true,
		},
		{
			name: "remote differs and branch missing",
			script: func(f *gittest.FakeRunner, url string) {
				f.On("remote get-url origin", "https://github.com/other/diary.git")
				f.Fail("rev-parse --verify --quiet main", "")
			},
			wantRemote: checkLine{warn: true},
		},
		{
			name: "remote missing",
			script: func(f *gittest.FakeRunner, url string) {
				f.Fail("remote get-url origin", "error: No such remote 'origin'")
			},
			wantRemote: checkLine{warn: true},
			wantBranch: true,
		},
		{
			name: "git broken",
			script: func(f *gittest.FakeRunner, url string) {
				f.Fail("remote get-url origin", "fatal: bad config line 1")
			},
			wantRemote: checkLine{},
			wantBranch: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestConfig(t)
			require.NoError(t, os.Mkdir(filepath.Join(c.WorkDir, ".git"), 0o755))

			fake := gittest.NewFakeRunner()
			tt.script(fake, c.RemoteURL)

			lines := localChecks(context.Background(), c, git.NewClientWithRunner(c.WorkDir, fake))
			require.Len(t, lines, 3)

			assert.True(t, lines[0].ok)
			assert.Equal(t, tt.wantRemote.ok, lines[1].ok, "remote ok")
			assert.Equal(t, tt.wantRemote.warn, lines[1].warn, "remote warn")
			assert.Equal(t, tt.wantBranch, lines[2].ok, "branch ok")

			assert.False(t, fake.CalledPrefix("remote set-url"), "check must not modify the repository")
			assert.False(t, fake.CalledPrefix("remote add"), "check must not modify the repository")
		})
	}
}

func TestPrintChecks(t *testing.T) {
	var buf bytes.Buffer

	err := printChecks(&buf, []checkLine{
		{ok: true, label: "Working directory", detail: "/srv/diary"},
		{warn: true, label: "Branch", detail: "main does not exist"},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "/srv/diary")

	buf.Reset()

	err = printChecks(&buf, []checkLine{{label: "GitHub", detail: "repository not found"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 problem(s)")
}

func TestRemoteChecks_NotFoundHint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not Found"}`))
	}))
	t.Cleanup(server.Close)

	client := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL

	c := newTestConfig(t)
	checker := remote.NewCheckerWithClient(client, nil)

	lines := remoteChecks(context.Background(), c, checker, remote.TokenSourceNone)
	require.Len(t, lines, 1)
	assert.False(t, lines[0].ok)
	assert.Contains(t, lines[0].detail, "gh auth login")

	lines = remoteChecks(context.Background(), c, checker, remote.TokenSourceGHCLI)
	require.Len(t, lines, 1)
	assert.NotContains(t, lines[0].detail, "gh auth login")
}
