package diary

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/inovacc/diarypush/internal/git"
	"github.com/inovacc/diarypush/internal/git/gittest"
	"github.com/inovacc/diarypush/internal/security"
	"github.com/stretchr/testify/require"
)

const testRemoteURL = "https://github.com/1ndrajeet/diary.git"

var testDate = time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newFakeClient returns a client for a fresh temp dir whose git calls are
// answered by the returned FakeRunner. "git init" creates the .git directory.
func newFakeClient(t *testing.T) (string, *gittest.FakeRunner, *git.Client) {
	t.Helper()

	dir := t.TempDir()
	fake := gittest.NewFakeRunner()
	fake.Hook = func(dir string, args []string) (string, error, bool) {
		if len(args) == 1 && args[0] == "init" {
			return "", os.Mkdir(filepath.Join(dir, ".git"), 0o755), true
		}

		return "", nil, false
	}

	return dir, fake, git.NewClientWithRunner(dir, fake)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func listNames(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}

	return names
}

type stubScanner struct {
	result *security.ScanResult
	err    error
	calls  int
}

func (s *stubScanner) ScanStagedChanges(context.Context, string) (*security.ScanResult, error) {
	s.calls++
	return s.result, s.err
}
