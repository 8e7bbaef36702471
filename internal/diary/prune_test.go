package diary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPruneEntries_RemovesPreviousDay(t *testing.T) {
	dir := t.TempDir()
	old := writeFile(t, dir, "14-03-2024.txt", "yesterday")
	keep := writeFile(t, dir, "15-03-2024.txt", "today")

	removed, err := PruneEntries(dir, keep, false)
	require.NoError(t, err)

	assert.Equal(t, []string{old}, removed)
	assert.NoFileExists(t, old)
	assert.FileExists(t, keep)
}

func TestPruneEntries_AnyTextFile(t *testing.T) {
	dir := t.TempDir()
	keep := writeFile(t, dir, "15-03-2024.txt", "today")
	writeFile(t, dir, "notes.txt", "n")
	writeFile(t, dir, "01-01-2020.txt", "old")
	writeFile(t, dir, "README.md", "readme")
	writeFile(t, dir, "data.TXT", "upper case extension")
	writeFile(t, dir, ".hidden.txt", "dot file")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.txt"), 0o755))

	removed, err := PruneEntries(dir, keep, false)
	require.NoError(t, err)
	assert.Len(t, removed, 2)

	assert.ElementsMatch(t,
		[]string{"15-03-2024.txt", "README.md", "data.TXT", ".hidden.txt", "archive.txt"},
		listNames(t, dir),
	)
}

func TestPruneEntries_Strict(t *testing.T) {
	dir := t.TempDir()
	keep := writeFile(t, dir, "15-03-2024.txt", "today")
	writeFile(t, dir, "notes.txt", "n")
	old := writeFile(t, dir, "14-03-2024.txt", "old")

	removed, err := PruneEntries(dir, keep, true)
	require.NoError(t, err)
	assert.Equal(t, []string{old}, removed)
	assert.ElementsMatch(t, []string{"15-03-2024.txt", "notes.txt"}, listNames(t, dir))
}

func TestPruneEntries_Idempotent(t *testing.T) {
	dir := t.TempDir()
	keep := writeFile(t, dir, "15-03-2024.txt", "today")
	writeFile(t, dir, "13-03-2024.txt", "old")

	_, err := PruneEntries(dir, keep, false)
	require.NoError(t, err)

	removed, err := PruneEntries(dir, keep, false)
	require.NoError(t, err)
	assert.Empty(t, removed)
	assert.Equal(t, []string{"15-03-2024.txt"}, listNames(t, dir))
}

func TestPruneEntries_MissingDir(t *testing.T) {
	_, err := PruneEntries(filepath.Join(t.TempDir(), "missing"), "x.txt", false)
	require.Error(t, err)
}
