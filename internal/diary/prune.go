package diary

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PruneEntries removes every *.txt file in dir except keepPath and returns
// the removed paths. Hidden files and directories are never touched. With
// strict set, only names matching DD-MM-YYYY.txt are candidates.
func PruneEntries(dir, keepPath string, strict bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	keep := filepath.Base(keepPath)

	var removed []string

	for _, de := range entries {
		name := de.Name()

		if de.IsDir() || name == keep || !isPrunable(name, strict) {
			continue
		}

		path := filepath.Join(dir, name)
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("failed to delete %s: %w", path, err)
		}

		removed = append(removed, path)
	}

	return removed, nil
}

func isPrunable(name string, strict bool) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}

	if strict {
		return IsEntryName(name)
	}

	return strings.HasSuffix(name, entryExt)
}
