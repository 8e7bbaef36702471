package diary

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

const (
	entryNameLayout = "02-01-2006"
	isoDateLayout   = "2006-01-02"
	entryExt        = ".txt"
)

var entryNamePattern = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}\.txt$`)

// Entry is one day's note
type Entry struct {
	Date time.Time
	Note string
}

// NewEntry creates the entry for the calendar day of date
func NewEntry(date time.Time, note string) Entry {
	return Entry{Date: date, Note: note}
}

// FileName is the entry's DD-MM-YYYY.txt name
func (e Entry) FileName() string {
	return e.Date.Format(entryNameLayout) + entryExt
}

// ISODate is the entry's date as YYYY-MM-DD
func (e Entry) ISODate() string {
	return e.Date.Format(isoDateLayout)
}

// Content renders the fixed template
func (e Entry) Content() string {
	return fmt.Sprintf("Date: %s\nDay: %s\nNote: %s\n", e.ISODate(), e.Date.Weekday(), e.Note)
}

// CommitMessage is the message recorded when the entry is published
func (e Entry) CommitMessage() string {
	return fmt.Sprintf("Update %s for %s", e.FileName(), e.ISODate())
}

// IsEntryName reports whether name follows the DD-MM-YYYY.txt pattern
func IsEntryName(name string) bool {
	return entryNamePattern.MatchString(name)
}

// WriteEntry writes e into dir, replacing a same-day file, and returns its path.
func WriteEntry(dir string, e Entry) (string, error) {
	path := filepath.Join(dir, e.FileName())

	if err := os.WriteFile(path, []byte(e.Content()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write entry: %w", err)
	}

	return path, nil
}
