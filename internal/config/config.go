package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/inovacc/diarypush/internal/application"
	"github.com/inovacc/diarypush/internal/giturl"
	"gopkg.in/ini.v1"
)

const (
	// DefaultBranch receives every push
	DefaultBranch = "main"

	// DefaultRemote is the remote name the diary is published to
	DefaultRemote = "origin"

	// DefaultRemoteURL is the hosted diary repository
	DefaultRemoteURL = "https://github.com/1ndrajeet/diary.git"

	// DefaultNote is the static sentence written into every entry
	DefaultNote = "This is a daily diary entry. Add your thoughts or notes here!"

	// DefaultScheduleAt is the local time of day the service publishes
	DefaultScheduleAt = "08:00"

	clockLayout = "15:04"
)

// Config holds all diarypush settings
type Config struct {
	// Diary
	WorkDir     string
	Branch      string
	Remote      string
	RemoteURL   string
	Note        string
	StrictPrune bool

	// Publishing
	ScanSecrets bool
	HistoryPath string

	// Service mode
	ScheduleAt string

	// Logging
	LogFile string
	Verbose bool

	// Source is the config file that was applied, empty when none was found
	Source string
}

type diarySection struct {
	WorkDir     string `ini:"work_dir"`
	Branch      string `ini:"branch"`
	Remote      string `ini:"remote"`
	RemoteURL   string `ini:"remote_url"`
	Note        string `ini:"note"`
	StrictPrune bool   `ini:"strict_prune"`
}

type publishSection struct {
	ScanSecrets bool   `ini:"scan_secrets"`
	HistoryPath string `ini:"history_path"`
}

type scheduleSection struct {
	At string `ini:"at"`
}

type logSection struct {
	File    string `ini:"file"`
	Verbose bool   `ini:"verbose"`
}

// Default returns the built-in configuration. WorkDir and HistoryPath are
// left empty and resolved by Finalize.
func Default() *Config {
	return &Config{
		Branch:      DefaultBranch,
		Remote:      DefaultRemote,
		RemoteURL:   DefaultRemoteURL,
		Note:        DefaultNote,
		ScanSecrets: true,
		ScheduleAt:  DefaultScheduleAt,
	}
}

// Load returns the defaults overlaid with the INI file at path. A missing
// file is not an error unless required is set.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}

		return nil, &ConfigError{Parameter: "config", Value: path, Err: err}
	}

	if err := cfg.apply(path); err != nil {
		return nil, &ConfigError{Parameter: "config", Value: path, Err: err}
	}

	cfg.Source = path

	return cfg, nil
}

func (c *Config) apply(path string) error {
	file, err := ini.Load(path)
	if err != nil {
		return err
	}

	diary := diarySection{
		WorkDir:     c.WorkDir,
		Branch:      c.Branch,
		Remote:      c.Remote,
		RemoteURL:   c.RemoteURL,
		Note:        c.Note,
		StrictPrune: c.StrictPrune,
	}
	if err := file.Section("diary").MapTo(&diary); err != nil {
		return fmt.Errorf("section [diary]: %w", err)
	}

	publish := publishSection{ScanSecrets: c.ScanSecrets, HistoryPath: c.HistoryPath}
	if err := file.Section("publish").MapTo(&publish); err != nil {
		return fmt.Errorf("section [publish]: %w", err)
	}

	schedule := scheduleSection{At: c.ScheduleAt}
	if err := file.Section("schedule").MapTo(&schedule); err != nil {
		return fmt.Errorf("section [schedule]: %w", err)
	}

	logging := logSection{File: c.LogFile, Verbose: c.Verbose}
	if err := file.Section("log").MapTo(&logging); err != nil {
		return fmt.Errorf("section [log]: %w", err)
	}

	c.WorkDir = diary.WorkDir
	c.Branch = diary.Branch
	c.Remote = diary.Remote
	c.RemoteURL = diary.RemoteURL
	c.Note = diary.Note
	c.StrictPrune = diary.StrictPrune
	c.ScanSecrets = publish.ScanSecrets
	c.HistoryPath = publish.HistoryPath
	c.ScheduleAt = schedule.At
	c.LogFile = logging.File
	c.Verbose = logging.Verbose

	return nil
}

// Finalize resolves defaults that depend on the environment and validates
// the configuration.
func (c *Config) Finalize() error {
	if c.WorkDir == "" {
		dir, err := application.ExecutableDir()
		if err != nil {
			return &ConfigError{Parameter: "work_dir", Err: err}
		}

		c.WorkDir = dir
	}

	absWorkDir, err := filepath.Abs(c.WorkDir)
	if err != nil {
		return invalid("work_dir", c.WorkDir, "failed to resolve absolute path: %v", err)
	}

	c.WorkDir = absWorkDir

	if c.HistoryPath == "" {
		path, err := application.HistoryFilePath()
		if err != nil {
			return &ConfigError{Parameter: "history_path", Err: err}
		}

		c.HistoryPath = path
	}

	return c.Validate()
}

// Validate checks every value without touching the environment.
func (c *Config) Validate() error {
	if c.Branch == "" || strings.ContainsAny(c.Branch, " ~^:?*[\\") || strings.HasPrefix(c.Branch, "-") {
		return invalid("branch", c.Branch, "not a valid branch name")
	}

	if c.Remote == "" || strings.ContainsAny(c.Remote, " /\\") {
		return invalid("remote", c.Remote, "not a valid remote name")
	}

	if !giturl.IsRemote(c.RemoteURL) {
		return invalid("remote_url", c.RemoteURL, "expected a git URL or an absolute path")
	}

	if strings.ContainsAny(c.Note, "\r\n") {
		return invalid("note", c.Note, "must be a single line")
	}

	if _, err := c.ScheduleClock(); err != nil {
		return invalid("schedule.at", c.ScheduleAt, "expected HH:MM")
	}

	return nil
}

// ScheduleClock returns the configured time of day as an offset from midnight.
func (c *Config) ScheduleClock() (time.Duration, error) {
	t, err := time.Parse(clockLayout, c.ScheduleAt)
	if err != nil {
		return 0, err
	}

	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// Fields lists the effective settings in display order.
func (c *Config) Fields() [][2]string {
	source := c.Source
	if source == "" {
		source = "(built-in defaults)"
	}

	logFile := c.LogFile
	if logFile == "" {
		logFile = "(stderr only)"
	}

	return [][2]string{
		{"Source", source},
		{"Work dir", c.WorkDir},
		{"Branch", c.Branch},
		{"Remote", c.Remote},
		{"Remote URL", c.RemoteURL},
		{"Note", c.Note},
		{"Strict prune", fmt.Sprintf("%t", c.StrictPrune)},
		{"Scan secrets", fmt.Sprintf("%t", c.ScanSecrets)},
		{"History", c.HistoryPath},
		{"Schedule", c.ScheduleAt},
		{"Log file", logFile},
		{"Verbose", fmt.Sprintf("%t", c.Verbose)},
	}
}
