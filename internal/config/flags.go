package config

import "github.com/spf13/pflag"

// Flags are the command-line overrides shared by every command.
type Flags struct {
	ConfigPath  string
	WorkDir     string
	Branch      string
	RemoteURL   string
	LogFile     string
	HistoryPath string
	Verbose     bool
	StrictPrune bool
}

// Bind registers the override flags on fs.
func (f *Flags) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file (default: <user config dir>/diarypush/config.ini)")
	fs.StringVar(&f.WorkDir, "workdir", "", "Diary working directory (default: directory of the executable)")
	fs.StringVar(&f.Branch, "branch", "", "Branch that receives pushes")
	fs.StringVar(&f.RemoteURL, "remote-url", "", "URL the origin remote must point to")
	fs.StringVar(&f.LogFile, "log-file", "", "Also write JSON logs to this file")
	fs.StringVar(&f.HistoryPath, "history", "", "Path to the run history database (default: <user config dir>/diarypush/history.bolt)")
	fs.BoolVarP(&f.Verbose, "verbose", "v", false, "Enable debug logging")
	fs.BoolVar(&f.StrictPrune, "strict-prune", false, "Only prune files named like DD-MM-YYYY.txt")
}

// Apply copies the flags the user actually set onto c.
func (f *Flags) Apply(fs *pflag.FlagSet, c *Config) {
	if fs.Changed("workdir") {
		c.WorkDir = f.WorkDir
	}

	if fs.Changed("branch") {
		c.Branch = f.Branch
	}

	if fs.Changed("remote-url") {
		c.RemoteURL = f.RemoteURL
	}

	if fs.Changed("log-file") {
		c.LogFile = f.LogFile
	}

	if fs.Changed("history") {
		c.HistoryPath = f.HistoryPath
	}

	if fs.Changed("verbose") {
		c.Verbose = f.Verbose
	}

	if fs.Changed("strict-prune") {
		c.StrictPrune = f.StrictPrune
	}
}
