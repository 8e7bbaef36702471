package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/inovacc/diarypush/internal/application"
	"github.com/inovacc/diarypush/internal/config"
	"github.com/inovacc/diarypush/internal/logging"
	"github.com/spf13/cobra"
)

var (
	flags config.Flags

	// cfg and logger are resolved once per invocation in PersistentPreRunE
	cfg      *config.Config
	logger   = logging.Discard()
	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "Publish a daily diary entry to a git repository",
	Long: `diarypush writes today's diary entry (DD-MM-YYYY.txt) into a git working
directory, removes older entries and pushes the result to the configured remote.

Running diarypush without a subcommand is the same as "diarypush run".`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
	RunE: runDiary,
}

// Execute runs the root command and exits with status 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_ = closeLog()

		_, _ = fmt.Fprintln(os.Stderr, errStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	flags.Bind(rootCmd.PersistentFlags())
	rootCmd.Flags().Bool("skip-leaks", false, "Skip the pre-commit secret scan")
}

func setup(cmd *cobra.Command, _ []string) error {
	c, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	l, closeFn, err := logging.New(logging.Options{Verbose: c.Verbose, File: c.LogFile})
	if err != nil {
		return err
	}

	cfg, logger, closeLog = c, l, closeFn

	logger.Debug("configuration resolved",
		slog.String("source", c.Source),
		slog.String("workdir", c.WorkDir),
		slog.String("remote_url", c.RemoteURL),
	)

	return nil
}

// resolveConfig layers defaults, the INI file and changed flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	path := flags.ConfigPath
	required := path != ""

	if path == "" {
		var err error

		path, err = application.ConfigFilePath()
		if err != nil {
			return nil, err
		}
	}

	c, err := config.Load(path, required)
	if err != nil {
		return nil, err
	}

	flags.Apply(cmd.Flags(), c)

	if err := c.Finalize(); err != nil {
		var cfgErr *config.ConfigError
		if errors.As(err, &cfgErr) && c.Source != "" {
			return nil, fmt.Errorf("%s: %w", c.Source, err)
		}

		return nil, err
	}

	return c, nil
}
