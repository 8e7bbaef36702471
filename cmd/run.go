package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/inovacc/diarypush/internal/config"
	"github.com/inovacc/diarypush/internal/database"
	"github.com/inovacc/diarypush/internal/diary"
	"github.com/inovacc/diarypush/internal/git"
	"github.com/inovacc/diarypush/internal/security"
	"github.com/spf13/cobra"
)

const (
	triggerCLI     = "cli"
	triggerService = "service"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Write today's entry, prune old ones and push",
	Long: `Run the publish sequence once:

  1. initialize the working directory as a git repository if needed
  2. make sure the origin remote points at the configured URL
  3. write today's DD-MM-YYYY.txt entry
  4. delete the previous entries
  5. commit and push to the configured branch

Running again on the same day rewrites the same entry. When nothing changed
the commit is skipped, the branch is still pushed and the run succeeds.

The staged diff is scanned for secrets before committing unless disabled
with --skip-leaks or "scan_secrets = false" in the config file.`,
	Args: cobra.NoArgs,
	RunE: runDiary,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("skip-leaks", false, "Skip the pre-commit secret scan")
}

func runDiary(cmd *cobra.Command, _ []string) error {
	skipLeaks, _ := cmd.Flags().GetBool("skip-leaks")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()

	res, err := publishOnce(ctx, cfg, runOptions{
		skipLeaks:   skipLeaks,
		interactive: isInteractive(os.Stdout),
		trigger:     triggerCLI,
	}, logger)
	if res != nil {
		printResult(out, res, err)
	}

	return err
}

type runOptions struct {
	skipLeaks   bool
	interactive bool
	trigger     string
	git         *git.Client
}

// publishOnce runs the publisher with the run history open, records the
// outcome and returns the publisher's error.
func publishOnce(ctx context.Context, c *config.Config, opts runOptions, logger *slog.Logger) (*diary.Result, error) {
	history, err := database.NewBolt(c.HistoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open run history: %w", err)
	}

	defer func() {
		if err := history.Close(); err != nil {
			logger.Warn("failed to close run history", "error", err)
		}
	}()

	po := diary.OptionsFromConfig(c)
	po.Git = opts.git
	po.Logger = logger

	if c.ScanSecrets && !opts.skipLeaks {
		var scanner diary.SecretScanner = security.StagedScanner{}
		if opts.interactive {
			scanner = spinnerScanner{inner: scanner}
		}

		po.Scanner = scanner
	}

	res, runErr := diary.NewPublisher(po).Run(ctx)

	rec := newRunRecord(res, runErr, c.WorkDir, opts.trigger)
	if err := history.SaveRun(rec); err != nil {
		logger.Warn("failed to record run", "error", err)
	}

	return res, runErr
}

func printResult(w io.Writer, res *diary.Result, runErr error) {
	if res.RepositoryCreated {
		_, _ = fmt.Fprintln(w, infoStyle.Render("Initialized diary repository"))
	}

	switch {
	case res.Remote.Added:
		_, _ = fmt.Fprintln(w, infoStyle.Render("Registered origin remote"))
	case res.Remote.Repaired:
		_, _ = fmt.Fprintf(w, "%s %s\n", infoStyle.Render("Updated origin remote, was"), dimStyle.Render(res.Remote.PreviousURL))
	}

	if res.EntryPath != "" {
		_, _ = fmt.Fprintf(w, "%s %s\n", okStyle.Render("Wrote"), filepath.Base(res.EntryPath))
	}

	for _, p := range res.Pruned {
		_, _ = fmt.Fprintf(w, "%s %s\n", dimStyle.Render("Deleted"), filepath.Base(p))
	}

	if res.Publish != nil && res.Publish.Scan != nil && res.Publish.Scan.HasLeaks {
		_, _ = fmt.Fprint(w, security.FormatFindings(res.Publish.Scan.Findings))
		_, _ = fmt.Fprintln(w, dimStyle.Render("Remove the secrets or add them to .gitleaksignore, or use --skip-leaks to publish anyway (not recommended)"))
	}

	if runErr != nil {
		_, _ = fmt.Fprintf(w, "%s %s\n", errStyle.Render("Failed at step:"), res.FailedStep)

		if hint := failureHint(runErr); hint != "" {
			_, _ = fmt.Fprintln(w, dimStyle.Render(hint))
		}

		return
	}

	switch {
	case res.Publish.Committed:
		_, _ = fmt.Fprintf(w, "%s %s %s\n", okStyle.Render("✓ Published"), boldStyle.Render(res.Entry.FileName()), dimStyle.Render(shortSHA(res.Publish.Commit)))
	default:
		_, _ = fmt.Fprintf(w, "%s %s\n", okStyle.Render("✓ Nothing new to commit, pushed"), boldStyle.Render(res.Entry.FileName()))
	}
}

func failureHint(err error) string {
	switch {
	case errors.Is(err, diary.ErrSecretsDetected):
		return ""
	case git.IsAuthRequired(err):
		return "The remote rejected the credentials. Configure a git credential helper or SSH key for the remote."
	case git.IsRejected(err):
		return "The remote has commits this copy lacks. Pull or reconcile them manually, then run again."
	case errors.Is(err, context.Canceled):
		return "Interrupted."
	}

	return ""
}
