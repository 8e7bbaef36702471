package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/inovacc/diarypush/internal/config"
	"github.com/inovacc/diarypush/internal/git"
	"github.com/inovacc/diarypush/internal/remote"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the working directory and the remote before publishing",
	Long: `Check reports, without changing anything, whether the next run is likely
to succeed:

  - the working directory is a git repository
  - the origin remote points at the configured URL
  - the publish branch exists
  - the remote repository exists on GitHub and is not archived

GitHub is queried anonymously unless GITHUB_TOKEN (or GH_TOKEN) is set.
Private repositories need a token.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("offline", false, "Skip the GitHub API query")
}

type checkLine struct {
	ok     bool
	warn   bool
	label  string
	detail string
}

func runCheck(cmd *cobra.Command, _ []string) error {
	offline, _ := cmd.Flags().GetBool("offline")

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	lines := localChecks(ctx, cfg, git.NewClient(cfg.WorkDir))

	if !offline {
		token, source := remote.ResolveTokenForRemote(cfg.RemoteURL)
		logger.Debug("github token resolved", "source", string(source))

		checker := remote.NewChecker(ctx, token, logger)
		lines = append(lines, remoteChecks(ctx, cfg, checker, source)...)
	}

	return printChecks(cmd.OutOrStdout(), lines)
}

func localChecks(ctx context.Context, c *config.Config, client *git.Client) []checkLine {
	var lines []checkLine

	exists, err := client.HasMetadata()
	if err != nil {
		return append(lines, checkLine{label: "Working directory", detail: err.Error()})
	}

	if !exists {
		return append(lines, checkLine{
			warn:   true,
			label:  "Working directory",
			detail: c.WorkDir + " is not a repository yet, the next run will initialize it",
		})
	}

	lines = append(lines, checkLine{ok: true, label: "Working directory", detail: c.WorkDir})

	current, err := client.GetRemoteURL(ctx, c.Remote)

	switch {
	case git.IsNoSuchRemote(err):
		lines = append(lines, checkLine{warn: true, label: "Remote", detail: c.Remote + " is missing, the next run will add it"})
	case err != nil:
		lines = append(lines, checkLine{label: "Remote", detail: err.Error()})
	case current != c.RemoteURL:
		lines = append(lines, checkLine{warn: true, label: "Remote", detail: fmt.Sprintf("%s points at %s, the next run will change it", c.Remote, current)})
	default:
		lines = append(lines, checkLine{ok: true, label: "Remote", detail: current})
	}

	if client.BranchExists(ctx, c.Branch) {
		lines = append(lines, checkLine{ok: true, label: "Branch", detail: c.Branch})
	} else {
		lines = append(lines, checkLine{warn: true, label: "Branch", detail: c.Branch + " does not exist, the next run will create it"})
	}

	return lines
}

func remoteChecks(ctx context.Context, c *config.Config, checker *remote.Checker, source remote.TokenSource) []checkLine {
	info, err := checker.Check(ctx, c.RemoteURL)

	switch {
	case errors.Is(err, remote.ErrNotGitHub):
		return []checkLine{{warn: true, label: "GitHub", detail: "skipped, " + err.Error()}}
	case errors.Is(err, remote.ErrRepositoryNotFound):
		detail := err.Error()
		if source == remote.TokenSourceNone {
			detail += " (set GITHUB_TOKEN or run gh auth login if the repository is private)"
		}

		return []checkLine{{label: "GitHub", detail: detail}}
	case err != nil:
		return []checkLine{{warn: true, label: "GitHub", detail: err.Error()}}
	}

	visibility := "public"
	if info.Private {
		visibility = "private"
	}

	lines := []checkLine{{ok: true, label: "GitHub", detail: fmt.Sprintf("%s (%s)", info.FullName, visibility)}}

	for _, p := range info.Problems() {
		lines = append(lines, checkLine{label: "GitHub", detail: p})
	}

	for _, w := range info.Warnings(c.Branch) {
		lines = append(lines, checkLine{warn: true, label: "GitHub", detail: w})
	}

	return lines
}

func printChecks(w io.Writer, lines []checkLine) error {
	_, _ = fmt.Fprintln(w, titleStyle.Render("Preflight"))

	var failed int

	for _, l := range lines {
		var mark string

		switch {
		case l.ok:
			mark = okStyle.Render("✓")
		case l.warn:
			mark = warnStyle.Render("!")
		default:
			mark = errStyle.Render("✗")
			failed++
		}

		_, _ = fmt.Fprintf(w, "  %s %-18s %s\n", mark, l.label, dimStyle.Render(l.detail))
	}

	if failed > 0 {
		return fmt.Errorf("preflight found %d problem(s)", failed)
	}

	return nil
}
