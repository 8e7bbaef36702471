package diary

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/inovacc/diarypush/internal/config"
	"github.com/inovacc/diarypush/internal/git"
)

// Options configures a Publisher
type Options struct {
	WorkDir     string
	Branch      string
	Remote      string
	RemoteURL   string
	Note        string
	StrictPrune bool

	// Git defaults to a client running the git binary in WorkDir
	Git *git.Client

	// Scanner is optional; nil disables the pre-commit secret scan
	Scanner SecretScanner

	// Clock defaults to time.Now
	Clock func() time.Time

	// Logger defaults to a discarding logger
	Logger *slog.Logger
}

// OptionsFromConfig maps the resolved configuration onto publisher options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		WorkDir:     cfg.WorkDir,
		Branch:      cfg.Branch,
		Remote:      cfg.Remote,
		RemoteURL:   cfg.RemoteURL,
		Note:        cfg.Note,
		StrictPrune: cfg.StrictPrune,
	}
}

// Result is the outcome of one run
type Result struct {
	State      State
	FailedStep Step

	Entry     Entry
	EntryPath string

	RepositoryCreated bool
	Remote            RemoteReport
	Pruned            []string
	Publish           *PublishReport

	StartedAt  time.Time
	FinishedAt time.Time
}

// Publisher runs the daily publish sequence
type Publisher struct {
	opts   Options
	git    *git.Client
	clock  func() time.Time
	logger *slog.Logger
}

// NewPublisher creates a Publisher, filling in default dependencies
func NewPublisher(opts Options) *Publisher {
	p := &Publisher{
		opts:   opts,
		git:    opts.Git,
		clock:  opts.Clock,
		logger: opts.Logger,
	}

	if p.git == nil {
		p.git = git.NewClient(opts.WorkDir)
	}

	if p.clock == nil {
		p.clock = time.Now
	}

	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return p
}

// Run executes every transition in order. On failure the returned Result is
// in StateFailed with FailedStep set and the error is a *StepError.
func (p *Publisher) Run(ctx context.Context) (*Result, error) {
	res := &Result{
		State:     StateNotInitialized,
		StartedAt: p.clock(),
	}

	res.Entry = NewEntry(res.StartedAt, p.opts.Note)

	for res.State != StatePublished {
		target, step, ok := res.State.next()
		if !ok {
			break
		}

		if err := ctx.Err(); err != nil {
			return p.fail(res, step, err)
		}

		if err := p.transition(ctx, res, step); err != nil {
			return p.fail(res, step, err)
		}

		p.logger.Debug("state transition", "from", res.State.String(), "to", target.String())
		res.State = target
	}

	res.FinishedAt = p.clock()

	p.logger.Info("diary published",
		"entry", res.Entry.FileName(),
		"pruned", len(res.Pruned),
		"commit", commitOf(res),
	)

	return res, nil
}

func (p *Publisher) transition(ctx context.Context, res *Result, step Step) error {
	var err error

	switch step {
	case StepInitRepository:
		res.RepositoryCreated, err = InitRepository(ctx, p.git, p.opts.Remote, p.opts.RemoteURL, p.logger)

	case StepVerifyRemote:
		res.Remote, err = VerifyRemote(ctx, p.git, p.opts.Remote, p.opts.RemoteURL, p.logger)

	case StepWriteEntry:
		res.EntryPath, err = WriteEntry(p.opts.WorkDir, res.Entry)
		if err == nil {
			p.logger.Info("entry written", "path", res.EntryPath)
		}

	case StepPruneEntries:
		res.Pruned, err = PruneEntries(p.opts.WorkDir, res.EntryPath, p.opts.StrictPrune)
		for _, path := range res.Pruned {
			p.logger.Info("entry deleted", "path", path)
		}

	case StepPublish:
		res.Publish, err = PublishChanges(ctx, p.git, p.opts.Remote, p.opts.Branch, res.Entry, p.opts.Scanner, p.logger)
	}

	return err
}

func (p *Publisher) fail(res *Result, step Step, err error) (*Result, error) {
	p.logger.Error("diary run failed", "step", string(step), "state", res.State.String(), "error", err)

	res.State = StateFailed
	res.FailedStep = step
	res.FinishedAt = p.clock()

	return res, &StepError{Step: step, Err: err}
}

func commitOf(res *Result) string {
	if res.Publish == nil {
		return ""
	}

	return res.Publish.Commit
}
