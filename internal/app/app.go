package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/bigcheck/internal/cli"
	"github.com/agbru/bigcheck/internal/config"
	apperrors "github.com/agbru/bigcheck/internal/errors"
	"github.com/agbru/bigcheck/internal/harness"
	"github.com/agbru/bigcheck/internal/logging"
	"github.com/agbru/bigcheck/internal/metrics"
	"github.com/agbru/bigcheck/internal/oracle"
	"github.com/agbru/bigcheck/internal/report"
	"github.com/agbru/bigcheck/internal/subject"
	"github.com/agbru/bigcheck/internal/ui"
)

// Application represents the bigcheck application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer

	subject  subject.Subject
	newRunID func() string
	progress harness.ProgressReporter
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithSubject replaces the configured subject, bypassing path resolution.
func WithSubject(s subject.Subject) AppOption {
	return func(a *Application) { a.subject = s }
}

// WithRunID fixes the run identifier.
func WithRunID(id string) AppOption {
	return func(a *Application) { a.newRunID = func() string { return id } }
}

// WithProgress overrides the progress reporter chosen from the output mode.
func WithProgress(p harness.ProgressReporter) AppOption {
	return func(a *Application) { a.progress = p }
}

// New creates an Application by parsing command-line arguments; args[0] is
// the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, newRunID: uuid.NewString}
	for _, opt := range opts {
		opt(app)
	}

	programName := "bigcheck"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		if !IsHelpError(err) {
			fmt.Fprintf(errWriter, "Error: %v\n", err)
		}
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the configured mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}
	ui.InitTheme(a.Config.NoColor)
	return a.runHarness(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, oracle.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

func (a *Application) logger() *logging.ZerologAdapter {
	level := zerolog.InfoLevel
	switch {
	case a.Config.Quiet:
		level = zerolog.ErrorLevel
	case a.Config.Verbose:
		level = zerolog.DebugLevel
	}
	return logging.NewConsoleLogger(a.ErrWriter, a.Config.NoColor).Level(level)
}

// runHarness drives one full run: subject resolution, the case loop, the
// optional metrics server, and report output.
func (a *Application) runHarness(ctx context.Context, out io.Writer) int {
	cfg := a.Config
	log := a.logger()

	if cfg.Seed == 0 {
		cfg.Seed = rand.Uint64() | 1
	}
	runID := a.newRunID()

	backend, err := oracle.Lookup(cfg.Oracle)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	subj := a.subject
	if subj == nil {
		subj, err = subject.Resolve(cfg.Subject, cfg.SubjectArgs, cfg.Timeout, backend, log.With("subject"))
		if err != nil {
			fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
			return apperrors.ExitErrorConfig
		}
	}

	cases, err := cfg.ReplayCases()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if !cfg.Quiet {
		cli.DisplayExecutionConfig(out, cfg, runID)
	}

	opts := []harness.Option{
		harness.WithOracle(oracle.New(backend)),
		harness.WithLogger(log.With("harness")),
		harness.WithProgress(a.progressReporter(out)),
	}
	var m *metrics.Metrics
	if cfg.MetricsAddr != "" {
		m = metrics.NewMetrics()
		opts = append(opts, harness.WithMetrics(m))
	}
	h := harness.New(cfg.HarnessConfig(runID), subj, opts...)

	g, gctx := errgroup.WithContext(ctx)
	serveCtx, stopServe := context.WithCancel(gctx)
	defer stopServe()
	if m != nil {
		g.Go(func() error {
			log.Info("serving metrics", logging.String("addr", cfg.MetricsAddr))
			return m.Serve(serveCtx, cfg.MetricsAddr)
		})
	}

	var summary report.Summary
	var runErr error
	g.Go(func() error {
		defer stopServe()
		if len(cases) > 0 {
			summary, runErr = h.RunCases(gctx, cases)
		} else {
			summary, runErr = h.Run(gctx)
		}
		return nil
	})
	serveErr := g.Wait()

	return a.finish(out, summary, runErr, serveErr)
}

func (a *Application) progressReporter(out io.Writer) harness.ProgressReporter {
	switch {
	case a.progress != nil:
		return a.progress
	case a.Config.Quiet || a.Config.Verbose:
		return harness.NullProgressReporter{}
	}
	return cli.NewSpinnerProgress(out)
}

// finish writes the report outputs and maps the run result to an exit code.
func (a *Application) finish(out io.Writer, summary report.Summary, runErr, serveErr error) int {
	if apperrors.IsSubjectNotFound(runErr) {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", runErr)
		return apperrors.ExitErrorSubjectNotFound
	}

	if a.Config.ReportFile != "" {
		if err := report.WriteJSONFile(a.Config.ReportFile, summary); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error writing report: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
	}

	if a.Config.Quiet {
		cli.DisplayQuietSummary(out, summary)
	} else if err := cli.DisplaySummary(out, summary); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}

	switch {
	case serveErr != nil:
		fmt.Fprintf(a.ErrWriter, "Error: metrics server: %v\n", serveErr)
		return apperrors.ExitErrorGeneric
	case runErr != nil:
		if !errors.Is(runErr, context.Canceled) {
			fmt.Fprintf(a.ErrWriter, "Error: %v\n", runErr)
		}
		return apperrors.ExitCodeFor(runErr)
	case summary.FailureCount() > 0:
		return apperrors.ExitErrorMismatch
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
