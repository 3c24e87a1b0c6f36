package harness

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/bigcheck/internal/classify"
	apperrors "github.com/agbru/bigcheck/internal/errors"
	"github.com/agbru/bigcheck/internal/generator"
	"github.com/agbru/bigcheck/internal/logging"
	"github.com/agbru/bigcheck/internal/metrics"
	"github.com/agbru/bigcheck/internal/model"
	"github.com/agbru/bigcheck/internal/oracle"
	"github.com/agbru/bigcheck/internal/report"
	"github.com/agbru/bigcheck/internal/subject"
)

// TracerName identifies spans emitted by the harness.
const TracerName = "github.com/agbru/bigcheck/internal/harness"

// Config is the run configuration injected at construction.
type Config struct {
	// Cases is the number of generated cases to run.
	Cases int
	// MaxDigits caps generated operand length.
	MaxDigits int
	// Operators is the set of operators under test.
	Operators []model.Operator
	// Kinds is the set of second-operand kinds.
	Kinds []model.OperandKind
	// Seed seeds the generator.
	Seed uint64
	// ZeroDivisionTokens is the accepted division-by-zero vocabulary.
	ZeroDivisionTokens []string
	// FailFast stops the run after the first non-Pass case.
	FailFast bool
	// SubjectName labels the subject in the report.
	SubjectName string
	// RunID labels the run in the report.
	RunID string
}

// Harness wires the generator, oracle, subject, classifier and reporter.
// A Harness runs once; build a new one for another run.
type Harness struct {
	cfg        Config
	gen        *generator.Generator
	oracle     *oracle.Oracle
	subject    subject.Subject
	classifier classify.Classifier
	reporter   *report.Reporter
	metrics    *metrics.Metrics
	logger     logging.Logger
	tracer     trace.Tracer
	progress   ProgressReporter
}

// Option configures a Harness during construction.
type Option func(*Harness)

// WithOracle sets the oracle (default: math/big backend).
func WithOracle(o *oracle.Oracle) Option { return func(h *Harness) { h.oracle = o } }

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option { return func(h *Harness) { h.metrics = m } }

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option { return func(h *Harness) { h.logger = l } }

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option { return func(h *Harness) { h.tracer = t } }

// WithProgress sets the progress reporter.
func WithProgress(p ProgressReporter) Option { return func(h *Harness) { h.progress = p } }

// New builds a Harness around subj.
func New(cfg Config, subj subject.Subject, opts ...Option) *Harness {
	h := &Harness{
		cfg:     cfg,
		subject: subj,
		gen: generator.New(generator.Options{
			MaxDigits: cfg.MaxDigits,
			Operators: cfg.Operators,
			Kinds:     cfg.Kinds,
			Seed:      cfg.Seed,
		}),
		classifier: classify.New(classify.NewZeroDivisionMatcher(cfg.ZeroDivisionTokens)),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.oracle == nil {
		h.oracle = oracle.New(nil)
	}
	if h.logger == nil {
		h.logger = logging.Nop()
	}
	if h.tracer == nil {
		h.tracer = otel.Tracer(TracerName)
	}
	if h.progress == nil {
		h.progress = NullProgressReporter{}
	}
	h.reporter = report.New(report.Meta{
		RunID:   cfg.RunID,
		Seed:    cfg.Seed,
		Subject: cfg.SubjectName,
		Oracle:  h.oracle.Backend().Name(),
		Planned: cfg.Cases,
	})
	return h
}

// Run executes cfg.Cases generated cases and returns the summary. The error is
// non-nil only for run-fatal conditions: a missing subject executable or a
// canceled context. The summary is valid in both cases.
func (h *Harness) Run(ctx context.Context) (report.Summary, error) {
	return h.run(ctx, h.cfg.Cases, func(int) model.TestCase { return h.gen.Next() })
}

// RunCases executes the given cases instead of generated ones.
func (h *Harness) RunCases(ctx context.Context, cases []model.TestCase) (report.Summary, error) {
	return h.run(ctx, len(cases), func(i int) model.TestCase { return cases[i] })
}

func (h *Harness) run(ctx context.Context, total int, next func(int) model.TestCase) (report.Summary, error) {
	ctx, span := h.tracer.Start(ctx, "harness.run", trace.WithAttributes(
		attribute.Int("cases", total),
		attribute.String("subject", h.cfg.SubjectName),
		attribute.String("seed", fmt.Sprint(h.cfg.Seed)),
	))
	defer span.End()

	if c, ok := h.subject.(checker); ok {
		if err := c.Check(); err != nil {
			h.reporter.Abort()
			h.logger.Error("subject unavailable, aborting run", err)
			span.SetStatus(codes.Error, err.Error())
			return h.reporter.Summary(), err
		}
	}

	h.progress.Start(total)
	defer h.progress.Stop()

	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return h.abort(span, err)
		}
		tc := next(i)
		h.logger.Debug(fmt.Sprintf("--- Test Case %d/%d ---", i+1, total),
			logging.String("input", tc.Describe()),
			logging.String("kind", tc.Kind.String()))

		outcome, err := h.RunCase(ctx, i, tc)
		if err != nil {
			return h.abort(span, err)
		}
		h.progress.Update(i+1, total, h.reporter.Total()-h.reporter.Passed())
		if h.cfg.FailFast && outcome != model.Pass {
			h.logger.Info("fail-fast: stopping after first failure", logging.Int("case", i+1))
			h.reporter.Abort()
			break
		}
	}

	s := h.reporter.Summary()
	span.SetAttributes(attribute.Int("passed", s.Passed), attribute.Int("failures", s.FailureCount()))
	return s, nil
}

func (h *Harness) abort(span trace.Span, err error) (report.Summary, error) {
	h.reporter.Abort()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if !apperrors.IsContextError(err) {
		h.logger.Error("run aborted", err)
	}
	return h.reporter.Summary(), err
}

// RunCase drives one case end to end and records it. It returns an error only
// when the whole run must stop; every other fault becomes a FailureRecord.
func (h *Harness) RunCase(ctx context.Context, index int, tc model.TestCase) (outcome model.Outcome, err error) {
	ctx, span := h.tracer.Start(ctx, "harness.case", trace.WithAttributes(
		attribute.Int("case.index", index),
		attribute.String("case.operator", string(tc.Op)),
		attribute.Int("case.kind", int(tc.Kind)),
	))
	defer span.End()

	var expected model.Expected
	defer func() {
		if r := recover(); r != nil {
			fault := apperrors.CaseError{Index: index, Cause: fmt.Errorf("panic: %v", r)}
			h.recordFault(span, index, tc, expected, fault)
			outcome, err = model.Fail, nil
		}
	}()

	expected, err = h.oracle.Evaluate(tc)
	if err != nil {
		h.recordFault(span, index, tc, expected, apperrors.CaseError{Index: index, Cause: err})
		return model.Fail, nil
	}

	if h.metrics != nil {
		h.metrics.SubjectStarted()
	}
	start := time.Now()
	actual, err := h.subject.Evaluate(ctx, tc.ProtocolInput())
	if h.metrics != nil {
		h.metrics.SubjectFinished(tc.Op, time.Since(start))
	}
	if err != nil {
		if apperrors.IsSubjectNotFound(err) || apperrors.IsContextError(err) {
			return model.Fail, err
		}
		h.recordFault(span, index, tc, expected, apperrors.CaseError{Index: index, Cause: err})
		return model.Fail, nil
	}

	v := h.classifier.Classify(expected, actual)
	h.reporter.Record(index, tc, expected, actual, v)
	if h.metrics != nil {
		h.metrics.ObserveOutcome(tc.Op, v.Outcome)
	}
	span.SetAttributes(attribute.String("case.outcome", v.Outcome.String()))

	if v.Outcome == model.Pass {
		h.logger.Debug("Test PASSED", logging.Int("case", index+1))
	} else {
		span.SetStatus(codes.Error, string(v.Kind))
		h.logger.Info("Test FAILED",
			logging.Int("case", index+1),
			logging.String("class", string(v.Kind)),
			logging.String("input", tc.Describe()),
			logging.String("expected", expected.String()),
			logging.String("actual", actual.Display()))
	}
	return v.Outcome, nil
}

func (h *Harness) recordFault(span trace.Span, index int, tc model.TestCase, expected model.Expected, err error) {
	h.reporter.RecordFault(index, tc, expected, err)
	if h.metrics != nil {
		h.metrics.ObserveOutcome(tc.Op, model.Fail)
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	h.logger.Error("harness fault", err, logging.String("input", tc.Describe()))
}

// Summary returns the current aggregate.
func (h *Harness) Summary() report.Summary { return h.reporter.Summary() }
