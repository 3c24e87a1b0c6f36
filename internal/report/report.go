package report

import (
	"time"

	"github.com/agbru/bigcheck/internal/classify"
	"github.com/agbru/bigcheck/internal/model"
)

// FailureRecord describes one non-Pass case.
type FailureRecord struct {
	Index      int               `json:"index"`
	Input      string            `json:"input"`
	Kind       model.OperandKind `json:"operand_kind"`
	Outcome    string            `json:"outcome"`
	Class      model.FailureKind `json:"class"`
	Expected   string            `json:"expected"`
	Actual     string            `json:"actual"`
	Diagnostic string            `json:"diagnostic,omitempty"`
}

// Summary is the end-of-run aggregate.
type Summary struct {
	RunID     string          `json:"run_id"`
	Seed      uint64          `json:"seed,string"`
	Subject   string          `json:"subject"`
	Oracle    string          `json:"oracle"`
	Planned   int             `json:"planned"`
	Total     int             `json:"total"`
	Passed    int             `json:"passed"`
	Failed    int             `json:"failed"`
	Crashed   int             `json:"crashed"`
	TimedOut  int             `json:"timed_out"`
	Aborted   bool            `json:"aborted"`
	StartedAt time.Time       `json:"started_at"`
	Elapsed   time.Duration   `json:"elapsed_ns"`
	Failures  []FailureRecord `json:"failures"`
}

// FailureCount is the number of non-Pass cases.
func (s Summary) FailureCount() int { return len(s.Failures) }

// AllPassed reports whether at least one case ran and every case passed.
func (s Summary) AllPassed() bool { return s.Total > 0 && s.Passed == s.Total }

// Meta identifies a run in its summary.
type Meta struct {
	RunID   string
	Seed    uint64
	Subject string
	Oracle  string
	Planned int
}

// Reporter accumulates outcomes in the order they are recorded.
type Reporter struct {
	meta     Meta
	start    time.Time
	passed   int
	crashed  int
	timedOut int
	failed   int
	total    int
	aborted  bool
	failures []FailureRecord
	now      func() time.Time
}

// New returns an empty Reporter.
func New(meta Meta) *Reporter {
	r := &Reporter{meta: meta, now: time.Now}
	r.start = r.now()
	return r
}

// Record stores the classified result of case index.
func (r *Reporter) Record(index int, tc model.TestCase, expected model.Expected, actual model.Actual, v classify.Verdict) {
	r.total++
	switch v.Outcome {
	case model.Pass:
		r.passed++
		return
	case model.Crash:
		r.crashed++
	case model.Timeout:
		r.timedOut++
	default:
		r.failed++
	}
	rec := FailureRecord{
		Index:    index,
		Input:    tc.Describe(),
		Kind:     tc.Kind,
		Outcome:  v.Outcome.String(),
		Class:    v.Kind,
		Expected: expected.String(),
		Actual:   actual.Display(),
	}
	if v.Outcome == model.Crash {
		rec.Diagnostic = actual.Diagnostic
	}
	r.failures = append(r.failures, rec)
}

// RecordFault stores a case the harness itself could not drive.
func (r *Reporter) RecordFault(index int, tc model.TestCase, expected model.Expected, err error) {
	r.total++
	r.failed++
	r.failures = append(r.failures, FailureRecord{
		Index:      index,
		Input:      tc.Describe(),
		Kind:       tc.Kind,
		Outcome:    model.Fail.String(),
		Class:      model.HarnessFault,
		Expected:   expected.String(),
		Actual:     "harness error: " + err.Error(),
		Diagnostic: err.Error(),
	})
}

// Abort marks the run as stopped before all planned cases ran.
func (r *Reporter) Abort() { r.aborted = true }

// Passed returns the running pass count.
func (r *Reporter) Passed() int { return r.passed }

// Total returns the number of cases recorded so far.
func (r *Reporter) Total() int { return r.total }

// Summary snapshots the aggregate. The returned Failures slice is a copy.
func (r *Reporter) Summary() Summary {
	failures := make([]FailureRecord, len(r.failures))
	copy(failures, r.failures)
	return Summary{
		RunID:     r.meta.RunID,
		Seed:      r.meta.Seed,
		Subject:   r.meta.Subject,
		Oracle:    r.meta.Oracle,
		Planned:   r.meta.Planned,
		Total:     r.total,
		Passed:    r.passed,
		Failed:    r.failed,
		Crashed:   r.crashed,
		TimedOut:  r.timedOut,
		Aborted:   r.aborted,
		StartedAt: r.start,
		Elapsed:   r.now().Sub(r.start),
		Failures:  failures,
	}
}
