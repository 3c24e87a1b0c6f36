package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/bigcheck/internal/format"
	"github.com/agbru/bigcheck/internal/harness"
)

const (
	// ProgressRefreshRate is the spinner frame interval.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in characters of the progress bar.
	ProgressBarWidth = 30
)

// Spinner abstracts a terminal spinner so the progress reporter can be
// tested without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

// UpdateSuffix sets the suffix under the spinner's lock; the animation
// goroutine reads it concurrently.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// SpinnerProgress is a harness.ProgressReporter that renders a spinner with
// a progress bar, ETA, and running failure count.
type SpinnerProgress struct {
	out      io.Writer
	mu       sync.Mutex
	spinner  Spinner
	progress *format.CaseProgress
}

var _ harness.ProgressReporter = (*SpinnerProgress)(nil)

// NewSpinnerProgress returns a reporter drawing on out.
func NewSpinnerProgress(out io.Writer) *SpinnerProgress {
	return &SpinnerProgress{out: out}
}

// Start creates and starts the spinner.
func (p *SpinnerProgress) Start(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.progress = format.NewCaseProgress(total)
	p.spinner = newSpinner(spinner.WithWriter(p.out))
	p.spinner.UpdateSuffix(progressSuffix(0, 0, 0, total, 0))
	p.spinner.Start()
}

// Update refreshes the spinner suffix.
func (p *SpinnerProgress) Update(done, total, failures int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.spinner == nil {
		return
	}
	frac, eta := p.progress.Update(done)
	p.spinner.UpdateSuffix(progressSuffix(frac, eta, done, total, failures))
}

// Stop halts the spinner. It is safe to call without Start.
func (p *SpinnerProgress) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.spinner == nil {
		return
	}
	p.spinner.Stop()
	p.spinner = nil
}

func progressSuffix(frac float64, eta time.Duration, done, total, failures int) string {
	return fmt.Sprintf(" %s  %s/%s cases, %d failing",
		format.FormatProgressBarWithETA(frac, eta, ProgressBarWidth),
		format.FormatNumberString(fmt.Sprint(done)),
		format.FormatNumberString(fmt.Sprint(total)),
		failures)
}
